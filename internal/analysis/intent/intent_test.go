package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"keyword-insights/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  models.IntentCategory
	}{
		{"how to beats question prefix", "how to teach fractions", models.IntentHowTo},
		{"how to exact", "How To", models.IntentHowTo},
		{"bare how is a question", "how does spaced repetition work", models.IntentQuestion},
		{"what is hits question before definition", "what is synthesis tutoring", models.IntentQuestion},
		{"why starter", "Why do kids hate math", models.IntentQuestion},
		{"can starter", "can a 5 year old learn multiplication", models.IntentQuestion},
		{"is starter needs word boundary", "island school reviews", models.IntentOther},
		{"definition by define", "define commutative property", models.IntentDefinition},
		{"definition mid-query", "the meaning of numeracy", models.IntentDefinition},
		{"comparison vs", "khan academy vs private tutor", models.IntentComparison},
		{"comparison versus", "homeschool versus public school math", models.IntentComparison},
		{"comparison better than", "apps better than flashcards", models.IntentComparison},
		{"vs needs word boundary", "canvas math course", models.IntentOther},
		{"plain query", "elementary math tutor", models.IntentOther},
		{"empty query", "", models.IntentOther},
		{"mixed case trimmed", "  WHAT grade is algebra  ", models.IntentQuestion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.query))
		})
	}
}
