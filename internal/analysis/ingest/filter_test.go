package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyword-insights/internal/models"
)

func rec(query string, impressions, clicks int, ctr, position float64) models.KeywordRecord {
	return models.KeywordRecord{
		Query:       query,
		Impressions: impressions,
		Clicks:      clicks,
		CTR:         ctr,
		Position:    position,
	}
}

func TestFilterBrandTerms(t *testing.T) {
	cfg := models.DefaultScoringConfig()
	cfg.BrandTerms = []string{"synthesis", " Acme "}

	in := []models.KeywordRecord{
		rec("Synthesis tutor login", 500, 100, 0.2, 1.2),
		rec("acme MATH review", 200, 10, 0.05, 4),
		rec("online math tutor", 200, 10, 0.05, 4),
	}

	res := Filter(in, cfg)
	require.Len(t, res.Kept, 1)
	assert.Equal(t, "online math tutor", res.Kept[0].Query)
	assert.Equal(t, 2, res.Rejected)
	assert.Equal(t, 0, res.Malformed)
}

func TestFilterBounds(t *testing.T) {
	cfg := models.DefaultScoringConfig()

	tests := []struct {
		name     string
		record   models.KeywordRecord
		kept     bool
		rejected bool
	}{
		{"passes all filters", rec("fractions practice", 50, 2, 0.04, 8), true, false},
		{"at min impressions", rec("fractions practice", 10, 1, 0.1, 8), true, false},
		{"below min impressions", rec("fractions practice", 9, 1, 0.111, 8), false, true},
		{"at max position", rec("fractions practice", 50, 2, 0.04, 100), true, false},
		{"beyond max position", rec("fractions practice", 50, 2, 0.04, 100.1), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Filter([]models.KeywordRecord{tt.record}, cfg)
			assert.Equal(t, tt.kept, len(res.Kept) == 1)
			assert.Equal(t, tt.rejected, res.Rejected == 1)
		})
	}
}

func TestFilterMalformed(t *testing.T) {
	cfg := models.DefaultScoringConfig()

	malformed := []models.KeywordRecord{
		rec("", 50, 2, 0.04, 8),
		rec("   ", 50, 2, 0.04, 8),
		rec("neg impressions", -1, 0, 0, 8),
		rec("neg clicks", 50, -2, 0.04, 8),
		rec("clicks exceed impressions", 50, 60, 1.2, 8),
		rec("position below one", 50, 2, 0.04, 0.9),
		rec("ctr above one", 50, 2, 1.5, 8),
		rec("negative ctr", 50, 2, -0.1, 8),
	}

	res := Filter(malformed, cfg)
	assert.Empty(t, res.Kept)
	assert.Equal(t, 0, res.Rejected)
	assert.Equal(t, len(malformed), res.Malformed)
}

func TestFilterPreservesOrderAndInput(t *testing.T) {
	cfg := models.DefaultScoringConfig()

	in := []models.KeywordRecord{
		rec("zebra math", 40, 2, 0.05, 12),
		rec("bad record", -1, 0, 0, 1),
		rec("alpha math", 40, 2, 0.05, 3),
		rec("synthesis review", 40, 2, 0.05, 3),
		rec("middle math", 40, 2, 0.05, 30),
	}
	snapshot := make([]models.KeywordRecord, len(in))
	copy(snapshot, in)

	res := Filter(in, cfg)
	require.Len(t, res.Kept, 3)
	assert.Equal(t, "zebra math", res.Kept[0].Query)
	assert.Equal(t, "alpha math", res.Kept[1].Query)
	assert.Equal(t, "middle math", res.Kept[2].Query)
	assert.Equal(t, 1, res.Rejected)
	assert.Equal(t, 1, res.Malformed)
	assert.Equal(t, snapshot, in)
}

func TestFilterEmptyInput(t *testing.T) {
	res := Filter(nil, models.DefaultScoringConfig())
	assert.Empty(t, res.Kept)
	assert.Zero(t, res.Rejected)
	assert.Zero(t, res.Malformed)
}
