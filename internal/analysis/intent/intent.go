// Package intent labels query wording for the answer-engine and
// generative-engine channels. Pure pattern matching, case-insensitive.
package intent

import (
	"strings"

	"keyword-insights/internal/models"
)

var questionStarters = []string{
	"how", "what", "why", "when", "where", "who", "can", "does", "is", "are",
}

var definitionMarkers = []string{"what is", "define", "meaning of"}

var comparisonMarkers = []string{"vs", "versus", "compare", "better than"}

// Classify assigns an intent category. Rules run in fixed precedence so the
// specific "how to" prefix wins over the generic "how" question starter.
func Classify(query string) models.IntentCategory {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return models.IntentOther
	}

	if hasWordPrefix(q, "how to") {
		return models.IntentHowTo
	}
	for _, w := range questionStarters {
		if hasWordPrefix(q, w) {
			return models.IntentQuestion
		}
	}
	for _, m := range definitionMarkers {
		if containsPhrase(q, m) {
			return models.IntentDefinition
		}
	}
	for _, m := range comparisonMarkers {
		if containsPhrase(q, m) {
			return models.IntentComparison
		}
	}
	return models.IntentOther
}

// hasWordPrefix matches prefix at a word boundary, so "is" matches
// "is algebra hard" but not "island schools".
func hasWordPrefix(q, prefix string) bool {
	if q == prefix {
		return true
	}
	return strings.HasPrefix(q, prefix+" ")
}

// containsPhrase matches phrase only on word boundaries, so "vs" matches
// "a vs b" but not "canvas course".
func containsPhrase(q, phrase string) bool {
	idx := 0
	for {
		i := strings.Index(q[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		startOK := start == 0 || q[start-1] == ' '
		endOK := end == len(q) || q[end] == ' '
		if startOK && endOK {
			return true
		}
		idx = start + 1
	}
}
