// Package rank orders scored opportunities deterministically and aggregates
// the run summary.
package rank

import (
	"sort"

	"keyword-insights/internal/models"
)

// Rank returns a new ordered slice with 1-based ranks assigned, plus the
// portfolio summary. Ties on score break by estimated clicks descending,
// then query ascending, so the order is total and repeatable. The input
// slice is not reordered.
func Rank(opportunities []models.ScoredOpportunity) ([]models.ScoredOpportunity, models.ReportSummary) {
	ordered := make([]models.ScoredOpportunity, len(opportunities))
	copy(ordered, opportunities)

	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.OpportunityScore != b.OpportunityScore {
			return a.OpportunityScore > b.OpportunityScore
		}
		if a.EstimatedAdditionalClicks != b.EstimatedAdditionalClicks {
			return a.EstimatedAdditionalClicks > b.EstimatedAdditionalClicks
		}
		return a.Query < b.Query
	})

	summary := models.ReportSummary{
		TotalOpportunities: len(ordered),
		ByPriority:         make(map[models.Priority]int),
		ByType:             make(map[models.OpportunityType]int),
	}
	for i := range ordered {
		ordered[i].Rank = i + 1
		summary.ByPriority[ordered[i].Priority]++
		summary.ByType[ordered[i].OpportunityType]++
		summary.EstimatedAdditionalClicks += ordered[i].EstimatedAdditionalClicks
	}

	return ordered, summary
}
