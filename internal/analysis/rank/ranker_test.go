package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyword-insights/internal/models"
)

func opp(query string, score, estClicks float64, priority models.Priority, typ models.OpportunityType) models.ScoredOpportunity {
	return models.ScoredOpportunity{
		Query:                     query,
		OpportunityScore:          score,
		EstimatedAdditionalClicks: estClicks,
		Priority:                  priority,
		OpportunityType:           typ,
	}
}

func TestRankOrdering(t *testing.T) {
	in := []models.ScoredOpportunity{
		opp("low", 12, 800, models.PriorityLow, models.TypeLongTermTarget),
		opp("beta", 55, 100, models.PriorityMedium, models.TypeTop10Push),
		opp("alpha", 55, 100, models.PriorityMedium, models.TypeTop10Push),
		opp("fat tie", 55, 300, models.PriorityMedium, models.TypeFirstPagePush),
		opp("top", 91, 50, models.PriorityHigh, models.TypeCtrOptimization),
	}

	ordered, _ := Rank(in)
	require.Len(t, ordered, 5)

	var queries []string
	for _, o := range ordered {
		queries = append(queries, o.Query)
	}
	// Score desc, then estimated clicks desc, then query asc.
	assert.Equal(t, []string{"top", "fat tie", "alpha", "beta", "low"}, queries)

	for i, o := range ordered {
		assert.Equal(t, i+1, o.Rank)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	in := []models.ScoredOpportunity{
		opp("b", 10, 0, models.PriorityLow, models.TypeLongTermTarget),
		opp("a", 90, 0, models.PriorityHigh, models.TypeTop10Push),
	}

	Rank(in)
	assert.Equal(t, "b", in[0].Query)
	assert.Zero(t, in[0].Rank)
}

func TestRankSummary(t *testing.T) {
	in := []models.ScoredOpportunity{
		opp("a", 91, 120, models.PriorityHigh, models.TypeCtrOptimization),
		opp("b", 72, 80, models.PriorityHigh, models.TypeTop10Push),
		opp("c", 40, 30, models.PriorityMedium, models.TypeTop10Push),
		opp("d", 5, 0, models.PriorityLow, models.TypeLongTermTarget),
	}

	_, summary := Rank(in)
	assert.Equal(t, 4, summary.TotalOpportunities)
	assert.Equal(t, 2, summary.ByPriority[models.PriorityHigh])
	assert.Equal(t, 1, summary.ByPriority[models.PriorityMedium])
	assert.Equal(t, 1, summary.ByPriority[models.PriorityLow])
	assert.Equal(t, 2, summary.ByType[models.TypeTop10Push])
	assert.Equal(t, 1, summary.ByType[models.TypeCtrOptimization])
	assert.InDelta(t, 230, summary.EstimatedAdditionalClicks, 1e-9)
}

func TestRankEmpty(t *testing.T) {
	ordered, summary := Rank(nil)
	assert.Empty(t, ordered)
	assert.Zero(t, summary.TotalOpportunities)
	assert.Empty(t, summary.ByPriority)
	assert.Empty(t, summary.ByType)
	assert.Zero(t, summary.EstimatedAdditionalClicks)
}
