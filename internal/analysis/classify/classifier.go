// Package classify assigns the opportunity-type bucket and priority tier to
// scored keywords.
package classify

import "keyword-insights/internal/models"

// page-one cutoff for the CTR-shortfall precedence rule
const ctrRuleMaxPosition = 10

// OpportunityType applies one deterministic rule, first match wins: a
// page-one query still losing clicks to a significant CTR shortfall is a
// CtrOptimization regardless of its position bucket; everything else maps
// through the configured buckets.
func OpportunityType(position, ctrGap float64, cfg models.ScoringConfig) models.OpportunityType {
	if position <= ctrRuleMaxPosition && ctrGap >= cfg.CTRGapSignificanceThreshold {
		return models.TypeCtrOptimization
	}
	return cfg.BucketFor(position)
}

// Priority maps a composite score onto the configured tiers. Monotone in
// the score for fixed thresholds.
func Priority(score float64, t models.PriorityThresholds) models.Priority {
	switch {
	case score >= t.High:
		return models.PriorityHigh
	case score >= t.Medium:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}
