package models

import (
	"fmt"
	"math"
	"strings"

	"keyword-insights/internal/common/errors"
)

// Weights are the sub-score weights of the composite opportunity score.
// They must sum to 1.0 within a small tolerance.
type Weights struct {
	Position         float64 `json:"position" mapstructure:"position"`
	Volume           float64 `json:"volume" mapstructure:"volume"`
	CTRGap           float64 `json:"ctrGap" mapstructure:"ctr_gap"`
	TrafficPotential float64 `json:"trafficPotential" mapstructure:"traffic_potential"`
}

// PriorityThresholds are the composite-score cutoffs for the action tiers.
// Score >= High is high priority, >= Medium is medium, everything else low.
type PriorityThresholds struct {
	High   float64 `json:"high" mapstructure:"high"`
	Medium float64 `json:"medium" mapstructure:"medium"`
}

// PositionBucket maps a half-open position range [Lower, Upper) to an
// opportunity type. The last bucket of a config is closed at Upper.
type PositionBucket struct {
	Lower float64         `json:"lower" mapstructure:"lower"`
	Upper float64         `json:"upper" mapstructure:"upper"`
	Type  OpportunityType `json:"type" mapstructure:"type"`
}

// ScoringConfig controls ingestion filtering, scoring and classification for
// a run. Zero value is not usable; start from DefaultScoringConfig.
type ScoringConfig struct {
	Weights                     Weights            `json:"weights" mapstructure:"weights"`
	BrandTerms                  []string           `json:"brandTerms" mapstructure:"brand_terms"`
	MinImpressions              int                `json:"minImpressions" mapstructure:"min_impressions"`
	MaxPosition                 float64            `json:"maxPosition" mapstructure:"max_position"`
	PriorityThresholds          PriorityThresholds `json:"priorityThresholds" mapstructure:"priority_thresholds"`
	PositionBuckets             []PositionBucket   `json:"positionBuckets" mapstructure:"position_buckets"`
	CTRGapSignificanceThreshold float64            `json:"ctrGapSignificanceThreshold" mapstructure:"ctr_gap_significance_threshold"`
}

const weightSumTolerance = 1e-6

// DefaultScoringConfig returns the production defaults.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Weights: Weights{
			Position:         0.4,
			Volume:           0.3,
			CTRGap:           0.2,
			TrafficPotential: 0.1,
		},
		BrandTerms:     []string{"synthesis"},
		MinImpressions: 10,
		MaxPosition:    100,
		PriorityThresholds: PriorityThresholds{
			High:   70,
			Medium: 30,
		},
		PositionBuckets: []PositionBucket{
			{Lower: 1, Upper: 11, Type: TypeTop10Push},
			{Lower: 11, Upper: 21, Type: TypeFirstPagePush},
			{Lower: 21, Upper: 51, Type: TypeContentOptimization},
			{Lower: 51, Upper: 100, Type: TypeLongTermTarget},
		},
		CTRGapSignificanceThreshold: 0.05,
	}
}

// Validate checks the config invariants. It returns a non-retryable
// INVALID_CONFIG error naming the first violation found.
func (c ScoringConfig) Validate() error {
	for name, w := range map[string]float64{
		"position":          c.Weights.Position,
		"volume":            c.Weights.Volume,
		"ctr_gap":           c.Weights.CTRGap,
		"traffic_potential": c.Weights.TrafficPotential,
	} {
		if w < 0 || w > 1 || math.IsNaN(w) {
			return errors.NewInvalidConfigError(fmt.Sprintf("weight %s out of [0,1]: %v", name, w))
		}
	}
	sum := c.Weights.Position + c.Weights.Volume + c.Weights.CTRGap + c.Weights.TrafficPotential
	if math.Abs(sum-1.0) > weightSumTolerance {
		return errors.NewInvalidConfigError(fmt.Sprintf("weights sum to %v, want 1.0", sum))
	}

	if c.MinImpressions < 0 {
		return errors.NewInvalidConfigError(fmt.Sprintf("min_impressions negative: %d", c.MinImpressions))
	}
	if c.MaxPosition <= 1 {
		return errors.NewInvalidConfigError(fmt.Sprintf("max_position must exceed 1: %v", c.MaxPosition))
	}

	t := c.PriorityThresholds
	if t.Medium < 0 || t.High > 100 || t.Medium > t.High {
		return errors.NewInvalidConfigError(
			fmt.Sprintf("priority thresholds must satisfy 0 <= medium <= high <= 100, got medium=%v high=%v", t.Medium, t.High))
	}

	if c.CTRGapSignificanceThreshold < 0 || c.CTRGapSignificanceThreshold > 1 {
		return errors.NewInvalidConfigError(
			fmt.Sprintf("ctr_gap_significance_threshold out of [0,1]: %v", c.CTRGapSignificanceThreshold))
	}

	if len(c.PositionBuckets) == 0 {
		return errors.NewInvalidConfigError("position_buckets empty")
	}
	for i, b := range c.PositionBuckets {
		if b.Lower >= b.Upper {
			return errors.NewInvalidConfigError(fmt.Sprintf("bucket %d has lower %v >= upper %v", i, b.Lower, b.Upper))
		}
		if strings.TrimSpace(string(b.Type)) == "" {
			return errors.NewInvalidConfigError(fmt.Sprintf("bucket %d has empty type", i))
		}
		if i > 0 && c.PositionBuckets[i-1].Upper != b.Lower {
			return errors.NewInvalidConfigError(
				fmt.Sprintf("buckets %d and %d leave a gap: %v != %v", i-1, i, c.PositionBuckets[i-1].Upper, b.Lower))
		}
	}
	if c.PositionBuckets[0].Lower != 1 {
		return errors.NewInvalidConfigError(fmt.Sprintf("first bucket must start at position 1, got %v", c.PositionBuckets[0].Lower))
	}
	if last := c.PositionBuckets[len(c.PositionBuckets)-1]; last.Upper < c.MaxPosition {
		return errors.NewInvalidConfigError(
			fmt.Sprintf("last bucket ends at %v, below max_position %v", last.Upper, c.MaxPosition))
	}

	return nil
}

// BucketFor returns the opportunity type for a position. Positions past the
// last bucket's upper bound (possible when max_position is raised without
// extending the buckets) fall into the last bucket.
func (c ScoringConfig) BucketFor(position float64) OpportunityType {
	last := len(c.PositionBuckets) - 1
	for i, b := range c.PositionBuckets {
		if position >= b.Lower && (position < b.Upper || i == last) {
			return b.Type
		}
	}
	return c.PositionBuckets[last].Type
}
