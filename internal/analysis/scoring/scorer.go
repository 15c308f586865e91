package scoring

import (
	"math"

	"keyword-insights/internal/analysis/benchmark"
	"keyword-insights/internal/models"
)

// SubScores are the four normalized components of the opportunity score,
// each in [0,100].
type SubScores struct {
	Position         float64
	Volume           float64
	CTRGap           float64
	TrafficPotential float64
}

// Score computes the sub-scores for one record against the dataset stats.
// Callers must build stats from the same surviving set the record belongs to.
func Score(rec models.KeywordRecord, curve *benchmark.Curve, stats *Stats, cfg models.ScoringConfig) SubScores {
	expected := curve.ExpectedCTR(rec.Position)
	gap := expected - rec.CTR

	position := 100 * (cfg.MaxPosition - rec.Position) / (cfg.MaxPosition - 1)

	// expected is strictly positive by curve construction.
	gapScore := 100 * math.Max(gap, 0) / expected

	return SubScores{
		Position:         clamp(position),
		Volume:           clamp(stats.ImpressionsPercentile(float64(rec.Impressions))),
		CTRGap:           clamp(gapScore),
		TrafficPotential: clamp(stats.TrafficPercentile(EstimatedAdditionalClicks(rec, curve))),
	}
}

// Composite folds the sub-scores through the configured weights. With
// weights summing to 1 and sub-scores clamped, the result stays in [0,100].
func Composite(s SubScores, w models.Weights) float64 {
	return w.Position*s.Position +
		w.Volume*s.Volume +
		w.CTRGap*s.CTRGap +
		w.TrafficPotential*s.TrafficPotential
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
