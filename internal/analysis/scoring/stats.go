// Package scoring computes the four opportunity sub-scores and the weighted
// composite. Scoring is two-pass: Stats reduces the surviving dataset once,
// then each record is scored against those distributions.
package scoring

import (
	"math"
	"sort"

	"keyword-insights/internal/analysis/benchmark"
	"keyword-insights/internal/models"
)

// Stats holds the dataset-wide distributions that normalize the volume and
// traffic-potential sub-scores. Percentile rank, not min-max, so one viral
// query cannot flatten every other score.
type Stats struct {
	impressions []float64 // sorted ascending
	traffic     []float64 // sorted ascending
}

// BuildStats runs the reduction pass over the surviving records.
func BuildStats(records []models.KeywordRecord, curve *benchmark.Curve) *Stats {
	s := &Stats{
		impressions: make([]float64, 0, len(records)),
		traffic:     make([]float64, 0, len(records)),
	}
	for _, rec := range records {
		s.impressions = append(s.impressions, float64(rec.Impressions))
		s.traffic = append(s.traffic, EstimatedAdditionalClicks(rec, curve))
	}
	sort.Float64s(s.impressions)
	sort.Float64s(s.traffic)
	return s
}

// Size returns the number of records the stats were built from.
func (s *Stats) Size() int {
	return len(s.impressions)
}

// ImpressionsPercentile ranks v within the impression distribution, 0..100.
func (s *Stats) ImpressionsPercentile(v float64) float64 {
	return percentileRank(s.impressions, v)
}

// TrafficPercentile ranks v within the traffic-potential distribution, 0..100.
func (s *Stats) TrafficPercentile(v float64) float64 {
	return percentileRank(s.traffic, v)
}

// EstimatedAdditionalClicks is the traffic a query recovers by closing its
// CTR gap at current impression volume. Zero for queries already beating
// their benchmark.
func EstimatedAdditionalClicks(rec models.KeywordRecord, curve *benchmark.Curve) float64 {
	return math.Max(curve.Gap(rec.CTR, rec.Position), 0) * float64(rec.Impressions)
}

// percentileRank is the mean fractional rank of v in sorted, scaled to
// 0..100: (count below + half the ties) / n. A dataset of identical values
// ranks everything at 50.
func percentileRank(sorted []float64, v float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	below := sort.SearchFloat64s(sorted, v)
	above := sort.Search(n, func(i int) bool { return sorted[i] > v })
	equal := above - below
	return 100 * (float64(below) + 0.5*float64(equal)) / float64(n)
}
