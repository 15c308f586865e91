// Package benchmark provides the expected-CTR-by-position curve that scoring
// and filtering compare real click-through rates against.
package benchmark

import (
	"fmt"
	"math"
	"sort"

	"keyword-insights/internal/common/errors"
	"keyword-insights/pkg/registry"
)

// ctrFloor keeps the curve strictly positive past its last anchor so gap
// arithmetic never divides by or multiplies with zero.
const ctrFloor = 0.001

// Curve maps an average position to the click-through rate a result at that
// position should earn. Anchors are interpolated linearly; queries beyond
// the last anchor get its value.
type Curve struct {
	anchors []registry.Anchor // sorted by position, strictly descending CTR
}

// defaultAnchors carries the industry table for positions 1..10, decaying to
// the floor at position 100 so deep positions interpolate instead of stepping.
var defaultAnchors = []registry.Anchor{
	{Position: 1, CTR: 0.31},
	{Position: 2, CTR: 0.24},
	{Position: 3, CTR: 0.18},
	{Position: 4, CTR: 0.13},
	{Position: 5, CTR: 0.09},
	{Position: 6, CTR: 0.06},
	{Position: 7, CTR: 0.04},
	{Position: 8, CTR: 0.03},
	{Position: 9, CTR: 0.025},
	{Position: 10, CTR: 0.02},
	{Position: 20, CTR: 0.01},
	{Position: 50, CTR: 0.005},
	{Position: 100, CTR: ctrFloor},
}

// Default returns the curve built from the embedded industry anchors.
func Default() *Curve {
	c, _ := New(defaultAnchors)
	return c
}

// New builds a curve from anchors. Anchors may arrive unsorted; they must
// have unique positions >= 1 and CTRs that strictly decrease with position.
func New(anchors []registry.Anchor) (*Curve, error) {
	if len(anchors) == 0 {
		return nil, errors.NewInvalidConfigError("benchmark curve needs at least one anchor")
	}

	sorted := make([]registry.Anchor, len(anchors))
	copy(sorted, anchors)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })

	for i, a := range sorted {
		if a.Position < 1 {
			return nil, errors.NewInvalidConfigError(fmt.Sprintf("anchor position %d below 1", a.Position))
		}
		if a.CTR <= 0 || a.CTR > 1 || math.IsNaN(a.CTR) {
			return nil, errors.NewInvalidConfigError(fmt.Sprintf("anchor ctr %v at position %d out of (0,1]", a.CTR, a.Position))
		}
		if i > 0 {
			if sorted[i-1].Position == a.Position {
				return nil, errors.NewInvalidConfigError(fmt.Sprintf("duplicate anchor position %d", a.Position))
			}
			if sorted[i-1].CTR <= a.CTR {
				return nil, errors.NewInvalidConfigError(
					fmt.Sprintf("ctr must decrease with position: %v at %d vs %v at %d",
						sorted[i-1].CTR, sorted[i-1].Position, a.CTR, a.Position))
			}
		}
	}

	return &Curve{anchors: sorted}, nil
}

// Load reads an anchor registry from disk and builds a curve from it.
func Load(path string) (*Curve, error) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return nil, errors.NewInvalidConfigError(fmt.Sprintf("benchmark registry %s: %s", path, err.Error()))
	}
	return New(reg.Anchors)
}

// ExpectedCTR returns the benchmark CTR for a (possibly fractional) average
// position. Positions before the first anchor clamp to it, positions past
// the last anchor clamp to the last anchor's value, and everything returned
// is strictly positive.
func (c *Curve) ExpectedCTR(position float64) float64 {
	first := c.anchors[0]
	last := c.anchors[len(c.anchors)-1]

	if position <= float64(first.Position) {
		return first.CTR
	}
	if position >= float64(last.Position) {
		return math.Max(last.CTR, ctrFloor)
	}

	// Find the anchor pair straddling position and interpolate.
	hi := sort.Search(len(c.anchors), func(i int) bool {
		return float64(c.anchors[i].Position) >= position
	})
	a, b := c.anchors[hi-1], c.anchors[hi]
	span := float64(b.Position - a.Position)
	frac := (position - float64(a.Position)) / span
	ctr := a.CTR + frac*(b.CTR-a.CTR)
	return math.Max(ctr, ctrFloor)
}

// Gap returns expected minus actual CTR at the record's position. Positive
// means the query underperforms its benchmark and has clicks to recover.
func (c *Curve) Gap(actualCTR, position float64) float64 {
	return c.ExpectedCTR(position) - actualCTR
}
