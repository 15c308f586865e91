// pkg/registry/schema.go
package registry

// BenchmarkRegistry is the on-disk format for expected-CTR curve overrides.
// Operators re-anchor the curve from fresh industry data without a rebuild.
type BenchmarkRegistry struct {
	Version     string   `json:"version"`
	LastUpdated string   `json:"lastUpdated"`
	Source      string   `json:"source"`
	Anchors     []Anchor `json:"anchors"`
}

// Anchor pins the expected click-through rate at one integer position.
type Anchor struct {
	Position int     `json:"position"`
	CTR      float64 `json:"ctr"`
}
