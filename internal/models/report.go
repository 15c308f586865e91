package models

// ReportSummary aggregates a run in one pass over the ranked entries.
type ReportSummary struct {
	TotalOpportunities        int                     `json:"totalOpportunities"`
	ByPriority                map[Priority]int        `json:"byPriority"`
	ByType                    map[OpportunityType]int `json:"byType"`
	EstimatedAdditionalClicks float64                 `json:"estimatedAdditionalClicks"`
}

// Report is the complete output of one analysis run.
type Report struct {
	Channel       Channel             `json:"channel"`
	Opportunities []ScoredOpportunity `json:"opportunities"`
	Summary       ReportSummary       `json:"summary"`

	// Ingestion accounting: records dropped by filters vs records that
	// failed sanity checks. Survivors + Rejected + Malformed = input size.
	Rejected  int `json:"rejected"`
	Malformed int `json:"malformed"`
}
