package models

// Channel identifies which search surface a run analyzes. Traditional web
// search scores every record; the answer-engine and generative-engine
// channels additionally classify query intent.
type Channel string

const (
	ChannelSearch     Channel = "search"
	ChannelAnswer     Channel = "answer"
	ChannelGenerative Channel = "generative"
)

// WantsIntent reports whether runs on this channel classify query intent.
func (c Channel) WantsIntent() bool {
	return c == ChannelAnswer || c == ChannelGenerative
}

// Valid reports whether c is a known channel.
func (c Channel) Valid() bool {
	switch c {
	case ChannelSearch, ChannelAnswer, ChannelGenerative:
		return true
	}
	return false
}

// KeywordRecord is one query's aggregated performance over the reporting
// window, as returned by Search Console.
type KeywordRecord struct {
	Query       string  `json:"query"`
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	CTR         float64 `json:"ctr"`
	Position    float64 `json:"position"`
}

// OpportunityType labels what kind of action a scored keyword calls for.
type OpportunityType string

const (
	TypeCtrOptimization     OpportunityType = "ctr_optimization"
	TypeTop10Push           OpportunityType = "top_10_push"
	TypeFirstPagePush       OpportunityType = "first_page_push"
	TypeContentOptimization OpportunityType = "content_optimization"
	TypeLongTermTarget      OpportunityType = "long_term_target"
)

// Priority is the action tier derived from the composite score.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// IntentCategory is the coarse query-intent label used on answer-engine and
// generative-engine channels.
type IntentCategory string

const (
	IntentHowTo      IntentCategory = "how_to"
	IntentQuestion   IntentCategory = "question"
	IntentDefinition IntentCategory = "definition"
	IntentComparison IntentCategory = "comparison"
	IntentOther      IntentCategory = "other"
)

// ScoredOpportunity is one surviving keyword after scoring, classification
// and ranking. Rank is 1-based within the run.
type ScoredOpportunity struct {
	Rank        int     `json:"rank"`
	Query       string  `json:"query"`
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	CTR         float64 `json:"ctr"`
	Position    float64 `json:"position"`

	ExpectedCTR float64 `json:"expectedCtr"`
	CTRGap      float64 `json:"ctrGap"`

	PositionScore         float64 `json:"positionScore"`
	VolumeScore           float64 `json:"volumeScore"`
	CTRGapScore           float64 `json:"ctrGapScore"`
	TrafficPotentialScore float64 `json:"trafficPotentialScore"`
	OpportunityScore      float64 `json:"opportunityScore"`

	OpportunityType           OpportunityType `json:"opportunityType"`
	Priority                  Priority        `json:"priority"`
	EstimatedAdditionalClicks float64         `json:"estimatedAdditionalClicks"`

	// Set only on channels that classify intent; omitted from JSON otherwise.
	IntentCategory *IntentCategory `json:"intentCategory,omitempty"`
}
