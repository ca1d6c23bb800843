package models

// Intent is the routing label for an inbound query
type Intent string

const (
	IntentPlanning      Intent = "planning"
	IntentInformational Intent = "informational"
)

// PipelineResult is everything one planner invocation produced
type PipelineResult struct {
	RequestID   string              `json:"request_id"`
	Intent      Intent              `json:"intent"`
	Request     *TripRequest        `json:"extracted_data,omitempty"`
	Constraints *DerivedConstraints `json:"constraints,omitempty"`
	Research    *ResearchBundle     `json:"research,omitempty"`
	Insights    *InsightReport      `json:"insights,omitempty"`
	Itinerary   string              `json:"optimized_plan,omitempty"`
	Response    string              `json:"response,omitempty"`
}
