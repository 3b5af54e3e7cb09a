package model

// Outcome classifies a single upstream forecast call for usage accounting.
type Outcome string

const (
	OutcomeSuccess        Outcome = "success"
	OutcomeUpstreamError  Outcome = "upstream_error"
	OutcomeTransportError Outcome = "transport_error"
)

// UsageReport is the number of upstream calls made on one UTC day, by outcome.
type UsageReport struct {
	Date   string            `json:"date"`
	Counts map[Outcome]int64 `json:"counts"`
	Total  int64             `json:"total"`
}
