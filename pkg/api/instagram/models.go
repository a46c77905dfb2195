package instagram

import (
	"time"

	"instagram-profile-compare/pkg/analysis"
	"instagram-profile-compare/pkg/metrics"
)

// CompareRequest represents a profile comparison request
type CompareRequest struct {
	Username1 string `json:"username_1"`
	Username2 string `json:"username_2"`
}

// CompareResponse represents a successful comparison
type CompareResponse struct {
	SessionID string             `json:"session_id"`
	Analysis  *analysis.Analysis `json:"analysis"`
	Meta      ResponseMeta       `json:"meta"`
}

// ProfileResponse represents a single profile lookup
type ProfileResponse struct {
	Profile *metrics.Profile `json:"profile"`
	Meta    ResponseMeta     `json:"meta"`
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Profile string `json:"profile,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// ResponseMeta provides metadata about the response
type ResponseMeta struct {
	ProcessedAt time.Time `json:"processed_at"`
	Source      string    `json:"source"`
}
