package database

import (
	"time"

	"instagram-profile-compare/pkg/session"
)

// AnalysisSession represents a row of analysis_sessions
type AnalysisSession struct {
	ID        string        `json:"id" db:"id"`
	State     session.State `json:"state" db:"state"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}
