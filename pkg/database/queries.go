package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"instagram-profile-compare/pkg/session"
)

var _ session.Store = (*SessionStore)(nil)

// SessionStore is a session.Store backed by PostgreSQL
type SessionStore struct {
	db *sql.DB
}

// NewSessionStore creates a session store on top of db
func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

// GetSession retrieves a session row by ID
func (s *SessionStore) GetSession(ctx context.Context, sessionID string) (*AnalysisSession, error) {
	query := `
		SELECT id, state, created_at, updated_at
		FROM analysis_sessions
		WHERE id = $1
	`

	var row AnalysisSession
	err := s.db.QueryRowContext(ctx, query, sessionID).Scan(
		&row.ID, &row.State, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &row, nil
}

// State returns the state of the session; unknown sessions are not started
func (s *SessionStore) State(ctx context.Context, sessionID string) (session.State, error) {
	row, err := s.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session.StateNotStarted, nil
		}
		log.Error().Err(err).Str("session_id", sessionID).Msg("failed to get session")
		return "", fmt.Errorf("failed to get session: %w", err)
	}

	return row.State, nil
}

// MarkDone transitions the session to done. The insert only touches rows
// still in a state other than done, so concurrent callers see one winner.
func (s *SessionStore) MarkDone(ctx context.Context, sessionID string) (bool, error) {
	query := `
		INSERT INTO analysis_sessions (id, state)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET
			state = EXCLUDED.state,
			updated_at = CURRENT_TIMESTAMP
		WHERE analysis_sessions.state <> EXCLUDED.state
	`

	res, err := s.db.ExecContext(ctx, query, sessionID, string(session.StateDone))
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("failed to mark session done")
		return false, fmt.Errorf("failed to mark session done: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	log.Debug().Str("session_id", sessionID).Int64("affected", affected).Msg("marked session done")
	return affected > 0, nil
}
