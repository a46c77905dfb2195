package database

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"instagram-profile-compare/pkg/session"
)

// Requires a reachable PostgreSQL in TEST_DATABASE_URL.
func TestSessionStore_Lifecycle(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	require.NoError(t, Initialize(dsn))
	t.Cleanup(func() { _ = Close() })
	require.NoError(t, IsHealthy())

	ctx := context.Background()
	store := NewSessionStore(DB)
	id := uuid.NewString()

	state, err := store.State(ctx, id)
	require.NoError(t, err)
	require.Equal(t, session.StateNotStarted, state)

	changed, err := store.MarkDone(ctx, id)
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = store.MarkDone(ctx, id)
	require.NoError(t, err)
	require.False(t, changed)

	row, err := store.GetSession(ctx, id)
	require.NoError(t, err)
	require.Equal(t, session.StateDone, row.State)
	require.False(t, row.CreatedAt.IsZero())
}
