package session

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	state, err := store.State(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, StateNotStarted, state)

	changed, err := store.MarkDone(ctx, "s1")
	require.NoError(t, err)
	require.True(t, changed)

	state, err = store.State(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, StateDone, state)

	// Done is terminal.
	changed, err = store.MarkDone(ctx, "s1")
	require.NoError(t, err)
	require.False(t, changed)

	state, err = store.State(ctx, "s2")
	require.NoError(t, err)
	require.Equal(t, StateNotStarted, state)
}

func TestMemoryStore_ConcurrentMarkDone(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wins int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			changed, err := store.MarkDone(ctx, "shared")
			require.NoError(t, err)
			if changed {
				atomic.AddInt64(&wins, 1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int64(1), wins)
}
