package session

import (
	"context"
	"sync"
)

// State is the analysis state of a single session
type State string

const (
	StateNotStarted State = "not_started"
	StateDone       State = "done"
)

// Store keeps the per-session analysis state.
// A session moves from StateNotStarted to StateDone once and is never reset.
type Store interface {
	// State returns the session state; unknown sessions are StateNotStarted
	State(ctx context.Context, sessionID string) (State, error)
	// MarkDone transitions the session to StateDone and reports whether
	// this call performed the transition
	MarkDone(ctx context.Context, sessionID string) (bool, error)
}

// MemoryStore is an in-process Store
type MemoryStore struct {
	mu   sync.Mutex
	done map[string]struct{}
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		done: make(map[string]struct{}),
	}
}

// State returns the state of the session
func (m *MemoryStore) State(_ context.Context, sessionID string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.done[sessionID]; ok {
		return StateDone, nil
	}
	return StateNotStarted, nil
}

// MarkDone marks the session as done
func (m *MemoryStore) MarkDone(_ context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.done[sessionID]; ok {
		return false, nil
	}
	m.done[sessionID] = struct{}{}
	return true, nil
}
