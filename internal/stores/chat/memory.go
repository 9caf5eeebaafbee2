package chat

import (
	"context"
	"errors"
	"sync"
	"time"
)

var errNilTurn = errors.New("turn cannot be nil")

// InMemoryStore keeps conversation history in process memory. Used for local
// development and tests, mirroring the database-backed store's behavior.
type InMemoryStore struct {
	mu    sync.RWMutex
	turns map[string][]Turn
	next  uint
}

// NewInMemoryStore creates a new in-memory history store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		turns: make(map[string][]Turn),
	}
}

// Append saves a turn to memory
func (s *InMemoryStore) Append(ctx context.Context, turn *Turn) error {
	if turn == nil {
		return &StoreError{Op: "append", Err: errNilTurn}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	turn.ID = s.next
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}

	s.turns[turn.SessionID] = append(s.turns[turn.SessionID], *turn)
	return nil
}

// List retrieves all turns for a session in insertion order
func (s *InMemoryStore) List(ctx context.Context, sessionID string) ([]Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.turns[sessionID]

	// Return a copy to avoid race conditions
	result := make([]Turn, len(turns))
	copy(result, turns)

	return result, nil
}

// Recent retrieves the latest limit turns for a session in insertion order
func (s *InMemoryStore) Recent(ctx context.Context, sessionID string, limit int) ([]Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.turns[sessionID]
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}

	result := make([]Turn, len(turns))
	copy(result, turns)

	return result, nil
}

// Close is a no-op for the in-memory store
func (s *InMemoryStore) Close() error {
	return nil
}
