package pagination

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// ErrNotFound is returned when no cursor is stored for a message, either
// because it was never paged or because it expired.
var ErrNotFound = errors.New("pagination: cursor not found")

// Store keeps cursors keyed by the ID of the message they were rendered into.
type Store[T any] interface {
	Put(ctx context.Context, messageID string, c *Cursor[T]) error
	Get(ctx context.Context, messageID string) (*Cursor[T], error)
	Delete(ctx context.Context, messageID string) error
}

type memoryEntry[T any] struct {
	cursor  *Cursor[T]
	expires time.Time
}

// MemoryStore is an in-process Store whose entries expire ttl after their
// last Put. Expired entries are invisible to Get and removed by Sweep.
type MemoryStore[T any] struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	ttl     time.Duration
	entries map[string]memoryEntry[T]
}

func NewMemoryStore[T any](clock clockwork.Clock, ttl time.Duration) *MemoryStore[T] {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryStore[T]{
		clock:   clock,
		ttl:     ttl,
		entries: make(map[string]memoryEntry[T]),
	}
}

func (s *MemoryStore[T]) Put(_ context.Context, messageID string, c *Cursor[T]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[messageID] = memoryEntry[T]{cursor: c, expires: s.clock.Now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore[T]) Get(_ context.Context, messageID string) (*Cursor[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[messageID]
	if !ok || s.expired(e) {
		return nil, ErrNotFound
	}
	return e.cursor, nil
}

func (s *MemoryStore[T]) Delete(_ context.Context, messageID string) error {
	s.mu.Lock()
	delete(s.entries, messageID)
	s.mu.Unlock()
	return nil
}

// Sweep drops expired cursors and returns how many were removed.
func (s *MemoryStore[T]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryStore[T]) expired(e memoryEntry[T]) bool {
	return s.ttl > 0 && !s.clock.Now().Before(e.expires)
}
