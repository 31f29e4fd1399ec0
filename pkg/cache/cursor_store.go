package cache

import (
	"context"
	"errors"
	"time"

	"baitbot/pkg/pagination"
)

// CursorStore keeps pagination cursors in Redis so page buttons keep working
// across restarts. Entries expire ttl after the last page change.
type CursorStore[T any] struct {
	cache *Cache
	kind  string
	ttl   time.Duration
}

func NewCursorStore[T any](c *Cache, kind string, ttl time.Duration) *CursorStore[T] {
	if ttl <= 0 {
		ttl = CursorTTL
	}
	return &CursorStore[T]{cache: c, kind: kind, ttl: ttl}
}

func (s *CursorStore[T]) Put(ctx context.Context, messageID string, c *pagination.Cursor[T]) error {
	return s.cache.SetJSON(ctx, s.cache.Key("cursor", s.kind, messageID), c, s.ttl)
}

func (s *CursorStore[T]) Get(ctx context.Context, messageID string) (*pagination.Cursor[T], error) {
	var c pagination.Cursor[T]
	err := s.cache.GetJSON(ctx, s.cache.Key("cursor", s.kind, messageID), &c)
	if errors.Is(err, ErrMiss) {
		return nil, pagination.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CursorStore[T]) Delete(ctx context.Context, messageID string) error {
	return s.cache.Delete(ctx, s.cache.Key("cursor", s.kind, messageID))
}
