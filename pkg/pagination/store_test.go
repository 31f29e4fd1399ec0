package pagination

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[string](clockwork.NewFakeClock(), time.Hour)

	_, err := s.Get(ctx, "msg1")
	assert.ErrorIs(t, err, ErrNotFound)

	c := New(numbered(12), 10)
	require.NoError(t, s.Put(ctx, "msg1", c))

	got, err := s.Get(ctx, "msg1")
	require.NoError(t, err)
	got.Advance(1)

	again, err := s.Get(ctx, "msg1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Index(), "cursor state is shared by identity")

	require.NoError(t, s.Delete(ctx, "msg1"))
	_, err = s.Get(ctx, "msg1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	s := NewMemoryStore[int](clock, 10*time.Minute)

	require.NoError(t, s.Put(ctx, "old", New([]int{1, 2, 3}, 10)))
	clock.Advance(5 * time.Minute)
	require.NoError(t, s.Put(ctx, "new", New([]int{4}, 10)))

	clock.Advance(5 * time.Minute)
	_, err := s.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(ctx, "new")
	assert.NoError(t, err)

	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStore_ZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	s := NewMemoryStore[int](clock, 0)

	require.NoError(t, s.Put(ctx, "m", New([]int{1}, 10)))
	clock.Advance(1000 * time.Hour)

	_, err := s.Get(ctx, "m")
	assert.NoError(t, err)
	assert.Zero(t, s.Sweep())
}
