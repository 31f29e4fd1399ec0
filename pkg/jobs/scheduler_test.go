package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRejectsBadSpec(t *testing.T) {
	s := NewScheduler()

	err := s.Add("status", "every now and then", func() {})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "schedule status")
	assert.Zero(t, s.Len())
}

func TestAddReplacesSameName(t *testing.T) {
	s := NewScheduler()

	require.NoError(t, s.Add("status", "@every 15m", func() {}))
	require.NoError(t, s.Add("sweep", "@every 10m", func() {}))
	require.NoError(t, s.Add("status", "@every 5m", func() {}))

	assert.Equal(t, 2, s.Len())
}

func TestWrapRecoversPanics(t *testing.T) {
	ran := false
	assert.NotPanics(t, wrap("boom", func() {
		ran = true
		panic("boom")
	}))
	assert.True(t, ran)
}

func TestStartStop(t *testing.T) {
	s := NewScheduler()
	require.NoError(t, s.Add("noop", "@every 1h", func() {}))

	s.Start()
	s.Stop()
}
