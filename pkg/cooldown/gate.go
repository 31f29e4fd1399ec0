// Package cooldown rate-limits an action per actor over a fixed window.
package cooldown

import (
	"fmt"
	"sync"
	"time"
)

// Store keeps the last time each actor used the gated action.
type Store interface {
	LastUsed(actor string) (time.Time, bool)
	Touch(actor string, at time.Time) error
}

// Result is the outcome of CheckAndConsume. A rejected attempt is not an
// error: Remaining says how long the actor still has to wait.
type Result struct {
	Allowed   bool
	Remaining time.Duration
}

// RemainingSeconds truncates Remaining to whole seconds.
func (r Result) RemainingSeconds() int {
	return int(r.Remaining / time.Second)
}

// Gate throttles one action. The window applies to the actor regardless of
// who they target.
type Gate struct {
	name   string
	window time.Duration
	store  Store
}

func NewGate(name string, window time.Duration, store Store) *Gate {
	return &Gate{name: name, window: window, store: store}
}

func (g *Gate) Name() string {
	return g.name
}

func (g *Gate) Window() time.Duration {
	return g.window
}

// CheckAndConsume lets the actor through and records now as their last use,
// or reports the remaining wait without touching any state.
func (g *Gate) CheckAndConsume(actor string, now time.Time) (Result, error) {
	if wait := g.Remaining(actor, now); wait > 0 {
		return Result{Allowed: false, Remaining: wait}, nil
	}
	if err := g.store.Touch(actor, now); err != nil {
		return Result{}, fmt.Errorf("%s cooldown: %w", g.name, err)
	}
	return Result{Allowed: true}, nil
}

// Remaining is how long actor must still wait at now. Zero means ready.
func (g *Gate) Remaining(actor string, now time.Time) time.Duration {
	last, ok := g.store.LastUsed(actor)
	if !ok {
		return 0
	}
	return Remaining(last, now, g.window)
}

// Remaining computes the wait left in window after lastUsed, floored at zero.
func Remaining(lastUsed, now time.Time, window time.Duration) time.Duration {
	elapsed := now.Sub(lastUsed)
	if elapsed >= window {
		return 0
	}
	return window - elapsed
}

// MemoryStore is a process-lifetime Store.
type MemoryStore struct {
	mu   sync.RWMutex
	last map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{last: make(map[string]time.Time)}
}

func (m *MemoryStore) LastUsed(actor string) (time.Time, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.last[actor]
	return t, ok
}

func (m *MemoryStore) Touch(actor string, at time.Time) error {
	m.mu.Lock()
	m.last[actor] = at
	m.mu.Unlock()
	return nil
}
