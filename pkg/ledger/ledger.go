// Package ledger holds bait scores, reason logs and debait cooldown records
// for every user, and flushes the whole state to a Persister after each
// mutation.
//
// A Ledger is not safe for concurrent use. Callers serialise access.
package ledger

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// DefaultMaxReasons is how many reasons are kept per user.
const DefaultMaxReasons = 10

// Persister writes a full snapshot of the ledger.
type Persister interface {
	Save(doc *Document) error
}

// Entry is one leaderboard row.
type Entry struct {
	UserID string `json:"user_id"`
	Score  int    `json:"score"`
}

type Ledger struct {
	scores     map[string]int
	reasons    map[string][]string
	debaits    map[string]time.Time
	maxReasons int
	persister  Persister
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithMaxReasons overrides how many reasons are retained per user.
func WithMaxReasons(n int) Option {
	return func(l *Ledger) {
		if n > 0 {
			l.maxReasons = n
		}
	}
}

// New builds a ledger from a loaded document. A nil document or nil maps are
// treated as empty. p may be nil, in which case mutations are memory-only.
func New(doc *Document, p Persister, opts ...Option) *Ledger {
	l := &Ledger{
		scores:     make(map[string]int),
		reasons:    make(map[string][]string),
		debaits:    make(map[string]time.Time),
		maxReasons: DefaultMaxReasons,
		persister:  p,
	}
	for _, opt := range opts {
		opt(l)
	}

	if doc == nil {
		return l
	}
	for id, pts := range doc.Scores {
		l.scores[id] = max(pts, 0)
	}
	for id, rs := range doc.Baits {
		if len(rs) == 0 {
			continue
		}
		l.reasons[id] = l.bounded(slices.Clone(rs))
	}
	for id, ts := range doc.DebaitCooldowns {
		l.debaits[id] = fromEpochSeconds(ts)
	}
	return l
}

// IncrementScore adds one point to target and, when reason is not blank,
// appends it to target's reason log. The new score is returned even when the
// flush fails.
func (l *Ledger) IncrementScore(target, reason string) (int, error) {
	l.scores[target]++

	if r := strings.TrimSpace(reason); r != "" {
		l.reasons[target] = l.bounded(append(l.reasons[target], r))
	}

	return l.scores[target], l.flush("increment")
}

// DecrementScore removes one point from target, never going below zero.
func (l *Ledger) DecrementScore(target string) (int, error) {
	l.scores[target] = max(l.scores[target]-1, 0)
	return l.scores[target], l.flush("decrement")
}

// Score returns target's points; unknown users have zero.
func (l *Ledger) Score(target string) int {
	return l.scores[target]
}

// Reasons returns target's recorded reasons, oldest first.
func (l *Ledger) Reasons(target string) []string {
	return slices.Clone(l.reasons[target])
}

// Len reports how many users have a score entry.
func (l *Ledger) Len() int {
	return len(l.scores)
}

// Leaderboard returns every score entry ordered by score descending. Equal
// scores are ordered by user ID ascending.
func (l *Ledger) Leaderboard() []Entry {
	entries := make([]Entry, 0, len(l.scores))
	for id, pts := range l.scores {
		entries = append(entries, Entry{UserID: id, Score: pts})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return compareIDs(a.UserID, b.UserID)
	})
	return entries
}

// TopScorer returns the first leaderboard entry, or false for an empty ledger.
func (l *Ledger) TopScorer() (Entry, bool) {
	board := l.Leaderboard()
	if len(board) == 0 {
		return Entry{}, false
	}
	return board[0], true
}

// ValidateDebait rejects an actor targeting themself.
func ValidateDebait(actor, target string) error {
	if actor == target {
		return ErrSelfTarget
	}
	return nil
}

// DebaitCooldowns exposes the persisted debait records as a cooldown store.
// Records reach the persister with the next mutation's flush.
func (l *Ledger) DebaitCooldowns() *CooldownRecords {
	return &CooldownRecords{ledger: l}
}

// Snapshot returns a deep copy of the ledger in its persisted shape.
func (l *Ledger) Snapshot() *Document {
	doc := NewDocument()
	for id, pts := range l.scores {
		doc.Scores[id] = pts
	}
	for id, rs := range l.reasons {
		doc.Baits[id] = slices.Clone(rs)
	}
	for id, ts := range l.debaits {
		doc.DebaitCooldowns[id] = epochSeconds(ts)
	}
	return doc
}

func (l *Ledger) bounded(rs []string) []string {
	if over := len(rs) - l.maxReasons; over > 0 {
		return slices.Clone(rs[over:])
	}
	return rs
}

func (l *Ledger) flush(op string) error {
	if l.persister == nil {
		return nil
	}
	if err := l.persister.Save(l.Snapshot()); err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}

// compareIDs orders Discord snowflakes numerically. Non-numeric IDs fall back
// to plain string order.
func compareIDs(a, b string) int {
	if isDigits(a) && isDigits(b) {
		ta, tb := strings.TrimLeft(a, "0"), strings.TrimLeft(b, "0")
		if c := cmp.Compare(len(ta), len(tb)); c != 0 {
			return c
		}
		if c := strings.Compare(ta, tb); c != 0 {
			return c
		}
	}
	return strings.Compare(a, b)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CooldownRecords adapts the ledger's debait timestamps to the cooldown
// package's record store.
type CooldownRecords struct {
	ledger *Ledger
}

// LastUsed returns when actor last debaited.
func (c *CooldownRecords) LastUsed(actor string) (time.Time, bool) {
	ts, ok := c.ledger.debaits[actor]
	return ts, ok
}

// Touch records a debait by actor at the given time. It does not flush: the
// record is written together with the decrement that follows it, so a failed
// save never leaves one without the other.
func (c *CooldownRecords) Touch(actor string, at time.Time) error {
	c.ledger.debaits[actor] = at
	return nil
}
