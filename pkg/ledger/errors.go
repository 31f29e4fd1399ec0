package ledger

import (
	"errors"
	"fmt"
)

// ErrSelfTarget is returned when an actor tries to debait themself.
var ErrSelfTarget = errors.New("you cannot debait yourself")

// PersistenceError reports a failed flush. The in-memory ledger has already
// been mutated when this is returned; the next successful flush writes it out.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("ledger %s: flush failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
