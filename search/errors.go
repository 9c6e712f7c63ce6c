package search

import (
	"errors"
	"fmt"
)

// ErrNoPendingCandidate is returned by RecordFeedback when no candidate is
// awaiting an answer, either because ChooseCandidate was never called or
// because its answer was already recorded.
var ErrNoPendingCandidate = errors.New("no pending candidate: call ChooseCandidate before RecordFeedback")

// InvariantError reports a broken internal invariant. It is raised with
// panic, never returned: it signals a logic fault, not bad input.
type InvariantError struct {
	Op     string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: invariant violated: %s", e.Op, e.Detail)
}

func invariant(op, format string, args ...any) {
	panic(&InvariantError{Op: op, Detail: fmt.Sprintf(format, args...)})
}
