package shared

import "fmt"

// TransitionTable lists, per status, the statuses an entity may move to
type TransitionTable[S ~string] map[S][]S

// Allowed returns the statuses reachable from the given one
func (t TransitionTable[S]) Allowed(from S) []S {
	next := t[from]
	out := make([]S, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether from -> to is listed
func (t TransitionTable[S]) CanTransition(from, to S) bool {
	for _, s := range t[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Validate returns an INVALID_TRANSITION error for unlisted moves
func (t TransitionTable[S]) Validate(from, to S) error {
	if from == to {
		return NewFieldError("INVALID_TRANSITION", "status", fmt.Sprintf("Status is already %s", to))
	}
	if !t.CanTransition(from, to) {
		return NewFieldError("INVALID_TRANSITION", "status",
			fmt.Sprintf("Cannot change status from %s to %s", from, to))
	}
	return nil
}

// Known reports whether the status appears in the table
func (t TransitionTable[S]) Known(s S) bool {
	_, ok := t[s]
	return ok
}
