package model

import "fmt"

// TargetState is the position of a target in its attempt lifecycle.
//
//	pending -> attempting -> passed
//	                      -> retrying -> attempting
//	                      -> failed
type TargetState string

const (
	StatePending    TargetState = "pending"
	StateAttempting TargetState = "attempting"
	StateRetrying   TargetState = "retrying"
	StatePassed     TargetState = "passed"
	StateFailed     TargetState = "failed"
)

// IsTerminal reports whether no further attempts follow this state.
func (s TargetState) IsTerminal() bool {
	return s == StatePassed || s == StateFailed
}

// CanTransition reports whether moving from s to next is allowed.
func (s TargetState) CanTransition(next TargetState) bool {
	switch s {
	case StatePending:
		return next == StateAttempting
	case StateAttempting:
		return next == StatePassed || next == StateRetrying || next == StateFailed
	case StateRetrying:
		return next == StateAttempting
	default:
		return false
	}
}

// Transition validates and returns the next state.
func (s TargetState) Transition(next TargetState) (TargetState, error) {
	if !s.CanTransition(next) {
		return s, fmt.Errorf("disallowed transition: %s -> %s", s, next)
	}
	return next, nil
}
