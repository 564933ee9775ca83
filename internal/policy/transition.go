package policy

import "job-portal/internal/domain/application"

type TransitionPolicy interface {
	Allow(from, to application.Status) bool
}

// Permissive lets any status overwrite any other.
type Permissive struct{}

func (Permissive) Allow(_, _ application.Status) bool {
	return true
}

// Strict only leaves PENDING, apart from idempotent same-state writes.
type Strict struct{}

func (Strict) Allow(from, to application.Status) bool {
	if from == to {
		return true
	}
	return !from.IsTerminal()
}

func NewTransitionPolicy(strict bool) TransitionPolicy {
	if strict {
		return Strict{}
	}
	return Permissive{}
}
