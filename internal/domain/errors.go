package domain

import "errors"

var (
	// ErrDuplicateGoal is returned when a goal already exists for the
	// (user, category) pair.
	ErrDuplicateGoal = errors.New("a goal already exists for this category")

	// ErrGoalNotFound is returned when a goal id does not exist.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrPositionNotFound is returned when a position id does not exist.
	ErrPositionNotFound = errors.New("position not found")

	// ErrAccountNotFound is returned when an account id does not exist.
	ErrAccountNotFound = errors.New("account not found")
)
