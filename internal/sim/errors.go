package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState is returned when an operation is not allowed in the current run state.
	ErrInvalidState = errors.New("invalid run state")
	// ErrNoActivity is returned when ending a run whose log is still empty.
	ErrNoActivity = errors.New("event log is empty")
	// ErrToolNotAllowed is returned for tools outside the mission's allowed set.
	ErrToolNotAllowed = errors.New("tool not allowed for mission")
	// ErrNotEnded is returned when a report is requested before the run ended.
	ErrNotEnded = errors.New("run has not ended")
)

func invalidState(op string, st RunState) error {
	return fmt.Errorf("%s while %s: %w", op, st, ErrInvalidState)
}
