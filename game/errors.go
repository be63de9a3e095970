package game

import (
	"errors"
	"fmt"
)

var (
	ErrRoundOver     = errors.New("round is over")
	ErrNotConserved  = errors.New("card count is not conserved")
	ErrPoolExhausted = errors.New("hidden pool has no card to deal")
	ErrOpeningCard   = errors.New("wild draw four cannot open a round")
)

// IllegalActionError is returned when an action is not allowed in a state.
// It is fatal to a search: legal inputs never produce it.
type IllegalActionError struct {
	Seat   int
	Action Action
	Reason string
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("seat %d cannot %s: %s", e.Seat, e.Action, e.Reason)
}

func illegal(seat int, action Action, format string, args ...any) error {
	return &IllegalActionError{Seat: seat, Action: action, Reason: fmt.Sprintf(format, args...)}
}

func IsIllegalAction(err error) bool {
	var target *IllegalActionError
	return errors.As(err, &target)
}
