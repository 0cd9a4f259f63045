package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrBookingNotFound     = errors.New("booking not found")
	ErrPoolNotFound        = errors.New("pool not found")
	ErrTeamNotFound        = errors.New("team not found")
	ErrRosterEntryNotFound = errors.New("roster entry not found")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrSeriesNotFound      = errors.New("series not found")

	ErrCapacityExceeded  = errors.New("not enough rinks available")
	ErrInvalidSession    = errors.New("session is not part of the playing day")
	ErrAlreadyRegistered = errors.New("member already registered in pool")
	ErrNotRegistered     = errors.New("member has no active registration in pool")
	ErrPoolClosed        = errors.New("pool is closed")
	ErrPoolFull          = errors.New("pool is full")
	ErrPoolExists        = errors.New("booking already has a pool")
	ErrAlreadyInvited    = errors.New("member already invited to booking")
	ErrInvalidTransition = errors.New("response already recorded")
	ErrValidation        = errors.New("validation failed")
)

// CapacityError reports a rejected rink request together with what was left
// so callers can tell members how many rinks remain.
type CapacityError struct {
	Requested int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("requested %d rinks, only %d available", e.Requested, e.Available)
}

// Is makes errors.Is(err, ErrCapacityExceeded) match a CapacityError.
func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}
