package entity

import (
	"time"
)

// CapacityCheck is the result of asking whether a number of rinks can still
// be booked for a date and session. AvailableRinks is what remains before
// the requested amount is applied.
type CapacityCheck struct {
	OK             bool
	RequestedRinks int
	AvailableRinks int
	TotalRinks     int
}

// SessionUsage is the committed rink total for one date and session,
// away fixtures excluded.
type SessionUsage struct {
	PlayDate  time.Time
	Session   int
	RinksUsed int
}

type CalendarSession struct {
	Session        int
	RinksUsed      int
	RinksAvailable int
	TotalRinks     int
	Bookings       []*Booking
	AwayBookings   []*Booking
}

type CalendarDay struct {
	PlayDate time.Time
	Sessions []*CalendarSession
}
