package entity

import (
	"time"
)

type BookingKind string

const (
	BookingKindEvent  BookingKind = "event"
	BookingKindRollup BookingKind = "rollup"
)

type Venue string

const (
	VenueHome    Venue = "home"
	VenueAway    Venue = "away"
	VenueNeutral Venue = "neutral"
)

type Booking struct {
	Base
	Reference     string      `db:"reference"`
	PlayDate      time.Time   `db:"play_date"`
	Session       int         `db:"session"`
	RinkCount     int         `db:"rink_count"`
	Kind          BookingKind `db:"kind"`
	Venue         *Venue      `db:"venue"`
	OrganizerID   *int64      `db:"organizer_id"`
	OrganizerName *string     `db:"organizer_name"`
	SeriesKey     *string     `db:"series_key"`
	SeriesLabel   *string     `db:"series_label"`
	EventType     *string     `db:"event_type"`
	EventFormat   *string     `db:"event_format"`
	EventGender   *string     `db:"event_gender"`
	PoolEnabled   bool        `db:"pool_enabled"`
}

type Organizer struct {
	ID   int64
	Name string
}

// IsAway reports whether the booking is played away from the club.
// Away bookings never occupy home rinks.
func (b *Booking) IsAway() bool {
	return b.Venue != nil && *b.Venue == VenueAway
}

// InSeries reports whether the booking belongs to a series.
func (b *Booking) InSeries() bool {
	return b.SeriesKey != nil && *b.SeriesKey != ""
}

// Organizer returns the booking's own organizer, or nil when unset.
func (b *Booking) Organizer() *Organizer {
	if b.OrganizerID == nil {
		return nil
	}
	org := Organizer{ID: *b.OrganizerID}
	if b.OrganizerName != nil {
		org.Name = *b.OrganizerName
	}
	return &org
}
