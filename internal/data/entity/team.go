package entity

type Team struct {
	Base
	BookingID int64  `db:"booking_id"`
	Name      string `db:"name"`
}
