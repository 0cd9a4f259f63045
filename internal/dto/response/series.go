package response

type SeriesResponse struct {
	SeriesKey        string                  `json:"series_key"`
	SeriesLabel      string                  `json:"series_label,omitempty"`
	PrimaryBookingID int64                   `json:"primary_booking_id"`
	Organizer        *OrganizerResponse      `json:"organizer,omitempty"`
	Pool             *PoolResolutionResponse `json:"pool,omitempty"`
	Bookings         []BookingResponse       `json:"bookings"`
}
