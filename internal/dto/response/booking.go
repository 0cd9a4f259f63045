package response

import (
	"time"

	"club-booking/internal/data/entity"
)

type BookingResponse struct {
	ID            int64              `json:"id"`
	Reference     string             `json:"reference"`
	PlayDate      string             `json:"play_date"`
	Session       int                `json:"session"`
	RinkCount     int                `json:"rink_count"`
	Kind          entity.BookingKind `json:"kind"`
	Venue         *entity.Venue      `json:"venue,omitempty"`
	OrganizerID   *int64             `json:"organizer_id,omitempty"`
	OrganizerName *string            `json:"organizer_name,omitempty"`
	SeriesKey     *string            `json:"series_key,omitempty"`
	SeriesLabel   *string            `json:"series_label,omitempty"`
	EventType     *string            `json:"event_type,omitempty"`
	EventFormat   *string            `json:"event_format,omitempty"`
	EventGender   *string            `json:"event_gender,omitempty"`
	PoolEnabled   bool               `json:"pool_enabled"`
	CreatedAt     time.Time          `json:"created_at"`
}

type OrganizerResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

type PoolResolutionResponse struct {
	Kind entity.PoolResolutionKind `json:"kind"`
	Pool *PoolResponse             `json:"pool,omitempty"`
}

type BookingDetailResponse struct {
	BookingResponse
	IsPrimary bool                    `json:"is_primary"`
	Organizer *OrganizerResponse      `json:"organizer,omitempty"`
	Pool      *PoolResolutionResponse `json:"pool,omitempty"`
	Teams     []TeamResponse          `json:"teams,omitempty"`
	Players   []PlayerResponse        `json:"players,omitempty"`
}

type CapacityResponse struct {
	PlayDate       string `json:"play_date"`
	Session        int    `json:"session"`
	RequestedRinks int    `json:"requested_rinks"`
	AvailableRinks int    `json:"available_rinks"`
	TotalRinks     int    `json:"total_rinks"`
	OK             bool   `json:"ok"`
}

// Helper converters
func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:            booking.ID,
		Reference:     booking.Reference,
		PlayDate:      booking.PlayDate.Format(time.DateOnly),
		Session:       booking.Session,
		RinkCount:     booking.RinkCount,
		Kind:          booking.Kind,
		Venue:         booking.Venue,
		OrganizerID:   booking.OrganizerID,
		OrganizerName: booking.OrganizerName,
		SeriesKey:     booking.SeriesKey,
		SeriesLabel:   booking.SeriesLabel,
		EventType:     booking.EventType,
		EventFormat:   booking.EventFormat,
		EventGender:   booking.EventGender,
		PoolEnabled:   booking.PoolEnabled,
		CreatedAt:     booking.CreatedAt,
	}
}

func OrganizerToResponse(organizer *entity.Organizer) *OrganizerResponse {
	if organizer == nil {
		return nil
	}
	return &OrganizerResponse{
		ID:   organizer.ID,
		Name: organizer.Name,
	}
}

func PoolResolutionToResponse(resolution *entity.PoolResolution) *PoolResolutionResponse {
	if resolution == nil {
		return nil
	}
	resp := &PoolResolutionResponse{Kind: resolution.Kind}
	if resolution.Pool != nil {
		pool := PoolToResponse(resolution.Pool)
		resp.Pool = &pool
	}
	return resp
}

func CapacityToResponse(check *entity.CapacityCheck, playDate time.Time, session int) CapacityResponse {
	return CapacityResponse{
		PlayDate:       playDate.Format(time.DateOnly),
		Session:        session,
		RequestedRinks: check.RequestedRinks,
		AvailableRinks: check.AvailableRinks,
		TotalRinks:     check.TotalRinks,
		OK:             check.OK,
	}
}
