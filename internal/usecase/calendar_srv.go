package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"club-booking/internal/data/entity"
	"club-booking/internal/data/repository"
	"club-booking/internal/dto/response"
	"club-booking/pkg/utils"

	"go.uber.org/zap"
)

// usage reports are bounded to keep the per-day expansion small
const maxUsageRangeDays = 92

// CalendarService is the read side: day views for the booking sheet and
// flat usage breakdowns over a date range. Nothing here mutates state.
type CalendarService interface {
	DayView(ctx context.Context, date string) (*response.CalendarDayResponse, error)
	UsageReport(ctx context.Context, from, to string) ([]response.SessionUsageResponse, error)
}

type calendarService struct {
	repo *repository.Repository
	club utils.ClubConfig
	log  *zap.Logger
}

func NewCalendarService(repo *repository.Repository, club utils.ClubConfig, log *zap.Logger) CalendarService {
	return &calendarService{
		repo: repo,
		club: club,
		log:  log.With(zap.String("service", "calendar")),
	}
}

// DayView returns every session of one day with its bookings and remaining
// rinks. Away fixtures are listed separately and never count against the
// rink total.
func (s *calendarService) DayView(ctx context.Context, date string) (*response.CalendarDayResponse, error) {
	playDate, err := utils.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %s: %w", date, err)
	}

	bookings, err := s.repo.Booking.FindByDateRange(ctx, playDate, playDate)
	if err != nil {
		s.log.Error("Failed to load day view", zap.Error(err), zap.String("date", date))
		return nil, fmt.Errorf("load day view for %s: %w", date, err)
	}

	day := &entity.CalendarDay{PlayDate: playDate}
	for _, sessionNum := range s.daySessions(bookings) {
		session := &entity.CalendarSession{
			Session:    sessionNum,
			TotalRinks: s.club.TotalRinks,
		}
		for _, booking := range bookings {
			if booking.Session != sessionNum {
				continue
			}
			if booking.IsAway() {
				session.AwayBookings = append(session.AwayBookings, booking)
				continue
			}
			session.Bookings = append(session.Bookings, booking)
			session.RinksUsed += booking.RinkCount
		}
		session.RinksAvailable = session.TotalRinks - session.RinksUsed
		day.Sessions = append(day.Sessions, session)
	}

	resp := response.CalendarDayToResponse(day)
	return &resp, nil
}

// UsageReport returns one row per date and session over a range, zero rows
// included, so a booking sheet can be rendered without joining gaps back
// in.
func (s *calendarService) UsageReport(ctx context.Context, from, to string) ([]response.SessionUsageResponse, error) {
	fromDate, err := utils.ParseDate(from)
	if err != nil {
		return nil, fmt.Errorf("invalid from date %s: %w", from, err)
	}
	toDate, err := utils.ParseDate(to)
	if err != nil {
		return nil, fmt.Errorf("invalid to date %s: %w", to, err)
	}
	if toDate.Before(fromDate) {
		return nil, fmt.Errorf("%w: range ends before it starts", ErrValidation)
	}
	if int(toDate.Sub(fromDate).Hours()/24)+1 > maxUsageRangeDays {
		return nil, fmt.Errorf("%w: range longer than %d days", ErrValidation, maxUsageRangeDays)
	}

	usage, err := s.repo.Booking.UsageByDateRange(ctx, fromDate, toDate)
	if err != nil {
		s.log.Error("Failed to load usage report",
			zap.Error(err),
			zap.String("from", from),
			zap.String("to", to),
		)
		return nil, fmt.Errorf("load usage between %s and %s: %w", from, to, err)
	}

	used := make(map[string]map[int]int, len(usage))
	for _, u := range usage {
		key := u.PlayDate.Format(time.DateOnly)
		if used[key] == nil {
			used[key] = make(map[int]int)
		}
		used[key][u.Session] = u.RinksUsed
	}

	var report []response.SessionUsageResponse
	for d := fromDate; !d.After(toDate); d = d.AddDate(0, 0, 1) {
		key := d.Format(time.DateOnly)
		for _, sessionNum := range s.club.Sessions {
			row := response.SessionUsageResponse{
				PlayDate:   key,
				Session:    sessionNum,
				TotalRinks: s.club.TotalRinks,
				RinksUsed:  used[key][sessionNum],
			}
			row.RinksAvailable = row.TotalRinks - row.RinksUsed
			report = append(report, row)
		}
	}

	s.log.Info("Usage report built",
		zap.String("from", from),
		zap.String("to", to),
		zap.Int("rows", len(report)),
	)

	return report, nil
}

// daySessions merges the configured sessions with any session numbers found
// on the day's bookings, so slots booked under a retired session still
// show.
func (s *calendarService) daySessions(bookings []*entity.Booking) []int {
	sessions := append([]int(nil), s.club.Sessions...)
	for _, booking := range bookings {
		if !s.club.HasSession(booking.Session) && !containsInt(sessions, booking.Session) {
			sessions = append(sessions, booking.Session)
		}
	}
	sort.Ints(sessions)
	return sessions
}

func containsInt(values []int, v int) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
