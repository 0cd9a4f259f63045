package seed

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"club-booking/internal/data/entity"
	"club-booking/internal/dto/request"
	"club-booking/internal/usecase"
	"club-booking/pkg/utils"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"
)

// Seeder fills the calendar with generated demo bookings. Everything goes
// through the service layer, so seeded data obeys the same capacity and
// pool rules as real traffic. The same seed produces the same calendar.
type Seeder struct {
	service *usecase.Service
	club    utils.ClubConfig
	faker   *gofakeit.Faker
	log     *zap.Logger
}

// Summary counts what one run created.
type Summary struct {
	Bookings      int
	Registrations int
	Teams         int
	Players       int
}

var seedActor = entity.Actor{ID: 1, Name: "clubctl seed"}

var rinkPositions = []string{"lead", "second", "third", "skip"}

func New(service *usecase.Service, club utils.ClubConfig, seed int64, log *zap.Logger) *Seeder {
	return &Seeder{
		service: service,
		club:    club,
		faker:   gofakeit.New(uint64(seed)),
		log:     log.With(zap.String("component", "seed")),
	}
}

// Run creates one to three bookings per day, starting tomorrow. Slots that
// the capacity check refuses are skipped, not forced.
func (s *Seeder) Run(ctx context.Context, days int) (*Summary, error) {
	if days < 1 {
		return nil, fmt.Errorf("days must be at least 1, got %d", days)
	}
	if len(s.club.Sessions) == 0 {
		return nil, errors.New("no sessions configured")
	}

	summary := &Summary{}
	start := time.Now().AddDate(0, 0, 1)

	for d := 0; d < days; d++ {
		playDate := start.AddDate(0, 0, d)
		count := s.faker.Number(1, 3)
		for i := 0; i < count; i++ {
			if err := s.createBooking(ctx, playDate, summary); err != nil {
				return summary, err
			}
		}
	}

	s.log.Info("Seeding finished",
		zap.Int("days", days),
		zap.Int("bookings", summary.Bookings),
		zap.Int("registrations", summary.Registrations),
		zap.Int("teams", summary.Teams),
		zap.Int("players", summary.Players),
	)
	return summary, nil
}

func (s *Seeder) createBooking(ctx context.Context, playDate time.Time, summary *Summary) error {
	req := &request.CreateBookingRequest{
		PlayDate:  playDate.Format(time.DateOnly),
		Session:   s.club.Sessions[s.faker.Number(0, len(s.club.Sessions)-1)],
		RinkCount: s.faker.Number(1, 3),
		Kind:      "event",
	}

	if s.faker.Number(1, 10) <= 2 {
		req.Kind = "rollup"
		req.RinkCount = 1
	}

	if s.faker.Number(1, 10) <= 2 {
		venue := "away"
		req.Venue = &venue
	}

	if s.faker.Number(1, 10) <= 7 {
		organizerID := int64(s.faker.Number(2, 400))
		organizerName := s.faker.Name()
		req.OrganizerID = &organizerID
		req.OrganizerName = &organizerName
	}

	if req.Kind == "event" {
		eventType := s.faker.RandomString(s.eventTypes())
		req.EventType = &eventType
		req.PoolEnabled = eventType != "gala"

		if eventType == "league" {
			weekday := playDate.Weekday().String()
			key := strings.ToLower(weekday) + "-league"
			label := weekday + " League"
			req.SeriesKey = &key
			req.SeriesLabel = &label
		}

		if req.PoolEnabled {
			closeDate := playDate.AddDate(0, 0, -2).Format(time.DateOnly)
			req.PoolAutoCloseDate = &closeDate
			if s.faker.Bool() {
				maxPlayers := s.faker.Number(12, 20)
				req.PoolMaxPlayers = &maxPlayers
			}
		}
	}

	booking, err := s.service.Booking.CreateBooking(ctx, seedActor, req)
	if err != nil {
		if errors.Is(err, usecase.ErrCapacityExceeded) {
			s.log.Debug("Slot full, skipping",
				zap.String("play_date", req.PlayDate),
				zap.Int("session", req.Session),
			)
			return nil
		}
		return fmt.Errorf("create booking on %s: %w", req.PlayDate, err)
	}
	summary.Bookings++

	if req.Kind == "rollup" {
		return s.invitePlayers(ctx, booking.ID, summary)
	}

	if err := s.registerMembers(ctx, booking.ID, summary); err != nil {
		return err
	}

	if s.faker.Bool() {
		return s.createTeam(ctx, booking.ID, summary)
	}
	return nil
}

// registerMembers signs a handful of members into whatever pool the booking
// resolves to. Bookings without one, such as series members sharing the
// primary's pool they are already counted under, are left alone.
func (s *Seeder) registerMembers(ctx context.Context, bookingID int64, summary *Summary) error {
	count := s.faker.Number(3, 9)
	for i := 0; i < count; i++ {
		member := entity.Actor{
			ID:   int64(s.faker.Number(2, 300)),
			Name: s.faker.Name(),
		}
		_, err := s.service.Pool.Register(ctx, member, bookingID)
		switch {
		case err == nil:
			summary.Registrations++
		case errors.Is(err, usecase.ErrPoolNotFound), errors.Is(err, usecase.ErrPoolClosed):
			return nil
		case errors.Is(err, usecase.ErrAlreadyRegistered):
			continue
		case errors.Is(err, usecase.ErrPoolFull):
			return nil
		default:
			return fmt.Errorf("register member in booking %d: %w", bookingID, err)
		}
	}
	return nil
}

func (s *Seeder) createTeam(ctx context.Context, bookingID int64, summary *Summary) error {
	team, err := s.service.Team.CreateTeam(ctx, seedActor, &request.CreateTeamRequest{
		BookingID: bookingID,
		Name:      fmt.Sprintf("Rink %c", 'A'+rune(s.faker.Number(0, 3))),
	})
	if err != nil {
		return fmt.Errorf("create team for booking %d: %w", bookingID, err)
	}
	summary.Teams++

	for _, position := range rinkPositions {
		entry, err := s.service.Team.AddMember(ctx, seedActor, team.ID, &request.AddTeamMemberRequest{
			MemberID:   int64(s.faker.Number(2, 300)),
			MemberName: s.faker.Name(),
			Position:   position,
		})
		if err != nil {
			return fmt.Errorf("add member to team %d: %w", team.ID, err)
		}

		if s.faker.Number(1, 10) <= 7 {
			decision := s.faker.RandomString([]string{"available", "available", "unavailable"})
			if _, err := s.service.Team.Respond(ctx, seedActor, entry.ID, &request.RespondRequest{Decision: decision}); err != nil {
				return fmt.Errorf("respond for entry %d: %w", entry.ID, err)
			}
		}
	}
	return nil
}

func (s *Seeder) invitePlayers(ctx context.Context, bookingID int64, summary *Summary) error {
	count := s.faker.Number(3, 7)
	for i := 0; i < count; i++ {
		player, err := s.service.Rollup.InvitePlayer(ctx, seedActor, bookingID, &request.InvitePlayerRequest{
			MemberID:   int64(s.faker.Number(2, 300)),
			MemberName: s.faker.Name(),
		})
		if err != nil {
			if errors.Is(err, usecase.ErrAlreadyInvited) {
				continue
			}
			return fmt.Errorf("invite player to booking %d: %w", bookingID, err)
		}
		summary.Players++

		if s.faker.Bool() {
			decision := s.faker.RandomString([]string{"confirmed", "confirmed", "declined"})
			if _, err := s.service.Rollup.RespondToInvite(ctx, seedActor, player.ID, &request.PlayerRespondRequest{Decision: decision}); err != nil {
				return fmt.Errorf("respond for player %d: %w", player.ID, err)
			}
		}
	}
	return nil
}

// eventTypes lists the configured event types in a stable order so a fixed
// seed always draws the same sequence.
func (s *Seeder) eventTypes() []string {
	if len(s.club.PoolStrategies) == 0 {
		return []string{"friendly"}
	}
	types := make([]string, 0, len(s.club.PoolStrategies))
	for eventType := range s.club.PoolStrategies {
		types = append(types, eventType)
	}
	sort.Strings(types)
	return types
}
