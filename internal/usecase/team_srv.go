package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"club-booking/internal/audit"
	"club-booking/internal/data/entity"
	"club-booking/internal/data/repository"
	"club-booking/internal/dto/request"
	"club-booking/internal/dto/response"
	"club-booking/pkg/database"
	"club-booking/pkg/metrics"
	"club-booking/pkg/utils"

	"go.uber.org/zap"
)

type TeamService interface {
	CreateTeam(ctx context.Context, actor entity.Actor, req *request.CreateTeamRequest) (*response.TeamResponse, error)
	GetTeamByID(ctx context.Context, teamID int64) (*response.TeamResponse, error)
	DeleteTeam(ctx context.Context, actor entity.Actor, teamID int64) error
	AddMember(ctx context.Context, actor entity.Actor, teamID int64, req *request.AddTeamMemberRequest) (*response.TeamMemberResponse, error)
	RemoveMember(ctx context.Context, actor entity.Actor, entryID int64) error
	UpdatePosition(ctx context.Context, actor entity.Actor, entryID int64, req *request.UpdatePositionRequest) (*response.TeamMemberResponse, error)
	Respond(ctx context.Context, actor entity.Actor, entryID int64, req *request.RespondRequest) (*response.TeamMemberResponse, error)
	Substitute(ctx context.Context, actor entity.Actor, entryID int64, req *request.SubstituteRequest) (*response.TeamMemberResponse, error)
	SubstitutionLog(ctx context.Context, teamID int64) ([]response.SubstitutionResponse, error)
}

type teamService struct {
	repo    *repository.Repository
	db      database.PgxIface
	audit   audit.Sink
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewTeamService(
	repo *repository.Repository,
	db database.PgxIface,
	auditSink audit.Sink,
	m *metrics.Metrics,
	log *zap.Logger,
) TeamService {
	return &teamService{
		repo:    repo,
		db:      db,
		audit:   auditSink,
		metrics: m,
		log:     log.With(zap.String("service", "team")),
	}
}

func (s *teamService) CreateTeam(ctx context.Context, actor entity.Actor, req *request.CreateTeamRequest) (*response.TeamResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create team validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	booking, err := s.repo.Booking.FindByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %d: %w", req.BookingID, ErrBookingNotFound)
	}

	team := &entity.Team{
		BookingID: req.BookingID,
		Name:      req.Name,
	}

	if err := s.repo.Team.Create(ctx, team); err != nil {
		s.log.Error("Failed to create team", zap.Error(err), zap.Int64("booking_id", req.BookingID))
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		Operation:  "team.create",
		EntityKind: "team",
		EntityID:   team.ID,
		Actor:      actor,
		Summary:    fmt.Sprintf("%s for booking %s", team.Name, booking.Reference),
	})

	s.log.Info("Team created",
		zap.Int64("team_id", team.ID),
		zap.Int64("booking_id", req.BookingID),
		zap.String("name", team.Name),
	)

	resp := response.TeamToResponse(team, nil)
	return &resp, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, teamID int64) (*response.TeamResponse, error) {
	team, err := s.repo.Team.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, fmt.Errorf("team %d: %w", teamID, ErrTeamNotFound)
	}

	members, err := s.repo.TeamMember.FindByTeamID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	resp := response.TeamToResponse(team, members)
	return &resp, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, actor entity.Actor, teamID int64) error {
	team, err := s.repo.Team.FindByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team == nil {
		return fmt.Errorf("team %d: %w", teamID, ErrTeamNotFound)
	}

	if err := s.repo.Team.Delete(ctx, teamID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("team %d: %w", teamID, ErrTeamNotFound)
		}
		return err
	}

	s.audit.Record(ctx, audit.Entry{
		Operation:  "team.delete",
		EntityKind: "team",
		EntityID:   teamID,
		Actor:      actor,
		Summary:    team.Name,
	})

	return nil
}

// AddMember puts a member on the roster. Every new assignment starts as
// pending and must confirm through Respond.
func (s *teamService) AddMember(ctx context.Context, actor entity.Actor, teamID int64, req *request.AddTeamMemberRequest) (*response.TeamMemberResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add team member validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	team, err := s.repo.Team.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, fmt.Errorf("team %d: %w", teamID, ErrTeamNotFound)
	}

	member := &entity.TeamMember{
		TeamID:       teamID,
		MemberID:     req.MemberID,
		MemberName:   req.MemberName,
		Position:     req.Position,
		Availability: entity.AvailabilityPending,
	}

	if err := s.repo.TeamMember.Create(ctx, member); err != nil {
		s.log.Error("Failed to add team member",
			zap.Error(err),
			zap.Int64("team_id", teamID),
			zap.Int64("member_id", req.MemberID),
		)
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		Operation:  "team.add_member",
		EntityKind: "team_member",
		EntityID:   member.ID,
		Actor:      actor,
		Summary:    fmt.Sprintf("%s on team %s", req.MemberName, team.Name),
	})

	s.log.Info("Team member added",
		zap.Int64("team_id", teamID),
		zap.Int64("entry_id", member.ID),
		zap.Int64("member_id", req.MemberID),
		zap.String("position", req.Position),
	)

	resp := response.TeamMemberToResponse(member)
	return &resp, nil
}

// RemoveMember deletes a roster entry. The team's substitution history is
// untouched: log records name members directly and outlive the entries
// they describe.
func (s *teamService) RemoveMember(ctx context.Context, actor entity.Actor, entryID int64) error {
	entry, err := s.repo.TeamMember.FindByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("roster entry %d: %w", entryID, ErrRosterEntryNotFound)
	}

	if err := s.repo.TeamMember.Delete(ctx, entryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("roster entry %d: %w", entryID, ErrRosterEntryNotFound)
		}
		return err
	}

	s.audit.Record(ctx, audit.Entry{
		Operation:  "team.remove_member",
		EntityKind: "team_member",
		EntityID:   entryID,
		Actor:      actor,
		Summary:    entry.MemberName,
	})

	return nil
}

func (s *teamService) UpdatePosition(ctx context.Context, actor entity.Actor, entryID int64, req *request.UpdatePositionRequest) (*response.TeamMemberResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	entry, err := s.repo.TeamMember.FindByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("roster entry %d: %w", entryID, ErrRosterEntryNotFound)
	}

	before := entry.Position
	entry.Position = req.Position

	if err := s.repo.TeamMember.Update(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("roster entry %d: %w", entryID, ErrRosterEntryNotFound)
		}
		s.log.Error("Failed to update position", zap.Error(err), zap.Int64("entry_id", entryID))
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		Operation:  "team.update_position",
		EntityKind: "team_member",
		EntityID:   entryID,
		Actor:      actor,
		Before:     map[string]any{"position": before},
		After:      map[string]any{"position": req.Position},
	})

	resp := response.TeamMemberToResponse(entry)
	return &resp, nil
}

// Respond records a member's availability decision. Pending is the only
// state that accepts one; both outcomes are terminal for the current
// occupant, and only a substitution returns the slot to pending. The guard
// and the write share a serializable transaction so two racing responses
// cannot both land.
func (s *teamService) Respond(ctx context.Context, actor entity.Actor, entryID int64, req *request.RespondRequest) (*response.TeamMemberResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	var entry *entity.TeamMember

	err := s.db.RunInTx(ctx, func(q database.Querier) error {
		members := s.repo.TeamMember.WithTx(q)

		var err error
		entry, err = members.FindByID(ctx, entryID)
		if err != nil {
			return err
		}
		if entry == nil {
			return fmt.Errorf("roster entry %d: %w", entryID, ErrRosterEntryNotFound)
		}

		if entry.Availability != entity.AvailabilityPending {
			return fmt.Errorf("roster entry %d is already %s: %w", entryID, entry.Availability, ErrInvalidTransition)
		}

		now := time.Now()
		entry.Availability = entity.Availability(req.Decision)
		entry.ConfirmedAt = &now

		return members.Update(ctx, entry)
	})

	if err != nil {
		if errors.Is(err, ErrRosterEntryNotFound) || errors.Is(err, ErrInvalidTransition) {
			return nil, err
		}
		s.log.Error("Failed to record response", zap.Error(err), zap.Int64("entry_id", entryID))
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		Operation:  "team.respond",
		EntityKind: "team_member",
		EntityID:   entryID,
		Actor:      actor,
		After:      map[string]any{"availability": entry.Availability},
	})

	s.log.Info("Roster response recorded",
		zap.Int64("entry_id", entryID),
		zap.Int64("member_id", entry.MemberID),
		zap.String("decision", req.Decision),
	)

	resp := response.TeamMemberToResponse(entry)
	return &resp, nil
}

// Substitute swaps the occupant of a roster slot. The slot returns to
// pending so the incoming member confirms for themselves, and one record
// goes to the team's substitution history. Slot update and history append
// share a transaction; a substitution that happened is never missing its
// record.
func (s *teamService) Substitute(ctx context.Context, actor entity.Actor, entryID int64, req *request.SubstituteRequest) (*response.TeamMemberResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Substitute validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	var (
		entry *entity.TeamMember
		sub   *entity.Substitution
	)

	err := s.db.RunInTx(ctx, func(q database.Querier) error {
		members := s.repo.TeamMember.WithTx(q)
		substitutions := s.repo.Substitution.WithTx(q)

		var err error
		entry, err = members.FindByID(ctx, entryID)
		if err != nil {
			return err
		}
		if entry == nil {
			return fmt.Errorf("roster entry %d: %w", entryID, ErrRosterEntryNotFound)
		}

		sub = &entity.Substitution{
			TeamID:        entry.TeamID,
			OutMemberID:   entry.MemberID,
			OutMemberName: entry.MemberName,
			InMemberID:    req.MemberID,
			InMemberName:  req.MemberName,
			Position:      entry.Position,
			ActorID:       actor.ID,
			ActorName:     actor.Name,
			Reason:        req.Reason,
		}
		if err := substitutions.Append(ctx, sub); err != nil {
			return err
		}

		now := time.Now()
		entry.MemberID = req.MemberID
		entry.MemberName = req.MemberName
		entry.Availability = entity.AvailabilityPending
		entry.ConfirmedAt = nil
		entry.IsSubstitute = true
		entry.SubstitutedAt = &now

		return members.Update(ctx, entry)
	})

	if err != nil {
		if errors.Is(err, ErrRosterEntryNotFound) {
			return nil, err
		}
		s.log.Error("Failed to substitute", zap.Error(err), zap.Int64("entry_id", entryID))
		return nil, err
	}

	s.metrics.Substitutions.Inc()
	s.audit.Record(ctx, audit.Entry{
		Operation:  "team.substitute",
		EntityKind: "team_member",
		EntityID:   entryID,
		Actor:      actor,
		Summary:    fmt.Sprintf("%s replaced by %s", sub.OutMemberName, sub.InMemberName),
		Before:     map[string]any{"member_id": sub.OutMemberID},
		After:      map[string]any{"member_id": sub.InMemberID, "seq": sub.Seq},
	})

	s.log.Info("Substitution recorded",
		zap.Int64("team_id", entry.TeamID),
		zap.Int64("entry_id", entryID),
		zap.Int("seq", sub.Seq),
		zap.Int64("out_member_id", sub.OutMemberID),
		zap.Int64("in_member_id", sub.InMemberID),
	)

	resp := response.TeamMemberToResponse(entry)
	return &resp, nil
}

func (s *teamService) SubstitutionLog(ctx context.Context, teamID int64) ([]response.SubstitutionResponse, error) {
	team, err := s.repo.Team.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, fmt.Errorf("team %d: %w", teamID, ErrTeamNotFound)
	}

	subs, err := s.repo.Substitution.FindByTeamID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	log := make([]response.SubstitutionResponse, 0, len(subs))
	for _, sub := range subs {
		log = append(log, response.SubstitutionToResponse(sub))
	}
	return log, nil
}
