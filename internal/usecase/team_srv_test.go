package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"club-booking/internal/data/entity"
	"club-booking/internal/data/repository"
	"club-booking/internal/dto/request"
	"club-booking/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTeamHarness(f *fakes, repo *repository.Repository) (TeamService, *recordingSink, *metrics.Metrics) {
	sink := &recordingSink{}
	m := metrics.New()
	return NewTeamService(repo, f.db, sink, m, zap.NewNop()), sink, m
}

func rosterEntry() *entity.TeamMember {
	return &entity.TeamMember{
		Base:         entity.Base{ID: 9},
		TeamID:       3,
		MemberID:     11,
		MemberName:   "Margaret Holt",
		Position:     "skip",
		Availability: entity.AvailabilityPending,
	}
}

func TestTeamService_CreateTeam(t *testing.T) {
	t.Run("attaches a team to its booking", func(t *testing.T) {
		f, repo := newFakes()
		f.bookings.FindByIDFunc = func(_ context.Context, _ int64) (*entity.Booking, error) {
			return &entity.Booking{Base: entity.Base{ID: 5}, Reference: "BK-TEST-5"}, nil
		}
		svc, sink, _ := newTeamHarness(f, repo)

		resp, err := svc.CreateTeam(context.Background(), testActor, &request.CreateTeamRequest{
			BookingID: 5,
			Name:      "Rink A",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.BookingID)
		assert.Equal(t, "Rink A", resp.Name)
		require.Len(t, sink.entries, 1)
		assert.Equal(t, "team.create", sink.entries[0].Operation)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f, repo := newFakes()
		svc, _, _ := newTeamHarness(f, repo)

		_, err := svc.CreateTeam(context.Background(), testActor, &request.CreateTeamRequest{
			BookingID: 404,
			Name:      "Rink A",
		})

		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("name is required", func(t *testing.T) {
		f, repo := newFakes()
		svc, _, _ := newTeamHarness(f, repo)

		_, err := svc.CreateTeam(context.Background(), testActor, &request.CreateTeamRequest{BookingID: 5})

		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestTeamService_AddMember(t *testing.T) {
	t.Run("new members start pending", func(t *testing.T) {
		f, repo := newFakes()
		f.teams.FindByIDFunc = func(_ context.Context, _ int64) (*entity.Team, error) {
			return &entity.Team{Base: entity.Base{ID: 3}, BookingID: 5, Name: "Rink A"}, nil
		}
		var created *entity.TeamMember
		f.members.CreateFunc = func(_ context.Context, member *entity.TeamMember) error {
			member.ID = 9
			created = member
			return nil
		}
		svc, sink, _ := newTeamHarness(f, repo)

		resp, err := svc.AddMember(context.Background(), testActor, 3, &request.AddTeamMemberRequest{
			MemberID:   11,
			MemberName: "Margaret Holt",
			Position:   "skip",
		})

		require.NoError(t, err)
		assert.Equal(t, entity.AvailabilityPending, resp.Availability)
		assert.Nil(t, resp.ConfirmedAt)
		assert.False(t, resp.IsSubstitute)
		require.NotNil(t, created)
		assert.Equal(t, entity.AvailabilityPending, created.Availability)
		require.Len(t, sink.entries, 1)
		assert.Equal(t, "team.add_member", sink.entries[0].Operation)
	})

	t.Run("unknown team", func(t *testing.T) {
		f, repo := newFakes()
		svc, _, _ := newTeamHarness(f, repo)

		_, err := svc.AddMember(context.Background(), testActor, 404, &request.AddTeamMemberRequest{
			MemberID:   11,
			MemberName: "Margaret Holt",
		})

		assert.ErrorIs(t, err, ErrTeamNotFound)
	})

	t.Run("member name is required", func(t *testing.T) {
		f, repo := newFakes()
		svc, _, _ := newTeamHarness(f, repo)

		_, err := svc.AddMember(context.Background(), testActor, 3, &request.AddTeamMemberRequest{MemberID: 11})

		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestTeamService_Respond(t *testing.T) {
	respond := func(t *testing.T, decision string) *entity.TeamMember {
		t.Helper()
		f, repo := newFakes()
		entry := rosterEntry()
		f.members.FindByIDFunc = func(_ context.Context, _ int64) (*entity.TeamMember, error) {
			return entry, nil
		}
		svc, sink, _ := newTeamHarness(f, repo)

		resp, err := svc.Respond(context.Background(), testActor, 9, &request.RespondRequest{Decision: decision})

		require.NoError(t, err)
		assert.Equal(t, entity.Availability(decision), resp.Availability)
		assert.NotNil(t, resp.ConfirmedAt)
		require.Len(t, sink.entries, 1)
		assert.Equal(t, "team.respond", sink.entries[0].Operation)
		return entry
	}

	t.Run("pending accepts available", func(t *testing.T) {
		entry := respond(t, "available")
		assert.Equal(t, entity.AvailabilityAvailable, entry.Availability)
		assert.NotNil(t, entry.ConfirmedAt)
	})

	t.Run("pending accepts unavailable", func(t *testing.T) {
		entry := respond(t, "unavailable")
		assert.Equal(t, entity.AvailabilityUnavailable, entry.Availability)
	})

	t.Run("a decided slot refuses another response", func(t *testing.T) {
		f, repo := newFakes()
		entry := rosterEntry()
		now := time.Now()
		entry.Availability = entity.AvailabilityAvailable
		entry.ConfirmedAt = &now
		f.members.FindByIDFunc = func(_ context.Context, _ int64) (*entity.TeamMember, error) {
			return entry, nil
		}
		svc, sink, _ := newTeamHarness(f, repo)

		_, err := svc.Respond(context.Background(), testActor, 9, &request.RespondRequest{Decision: "unavailable"})

		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Empty(t, sink.entries)
	})

	t.Run("unknown entry", func(t *testing.T) {
		f, repo := newFakes()
		svc, _, _ := newTeamHarness(f, repo)

		_, err := svc.Respond(context.Background(), testActor, 404, &request.RespondRequest{Decision: "available"})

		assert.ErrorIs(t, err, ErrRosterEntryNotFound)
	})

	t.Run("decision must be available or unavailable", func(t *testing.T) {
		f, repo := newFakes()
		svc, _, _ := newTeamHarness(f, repo)

		_, err := svc.Respond(context.Background(), testActor, 9, &request.RespondRequest{Decision: "maybe"})

		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestTeamService_Substitute(t *testing.T) {
	t.Run("swaps the occupant and logs the swap", func(t *testing.T) {
		f, repo := newFakes()
		entry := rosterEntry()
		now := time.Now()
		entry.Availability = entity.AvailabilityAvailable
		entry.ConfirmedAt = &now
		f.members.FindByIDFunc = func(_ context.Context, _ int64) (*entity.TeamMember, error) {
			return entry, nil
		}
		var logged *entity.Substitution
		f.substitutions.AppendFunc = func(_ context.Context, sub *entity.Substitution) error {
			sub.ID = 1
			sub.Seq = 1
			sub.OccurredAt = time.Now()
			logged = sub
			return nil
		}
		svc, sink, m := newTeamHarness(f, repo)

		resp, err := svc.Substitute(context.Background(), testActor, 9, &request.SubstituteRequest{
			MemberID:   12,
			MemberName: "Arthur Penn",
			Reason:     "hamstring",
		})

		require.NoError(t, err)

		require.NotNil(t, logged)
		assert.Equal(t, int64(3), logged.TeamID)
		assert.Equal(t, int64(11), logged.OutMemberID)
		assert.Equal(t, "Margaret Holt", logged.OutMemberName)
		assert.Equal(t, int64(12), logged.InMemberID)
		assert.Equal(t, "Arthur Penn", logged.InMemberName)
		assert.Equal(t, "skip", logged.Position)
		assert.Equal(t, testActor.ID, logged.ActorID)
		assert.Equal(t, "hamstring", logged.Reason)

		assert.Equal(t, int64(12), entry.MemberID)
		assert.Equal(t, "Arthur Penn", entry.MemberName)
		assert.Equal(t, entity.AvailabilityPending, entry.Availability)
		assert.Nil(t, entry.ConfirmedAt)
		assert.True(t, entry.IsSubstitute)
		assert.NotNil(t, entry.SubstitutedAt)

		assert.Equal(t, entity.AvailabilityPending, resp.Availability)
		assert.True(t, resp.IsSubstitute)
		assert.Equal(t, float64(1), testutil.ToFloat64(m.Substitutions))
		require.Len(t, sink.entries, 1)
		assert.Equal(t, "team.substitute", sink.entries[0].Operation)
	})

	t.Run("substitution reopens a decided slot", func(t *testing.T) {
		f, repo := newFakes()
		entry := rosterEntry()
		f.members.FindByIDFunc = func(_ context.Context, _ int64) (*entity.TeamMember, error) {
			return entry, nil
		}
		svc, _, _ := newTeamHarness(f, repo)
		ctx := context.Background()

		_, err := svc.Respond(ctx, testActor, 9, &request.RespondRequest{Decision: "unavailable"})
		require.NoError(t, err)

		_, err = svc.Respond(ctx, testActor, 9, &request.RespondRequest{Decision: "available"})
		require.ErrorIs(t, err, ErrInvalidTransition)

		_, err = svc.Substitute(ctx, testActor, 9, &request.SubstituteRequest{
			MemberID:   12,
			MemberName: "Arthur Penn",
		})
		require.NoError(t, err)

		resp, err := svc.Respond(ctx, testActor, 9, &request.RespondRequest{Decision: "available"})
		require.NoError(t, err)
		assert.Equal(t, entity.AvailabilityAvailable, resp.Availability)
		assert.Equal(t, int64(12), resp.MemberID)
	})

	t.Run("slot keeps its occupant when the log write fails", func(t *testing.T) {
		f, repo := newFakes()
		entry := rosterEntry()
		f.members.FindByIDFunc = func(_ context.Context, _ int64) (*entity.TeamMember, error) {
			return entry, nil
		}
		f.substitutions.AppendFunc = func(_ context.Context, _ *entity.Substitution) error {
			return errors.New("connection reset")
		}
		updated := false
		f.members.UpdateFunc = func(_ context.Context, _ *entity.TeamMember) error {
			updated = true
			return nil
		}
		svc, _, _ := newTeamHarness(f, repo)

		_, err := svc.Substitute(context.Background(), testActor, 9, &request.SubstituteRequest{
			MemberID:   12,
			MemberName: "Arthur Penn",
		})

		assert.Error(t, err)
		assert.False(t, updated)
	})

	t.Run("unknown entry", func(t *testing.T) {
		f, repo := newFakes()
		svc, _, _ := newTeamHarness(f, repo)

		_, err := svc.Substitute(context.Background(), testActor, 404, &request.SubstituteRequest{
			MemberID:   12,
			MemberName: "Arthur Penn",
		})

		assert.ErrorIs(t, err, ErrRosterEntryNotFound)
	})
}

func TestTeamService_RemoveMember(t *testing.T) {
	t.Run("deletes the roster entry", func(t *testing.T) {
		f, repo := newFakes()
		f.members.FindByIDFunc = func(_ context.Context, _ int64) (*entity.TeamMember, error) {
			return rosterEntry(), nil
		}
		var deleted int64
		f.members.DeleteFunc = func(_ context.Context, id int64) error {
			deleted = id
			return nil
		}
		svc, sink, _ := newTeamHarness(f, repo)

		err := svc.RemoveMember(context.Background(), testActor, 9)

		require.NoError(t, err)
		assert.Equal(t, int64(9), deleted)
		require.Len(t, sink.entries, 1)
		assert.Equal(t, "team.remove_member", sink.entries[0].Operation)
	})

	t.Run("unknown entry", func(t *testing.T) {
		f, repo := newFakes()
		svc, _, _ := newTeamHarness(f, repo)

		err := svc.RemoveMember(context.Background(), testActor, 404)

		assert.ErrorIs(t, err, ErrRosterEntryNotFound)
	})
}

func TestTeamService_UpdatePosition(t *testing.T) {
	t.Run("moves the member to a new position", func(t *testing.T) {
		f, repo := newFakes()
		f.members.FindByIDFunc = func(_ context.Context, _ int64) (*entity.TeamMember, error) {
			return rosterEntry(), nil
		}
		svc, sink, _ := newTeamHarness(f, repo)

		resp, err := svc.UpdatePosition(context.Background(), testActor, 9, &request.UpdatePositionRequest{Position: "lead"})

		require.NoError(t, err)
		assert.Equal(t, "lead", resp.Position)
		require.Len(t, sink.entries, 1)
		assert.Equal(t, "team.update_position", sink.entries[0].Operation)
		assert.Equal(t, "skip", sink.entries[0].Before["position"])
		assert.Equal(t, "lead", sink.entries[0].After["position"])
	})

	t.Run("unknown entry", func(t *testing.T) {
		f, repo := newFakes()
		svc, _, _ := newTeamHarness(f, repo)

		_, err := svc.UpdatePosition(context.Background(), testActor, 404, &request.UpdatePositionRequest{Position: "lead"})

		assert.ErrorIs(t, err, ErrRosterEntryNotFound)
	})
}

func TestTeamService_SubstitutionLog(t *testing.T) {
	t.Run("returns the team's history", func(t *testing.T) {
		f, repo := newFakes()
		f.teams.FindByIDFunc = func(_ context.Context, _ int64) (*entity.Team, error) {
			return &entity.Team{Base: entity.Base{ID: 3}, BookingID: 5, Name: "Rink A"}, nil
		}
		f.substitutions.FindByTeamIDFunc = func(_ context.Context, _ int64) ([]*entity.Substitution, error) {
			return []*entity.Substitution{
				{ID: 1, TeamID: 3, Seq: 1, OutMemberName: "Margaret Holt", InMemberName: "Arthur Penn"},
				{ID: 2, TeamID: 3, Seq: 2, OutMemberName: "Arthur Penn", InMemberName: "Joan Whitfield"},
			}, nil
		}
		svc, _, _ := newTeamHarness(f, repo)

		log, err := svc.SubstitutionLog(context.Background(), 3)

		require.NoError(t, err)
		require.Len(t, log, 2)
		assert.Equal(t, 1, log[0].Seq)
		assert.Equal(t, 2, log[1].Seq)
		assert.Equal(t, "Joan Whitfield", log[1].InMemberName)
	})

	t.Run("unknown team", func(t *testing.T) {
		f, repo := newFakes()
		svc, _, _ := newTeamHarness(f, repo)

		_, err := svc.SubstitutionLog(context.Background(), 404)

		assert.ErrorIs(t, err, ErrTeamNotFound)
	})
}

func TestTeamService_GetTeamByID(t *testing.T) {
	t.Run("includes the roster", func(t *testing.T) {
		f, repo := newFakes()
		f.teams.FindByIDFunc = func(_ context.Context, _ int64) (*entity.Team, error) {
			return &entity.Team{Base: entity.Base{ID: 3}, BookingID: 5, Name: "Rink A"}, nil
		}
		f.members.FindByTeamIDFunc = func(_ context.Context, _ int64) ([]*entity.TeamMember, error) {
			return []*entity.TeamMember{rosterEntry()}, nil
		}
		svc, _, _ := newTeamHarness(f, repo)

		resp, err := svc.GetTeamByID(context.Background(), 3)

		require.NoError(t, err)
		assert.Equal(t, "Rink A", resp.Name)
		require.Len(t, resp.Members, 1)
		assert.Equal(t, "Margaret Holt", resp.Members[0].MemberName)
	})

	t.Run("unknown team", func(t *testing.T) {
		f, repo := newFakes()
		svc, _, _ := newTeamHarness(f, repo)

		_, err := svc.GetTeamByID(context.Background(), 404)

		assert.ErrorIs(t, err, ErrTeamNotFound)
	})
}
