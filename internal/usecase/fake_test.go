package usecase

import (
	"context"
	"time"

	"club-booking/internal/audit"
	"club-booking/internal/data/entity"
	"club-booking/internal/data/repository"
	"club-booking/pkg/database"
	"club-booking/pkg/metrics"
	"club-booking/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// FakeDB satisfies database.PgxIface for service tests. RunInTx executes
// the function against the fake itself; the repositories in these tests are
// fakes too, so no statement ever reaches a real connection.
type FakeDB struct{}

func (f *FakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }
func (f *FakeDB) QueryRow(context.Context, string, ...any) pgx.Row        { return nil }
func (f *FakeDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (f *FakeDB) Begin(context.Context) (pgx.Tx, error) { return nil, nil }
func (f *FakeDB) Ping(context.Context) error            { return nil }
func (f *FakeDB) Close()                                {}

func (f *FakeDB) RunInTx(_ context.Context, fn func(q database.Querier) error) error {
	return fn(f)
}

var _ database.PgxIface = (*FakeDB)(nil)

// FakeBookingRepository is a programmable stub for repository.BookingRepository.
// Each method delegates to its Func field when set. Finders fall back to
// (nil, nil), the real repository's miss contract, and Create assigns a
// sequential id the way the real insert returns one.
type FakeBookingRepository struct {
	nextID int64

	CreateFunc           func(ctx context.Context, booking *entity.Booking) error
	FindByIDFunc         func(ctx context.Context, id int64) (*entity.Booking, error)
	FindByReferenceFunc  func(ctx context.Context, reference string) (*entity.Booking, error)
	FindByDateRangeFunc  func(ctx context.Context, from, to time.Time) ([]*entity.Booking, error)
	FindBySeriesKeyFunc  func(ctx context.Context, seriesKey string) ([]*entity.Booking, error)
	ListFunc             func(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.Booking, error)
	CountFunc            func(ctx context.Context, from, to *time.Time) (int64, error)
	UpdateFunc           func(ctx context.Context, booking *entity.Booking) error
	DeleteFunc           func(ctx context.Context, id int64) error
	SumRinksFunc         func(ctx context.Context, playDate time.Time, session int, excludeID *int64) (int, error)
	UsageByDateRangeFunc func(ctx context.Context, from, to time.Time) ([]*entity.SessionUsage, error)
}

func (f *FakeBookingRepository) WithTx(database.Querier) repository.BookingRepository { return f }

func (f *FakeBookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, booking)
	}
	f.nextID++
	booking.ID = f.nextID
	booking.CreatedAt = time.Now()
	return nil
}

func (f *FakeBookingRepository) FindByID(ctx context.Context, id int64) (*entity.Booking, error) {
	if f.FindByIDFunc != nil {
		return f.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (f *FakeBookingRepository) FindByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	if f.FindByReferenceFunc != nil {
		return f.FindByReferenceFunc(ctx, reference)
	}
	return nil, nil
}

func (f *FakeBookingRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Booking, error) {
	if f.FindByDateRangeFunc != nil {
		return f.FindByDateRangeFunc(ctx, from, to)
	}
	return nil, nil
}

func (f *FakeBookingRepository) FindBySeriesKey(ctx context.Context, seriesKey string) ([]*entity.Booking, error) {
	if f.FindBySeriesKeyFunc != nil {
		return f.FindBySeriesKeyFunc(ctx, seriesKey)
	}
	return nil, nil
}

func (f *FakeBookingRepository) List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.Booking, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx, from, to, limit, offset)
	}
	return nil, nil
}

func (f *FakeBookingRepository) Count(ctx context.Context, from, to *time.Time) (int64, error) {
	if f.CountFunc != nil {
		return f.CountFunc(ctx, from, to)
	}
	return 0, nil
}

func (f *FakeBookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, booking)
	}
	return nil
}

func (f *FakeBookingRepository) Delete(ctx context.Context, id int64) error {
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	return nil
}

func (f *FakeBookingRepository) SumRinks(ctx context.Context, playDate time.Time, session int, excludeID *int64) (int, error) {
	if f.SumRinksFunc != nil {
		return f.SumRinksFunc(ctx, playDate, session, excludeID)
	}
	return 0, nil
}

func (f *FakeBookingRepository) UsageByDateRange(ctx context.Context, from, to time.Time) ([]*entity.SessionUsage, error) {
	if f.UsageByDateRangeFunc != nil {
		return f.UsageByDateRangeFunc(ctx, from, to)
	}
	return nil, nil
}

var _ repository.BookingRepository = (*FakeBookingRepository)(nil)

// FakePoolRepository is a programmable stub for repository.PoolRepository.
type FakePoolRepository struct {
	nextID int64

	CreateFunc          func(ctx context.Context, pool *entity.Pool) error
	FindByIDFunc        func(ctx context.Context, id int64) (*entity.Pool, error)
	FindByBookingIDFunc func(ctx context.Context, bookingID int64) (*entity.Pool, error)
	FindDueForCloseFunc func(ctx context.Context, asOf time.Time) ([]*entity.Pool, error)
	UpdateFunc          func(ctx context.Context, pool *entity.Pool) error
	DeleteFunc          func(ctx context.Context, id int64) error
}

func (f *FakePoolRepository) WithTx(database.Querier) repository.PoolRepository { return f }

func (f *FakePoolRepository) Create(ctx context.Context, pool *entity.Pool) error {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, pool)
	}
	f.nextID++
	pool.ID = f.nextID
	pool.CreatedAt = time.Now()
	return nil
}

func (f *FakePoolRepository) FindByID(ctx context.Context, id int64) (*entity.Pool, error) {
	if f.FindByIDFunc != nil {
		return f.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (f *FakePoolRepository) FindByBookingID(ctx context.Context, bookingID int64) (*entity.Pool, error) {
	if f.FindByBookingIDFunc != nil {
		return f.FindByBookingIDFunc(ctx, bookingID)
	}
	return nil, nil
}

func (f *FakePoolRepository) FindDueForClose(ctx context.Context, asOf time.Time) ([]*entity.Pool, error) {
	if f.FindDueForCloseFunc != nil {
		return f.FindDueForCloseFunc(ctx, asOf)
	}
	return nil, nil
}

func (f *FakePoolRepository) Update(ctx context.Context, pool *entity.Pool) error {
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, pool)
	}
	return nil
}

func (f *FakePoolRepository) Delete(ctx context.Context, id int64) error {
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	return nil
}

var _ repository.PoolRepository = (*FakePoolRepository)(nil)

// FakePoolRegistrationRepository is a programmable stub for
// repository.PoolRegistrationRepository. Create marks the registration
// active, matching the real insert.
type FakePoolRegistrationRepository struct {
	nextID int64

	CreateFunc       func(ctx context.Context, registration *entity.PoolRegistration) error
	FindActiveFunc   func(ctx context.Context, poolID, memberID int64) (*entity.PoolRegistration, error)
	FindByPoolIDFunc func(ctx context.Context, poolID int64) ([]*entity.PoolRegistration, error)
	CountActiveFunc  func(ctx context.Context, poolID int64) (int, error)
	DeactivateFunc   func(ctx context.Context, id int64) error
}

func (f *FakePoolRegistrationRepository) WithTx(database.Querier) repository.PoolRegistrationRepository {
	return f
}

func (f *FakePoolRegistrationRepository) Create(ctx context.Context, registration *entity.PoolRegistration) error {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, registration)
	}
	f.nextID++
	registration.ID = f.nextID
	registration.RegisteredAt = time.Now()
	registration.IsActive = true
	return nil
}

func (f *FakePoolRegistrationRepository) FindActive(ctx context.Context, poolID, memberID int64) (*entity.PoolRegistration, error) {
	if f.FindActiveFunc != nil {
		return f.FindActiveFunc(ctx, poolID, memberID)
	}
	return nil, nil
}

func (f *FakePoolRegistrationRepository) FindByPoolID(ctx context.Context, poolID int64) ([]*entity.PoolRegistration, error) {
	if f.FindByPoolIDFunc != nil {
		return f.FindByPoolIDFunc(ctx, poolID)
	}
	return nil, nil
}

func (f *FakePoolRegistrationRepository) CountActive(ctx context.Context, poolID int64) (int, error) {
	if f.CountActiveFunc != nil {
		return f.CountActiveFunc(ctx, poolID)
	}
	return 0, nil
}

func (f *FakePoolRegistrationRepository) Deactivate(ctx context.Context, id int64) error {
	if f.DeactivateFunc != nil {
		return f.DeactivateFunc(ctx, id)
	}
	return nil
}

var _ repository.PoolRegistrationRepository = (*FakePoolRegistrationRepository)(nil)

// FakeTeamRepository is a programmable stub for repository.TeamRepository.
type FakeTeamRepository struct {
	nextID int64

	CreateFunc          func(ctx context.Context, team *entity.Team) error
	FindByIDFunc        func(ctx context.Context, id int64) (*entity.Team, error)
	FindByBookingIDFunc func(ctx context.Context, bookingID int64) ([]*entity.Team, error)
	DeleteFunc          func(ctx context.Context, id int64) error
}

func (f *FakeTeamRepository) WithTx(database.Querier) repository.TeamRepository { return f }

func (f *FakeTeamRepository) Create(ctx context.Context, team *entity.Team) error {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, team)
	}
	f.nextID++
	team.ID = f.nextID
	team.CreatedAt = time.Now()
	return nil
}

func (f *FakeTeamRepository) FindByID(ctx context.Context, id int64) (*entity.Team, error) {
	if f.FindByIDFunc != nil {
		return f.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (f *FakeTeamRepository) FindByBookingID(ctx context.Context, bookingID int64) ([]*entity.Team, error) {
	if f.FindByBookingIDFunc != nil {
		return f.FindByBookingIDFunc(ctx, bookingID)
	}
	return nil, nil
}

func (f *FakeTeamRepository) Delete(ctx context.Context, id int64) error {
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	return nil
}

var _ repository.TeamRepository = (*FakeTeamRepository)(nil)

// FakeTeamMemberRepository is a programmable stub for
// repository.TeamMemberRepository.
type FakeTeamMemberRepository struct {
	nextID int64

	CreateFunc       func(ctx context.Context, member *entity.TeamMember) error
	FindByIDFunc     func(ctx context.Context, id int64) (*entity.TeamMember, error)
	FindByTeamIDFunc func(ctx context.Context, teamID int64) ([]*entity.TeamMember, error)
	UpdateFunc       func(ctx context.Context, member *entity.TeamMember) error
	DeleteFunc       func(ctx context.Context, id int64) error
}

func (f *FakeTeamMemberRepository) WithTx(database.Querier) repository.TeamMemberRepository {
	return f
}

func (f *FakeTeamMemberRepository) Create(ctx context.Context, member *entity.TeamMember) error {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, member)
	}
	f.nextID++
	member.ID = f.nextID
	member.CreatedAt = time.Now()
	return nil
}

func (f *FakeTeamMemberRepository) FindByID(ctx context.Context, id int64) (*entity.TeamMember, error) {
	if f.FindByIDFunc != nil {
		return f.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (f *FakeTeamMemberRepository) FindByTeamID(ctx context.Context, teamID int64) ([]*entity.TeamMember, error) {
	if f.FindByTeamIDFunc != nil {
		return f.FindByTeamIDFunc(ctx, teamID)
	}
	return nil, nil
}

func (f *FakeTeamMemberRepository) Update(ctx context.Context, member *entity.TeamMember) error {
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, member)
	}
	return nil
}

func (f *FakeTeamMemberRepository) Delete(ctx context.Context, id int64) error {
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	return nil
}

var _ repository.TeamMemberRepository = (*FakeTeamMemberRepository)(nil)

// FakeSubstitutionRepository is a programmable stub for
// repository.SubstitutionRepository. Append assigns the sequence number the
// way the real insert does, one past the previous record.
type FakeSubstitutionRepository struct {
	seq int

	AppendFunc       func(ctx context.Context, sub *entity.Substitution) error
	FindByTeamIDFunc func(ctx context.Context, teamID int64) ([]*entity.Substitution, error)
}

func (f *FakeSubstitutionRepository) WithTx(database.Querier) repository.SubstitutionRepository {
	return f
}

func (f *FakeSubstitutionRepository) Append(ctx context.Context, sub *entity.Substitution) error {
	if f.AppendFunc != nil {
		return f.AppendFunc(ctx, sub)
	}
	f.seq++
	sub.ID = int64(f.seq)
	sub.Seq = f.seq
	sub.OccurredAt = time.Now()
	return nil
}

func (f *FakeSubstitutionRepository) FindByTeamID(ctx context.Context, teamID int64) ([]*entity.Substitution, error) {
	if f.FindByTeamIDFunc != nil {
		return f.FindByTeamIDFunc(ctx, teamID)
	}
	return nil, nil
}

var _ repository.SubstitutionRepository = (*FakeSubstitutionRepository)(nil)

// FakeBookingPlayerRepository is a programmable stub for
// repository.BookingPlayerRepository.
type FakeBookingPlayerRepository struct {
	nextID int64

	CreateFunc                 func(ctx context.Context, player *entity.BookingPlayer) error
	FindByIDFunc               func(ctx context.Context, id int64) (*entity.BookingPlayer, error)
	FindByBookingIDFunc        func(ctx context.Context, bookingID int64) ([]*entity.BookingPlayer, error)
	FindByBookingAndMemberFunc func(ctx context.Context, bookingID, memberID int64) (*entity.BookingPlayer, error)
	UpdateFunc                 func(ctx context.Context, player *entity.BookingPlayer) error
	DeleteFunc                 func(ctx context.Context, id int64) error
}

func (f *FakeBookingPlayerRepository) WithTx(database.Querier) repository.BookingPlayerRepository {
	return f
}

func (f *FakeBookingPlayerRepository) Create(ctx context.Context, player *entity.BookingPlayer) error {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, player)
	}
	f.nextID++
	player.ID = f.nextID
	player.CreatedAt = time.Now()
	return nil
}

func (f *FakeBookingPlayerRepository) FindByID(ctx context.Context, id int64) (*entity.BookingPlayer, error) {
	if f.FindByIDFunc != nil {
		return f.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (f *FakeBookingPlayerRepository) FindByBookingID(ctx context.Context, bookingID int64) ([]*entity.BookingPlayer, error) {
	if f.FindByBookingIDFunc != nil {
		return f.FindByBookingIDFunc(ctx, bookingID)
	}
	return nil, nil
}

func (f *FakeBookingPlayerRepository) FindByBookingAndMember(ctx context.Context, bookingID, memberID int64) (*entity.BookingPlayer, error) {
	if f.FindByBookingAndMemberFunc != nil {
		return f.FindByBookingAndMemberFunc(ctx, bookingID, memberID)
	}
	return nil, nil
}

func (f *FakeBookingPlayerRepository) Update(ctx context.Context, player *entity.BookingPlayer) error {
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, player)
	}
	return nil
}

func (f *FakeBookingPlayerRepository) Delete(ctx context.Context, id int64) error {
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	return nil
}

var _ repository.BookingPlayerRepository = (*FakeBookingPlayerRepository)(nil)

// recordingSink keeps every audit entry it receives for assertions.
type recordingSink struct {
	entries []audit.Entry
}

func (s *recordingSink) Record(_ context.Context, entry audit.Entry) {
	s.entries = append(s.entries, entry)
}

var _ audit.Sink = (*recordingSink)(nil)

// fakes bundles one instance of every fake so tests can program the repos
// they care about and ignore the rest.
type fakes struct {
	db            *FakeDB
	bookings      *FakeBookingRepository
	pools         *FakePoolRepository
	registrations *FakePoolRegistrationRepository
	teams         *FakeTeamRepository
	members       *FakeTeamMemberRepository
	substitutions *FakeSubstitutionRepository
	players       *FakeBookingPlayerRepository
}

func newFakes() (*fakes, *repository.Repository) {
	f := &fakes{
		db:            &FakeDB{},
		bookings:      &FakeBookingRepository{},
		pools:         &FakePoolRepository{},
		registrations: &FakePoolRegistrationRepository{},
		teams:         &FakeTeamRepository{},
		members:       &FakeTeamMemberRepository{},
		substitutions: &FakeSubstitutionRepository{},
		players:       &FakeBookingPlayerRepository{},
	}
	repo := &repository.Repository{
		Booking:          f.bookings,
		Pool:             f.pools,
		PoolRegistration: f.registrations,
		Team:             f.teams,
		TeamMember:       f.members,
		Substitution:     f.substitutions,
		BookingPlayer:    f.players,
	}
	return f, repo
}

// testClubConfig is the six-rink, three-session green every test runs on.
func testClubConfig() utils.ClubConfig {
	return utils.ClubConfig{
		TotalRinks: 6,
		Sessions:   []int{1, 2, 3},
		PoolStrategies: map[string]string{
			"league":      "event",
			"competition": "event",
			"friendly":    "booking",
			"social":      "booking",
			"gala":        "none",
		},
	}
}

// newTestService wires the full service layer onto the fakes with a silent
// logger, a discarding audit sink and a fresh metrics registry.
func newTestService(f *fakes, repo *repository.Repository) *Service {
	config := &utils.Config{Club: testClubConfig()}
	return NewService(repo, f.db, config, audit.NopSink{}, metrics.New(), zap.NewNop())
}

func ptrString(s string) *string { return &s }

func ptrInt(n int) *int { return &n }

func ptrInt64(n int64) *int64 { return &n }

func mustDate(t string) time.Time {
	d, err := time.Parse(time.DateOnly, t)
	if err != nil {
		panic(err)
	}
	return d
}
