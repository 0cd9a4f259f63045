package usecase

import (
	"club-booking/internal/audit"
	"club-booking/internal/data/repository"
	"club-booking/pkg/database"
	"club-booking/pkg/metrics"
	"club-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Booking  BookingService
	Series   SeriesService
	Pool     PoolService
	Team     TeamService
	Rollup   RollupService
	Calendar CalendarService
}

func NewService(
	repo *repository.Repository,
	db database.PgxIface,
	config *utils.Config,
	auditSink audit.Sink,
	m *metrics.Metrics,
	log *zap.Logger,
) *Service {
	strategy := NewStrategyResolver(config.Club.PoolStrategies, log)
	series := NewSeriesService(repo, strategy, log)

	return &Service{
		Booking:  NewBookingService(repo, db, config.Club, strategy, series, auditSink, m, log),
		Series:   series,
		Pool:     NewPoolService(repo, db, series, auditSink, m, log),
		Team:     NewTeamService(repo, db, auditSink, m, log),
		Rollup:   NewRollupService(repo, db, auditSink, log),
		Calendar: NewCalendarService(repo, config.Club, log),
	}
}
