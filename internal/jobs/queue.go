package jobs

import (
	"context"
	"fmt"

	"club-booking/internal/usecase"
	"club-booking/pkg/database"
	"club-booking/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"go.uber.org/zap"
)

// Queue runs the background jobs on the application's connection pool.
// Jobs live in the same database as the data they touch, so a sweep and
// the rows it closes share one transactional store.
type Queue struct {
	client *river.Client[pgx.Tx]
	log    *zap.Logger
}

func NewQueue(db *database.DB, pools usecase.PoolService, config utils.JobsConfig, log *zap.Logger) (*Queue, error) {
	workers := river.NewWorkers()
	river.AddWorker(workers, NewPoolSweepWorker(pools, log))

	periodic := []*river.PeriodicJob{
		river.NewPeriodicJob(
			river.PeriodicInterval(config.PoolSweepInterval),
			func() (river.JobArgs, *river.InsertOpts) {
				// A tick is skipped while the previous sweep is still queued
				// or running.
				return PoolSweepArgs{}, &river.InsertOpts{
					UniqueOpts: river.UniqueOpts{ByArgs: true},
				}
			},
			&river.PeriodicJobOpts{RunOnStart: true},
		),
	}

	client, err := river.NewClient(riverpgxv5.New(db.Pool()), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
		},
		Workers:      workers,
		PeriodicJobs: periodic,
	})
	if err != nil {
		return nil, fmt.Errorf("create job client: %w", err)
	}

	return &Queue{
		client: client,
		log:    log.With(zap.String("component", "jobs")),
	}, nil
}

func (q *Queue) Start(ctx context.Context) error {
	if err := q.client.Start(ctx); err != nil {
		return fmt.Errorf("start job client: %w", err)
	}
	q.log.Info("Job queue started")
	return nil
}

// Stop drains running jobs before returning. The context bounds how long
// the drain may take.
func (q *Queue) Stop(ctx context.Context) error {
	if err := q.client.Stop(ctx); err != nil {
		return fmt.Errorf("stop job client: %w", err)
	}
	q.log.Info("Job queue stopped")
	return nil
}
