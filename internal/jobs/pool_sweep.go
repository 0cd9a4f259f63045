package jobs

import (
	"context"
	"time"

	"club-booking/internal/usecase"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// PoolSweepArgs is the periodic job that closes pools whose auto-close date
// has passed. It carries no payload; the sweep always works off the clock.
type PoolSweepArgs struct{}

func (PoolSweepArgs) Kind() string { return "pool_sweep" }

type PoolSweepWorker struct {
	river.WorkerDefaults[PoolSweepArgs]

	pools usecase.PoolService
	log   *zap.Logger
}

func NewPoolSweepWorker(pools usecase.PoolService, log *zap.Logger) *PoolSweepWorker {
	return &PoolSweepWorker{
		pools: pools,
		log:   log.With(zap.String("worker", "pool_sweep")),
	}
}

func (w *PoolSweepWorker) Work(ctx context.Context, job *river.Job[PoolSweepArgs]) error {
	closed, err := w.pools.CloseDuePools(ctx, time.Now())
	if err != nil {
		w.log.Error("Pool sweep failed", zap.Error(err), zap.Int64("job_id", job.ID))
		return err
	}

	if closed > 0 {
		w.log.Info("Pool sweep finished",
			zap.Int64("job_id", job.ID),
			zap.Int("closed", closed),
		)
	}
	return nil
}
