package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"schoolstore/internal/core/application/usecases/commands"
)

// WeightBackfillJob computes weights for active orders that have none. The
// weight pass at submission time is best-effort; this job retries it until
// every active order carries a billed weight.
type WeightBackfillJob struct {
	uowFactory    commands.OrderUoWFactory
	weightHandler *commands.ComputeWeightCommandHandler
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewWeightBackfillJob creates the backfill job. Runs every 10 minutes.
func NewWeightBackfillJob(
	uowFactory commands.OrderUoWFactory,
	weightHandler *commands.ComputeWeightCommandHandler,
	logger *slog.Logger,
) *WeightBackfillJob {
	return &WeightBackfillJob{
		uowFactory:    uowFactory,
		weightHandler: weightHandler,
		cron:          cron.New(),
		logger:        logger.With("component", "weight_backfill_job"),
	}
}

// Start schedules the backfill job.
func (j *WeightBackfillJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * *", func() {
		ctx := context.Background()
		if err := j.run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Weight backfill run failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Weight backfill job started (running every 10 minutes)")
	return nil
}

// Stop stops the backfill job.
func (j *WeightBackfillJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Weight backfill job stopped")
}

func (j *WeightBackfillJob) run(ctx context.Context) error {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	orders, err := uow.OrderRepository().GetAllActive(ctx)
	if rollbackErr := uow.Rollback(ctx); rollbackErr != nil {
		j.logger.ErrorContext(ctx, "Read transaction rollback failed", "error", rollbackErr)
	}
	if err != nil {
		return err
	}

	backfilled := 0
	for _, aggregate := range orders {
		if aggregate.WeightComputed() {
			continue
		}

		cmd, cmdErr := commands.NewComputeWeightCommand(aggregate.ID())
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Weight command construction failed",
				"order_id", aggregate.ID().String(), "error", cmdErr)
			continue
		}
		if _, handleErr := j.weightHandler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Weight backfill failed",
				"order_id", aggregate.ID().String(), "error", handleErr)
			continue
		}
		backfilled++
	}

	if backfilled > 0 {
		j.logger.InfoContext(ctx, "Weight backfill run completed", "backfilled", backfilled)
	}
	return nil
}
