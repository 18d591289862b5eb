package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"schoolstore/internal/core/application/usecases/commands"
	"schoolstore/internal/core/domain/model/order"
	"schoolstore/internal/core/ports"
)

// PaymentLinkRecoveryJob re-issues payment links for pending orders that
// never got one. Link creation at submission time is fire-and-forget, so a
// provider outage leaves orders without a link; this job closes that gap.
type PaymentLinkRecoveryJob struct {
	uowFactory commands.OrderUoWFactory
	payment    ports.PaymentProvider
	messenger  ports.Messenger
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewPaymentLinkRecoveryJob creates the recovery job. Runs every 5 minutes.
func NewPaymentLinkRecoveryJob(
	uowFactory commands.OrderUoWFactory,
	payment ports.PaymentProvider,
	messenger ports.Messenger,
	logger *slog.Logger,
) *PaymentLinkRecoveryJob {
	return &PaymentLinkRecoveryJob{
		uowFactory: uowFactory,
		payment:    payment,
		messenger:  messenger,
		cron:       cron.New(),
		logger:     logger.With("component", "payment_link_recovery_job"),
	}
}

// Start schedules the recovery job.
func (j *PaymentLinkRecoveryJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * *", func() {
		ctx := context.Background()
		if err := j.run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Payment link recovery run failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment link recovery job started (running every 5 minutes)")
	return nil
}

// Stop stops the recovery job.
func (j *PaymentLinkRecoveryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payment link recovery job stopped")
}

func (j *PaymentLinkRecoveryJob) run(ctx context.Context) error {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	orders, err := uow.OrderRepository().GetAllMissingPaymentLink(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return uow.Rollback(ctx)
	}

	recovered := make([]*order.Order, 0, len(orders))
	for _, aggregate := range orders {
		link, linkErr := j.payment.CreatePaymentLink(ctx, aggregate.ID(),
			aggregate.Total(), aggregate.BuyerPhone())
		if linkErr != nil {
			j.logger.ErrorContext(ctx, "Payment link re-issuance failed",
				"order_id", aggregate.ID().String(), "error", linkErr)
			continue
		}

		if attachErr := aggregate.AttachPaymentLink(link.Ref, link.URL); attachErr != nil {
			j.logger.ErrorContext(ctx, "Payment link attachment failed",
				"order_id", aggregate.ID().String(), "error", attachErr)
			continue
		}
		if updateErr := uow.OrderRepository().Update(ctx, aggregate); updateErr != nil {
			return updateErr
		}
		recovered = append(recovered, aggregate)
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	// Notifications go out only after the links are committed.
	for _, aggregate := range recovered {
		text := "Your payment link for order is ready: " + aggregate.PaymentLink()
		if sendErr := j.messenger.SendText(ctx, aggregate.BuyerPhone(), text); sendErr != nil {
			j.logger.ErrorContext(ctx, "Payment link notification failed",
				"order_id", aggregate.ID().String(), "error", sendErr)
		}
	}

	j.logger.InfoContext(ctx, "Payment link recovery run completed",
		"candidates", len(orders), "recovered", len(recovered))
	return nil
}
