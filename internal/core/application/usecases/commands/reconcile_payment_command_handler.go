package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/core/domain/model/order"
	"schoolstore/internal/core/ports"
	"schoolstore/internal/pkg/errs"
)

// ReconcilePaymentCommandHandler consumes payment webhook deliveries.
//
// The handler is idempotent under at-least-once delivery: the paid
// transition is a single conditional update (ConfirmPaymentOnce) that only
// one delivery can win, and the chained side effects run only for the
// winning delivery. Every delivery is appended to the audit log, including
// duplicates and events that resolve to no order.
//
// Chained side effects after a won paid transition are best-effort: weight
// computation, payment-confirmed notification, shipment dispatch, and
// shipment-created notification. Their failures are logged and never roll
// back the payment confirmation already committed.
type ReconcilePaymentCommandHandler struct {
	uowFactory      WebhookUoWFactory
	payment         ports.PaymentProvider
	messenger       ports.Messenger
	weightHandler   *ComputeWeightCommandHandler
	dispatchHandler *DispatchShipmentCommandHandler
	logger          *slog.Logger
}

// NewReconcilePaymentCommandHandler creates a handler for payment webhooks.
func NewReconcilePaymentCommandHandler(
	uowFactory WebhookUoWFactory,
	payment ports.PaymentProvider,
	messenger ports.Messenger,
	weightHandler *ComputeWeightCommandHandler,
	dispatchHandler *DispatchShipmentCommandHandler,
	logger *slog.Logger,
) *ReconcilePaymentCommandHandler {
	return &ReconcilePaymentCommandHandler{
		uowFactory:      uowFactory,
		payment:         payment,
		messenger:       messenger,
		weightHandler:   weightHandler,
		dispatchHandler: dispatchHandler,
		logger:          logger,
	}
}

// Handle processes one webhook delivery. A nil return acknowledges the
// delivery; the provider must not redeliver. ErrInvalidWebhookSignature is
// the only error a correct provider can trigger.
func (h *ReconcilePaymentCommandHandler) Handle(ctx context.Context, cmd ReconcilePaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.payment.VerifyWebhookSignature(cmd.Payload(), cmd.Signature()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidWebhookSignature, err)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetByPaymentRef(ctx, cmd.PaymentRef())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			// Nothing to act on. Audit the delivery and acknowledge so the
			// provider stops retrying.
			h.logger.WarnContext(ctx, "payment event resolves to no order",
				"provider", cmd.Provider(), "payment_ref", cmd.PaymentRef())
			return h.audit(ctx, uow, nil, cmd)
		}
		return err
	}
	orderID := aggregate.ID()

	switch cmd.EventType() {
	case EventPaymentCompleted:
		performed, confirmErr := orderRepo.ConfirmPaymentOnce(ctx, orderID, cmd.PaidAt())
		if confirmErr != nil {
			return confirmErr
		}
		if err = h.audit(ctx, uow, &orderID, cmd); err != nil {
			return err
		}
		if !performed {
			h.logger.InfoContext(ctx, "duplicate payment event ignored",
				"order_id", orderID.String(), "payment_ref", cmd.PaymentRef())
			return nil
		}
		h.chainAfterPayment(ctx, aggregate)
		return nil

	case EventPaymentFailed:
		failErr := aggregate.FailPayment()
		if errors.Is(failErr, order.ErrPaymentNotPending) {
			h.logger.InfoContext(ctx, "stale payment failure ignored",
				"order_id", orderID.String(), "payment_ref", cmd.PaymentRef())
			return h.audit(ctx, uow, &orderID, cmd)
		}
		if failErr != nil {
			return failErr
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}
		if err = h.audit(ctx, uow, &orderID, cmd); err != nil {
			return err
		}
		h.notify(ctx, aggregate.BuyerPhone(), fmt.Sprintf(
			"Your payment for order %s failed. Send START to place a new order.",
			shortOrderRef(orderID)))
		return nil

	default:
		h.logger.InfoContext(ctx, "unhandled payment event type audited",
			"order_id", orderID.String(), "event_type", cmd.EventType())
		return h.audit(ctx, uow, &orderID, cmd)
	}
}

// audit appends the delivery to the audit log and commits the transaction.
func (h *ReconcilePaymentCommandHandler) audit(
	ctx context.Context,
	uow WebhookUoW,
	orderID *kernel.UUID,
	cmd ReconcilePaymentCommand,
) error {
	event, err := order.NewPaymentEvent(orderID, cmd.Provider(), cmd.EventType(), string(cmd.Payload()))
	if err != nil {
		return err
	}
	if err = uow.EventLogRepository().AddPaymentEvent(ctx, event); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

// chainAfterPayment runs the post-confirmation steps. The payment is already
// committed; each step here is logged on failure and re-runnable later.
func (h *ReconcilePaymentCommandHandler) chainAfterPayment(ctx context.Context, aggregate *order.Order) {
	orderID := aggregate.ID()

	if !aggregate.WeightComputed() {
		if weightCmd, err := NewComputeWeightCommand(orderID); err == nil {
			if _, err = h.weightHandler.Handle(ctx, weightCmd); err != nil {
				h.logger.ErrorContext(ctx, "post-payment weight computation failed",
					"order_id", orderID.String(), "error", err)
			}
		}
	}

	h.notify(ctx, aggregate.BuyerPhone(), fmt.Sprintf(
		"Payment received for order %s. Total %s. We are preparing your parcel.",
		shortOrderRef(orderID), aggregate.Total()))

	dispatchCmd, err := NewDispatchShipmentCommand(orderID)
	if err != nil {
		return
	}
	dispatched, err := h.dispatchHandler.Handle(ctx, dispatchCmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "post-payment dispatch failed",
			"order_id", orderID.String(), "error", err)
		return
	}
	if dispatched.TrackingID() != "" {
		h.notify(ctx, dispatched.BuyerPhone(), fmt.Sprintf(
			"Your order %s has been handed to %s. Tracking id: %s.",
			shortOrderRef(orderID), dispatched.CarrierName(), dispatched.TrackingID()))
	}
}

func (h *ReconcilePaymentCommandHandler) notify(ctx context.Context, to kernel.Phone, text string) {
	if err := h.messenger.SendText(ctx, to, text); err != nil {
		h.logger.ErrorContext(ctx, "notification send failed",
			"to", to.String(), "error", err)
	}
}

// shortOrderRef is the buyer-facing order reference: the first UUID block.
func shortOrderRef(id kernel.UUID) string {
	s := id.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
