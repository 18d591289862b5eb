package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/core/domain/model/order"
	"schoolstore/internal/core/domain/services"
	"schoolstore/internal/core/ports"
	"schoolstore/internal/pkg/errs"
)

// ApplyCourierEventCommandHandler consumes courier webhook deliveries: it
// resolves the order by tracking id, normalizes the carrier's free-text
// status, and advances the order's lifecycle.
//
// Status application is monotonic: a stale event that would move the ranked
// progression backward is audited but changes nothing. Events whose tracking
// id resolves to no order, and statuses no rule matches, are likewise
// audited and acknowledged so the carrier never retries indefinitely.
type ApplyCourierEventCommandHandler struct {
	uowFactory WebhookUoWFactory
	mapper     services.CourierStatusMapper
	messenger  ports.Messenger
	logger     *slog.Logger
}

// NewApplyCourierEventCommandHandler creates a handler for courier webhooks.
func NewApplyCourierEventCommandHandler(
	uowFactory WebhookUoWFactory,
	messenger ports.Messenger,
	logger *slog.Logger,
) *ApplyCourierEventCommandHandler {
	return &ApplyCourierEventCommandHandler{
		uowFactory: uowFactory,
		mapper:     services.NewCourierStatusMapper(),
		messenger:  messenger,
		logger:     logger,
	}
}

// Handle processes one courier webhook delivery. A nil return acknowledges
// the delivery regardless of whether the order moved.
func (h *ApplyCourierEventCommandHandler) Handle(ctx context.Context, cmd ApplyCourierEventCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	mapped, matched := h.mapper.Map(cmd.StatusText())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetByTrackingID(ctx, cmd.TrackingID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			h.logger.WarnContext(ctx, "courier event resolves to no order",
				"carrier", cmd.Carrier(), "tracking_id", cmd.TrackingID())
			return h.audit(ctx, uow, nil, cmd, mapped)
		}
		return err
	}
	orderID := aggregate.ID()

	moved := false
	if matched {
		moved, err = aggregate.ApplyStatus(mapped)
		if err != nil {
			return err
		}
		if moved {
			if err = orderRepo.Update(ctx, aggregate); err != nil {
				return err
			}
		}
	} else {
		h.logger.InfoContext(ctx, "unmatched courier status audited",
			"order_id", orderID.String(), "status_text", cmd.StatusText())
	}

	if err = h.audit(ctx, uow, &orderID, cmd, mapped); err != nil {
		return err
	}

	if moved {
		h.notifyProgress(ctx, aggregate)
	}
	return nil
}

func (h *ApplyCourierEventCommandHandler) audit(
	ctx context.Context,
	uow WebhookUoW,
	orderID *kernel.UUID,
	cmd ApplyCourierEventCommand,
	mapped order.Status,
) error {
	event, err := order.NewCourierEvent(
		orderID, cmd.Carrier(), cmd.TrackingID(), cmd.StatusText(), mapped, cmd.Payload())
	if err != nil {
		return err
	}
	if err = uow.EventLogRepository().AddCourierEvent(ctx, event); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

func (h *ApplyCourierEventCommandHandler) notifyProgress(ctx context.Context, aggregate *order.Order) {
	var text string
	switch aggregate.Status() {
	case order.StatusOutForDelivery:
		text = fmt.Sprintf("Your order %s is out for delivery.", shortOrderRef(aggregate.ID()))
	case order.StatusDelivered:
		text = fmt.Sprintf("Your order %s has been delivered. Thank you!", shortOrderRef(aggregate.ID()))
	case order.StatusCancelled:
		text = fmt.Sprintf("Your order %s was cancelled by the courier. "+
			"Please contact the school office.", shortOrderRef(aggregate.ID()))
	default:
		return
	}

	if err := h.messenger.SendText(ctx, aggregate.BuyerPhone(), text); err != nil {
		h.logger.ErrorContext(ctx, "notification send failed",
			"to", aggregate.BuyerPhone().String(), "error", err)
	}
}
