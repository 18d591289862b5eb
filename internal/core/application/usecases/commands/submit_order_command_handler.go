package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"schoolstore/internal/core/domain/model/catalog"
	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/core/domain/model/order"
	"schoolstore/internal/core/ports"
	"schoolstore/internal/pkg/errs"
)

// SubmitOrderCommandHandler assembles an order from a completed selection:
// resolves the school, snapshots current prices, checks stock, and persists
// the order in pending/pending state within one transaction.
//
// After the order is committed, the handler runs two best-effort follow-ups:
// weight computation and payment link issuance. Their failures are logged and
// leave the corresponding order fields unset; both are recoverable later (the
// weight endpoint and the payment link recovery job), so they never fail the
// submission.
type SubmitOrderCommandHandler struct {
	uowFactory    OrderUoWFactory
	catalog       ports.CatalogReader
	settings      ports.SettingsReader
	payment       ports.PaymentProvider
	weightHandler *ComputeWeightCommandHandler
	logger        *slog.Logger
}

// NewSubmitOrderCommandHandler creates a handler for order submission.
func NewSubmitOrderCommandHandler(
	uowFactory OrderUoWFactory,
	catalogReader ports.CatalogReader,
	settings ports.SettingsReader,
	payment ports.PaymentProvider,
	weightHandler *ComputeWeightCommandHandler,
	logger *slog.Logger,
) *SubmitOrderCommandHandler {
	return &SubmitOrderCommandHandler{
		uowFactory:    uowFactory,
		catalog:       catalogReader,
		settings:      settings,
		payment:       payment,
		weightHandler: weightHandler,
		logger:        logger,
	}
}

// Handle assembles and persists the order, then issues the payment link and
// computes the weight best-effort. Returns the created order; its payment
// link is empty when issuance failed.
func (h *SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	school, err := h.catalog.SchoolByCode(ctx, cmd.SchoolCode())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: code %s", ErrInvalidSchool, cmd.SchoolCode())
		}
		return nil, err
	}

	lines, err := h.buildLines(ctx, cmd.Items())
	if err != nil {
		return nil, err
	}

	charge := h.settings.DeliveryCharge(ctx, cmd.DeliveryType())
	created, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.BuyerPhone(),
		cmd.BuyerName(),
		school.ID(),
		cmd.DeliveryType(),
		cmd.Address(),
		lines,
		charge,
		cmd.RawRequest(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	// The order exists from here on. Follow-ups must not undo it.
	h.computeWeightBestEffort(ctx, created.ID())
	h.issuePaymentLink(ctx, created)

	return created, nil
}

func (h *SubmitOrderCommandHandler) buildLines(ctx context.Context, requests []ItemRequest) ([]order.Item, error) {
	ids := make([]kernel.UUID, 0, len(requests))
	for _, request := range requests {
		ids = append(ids, request.ItemID)
	}

	catalogItems, err := h.catalog.ItemsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[kernel.UUID]*catalog.Item, len(catalogItems))
	for _, item := range catalogItems {
		byID[item.ID()] = item
	}

	lines := make([]order.Item, 0, len(requests))
	for _, request := range requests {
		item, ok := byID[request.ItemID]
		if !ok || !item.IsActive() {
			return nil, fmt.Errorf("%w: item %s", ErrUnknownItem, request.ItemID)
		}
		if !item.HasStock(request.Quantity) {
			return nil, fmt.Errorf("%w: item %s, requested %d, in stock %d",
				ErrInsufficientStock, item.Name(), request.Quantity, item.Stock())
		}

		line, lineErr := order.NewItem(item.ID(), item.Name(), request.Quantity, item.Price())
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (h *SubmitOrderCommandHandler) computeWeightBestEffort(ctx context.Context, orderID kernel.UUID) {
	cmd, err := NewComputeWeightCommand(orderID)
	if err != nil {
		h.logger.ErrorContext(ctx, "weight computation skipped",
			"order_id", orderID.String(), "error", err)
		return
	}
	if _, err = h.weightHandler.Handle(ctx, cmd); err != nil {
		h.logger.ErrorContext(ctx, "weight computation failed",
			"order_id", orderID.String(), "error", err)
	}
}

// issuePaymentLink requests a payment link and stores it on the order in a
// separate transaction. The link request happens outside any transaction so
// a slow provider never holds a database lock.
func (h *SubmitOrderCommandHandler) issuePaymentLink(ctx context.Context, created *order.Order) {
	link, err := h.payment.CreatePaymentLink(ctx, created.ID(), created.Total(), created.BuyerPhone())
	if err != nil {
		h.logger.ErrorContext(ctx, "payment link issuance failed",
			"order_id", created.ID().String(), "error", err)
		return
	}

	if err = created.AttachPaymentLink(link.Ref, link.URL); err != nil {
		h.logger.ErrorContext(ctx, "payment link rejected by order",
			"order_id", created.ID().String(), "error", err)
		return
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		h.logger.ErrorContext(ctx, "payment link persistence failed",
			"order_id", created.ID().String(), "error", err)
		return
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Update(ctx, created); err == nil {
		err = uow.Commit(ctx)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "payment link persistence failed",
			"order_id", created.ID().String(), "error", err)
	}
}
