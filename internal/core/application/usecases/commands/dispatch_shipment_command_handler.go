package commands

import (
	"context"

	"schoolstore/internal/core/domain/model/order"
	"schoolstore/internal/core/ports"
)

// DispatchShipmentCommandHandler books a shipment with the courier provider
// and records the tracking assignment on the order and its parcel. When the
// order's weight has not been computed yet it computes it synchronously
// first; the courier cannot quote a shipment without a billed weight.
//
// Dispatch is idempotent at the aggregate level: re-dispatching an order
// that already carries the same tracking id is a no-op.
type DispatchShipmentCommandHandler struct {
	uowFactory    ShippingUoWFactory
	catalog       ports.CatalogReader
	courier       ports.CourierProvider
	weightHandler *ComputeWeightCommandHandler
}

// NewDispatchShipmentCommandHandler creates a handler for shipment dispatch.
func NewDispatchShipmentCommandHandler(
	uowFactory ShippingUoWFactory,
	catalogReader ports.CatalogReader,
	courier ports.CourierProvider,
	weightHandler *ComputeWeightCommandHandler,
) *DispatchShipmentCommandHandler {
	return &DispatchShipmentCommandHandler{
		uowFactory:    uowFactory,
		catalog:       catalogReader,
		courier:       courier,
		weightHandler: weightHandler,
	}
}

// Handle dispatches the order and returns it with tracking assigned.
func (h *DispatchShipmentCommandHandler) Handle(
	ctx context.Context,
	cmd DispatchShipmentCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.ensureWeight(ctx, cmd); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	address, err := h.recipientAddress(ctx, aggregate)
	if err != nil {
		return nil, err
	}

	shipment, err := h.courier.CreateShipment(ctx, ports.ShipmentRequest{
		OrderID:           aggregate.ID(),
		BuyerPhone:        aggregate.BuyerPhone(),
		DeliveryType:      aggregate.DeliveryType(),
		Address:           address,
		BilledWeightGrams: aggregate.BilledWeightGrams(),
		PackageCount:      aggregate.PackageCount(),
	})
	if err != nil {
		return nil, err
	}

	if err = aggregate.AssignTracking(shipment.TrackingID, shipment.Carrier); err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	parcelRepo := uow.ParcelRepository()
	parcels, err := parcelRepo.GetByOrder(ctx, aggregate.ID())
	if err != nil {
		return nil, err
	}
	for _, parcel := range parcels {
		if err = parcel.AssignTracking(shipment.TrackingID); err != nil {
			return nil, err
		}
		if err = parcelRepo.Upsert(ctx, parcel); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return aggregate, nil
}

// ensureWeight computes the order's weight synchronously when it has not
// been computed yet. The computation runs in its own transaction before the
// dispatch transaction opens.
func (h *DispatchShipmentCommandHandler) ensureWeight(ctx context.Context, cmd DispatchShipmentCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	_ = uow.Rollback(ctx)
	if err != nil {
		return err
	}
	if aggregate.WeightComputed() {
		return nil
	}

	weightCmd, err := NewComputeWeightCommand(cmd.OrderID())
	if err != nil {
		return err
	}
	_, err = h.weightHandler.Handle(ctx, weightCmd)
	return err
}

func (h *DispatchShipmentCommandHandler) recipientAddress(ctx context.Context, aggregate *order.Order) (string, error) {
	if aggregate.DeliveryType() == order.DeliveryHome {
		return aggregate.DeliveryAddress(), nil
	}
	school, err := h.catalog.SchoolByID(ctx, aggregate.SchoolID())
	if err != nil {
		return "", err
	}
	return school.Address(), nil
}
