package commands

import (
	"context"
	"fmt"

	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/core/domain/model/order"
	"schoolstore/internal/core/domain/services"
	"schoolstore/internal/core/ports"
	"schoolstore/internal/pkg/errs"
)

// ComputeWeightCommandHandler runs the weight calculator for an order and
// persists the result: the three weights on the order and the single parcel
// record (index 0). The computation is deterministic for an unchanged order,
// so re-running it is always safe.
type ComputeWeightCommandHandler struct {
	uowFactory ShippingUoWFactory
	catalog    ports.CatalogReader
	settings   ports.SettingsReader
	calculator services.WeightCalculator
}

// NewComputeWeightCommandHandler creates a handler for weight computation.
func NewComputeWeightCommandHandler(
	uowFactory ShippingUoWFactory,
	catalogReader ports.CatalogReader,
	settings ports.SettingsReader,
) *ComputeWeightCommandHandler {
	return &ComputeWeightCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalogReader,
		settings:   settings,
		calculator: services.NewWeightCalculator(),
	}
}

// Handle computes and persists the order's weights, returning the result.
func (h *ComputeWeightCommandHandler) Handle(
	ctx context.Context,
	cmd ComputeWeightCommand,
) (services.WeightResult, error) {
	if err := cmd.Validate(); err != nil {
		return services.WeightResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.WeightResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return services.WeightResult{}, err
	}

	lines, err := h.weightLines(ctx, aggregate.Items())
	if err != nil {
		return services.WeightResult{}, err
	}

	result, err := h.calculator.Calculate(
		lines,
		h.settings.PackagingWeightGrams(ctx),
		h.settings.VolumetricDivisor(ctx),
		h.settings.WeightRoundingGrams(ctx),
	)
	if err != nil {
		return services.WeightResult{}, err
	}

	if err = aggregate.AssignWeights(
		result.ActualGrams, result.VolumetricGrams, result.BilledGrams, result.PackageCount,
	); err != nil {
		return services.WeightResult{}, err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return services.WeightResult{}, err
	}

	parcel, err := order.NewParcel(
		aggregate.ID(), 0,
		result.ActualGrams, result.VolumetricGrams, result.BilledGrams,
		result.Dims,
	)
	if err != nil {
		return services.WeightResult{}, err
	}
	if aggregate.TrackingID() != "" {
		if err = parcel.AssignTracking(aggregate.TrackingID()); err != nil {
			return services.WeightResult{}, err
		}
	}
	if err = uow.ParcelRepository().Upsert(ctx, parcel); err != nil {
		return services.WeightResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return services.WeightResult{}, err
	}
	return result, nil
}

func (h *ComputeWeightCommandHandler) weightLines(
	ctx context.Context,
	items []order.Item,
) ([]services.WeightLine, error) {
	ids := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.CatalogItemID())
	}

	catalogItems, err := h.catalog.ItemsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	weights := make(map[kernel.UUID]services.WeightLine, len(catalogItems))
	for _, item := range catalogItems {
		weights[item.ID()] = services.WeightLine{
			WeightGrams: item.WeightGrams(),
			Dims:        item.Dimensions(),
		}
	}

	lines := make([]services.WeightLine, 0, len(items))
	for _, item := range items {
		line, ok := weights[item.CatalogItemID()]
		if !ok {
			return nil, errs.NewObjectNotFoundErrorWithCause("catalog item",
				item.CatalogItemID().String(),
				fmt.Errorf("order line references a deleted catalog item"))
		}
		line.Quantity = item.Quantity()
		lines = append(lines, line)
	}
	return lines, nil
}
