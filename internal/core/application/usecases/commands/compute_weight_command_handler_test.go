package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"schoolstore/internal/core/application/usecases/commands"
	"schoolstore/internal/core/domain/model/catalog"
	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/core/domain/model/order"
	"schoolstore/internal/pkg/errs"
)

func catalogItemForLine(t *testing.T, line order.Item, weightGrams int64, l, w, h float64) *catalog.Item {
	t.Helper()
	item, err := catalog.RestoreItem(
		line.CatalogItemID(), kernel.NewUUID(), line.Name(),
		line.UnitPrice(), 10, weightGrams, mustDims(t, l, w, h), true)
	require.NoError(t, err)
	return item
}

func TestComputeWeightCommandHandler_Handle_PersistsWeightsAndParcel(t *testing.T) {
	ctx := t.Context()
	aggregate := testPendingOrder(t, "pay_123")
	item := catalogItemForLine(t, aggregate.Items()[0], 200, 20, 15, 2)
	cmd, err := commands.NewComputeWeightCommand(aggregate.ID())
	require.NoError(t, err)

	catalogReader := new(MockCatalogReader)
	orderRepo := new(MockOrderRepository)
	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		catalogReader.On("ItemsByIDs", ctx, []kernel.UUID{item.ID()}).
			Return([]*catalog.Item{item}, nil).Once(),
		orderRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Upsert", ctx, mock.MatchedBy(func(p *order.Parcel) bool {
			return p.OrderID() == aggregate.ID() && p.Index() == 0 && p.BilledWeightGrams() == 500
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShippingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewComputeWeightCommandHandler(factory, catalogReader, defaultSettings())

	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(250), result.ActualGrams)
	assert.Equal(t, int64(120), result.VolumetricGrams)
	assert.Equal(t, int64(500), result.BilledGrams)
	assert.Equal(t, 1, result.PackageCount)
	assert.Equal(t, int64(250), aggregate.ActualWeightGrams())
	assert.Equal(t, int64(500), aggregate.BilledWeightGrams())
	assert.True(t, aggregate.WeightComputed())
	orderRepo.AssertExpectations(t)
	parcelRepo.AssertExpectations(t)
	catalogReader.AssertExpectations(t)
	uow.AssertExpectations(t)
}

// Recomputing after dispatch keeps the tracking id on the parcel.
func TestComputeWeightCommandHandler_Handle_CarriesTrackingToParcel(t *testing.T) {
	ctx := t.Context()
	aggregate := testPendingOrder(t, "pay_123")
	item := catalogItemForLine(t, aggregate.Items()[0], 200, 20, 15, 2)
	require.NoError(t, aggregate.AssignWeights(250, 120, 500, 1))
	require.NoError(t, aggregate.AssignTracking("AWB123", "delhivery"))
	cmd, err := commands.NewComputeWeightCommand(aggregate.ID())
	require.NoError(t, err)

	catalogReader := new(MockCatalogReader)
	catalogReader.On("ItemsByIDs", ctx, mock.Anything).Return([]*catalog.Item{item}, nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	orderRepo.On("Update", ctx, aggregate).Return(nil).Once()

	parcelRepo := new(MockParcelRepository)
	parcelRepo.On("Upsert", ctx, mock.MatchedBy(func(p *order.Parcel) bool {
		return p.TrackingID() == "AWB123"
	})).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShippingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewComputeWeightCommandHandler(factory, catalogReader, defaultSettings())

	_, err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	parcelRepo.AssertExpectations(t)
}

func TestComputeWeightCommandHandler_Handle_DeletedCatalogItem(t *testing.T) {
	ctx := t.Context()
	aggregate := testPendingOrder(t, "pay_123")
	cmd, err := commands.NewComputeWeightCommand(aggregate.ID())
	require.NoError(t, err)

	catalogReader := new(MockCatalogReader)
	catalogReader.On("ItemsByIDs", ctx, mock.Anything).Return([]*catalog.Item{}, nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShippingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewComputeWeightCommandHandler(factory, catalogReader, defaultSettings())

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit")
}

func TestNewComputeWeightCommand_Validation(t *testing.T) {
	_, err := commands.NewComputeWeightCommand(kernel.UUID{})
	require.Error(t, err)

	var zero commands.ComputeWeightCommand
	require.ErrorIs(t, zero.Validate(), commands.ErrComputeWeightCommandIsNotConstructed)
}
