package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"schoolstore/internal/core/application/usecases/commands"
	"schoolstore/internal/core/domain/model/catalog"
	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/core/domain/model/order"
	"schoolstore/internal/core/ports"
	"schoolstore/internal/pkg/errs"
)

func newSubmitCommand(t *testing.T, itemID kernel.UUID) commands.SubmitOrderCommand {
	t.Helper()
	cmd, err := commands.NewSubmitOrderCommand(
		mustPhone(t, "+919876543210"), "Asha Rao", "1042",
		[]commands.ItemRequest{{ItemID: itemID, Quantity: 1}},
		order.DeliverySchool, "", "api: submit order",
	)
	require.NoError(t, err)
	return cmd
}

func TestSubmitOrderCommandHandler_Handle_CreatesOrderWithLinkAndWeight(t *testing.T) {
	ctx := t.Context()
	item := testCatalogItem(t, "Class IV Booklist", 50000, 10)
	school := testSchool(t, "1042", "Sunrise Public School")
	cmd := newSubmitCommand(t, item.ID())

	catalogReader := new(MockCatalogReader)
	catalogReader.On("SchoolByCode", ctx, "1042").Return(school, nil).Once()
	catalogReader.On("ItemsByIDs", ctx, mock.Anything).Return([]*catalog.Item{item}, nil).Times(2)

	orderRepo := new(MockOrderRepository)
	parcelRepo := new(MockParcelRepository)
	parcelRepo.On("Upsert", ctx, mock.AnythingOfType("*order.Parcel")).Return(nil).Once()

	// Add captures the aggregate so the weight pass can read it back.
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			created := args.Get(1).(*order.Order)
			orderRepo.On("Get", ctx, created.ID()).Return(created, nil).Once()
		}).Return(nil).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Times(2)

	payment := new(MockPaymentProvider)
	payment.On("CreatePaymentLink", ctx, mock.Anything, mustMoney(t, 50000), cmd.BuyerPhone()).
		Return(ports.PaymentLink{Ref: "pay_999", URL: "https://pay.test/pay_999"}, nil).Once()

	submitUoW := new(MockUoW)
	submitUoW.On("Begin", ctx).Return(nil).Once()
	submitUoW.On("OrderRepository").Return(orderRepo).Once()
	submitUoW.On("Commit", ctx).Return(nil).Once()
	submitUoW.On("Rollback", ctx).Return(nil).Once()

	weighUoW := new(MockUoW)
	weighUoW.On("Begin", ctx).Return(nil).Once()
	weighUoW.On("OrderRepository").Return(orderRepo).Once()
	weighUoW.On("ParcelRepository").Return(parcelRepo).Once()
	weighUoW.On("Commit", ctx).Return(nil).Once()
	weighUoW.On("Rollback", ctx).Return(nil).Once()

	linkUoW := new(MockUoW)
	linkUoW.On("Begin", ctx).Return(nil).Once()
	linkUoW.On("OrderRepository").Return(orderRepo).Once()
	linkUoW.On("Commit", ctx).Return(nil).Once()
	linkUoW.On("Rollback", ctx).Return(nil).Once()

	orderFactory := new(MockOrderUoWFactory)
	orderFactory.On("Create").Return(submitUoW).Once()
	orderFactory.On("Create").Return(linkUoW).Once()
	shippingFactory := new(MockShippingUoWFactory)
	shippingFactory.On("Create").Return(weighUoW).Once()

	weightHandler := commands.NewComputeWeightCommandHandler(shippingFactory, catalogReader, defaultSettings())
	handler := commands.NewSubmitOrderCommandHandler(
		orderFactory, catalogReader, defaultSettings(), payment, weightHandler, discardLogger())

	created, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, school.ID(), created.SchoolID())
	assert.Equal(t, order.StatusPending, created.Status())
	assert.Equal(t, order.PaymentStatusPending, created.PaymentStatus())
	assert.Equal(t, mustMoney(t, 50000), created.Total())
	assert.Equal(t, "pay_999", created.PaymentRef())
	assert.Equal(t, "https://pay.test/pay_999", created.PaymentLink())
	assert.Equal(t, int64(500), created.BilledWeightGrams())

	require.Len(t, created.Items(), 1)
	line := created.Items()[0]
	assert.Equal(t, item.ID(), line.CatalogItemID())
	assert.Equal(t, mustMoney(t, 50000), line.UnitPrice())

	catalogReader.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	parcelRepo.AssertExpectations(t)
	payment.AssertExpectations(t)
}

func TestSubmitOrderCommandHandler_Handle_UnknownSchoolCode(t *testing.T) {
	ctx := t.Context()
	item := testCatalogItem(t, "Class IV Booklist", 50000, 10)
	cmd := newSubmitCommand(t, item.ID())

	catalogReader := new(MockCatalogReader)
	catalogReader.On("SchoolByCode", ctx, "1042").
		Return(nil, errs.NewObjectNotFoundError("schoolCode", "1042")).Once()

	orderFactory := new(MockOrderUoWFactory)
	handler := commands.NewSubmitOrderCommandHandler(
		orderFactory, catalogReader, defaultSettings(), new(MockPaymentProvider), nil, discardLogger())

	created, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrInvalidSchool)
	assert.Nil(t, created)
	orderFactory.AssertNotCalled(t, "Create")
}

func TestSubmitOrderCommandHandler_Handle_UnknownItem(t *testing.T) {
	ctx := t.Context()
	item := testCatalogItem(t, "Class IV Booklist", 50000, 10)
	school := testSchool(t, "1042", "Sunrise Public School")
	cmd := newSubmitCommand(t, item.ID())

	catalogReader := new(MockCatalogReader)
	catalogReader.On("SchoolByCode", ctx, "1042").Return(school, nil).Once()
	catalogReader.On("ItemsByIDs", ctx, mock.Anything).Return([]*catalog.Item{}, nil).Once()

	orderFactory := new(MockOrderUoWFactory)
	handler := commands.NewSubmitOrderCommandHandler(
		orderFactory, catalogReader, defaultSettings(), new(MockPaymentProvider), nil, discardLogger())

	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrUnknownItem)
	orderFactory.AssertNotCalled(t, "Create")
}

func TestSubmitOrderCommandHandler_Handle_InsufficientStock(t *testing.T) {
	ctx := t.Context()
	item := testCatalogItem(t, "Class IV Booklist", 50000, 0)
	school := testSchool(t, "1042", "Sunrise Public School")
	cmd := newSubmitCommand(t, item.ID())

	catalogReader := new(MockCatalogReader)
	catalogReader.On("SchoolByCode", ctx, "1042").Return(school, nil).Once()
	catalogReader.On("ItemsByIDs", ctx, mock.Anything).Return([]*catalog.Item{item}, nil).Once()

	orderFactory := new(MockOrderUoWFactory)
	handler := commands.NewSubmitOrderCommandHandler(
		orderFactory, catalogReader, defaultSettings(), new(MockPaymentProvider), nil, discardLogger())

	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrInsufficientStock)
	orderFactory.AssertNotCalled(t, "Create")
}

// Link issuance failing must not fail the submission: the order is returned
// without a link and the recovery job picks it up later.
func TestSubmitOrderCommandHandler_Handle_PaymentLinkFailureTolerated(t *testing.T) {
	ctx := t.Context()
	item := testCatalogItem(t, "Class IV Booklist", 50000, 10)
	school := testSchool(t, "1042", "Sunrise Public School")
	cmd := newSubmitCommand(t, item.ID())

	catalogReader := new(MockCatalogReader)
	catalogReader.On("SchoolByCode", ctx, "1042").Return(school, nil).Once()
	catalogReader.On("ItemsByIDs", ctx, mock.Anything).Return([]*catalog.Item{item}, nil).Times(2)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			created := args.Get(1).(*order.Order)
			orderRepo.On("Get", ctx, created.ID()).Return(created, nil).Once()
		}).Return(nil).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	parcelRepo := new(MockParcelRepository)
	parcelRepo.On("Upsert", ctx, mock.AnythingOfType("*order.Parcel")).Return(nil).Once()

	payment := new(MockPaymentProvider)
	payment.On("CreatePaymentLink", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(ports.PaymentLink{}, errors.New("provider unavailable")).Once()

	submitUoW := new(MockUoW)
	submitUoW.On("Begin", ctx).Return(nil).Once()
	submitUoW.On("OrderRepository").Return(orderRepo).Once()
	submitUoW.On("Commit", ctx).Return(nil).Once()
	submitUoW.On("Rollback", ctx).Return(nil).Once()

	weighUoW := new(MockUoW)
	weighUoW.On("Begin", ctx).Return(nil).Once()
	weighUoW.On("OrderRepository").Return(orderRepo).Once()
	weighUoW.On("ParcelRepository").Return(parcelRepo).Once()
	weighUoW.On("Commit", ctx).Return(nil).Once()
	weighUoW.On("Rollback", ctx).Return(nil).Once()

	orderFactory := new(MockOrderUoWFactory)
	orderFactory.On("Create").Return(submitUoW).Once()
	shippingFactory := new(MockShippingUoWFactory)
	shippingFactory.On("Create").Return(weighUoW).Once()

	weightHandler := commands.NewComputeWeightCommandHandler(shippingFactory, catalogReader, defaultSettings())
	handler := commands.NewSubmitOrderCommandHandler(
		orderFactory, catalogReader, defaultSettings(), payment, weightHandler, discardLogger())

	created, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Empty(t, created.PaymentRef())
	assert.Empty(t, created.PaymentLink())
	orderFactory.AssertNumberOfCalls(t, "Create", 1)
	payment.AssertExpectations(t)
}

func TestNewSubmitOrderCommand_Validation(t *testing.T) {
	_, err := commands.NewSubmitOrderCommand(
		kernel.Phone{}, "", "", nil, order.DeliverySchool, "", "")
	require.ErrorIs(t, err, commands.ErrNoItemsRequested)

	var zero commands.SubmitOrderCommand
	require.ErrorIs(t, zero.Validate(), commands.ErrSubmitOrderCommandIsNotConstructed)
}
