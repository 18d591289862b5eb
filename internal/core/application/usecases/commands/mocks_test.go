package commands_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"schoolstore/internal/core/application/usecases/commands"
	"schoolstore/internal/core/domain/model/catalog"
	"schoolstore/internal/core/domain/model/conversation"
	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/core/domain/model/order"
	"schoolstore/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByPaymentRef(ctx context.Context, ref string) (*order.Order, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByTrackingID(ctx context.Context, trackingID string) (*order.Order, error) {
	args := m.Called(ctx, trackingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllMissingPaymentLink(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ConfirmPaymentOnce(ctx context.Context, id kernel.UUID, paidAt time.Time) (bool, error) {
	args := m.Called(ctx, id, paidAt)
	return args.Bool(0), args.Error(1)
}

type MockConversationRepository struct{ mock.Mock }

func (m *MockConversationRepository) Get(ctx context.Context, phone kernel.Phone) (*conversation.Conversation, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*conversation.Conversation), args.Error(1)
}

func (m *MockConversationRepository) Upsert(ctx context.Context, c *conversation.Conversation) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockConversationRepository) Delete(ctx context.Context, phone kernel.Phone) error {
	args := m.Called(ctx, phone)
	return args.Error(0)
}

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Upsert(ctx context.Context, p *order.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Parcel, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Parcel), args.Error(1)
}

type MockEventLogRepository struct{ mock.Mock }

func (m *MockEventLogRepository) AddPaymentEvent(ctx context.Context, e *order.PaymentEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEventLogRepository) AddCourierEvent(ctx context.Context, e *order.CourierEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type MockCatalogReader struct{ mock.Mock }

func (m *MockCatalogReader) SchoolByCode(ctx context.Context, code string) (*catalog.School, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.School), args.Error(1)
}

func (m *MockCatalogReader) SchoolByID(ctx context.Context, id kernel.UUID) (*catalog.School, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.School), args.Error(1)
}

func (m *MockCatalogReader) ClassesBySchool(ctx context.Context, schoolID kernel.UUID) ([]*catalog.SchoolClass, error) {
	args := m.Called(ctx, schoolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.SchoolClass), args.Error(1)
}

func (m *MockCatalogReader) GroupsByClass(ctx context.Context, classID kernel.UUID) ([]*catalog.ItemGroup, error) {
	args := m.Called(ctx, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.ItemGroup), args.Error(1)
}

func (m *MockCatalogReader) ActiveItemsByGroup(ctx context.Context, groupID kernel.UUID) ([]*catalog.Item, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Item), args.Error(1)
}

func (m *MockCatalogReader) ItemsByIDs(ctx context.Context, ids []kernel.UUID) ([]*catalog.Item, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Item), args.Error(1)
}

// StubSettingsReader returns fixed defaults without mock bookkeeping; the
// handlers under test only ever read, never assert on, settings.
type StubSettingsReader struct {
	Packaging   int64
	Divisor     float64
	Rounding    int64
	SchoolPaise int64
	HomePaise   int64
}

func defaultSettings() *StubSettingsReader {
	return &StubSettingsReader{
		Packaging:   50,
		Divisor:     5000,
		Rounding:    500,
		SchoolPaise: 0,
		HomePaise:   8000,
	}
}

func (s *StubSettingsReader) PackagingWeightGrams(context.Context) int64 { return s.Packaging }
func (s *StubSettingsReader) VolumetricDivisor(context.Context) float64 { return s.Divisor }
func (s *StubSettingsReader) WeightRoundingGrams(context.Context) int64 { return s.Rounding }

func (s *StubSettingsReader) DeliveryCharge(_ context.Context, t order.DeliveryType) kernel.Money {
	paise := s.SchoolPaise
	if t == order.DeliveryHome {
		paise = s.HomePaise
	}
	money, err := kernel.NewMoney(paise)
	if err != nil {
		panic(err)
	}
	return money
}

type MockPaymentProvider struct{ mock.Mock }

func (m *MockPaymentProvider) CreatePaymentLink(
	ctx context.Context, orderID kernel.UUID, amount kernel.Money, phone kernel.Phone,
) (ports.PaymentLink, error) {
	args := m.Called(ctx, orderID, amount, phone)
	return args.Get(0).(ports.PaymentLink), args.Error(1)
}

func (m *MockPaymentProvider) VerifyWebhookSignature(payload []byte, signature string) error {
	args := m.Called(payload, signature)
	return args.Error(0)
}

type MockCourierProvider struct{ mock.Mock }

func (m *MockCourierProvider) CreateShipment(ctx context.Context, req ports.ShipmentRequest) (ports.Shipment, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.Shipment), args.Error(1)
}

type MockMessenger struct{ mock.Mock }

func (m *MockMessenger) SendText(ctx context.Context, to kernel.Phone, text string) error {
	args := m.Called(ctx, to, text)
	return args.Error(0)
}

// MockUoW satisfies every unit of work flavor the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ConversationRepository() ports.ConversationRepository {
	args := m.Called()
	return args.Get(0).(ports.ConversationRepository)
}

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockUoW) EventLogRepository() ports.EventLogRepository {
	args := m.Called()
	return args.Get(0).(ports.EventLogRepository)
}

type MockWebhookUoWFactory struct{ mock.Mock }

func (m *MockWebhookUoWFactory) Create() commands.WebhookUoW {
	args := m.Called()
	return args.Get(0).(commands.WebhookUoW)
}

type MockShippingUoWFactory struct{ mock.Mock }

func (m *MockShippingUoWFactory) Create() commands.ShippingUoW {
	args := m.Called()
	return args.Get(0).(commands.ShippingUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockConversationUoWFactory struct{ mock.Mock }

func (m *MockConversationUoWFactory) Create() commands.ConversationUoW {
	args := m.Called()
	return args.Get(0).(commands.ConversationUoW)
}
