package ports

import (
	"context"

	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/core/domain/model/order"
)

// PaymentLink is the payment provider's response to a link creation request:
// the provider-side reference later echoed in webhooks, and the URL sent to
// the buyer.
type PaymentLink struct {
	Ref string
	URL string
}

// PaymentProvider defines the outbound contract to the payment gateway.
// Calls are fire-and-forget from the caller's perspective: a failure is
// logged and the order stays recoverable, it never rolls back the
// transaction that created the order.
type PaymentProvider interface {
	// CreatePaymentLink requests a payment link for the given amount.
	CreatePaymentLink(ctx context.Context, orderID kernel.UUID, amount kernel.Money,
		buyerPhone kernel.Phone) (PaymentLink, error)

	// VerifyWebhookSignature checks the provider's HMAC signature over an
	// inbound webhook body. A non-nil error means the payload is not
	// authentic and must be rejected without side effects.
	VerifyWebhookSignature(payload []byte, signature string) error
}

// ShipmentRequest carries everything the courier needs to create a shipment.
type ShipmentRequest struct {
	OrderID           kernel.UUID
	BuyerPhone        kernel.Phone
	DeliveryType      order.DeliveryType
	Address           string
	BilledWeightGrams int64
	PackageCount      int
}

// Shipment is the courier's response: the tracking id (AWB) and the carrier
// that will handle the parcel.
type Shipment struct {
	TrackingID string
	Carrier    string
}

// CourierProvider defines the outbound contract to the courier aggregator.
type CourierProvider interface {
	// CreateShipment books a shipment and returns its tracking assignment.
	CreateShipment(ctx context.Context, request ShipmentRequest) (Shipment, error)
}

// Messenger defines the outbound contract to the conversational messaging
// channel. Sends are fire-and-forget: failures are logged, never retried,
// and never block the state change that produced the message.
type Messenger interface {
	// SendText delivers a plain-text message to the given phone number.
	SendText(ctx context.Context, to kernel.Phone, text string) error
}
