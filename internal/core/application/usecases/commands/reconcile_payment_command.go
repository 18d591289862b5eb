package commands

import (
	"errors"
	"time"

	"schoolstore/internal/pkg/guard"
)

// Normalized payment webhook event types. The HTTP adapter maps each
// provider's wire names onto these before building the command.
const (
	EventPaymentCompleted = "payment.completed"
	EventPaymentFailed    = "payment.failed"
)

var (
	ErrReconcilePaymentCommandIsNotConstructed = errors.New(
		"ReconcilePaymentCommand must be created via NewReconcilePaymentCommand constructor",
	)
	ErrProviderIsRequired   = errors.New("payment provider name is required")
	ErrEventTypeIsRequired  = errors.New("payment event type is required")
	ErrPaymentRefIsRequired = errors.New("payment reference is required")

	// ErrInvalidWebhookSignature is returned when the webhook body fails
	// authenticity verification. No state changes before this check passes.
	ErrInvalidWebhookSignature = errors.New("webhook signature verification failed")
)

// ReconcilePaymentCommand represents one inbound payment webhook delivery:
// the raw body and signature for verification, plus the fields the adapter
// already parsed out of the provider's payload.
type ReconcilePaymentCommand struct { //nolint:recvcheck //using for validation
	provider   string
	payload    []byte
	signature  string
	eventType  string
	paymentRef string
	paidAt     time.Time

	guard guard.ConstructorGuard
}

// NewReconcilePaymentCommand creates a command for one webhook delivery.
// paidAt is the provider-reported payment time, used only for completed
// events.
func NewReconcilePaymentCommand(
	provider string,
	payload []byte,
	signature string,
	eventType string,
	paymentRef string,
	paidAt time.Time,
) (ReconcilePaymentCommand, error) {
	cmd := ReconcilePaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProvider(provider),
		cmd.setEventType(eventType),
		cmd.setPaymentRef(paymentRef),
	); err != nil {
		return ReconcilePaymentCommand{}, err
	}

	cmd.payload = payload
	cmd.signature = signature
	cmd.paidAt = paidAt
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReconcilePaymentCommand) Validate() error {
	return c.guard.Validate(ErrReconcilePaymentCommandIsNotConstructed)
}

// Provider returns the payment provider's name.
func (c ReconcilePaymentCommand) Provider() string { return c.provider }

// Payload returns the raw webhook body, exactly as received.
func (c ReconcilePaymentCommand) Payload() []byte { return c.payload }

// Signature returns the provider's signature header value.
func (c ReconcilePaymentCommand) Signature() string { return c.signature }

// EventType returns the normalized event type.
func (c ReconcilePaymentCommand) EventType() string { return c.eventType }

// PaymentRef returns the provider-side payment reference.
func (c ReconcilePaymentCommand) PaymentRef() string { return c.paymentRef }

// PaidAt returns the provider-reported payment time.
func (c ReconcilePaymentCommand) PaidAt() time.Time { return c.paidAt }

func (c *ReconcilePaymentCommand) setProvider(provider string) error {
	if provider == "" {
		return ErrProviderIsRequired
	}
	c.provider = provider
	return nil
}

func (c *ReconcilePaymentCommand) setEventType(eventType string) error {
	if eventType == "" {
		return ErrEventTypeIsRequired
	}
	c.eventType = eventType
	return nil
}

func (c *ReconcilePaymentCommand) setPaymentRef(paymentRef string) error {
	if paymentRef == "" {
		return ErrPaymentRefIsRequired
	}
	c.paymentRef = paymentRef
	return nil
}
