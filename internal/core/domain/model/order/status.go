package order

import (
	"fmt"

	"schoolstore/internal/pkg/errs"
)

// Status represents the lifecycle state of an order from creation through
// delivery. Forward motion follows a ranked progression:
//
//	pending ──> confirmed ──> processing ──> out_for_delivery ──> delivered
//
// with two terminal side exits: cancelled (allowed from any non-delivered
// state) and payment_failed (entered only on a failed payment event).
// Ranked states never move backward; a courier event that would regress an
// order is treated as stale and skipped.
type Status int

const (
	// StatusUnknown catches uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial state: order created, payment outstanding.
	StatusPending

	// StatusConfirmed means payment completed.
	StatusConfirmed

	// StatusProcessing means a shipment has been requested from the courier.
	StatusProcessing

	// StatusOutForDelivery means the courier reported the parcel in transit.
	StatusOutForDelivery

	// StatusDelivered is the successful terminal state.
	StatusDelivered

	// StatusCancelled is the terminal state for cancelled or returned orders.
	StatusCancelled

	// StatusPaymentFailed is the terminal state entered when the payment
	// provider reports a failed payment. A new order must be created to retry.
	StatusPaymentFailed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "unknown",
		StatusPending:        "pending",
		StatusConfirmed:      "confirmed",
		StatusProcessing:     "processing",
		StatusOutForDelivery: "out_for_delivery",
		StatusDelivered:      "delivered",
		StatusCancelled:      "cancelled",
		StatusPaymentFailed:  "payment_failed",
	}
}

// statusRanks orders the forward-only delivery progression. Terminal side
// states (cancelled, payment_failed) carry no rank.
func statusRanks() map[Status]int {
	return map[Status]int{
		StatusPending:        0,
		StatusConfirmed:      1,
		StatusProcessing:     2,
		StatusOutForDelivery: 3,
		StatusDelivered:      4,
	}
}

// Validate rejects StatusUnknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire-format name of the status, e.g. "out_for_delivery".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses the wire-format name of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusPaymentFailed
}

// CanAdvanceTo reports whether moving to next is a strictly forward step in
// the ranked progression. Unranked states on either side make the answer no.
func (s Status) CanAdvanceTo(next Status) bool {
	from, ok := statusRanks()[s]
	if !ok {
		return false
	}
	to, ok := statusRanks()[next]
	if !ok {
		return false
	}
	return to > from
}

// CanCancel reports whether the order may still be cancelled from this state.
// Delivered orders and orders already in a terminal side state cannot.
func (s Status) CanCancel() bool {
	return !s.IsTerminal() && s != StatusUnknown
}

// PaymentStatus is the payment leg of an order, tracked separately from the
// delivery lifecycle. It changes at most once: pending to paid, or pending
// to failed.
type PaymentStatus int

const (
	// PaymentStatusUnknown catches uninitialized PaymentStatus values.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentStatusPending means no real payment event has been reconciled.
	PaymentStatusPending

	// PaymentStatusPaid means a completed payment was reconciled exactly once.
	PaymentStatusPaid

	// PaymentStatusFailed means the provider reported a failed payment.
	PaymentStatusFailed
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown: "unknown",
		PaymentStatusPending: "pending",
		PaymentStatusPaid:    "paid",
		PaymentStatusFailed:  "failed",
	}
}

// Validate rejects PaymentStatusUnknown and out-of-range values.
func (s PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusStrings()[s]; !ok || s == PaymentStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// PaymentStatusFromString parses the wire-format name of a payment status.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if str == s && status != PaymentStatusUnknown {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause("payment status",
		fmt.Errorf("%q is not a valid payment status", s))
}

// String returns the wire-format name of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// DeliveryType distinguishes delivery to the school from delivery to the
// buyer's home address.
type DeliveryType int

const (
	// DeliveryTypeUnknown catches uninitialized DeliveryType values.
	DeliveryTypeUnknown DeliveryType = iota

	// DeliverySchool ships the order to the school's address.
	DeliverySchool

	// DeliveryHome ships the order to the buyer's home address.
	DeliveryHome
)

// DeliveryTypeFromChoice maps the buyer's "1"/"2" menu input to a
// DeliveryType. Any other input is invalid.
func DeliveryTypeFromChoice(choice string) (DeliveryType, error) {
	switch choice {
	case "1":
		return DeliverySchool, nil
	case "2":
		return DeliveryHome, nil
	default:
		return DeliveryTypeUnknown, errs.NewValueIsInvalidErrorWithCause("delivery choice",
			fmt.Errorf("%q is not 1 or 2", choice))
	}
}

// DeliveryTypeFromString parses the wire-format name ("school"/"home").
func DeliveryTypeFromString(s string) (DeliveryType, error) {
	switch s {
	case "school":
		return DeliverySchool, nil
	case "home":
		return DeliveryHome, nil
	default:
		return DeliveryTypeUnknown, errs.NewValueIsInvalidErrorWithCause("delivery type",
			fmt.Errorf("%q is not school or home", s))
	}
}

// Validate rejects DeliveryTypeUnknown and out-of-range values.
func (t DeliveryType) Validate() error {
	if t != DeliverySchool && t != DeliveryHome {
		return errs.NewValueIsInvalidErrorWithCause("delivery type",
			fmt.Errorf("%d is not a valid delivery type", t))
	}
	return nil
}

// String returns the wire-format name of the delivery type.
func (t DeliveryType) String() string {
	switch t {
	case DeliverySchool:
		return "school"
	case DeliveryHome:
		return "home"
	default:
		return "unknown"
	}
}
