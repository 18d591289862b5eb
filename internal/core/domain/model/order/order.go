package order

import (
	"errors"
	"time"

	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrAddressIsRequired is returned when a home-delivery order carries no
	// delivery address.
	ErrAddressIsRequired = errors.New("delivery address is required for home delivery")

	// ErrNoItems is returned when an order is created without any lines.
	ErrNoItems = errors.New("order must contain at least one item")

	// ErrPaymentNotPending is returned when a payment transition is applied
	// to an order whose payment leg already settled. Duplicate webhook
	// deliveries surface as this error and must not repeat side effects.
	ErrPaymentNotPending = errors.New("order payment is not pending")

	// ErrTotalMismatch is returned when restoring an order whose stored
	// total does not equal subtotal plus delivery charge.
	ErrTotalMismatch = errors.New("order total does not equal subtotal plus delivery charge")

	// ErrWeightNotComputed is returned when tracking is assigned before the
	// billed weight is known.
	ErrWeightNotComputed = errors.New("order weight has not been computed")
)

// Order is the aggregate root of the order lifecycle. It is created by the
// order assembler in pending/pending state, settled exactly once by the
// payment reconciler, weighed by the weight calculator, and advanced through
// the courier leg by the dispatcher and the status mapper.
//
// Invariants:
//   - total = items subtotal + delivery charge, fixed at creation
//   - unit prices on the lines are snapshots, never recomputed
//   - payment fields change at most once (pending to paid or failed)
//   - the ranked delivery status never moves backward
type Order struct {
	id              kernel.UUID
	buyerPhone      kernel.Phone
	buyerName       string
	schoolID        kernel.UUID
	deliveryType    DeliveryType
	deliveryAddress string

	items          []Item
	itemsSubtotal  kernel.Money
	deliveryCharge kernel.Money
	total          kernel.Money

	paymentRef    string
	paymentLink   string
	paymentStatus PaymentStatus
	paidAt        *time.Time

	status Status

	packageCount      int
	actualWeightGrams int64
	volumetricGrams   int64
	billedWeightGrams int64

	trackingID  string
	carrierName string

	createdAt  time.Time
	rawRequest string

	isConstructed bool
}

// NewOrder creates an order in pending/pending state. The items subtotal and
// total are computed here and never recomputed afterwards. The raw originating
// request is kept as an audit snapshot.
func NewOrder(
	id kernel.UUID,
	buyerPhone kernel.Phone,
	buyerName string,
	schoolID kernel.UUID,
	deliveryType DeliveryType,
	deliveryAddress string,
	items []Item,
	deliveryCharge kernel.Money,
	rawRequest string,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		buyerPhone.Validate(),
		schoolID.Validate(),
		deliveryType.Validate(),
		deliveryCharge.Validate(),
	); err != nil {
		return nil, err
	}
	if deliveryType == DeliveryHome && deliveryAddress == "" {
		return nil, ErrAddressIsRequired
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	subtotal, err := kernel.NewMoney(0)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if itemErr := item.Validate(); itemErr != nil {
			return nil, itemErr
		}
		subtotal = subtotal.Add(item.LineTotal())
	}

	return &Order{
		id:              id,
		buyerPhone:      buyerPhone,
		buyerName:       buyerName,
		schoolID:        schoolID,
		deliveryType:    deliveryType,
		deliveryAddress: deliveryAddress,
		items:           items,
		itemsSubtotal:   subtotal,
		deliveryCharge:  deliveryCharge,
		total:           subtotal.Add(deliveryCharge),
		paymentStatus:   PaymentStatusPending,
		status:          StatusPending,
		packageCount:    1,
		createdAt:       time.Now().UTC(),
		rawRequest:      rawRequest,
		isConstructed:   true,
	}, nil
}

// RestoreOrder rehydrates an order from persistence, re-checking the total
// invariant against the stored subtotal and delivery charge.
//
//nolint:funlen // flat field assembly
func RestoreOrder(
	id kernel.UUID,
	buyerPhone kernel.Phone,
	buyerName string,
	schoolID kernel.UUID,
	deliveryType DeliveryType,
	deliveryAddress string,
	items []Item,
	itemsSubtotal, deliveryCharge, total kernel.Money,
	paymentRef, paymentLink string,
	paymentStatus PaymentStatus,
	paidAt *time.Time,
	status Status,
	packageCount int,
	actualWeightGrams, volumetricGrams, billedWeightGrams int64,
	trackingID, carrierName string,
	createdAt time.Time,
	rawRequest string,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		buyerPhone.Validate(),
		schoolID.Validate(),
		deliveryType.Validate(),
		paymentStatus.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if !itemsSubtotal.Add(deliveryCharge).IsEqual(total) {
		return nil, ErrTotalMismatch
	}

	return &Order{
		id:                id,
		buyerPhone:        buyerPhone,
		buyerName:         buyerName,
		schoolID:          schoolID,
		deliveryType:      deliveryType,
		deliveryAddress:   deliveryAddress,
		items:             items,
		itemsSubtotal:     itemsSubtotal,
		deliveryCharge:    deliveryCharge,
		total:             total,
		paymentRef:        paymentRef,
		paymentLink:       paymentLink,
		paymentStatus:     paymentStatus,
		paidAt:            paidAt,
		status:            status,
		packageCount:      packageCount,
		actualWeightGrams: actualWeightGrams,
		volumetricGrams:   volumetricGrams,
		billedWeightGrams: billedWeightGrams,
		trackingID:        trackingID,
		carrierName:       carrierName,
		createdAt:         createdAt,
		rawRequest:        rawRequest,
		isConstructed:     true,
	}, nil
}

// Validate ensures the order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// BuyerPhone returns the buyer's messaging-channel identity.
func (o *Order) BuyerPhone() kernel.Phone { return o.buyerPhone }

// BuyerName returns the buyer's name, possibly empty.
func (o *Order) BuyerName() string { return o.buyerName }

// SchoolID returns the school this order was placed against.
func (o *Order) SchoolID() kernel.UUID { return o.schoolID }

// DeliveryType reports school or home delivery.
func (o *Order) DeliveryType() DeliveryType { return o.deliveryType }

// DeliveryAddress returns the buyer's address; empty for school delivery.
func (o *Order) DeliveryAddress() string { return o.deliveryAddress }

// Items returns the order lines.
func (o *Order) Items() []Item { return o.items }

// ItemsSubtotal returns the captured sum of line totals.
func (o *Order) ItemsSubtotal() kernel.Money { return o.itemsSubtotal }

// DeliveryCharge returns the delivery charge applied at creation.
func (o *Order) DeliveryCharge() kernel.Money { return o.deliveryCharge }

// Total returns subtotal plus delivery charge, fixed at creation.
func (o *Order) Total() kernel.Money { return o.total }

// PaymentRef returns the provider's payment reference, empty until a payment
// link has been issued.
func (o *Order) PaymentRef() string { return o.paymentRef }

// PaymentLink returns the hosted payment URL, empty until issued.
func (o *Order) PaymentLink() string { return o.paymentLink }

// PaymentStatus returns the payment leg state.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// PaidAt returns the reconciled payment time, nil while unpaid.
func (o *Order) PaidAt() *time.Time { return o.paidAt }

// Status returns the delivery lifecycle state.
func (o *Order) Status() Status { return o.status }

// PackageCount returns the number of parcels; fixed at 1 in the current flow.
func (o *Order) PackageCount() int { return o.packageCount }

// ActualWeightGrams returns the physical weight including packaging, 0 until
// computed.
func (o *Order) ActualWeightGrams() int64 { return o.actualWeightGrams }

// VolumetricGrams returns the dimensional weight, 0 until computed.
func (o *Order) VolumetricGrams() int64 { return o.volumetricGrams }

// BilledWeightGrams returns the courier-billable weight, 0 until computed.
func (o *Order) BilledWeightGrams() int64 { return o.billedWeightGrams }

// WeightComputed reports whether the weight calculator has run for this order.
func (o *Order) WeightComputed() bool { return o.billedWeightGrams > 0 }

// TrackingID returns the courier tracking id (AWB), empty until dispatched.
// Placeholder ids issued without courier credentials carry an unambiguous
// "TEST-" prefix.
func (o *Order) TrackingID() string { return o.trackingID }

// CarrierName returns the carrier that accepted the shipment.
func (o *Order) CarrierName() string { return o.carrierName }

// CreatedAt returns the order creation time.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// RawRequest returns the audit snapshot of the originating request.
func (o *Order) RawRequest() string { return o.rawRequest }

// AttachPaymentLink records the provider's payment reference and hosted URL.
// Only allowed while the payment leg is pending.
func (o *Order) AttachPaymentLink(ref, link string) error {
	if ref == "" {
		return errs.NewValueIsRequiredError("payment reference")
	}
	if o.paymentStatus != PaymentStatusPending {
		return ErrPaymentNotPending
	}
	o.paymentRef = ref
	o.paymentLink = link
	return nil
}

// ConfirmPayment settles the payment leg as paid and advances the lifecycle
// to confirmed. Returns ErrPaymentNotPending when the leg already settled or
// the lifecycle already left pending; callers treat that as a duplicate
// delivery and must not re-run side effects.
func (o *Order) ConfirmPayment(paidAt time.Time) error {
	if o.paymentStatus != PaymentStatusPending || o.status != StatusPending {
		return ErrPaymentNotPending
	}
	o.paymentStatus = PaymentStatusPaid
	o.status = StatusConfirmed
	o.paidAt = &paidAt
	return nil
}

// FailPayment settles the payment leg as failed and moves the lifecycle to
// its payment_failed terminal state.
func (o *Order) FailPayment() error {
	if o.paymentStatus != PaymentStatusPending {
		return ErrPaymentNotPending
	}
	o.paymentStatus = PaymentStatusFailed
	o.status = StatusPaymentFailed
	return nil
}

// AssignWeights records the computed actual, volumetric, and billed weights.
// Safe to re-run; the computation is deterministic for an unchanged order.
func (o *Order) AssignWeights(actualGrams, volumetricGrams, billedGrams int64, packages int) error {
	if billedGrams <= 0 {
		return errs.NewValueIsInvalidError("billed weight")
	}
	if packages <= 0 {
		return errs.NewValueIsInvalidError("package count")
	}
	o.actualWeightGrams = actualGrams
	o.volumetricGrams = volumetricGrams
	o.billedWeightGrams = billedGrams
	o.packageCount = packages
	return nil
}

// AssignTracking records the courier's tracking id and carrier and advances
// the lifecycle to processing. Requires a computed weight. Re-dispatch with
// the same tracking id is a no-op.
func (o *Order) AssignTracking(trackingID, carrierName string) error {
	if trackingID == "" {
		return errs.NewValueIsRequiredError("tracking id")
	}
	if !o.WeightComputed() {
		return ErrWeightNotComputed
	}
	if o.trackingID == trackingID {
		return nil
	}
	o.trackingID = trackingID
	o.carrierName = carrierName
	if o.status.CanAdvanceTo(StatusProcessing) {
		o.status = StatusProcessing
	}
	return nil
}

// ApplyStatus applies a courier-reported lifecycle state. Returns true when
// the order moved: a forward step in the ranked progression, or a permitted
// cancellation. Stale or backward events return false and leave the order
// unchanged.
func (o *Order) ApplyStatus(next Status) (bool, error) {
	if err := next.Validate(); err != nil {
		return false, err
	}

	if next == StatusCancelled {
		if !o.status.CanCancel() {
			return false, nil
		}
		o.status = StatusCancelled
		return true, nil
	}

	if !o.status.CanAdvanceTo(next) {
		return false, nil
	}
	o.status = next
	return true, nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}
