package order

import (
	"errors"
	"fmt"

	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/pkg/errs"
)

// ErrParcelIsNotConstructed is returned when a Parcel instance was not
// created through NewParcel or RestoreParcel.
var ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel")

// Parcel is a physical package of an order. The current flow always produces
// a single parcel with index 0; the index exists so multi-parcel orders can
// be represented without a schema change.
type Parcel struct {
	orderID           kernel.UUID
	index             int
	actualWeightGrams int64
	volumetricGrams   int64
	billedWeightGrams int64
	dimensions        kernel.Dimensions
	trackingID        string

	isConstructed bool
}

// NewParcel creates a parcel for an order. Weights may be zero while the
// weight calculator has not run yet.
func NewParcel(
	orderID kernel.UUID,
	index int,
	actualGrams, volumetricGrams, billedGrams int64,
	dimensions kernel.Dimensions,
) (*Parcel, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if index < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("parcel index",
			fmt.Errorf("%d is negative", index))
	}
	if err := dimensions.Validate(); err != nil {
		return nil, err
	}

	return &Parcel{
		orderID:           orderID,
		index:             index,
		actualWeightGrams: actualGrams,
		volumetricGrams:   volumetricGrams,
		billedWeightGrams: billedGrams,
		dimensions:        dimensions,
		isConstructed:     true,
	}, nil
}

// RestoreParcel rehydrates a parcel from persistence.
func RestoreParcel(
	orderID kernel.UUID,
	index int,
	actualGrams, volumetricGrams, billedGrams int64,
	dimensions kernel.Dimensions,
	trackingID string,
) (*Parcel, error) {
	parcel, err := NewParcel(orderID, index, actualGrams, volumetricGrams, billedGrams, dimensions)
	if err != nil {
		return nil, err
	}
	parcel.trackingID = trackingID
	return parcel, nil
}

// Validate ensures the parcel was created through a constructor.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// OrderID returns the owning order's identifier.
func (p *Parcel) OrderID() kernel.UUID { return p.orderID }

// Index returns the parcel's position within the order, 0 for the first.
func (p *Parcel) Index() int { return p.index }

// ActualWeightGrams returns the parcel's physical weight.
func (p *Parcel) ActualWeightGrams() int64 { return p.actualWeightGrams }

// VolumetricGrams returns the parcel's dimensional weight.
func (p *Parcel) VolumetricGrams() int64 { return p.volumetricGrams }

// BilledWeightGrams returns the parcel's courier-billable weight.
func (p *Parcel) BilledWeightGrams() int64 { return p.billedWeightGrams }

// Dimensions returns the parcel's packed dimensions.
func (p *Parcel) Dimensions() kernel.Dimensions { return p.dimensions }

// TrackingID returns the courier tracking id propagated from the order.
func (p *Parcel) TrackingID() string { return p.trackingID }

// AssignTracking propagates the order's tracking id onto the parcel.
func (p *Parcel) AssignTracking(trackingID string) error {
	if trackingID == "" {
		return errs.NewValueIsRequiredError("tracking id")
	}
	p.trackingID = trackingID
	return nil
}
