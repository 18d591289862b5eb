// Package parcelrepo persists per-package parcel records keyed by
// (order id, index).
package parcelrepo

import (
	"github.com/google/uuid"

	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/core/domain/model/order"
)

// ParcelDTO represents the database structure for persisting parcels.
type ParcelDTO struct {
	OrderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Index   int       `gorm:"primaryKey"`

	ActualWeightGrams int64
	VolumetricGrams   int64
	BilledWeightGrams int64

	LengthCM float64
	WidthCM  float64
	HeightCM float64

	TrackingID string `gorm:"index"`
}

// TableName specifies the database table name for parcel entities.
func (ParcelDTO) TableName() string {
	return "parcels"
}

func fromDomain(parcel *order.Parcel) ParcelDTO {
	return ParcelDTO{
		OrderID:           parcel.OrderID().Bytes(),
		Index:             parcel.Index(),
		ActualWeightGrams: parcel.ActualWeightGrams(),
		VolumetricGrams:   parcel.VolumetricGrams(),
		BilledWeightGrams: parcel.BilledWeightGrams(),
		LengthCM:          parcel.Dimensions().LengthCM(),
		WidthCM:           parcel.Dimensions().WidthCM(),
		HeightCM:          parcel.Dimensions().HeightCM(),
		TrackingID:        parcel.TrackingID(),
	}
}

func toDomain(dto ParcelDTO) (*order.Parcel, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	dims, err := kernel.NewDimensions(dto.LengthCM, dto.WidthCM, dto.HeightCM)
	if err != nil {
		return nil, err
	}
	return order.RestoreParcel(
		orderID, dto.Index,
		dto.ActualWeightGrams, dto.VolumetricGrams, dto.BilledWeightGrams,
		dims, dto.TrackingID,
	)
}
