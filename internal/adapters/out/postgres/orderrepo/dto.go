// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order aggregate, handling the conversion between domain entities and
// database representations.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Payment reference and tracking id are indexed because webhook reconciliation
// looks orders up by these external keys. The indexes are non-unique: both
// columns hold empty strings until a payment link or AWB is assigned.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	BuyerPhone      string    `gorm:"index"`
	BuyerName       string
	SchoolID        uuid.UUID `gorm:"type:uuid;index"`
	DeliveryType    string
	DeliveryAddress string

	Items []ItemDTO `gorm:"serializer:json;type:jsonb"`

	ItemsSubtotalPaise  int64
	DeliveryChargePaise int64
	TotalPaise          int64

	PaymentRef    string `gorm:"index"`
	PaymentLink   string
	PaymentStatus string `gorm:"index"`
	PaidAt        *time.Time

	Status string `gorm:"index"`

	PackageCount      int
	ActualWeightGrams int64
	VolumetricGrams   int64
	BilledWeightGrams int64

	TrackingID  string `gorm:"index"`
	CarrierName string

	CreatedAt  time.Time
	RawRequest string
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one snapshotted order line inside the order's items column.
type ItemDTO struct {
	CatalogItemID  uuid.UUID `json:"catalog_item_id"`
	Name           string    `json:"name"`
	Quantity       int       `json:"quantity"`
	UnitPricePaise int64     `json:"unit_price_paise"`
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, line := range aggregate.Items() {
		items = append(items, ItemDTO{
			CatalogItemID:  line.CatalogItemID().Bytes(),
			Name:           line.Name(),
			Quantity:       line.Quantity(),
			UnitPricePaise: line.UnitPrice().Paise(),
		})
	}

	return OrderDTO{
		ID:                  aggregate.ID().Bytes(),
		BuyerPhone:          aggregate.BuyerPhone().String(),
		BuyerName:           aggregate.BuyerName(),
		SchoolID:            aggregate.SchoolID().Bytes(),
		DeliveryType:        aggregate.DeliveryType().String(),
		DeliveryAddress:     aggregate.DeliveryAddress(),
		Items:               items,
		ItemsSubtotalPaise:  aggregate.ItemsSubtotal().Paise(),
		DeliveryChargePaise: aggregate.DeliveryCharge().Paise(),
		TotalPaise:          aggregate.Total().Paise(),
		PaymentRef:          aggregate.PaymentRef(),
		PaymentLink:         aggregate.PaymentLink(),
		PaymentStatus:       aggregate.PaymentStatus().String(),
		PaidAt:              aggregate.PaidAt(),
		Status:              aggregate.Status().String(),
		PackageCount:        aggregate.PackageCount(),
		ActualWeightGrams:   aggregate.ActualWeightGrams(),
		VolumetricGrams:     aggregate.VolumetricGrams(),
		BilledWeightGrams:   aggregate.BilledWeightGrams(),
		TrackingID:          aggregate.TrackingID(),
		CarrierName:         aggregate.CarrierName(),
		CreatedAt:           aggregate.CreatedAt(),
		RawRequest:          aggregate.RawRequest(),
	}
}

// toDomain converts a database DTO back to an order aggregate via
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	schoolID, err := kernel.UUIDFromBytes(dto.SchoolID[:])
	if err != nil {
		return nil, err
	}
	phone, err := kernel.NewPhone(dto.BuyerPhone)
	if err != nil {
		return nil, err
	}
	deliveryType, err := order.DeliveryTypeFromString(dto.DeliveryType)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, lineDTO := range dto.Items {
		line, lineErr := toDomainItem(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		items = append(items, line)
	}

	subtotal, err := kernel.RestoreMoney(dto.ItemsSubtotalPaise)
	if err != nil {
		return nil, err
	}
	charge, err := kernel.RestoreMoney(dto.DeliveryChargePaise)
	if err != nil {
		return nil, err
	}
	total, err := kernel.RestoreMoney(dto.TotalPaise)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		phone,
		dto.BuyerName,
		schoolID,
		deliveryType,
		dto.DeliveryAddress,
		items,
		subtotal, charge, total,
		dto.PaymentRef, dto.PaymentLink,
		paymentStatus,
		dto.PaidAt,
		status,
		dto.PackageCount,
		dto.ActualWeightGrams, dto.VolumetricGrams, dto.BilledWeightGrams,
		dto.TrackingID, dto.CarrierName,
		dto.CreatedAt,
		dto.RawRequest,
	)
}

func toDomainItem(dto ItemDTO) (order.Item, error) {
	catalogItemID, err := kernel.UUIDFromBytes(dto.CatalogItemID[:])
	if err != nil {
		return order.Item{}, err
	}
	unitPrice, err := kernel.RestoreMoney(dto.UnitPricePaise)
	if err != nil {
		return order.Item{}, err
	}
	return order.RestoreItem(catalogItemID, dto.Name, dto.Quantity, unitPrice)
}
