package parcelrepo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/core/domain/model/order"
)

// GormParcelRepository implements ParcelRepository using GORM.
type GormParcelRepository struct {
	db *gorm.DB
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB) *GormParcelRepository {
	return &GormParcelRepository{db: db}
}

// Upsert creates or replaces the parcel record for its (order, index) key.
func (r *GormParcelRepository) Upsert(ctx context.Context, parcel *order.Parcel) error {
	if err := parcel.Validate(); err != nil {
		return err
	}

	dto := fromDomain(parcel)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}, {Name: "index"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}

// GetByOrder retrieves an order's parcels ordered by index.
func (r *GormParcelRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Parcel, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ParcelDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order(`"index"`).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	parcels := make([]*order.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		parcel, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		parcels = append(parcels, parcel)
	}
	return parcels, nil
}
