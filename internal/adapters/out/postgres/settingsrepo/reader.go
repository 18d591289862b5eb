// Package settingsrepo reads operator-tunable settings from a key/value
// table, with hard-coded fallbacks so a missing or malformed row never fails
// a request.
package settingsrepo

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"gorm.io/gorm"

	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/core/domain/model/order"
)

// Setting keys. The strings are the operator-facing contract: rows in the
// settings table use exactly these names.
const (
	KeyDefaultPackagingWeightGrams = "default_packaging_weight_grams"
	KeyVolumetricDivisor           = "volumetric_divisor"
	KeyWeightRoundingGrams         = "weight_rounding_grams"
	KeySchoolDeliveryCharge        = "school_delivery_charge"
	KeyHomeDeliveryCharge          = "home_delivery_charge"
)

// Fallback values used when a key is absent or unparsable.
const (
	defaultPackagingWeightGrams int64   = 50
	defaultVolumetricDivisor    float64 = 5000
	defaultWeightRoundingGrams  int64   = 500
	defaultSchoolDeliveryPaise  int64   = 0
	defaultHomeDeliveryPaise    int64   = 8000
)

// SettingDTO represents one key/value settings row.
type SettingDTO struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

// TableName specifies the database table name for settings.
func (SettingDTO) TableName() string {
	return "settings"
}

// GormSettingsReader implements SettingsReader using GORM.
type GormSettingsReader struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormSettingsReader creates a new GORM settings reader.
func NewGormSettingsReader(db *gorm.DB, logger *slog.Logger) *GormSettingsReader {
	return &GormSettingsReader{db: db, logger: logger}
}

// PackagingWeightGrams returns the per-package packaging allowance.
func (r *GormSettingsReader) PackagingWeightGrams(ctx context.Context) int64 {
	return r.intValue(ctx, KeyDefaultPackagingWeightGrams, defaultPackagingWeightGrams)
}

// VolumetricDivisor returns the carrier's volumetric divisor (cm3/kg).
func (r *GormSettingsReader) VolumetricDivisor(ctx context.Context) float64 {
	raw, ok := r.rawValue(ctx, KeyVolumetricDivisor)
	if !ok {
		return defaultVolumetricDivisor
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value <= 0 {
		r.logger.WarnContext(ctx, "malformed setting, using default",
			"key", KeyVolumetricDivisor, "value", raw)
		return defaultVolumetricDivisor
	}
	return value
}

// WeightRoundingGrams returns the billing granularity for billed weight.
func (r *GormSettingsReader) WeightRoundingGrams(ctx context.Context) int64 {
	return r.intValue(ctx, KeyWeightRoundingGrams, defaultWeightRoundingGrams)
}

// DeliveryCharge returns the charge for the given delivery type.
func (r *GormSettingsReader) DeliveryCharge(ctx context.Context, deliveryType order.DeliveryType) kernel.Money {
	var paise int64
	switch deliveryType {
	case order.DeliveryHome:
		paise = r.intValue(ctx, KeyHomeDeliveryCharge, defaultHomeDeliveryPaise)
	default:
		paise = r.intValue(ctx, KeySchoolDeliveryCharge, defaultSchoolDeliveryPaise)
	}

	money, err := kernel.NewMoney(paise)
	if err != nil {
		money, _ = kernel.NewMoney(0)
	}
	return money
}

func (r *GormSettingsReader) intValue(ctx context.Context, key string, fallback int64) int64 {
	raw, ok := r.rawValue(ctx, key)
	if !ok {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 0 {
		r.logger.WarnContext(ctx, "malformed setting, using default", "key", key, "value", raw)
		return fallback
	}
	return value
}

func (r *GormSettingsReader) rawValue(ctx context.Context, key string) (string, bool) {
	var dto SettingDTO
	err := r.db.WithContext(ctx).First(&dto, "key = ?", key).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.WarnContext(ctx, "settings read failed, using default",
				"key", key, "error", err)
		}
		return "", false
	}
	return dto.Value, true
}
