package ports

import (
	"context"

	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/core/domain/model/order"
)

// SettingsReader defines read access to operator-tunable configuration.
// Every accessor falls back to a hard-coded default when the key is absent
// or unparsable, so a missing settings row never fails a request.
type SettingsReader interface {
	// PackagingWeightGrams returns the per-package packaging allowance.
	PackagingWeightGrams(ctx context.Context) int64

	// VolumetricDivisor returns the carrier's volumetric divisor (cm3/kg).
	VolumetricDivisor(ctx context.Context) float64

	// WeightRoundingGrams returns the billing granularity for billed weight.
	WeightRoundingGrams(ctx context.Context) int64

	// DeliveryCharge returns the charge for the given delivery type.
	DeliveryCharge(ctx context.Context, deliveryType order.DeliveryType) kernel.Money
}
