package services

import (
	"fmt"
	"math"

	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/pkg/errs"
)

// WeightLine is one order line as the weight calculator sees it: the catalog
// weight and dimensions of the item plus the ordered quantity.
type WeightLine struct {
	WeightGrams int64
	Quantity    int
	Dims        kernel.Dimensions
}

// WeightResult carries the three weights, the package count, and the packed
// dimensions (per-axis maxima) for a single calculation. All weights are in
// grams.
type WeightResult struct {
	ActualGrams     int64
	VolumetricGrams int64
	BilledGrams     int64
	PackageCount    int
	Dims            kernel.Dimensions
}

// WeightCalculator is a domain service computing the billable weight of an
// order from its lines and the carrier settings.
//
// Business rules:
//   - actual weight is the quantity-weighted sum of item weights plus one
//     packaging allowance per package (package count is fixed at 1)
//   - volumetric weight uses the per-axis maximum dimension across all lines,
//     not a packed sum: round(maxL x maxW x maxH / divisor x 1000) grams
//   - billed weight is the larger of the two, rounded up to the rounding unit
//   - lines with zero dimensions contribute nothing to volumetric weight, so
//     an order with no dimension data bills by actual weight alone
//
// The calculation is pure: the same lines and settings always produce the
// same result, so recomputing an unchanged order is a safe no-op.
type WeightCalculator struct{}

// NewWeightCalculator creates a WeightCalculator.
func NewWeightCalculator() WeightCalculator {
	return WeightCalculator{}
}

// Calculate computes actual, volumetric, and billed weight for the given
// lines. packagingGrams is the per-package packaging allowance, divisor the
// carrier's volumetric divisor (cm3 per kg), roundingUnitGrams the billing
// granularity.
func (WeightCalculator) Calculate(
	lines []WeightLine,
	packagingGrams int64,
	divisor float64,
	roundingUnitGrams int64,
) (WeightResult, error) {
	if len(lines) == 0 {
		return WeightResult{}, errs.NewValueIsRequiredError("weight lines")
	}
	if divisor <= 0 {
		return WeightResult{}, errs.NewValueIsInvalidErrorWithCause("volumetric divisor",
			fmt.Errorf("%v is not greater than 0", divisor))
	}
	if roundingUnitGrams <= 0 {
		return WeightResult{}, errs.NewValueIsInvalidErrorWithCause("rounding unit",
			fmt.Errorf("%d is not greater than 0", roundingUnitGrams))
	}

	const packageCount = 1

	var actual int64
	var maxL, maxW, maxH float64
	for _, line := range lines {
		if line.WeightGrams < 0 || line.Quantity <= 0 {
			return WeightResult{}, errs.NewValueIsInvalidErrorWithCause("weight line",
				fmt.Errorf("weight %dg x %d", line.WeightGrams, line.Quantity))
		}
		actual += line.WeightGrams * int64(line.Quantity)
		maxL = math.Max(maxL, line.Dims.LengthCM())
		maxW = math.Max(maxW, line.Dims.WidthCM())
		maxH = math.Max(maxH, line.Dims.HeightCM())
	}
	actual += packagingGrams * packageCount

	// Zero on any axis means no usable dimension data on that axis; the
	// product collapses to zero instead of dividing a partial box.
	volumetric := int64(math.Round(maxL * maxW * maxH / divisor * 1000))

	billable := actual
	if volumetric > billable {
		billable = volumetric
	}
	units := (billable + roundingUnitGrams - 1) / roundingUnitGrams
	billed := units * roundingUnitGrams

	dims, err := kernel.NewDimensions(maxL, maxW, maxH)
	if err != nil {
		return WeightResult{}, err
	}

	return WeightResult{
		ActualGrams:     actual,
		VolumetricGrams: volumetric,
		BilledGrams:     billed,
		PackageCount:    packageCount,
		Dims:            dims,
	}, nil
}
