package kernel

import (
	"fmt"

	"schoolstore/internal/pkg/errs"
	"schoolstore/internal/pkg/guard"
)

// ErrDimensionsAreNotConstructed is returned when validating a Dimensions
// value that was not created through NewDimensions.
var ErrDimensionsAreNotConstructed = errs.NewValueIsRequiredError(
	"dimensions must be created via NewDimensions")

// Dimensions holds the length, width, and height of an item or parcel in
// centimeters. All-zero dimensions are valid and describe an item without
// recorded measurements; negative values are not.
//
// Example:
//
//	dims, err := kernel.NewDimensions(20, 15, 2)
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(dims) // 20x15x2 cm
type Dimensions struct { //nolint:recvcheck //using for validation
	lengthCM float64
	widthCM  float64
	heightCM float64
	guard    guard.ConstructorGuard
}

// NewDimensions creates a Dimensions value. Each side must be non-negative.
func NewDimensions(lengthCM, widthCM, heightCM float64) (Dimensions, error) {
	if lengthCM < 0 || widthCM < 0 || heightCM < 0 {
		return Dimensions{}, errs.NewValueIsInvalidErrorWithCause("dimensions",
			fmt.Errorf("%vx%vx%v contains a negative side", lengthCM, widthCM, heightCM))
	}
	return Dimensions{
		lengthCM: lengthCM,
		widthCM:  widthCM,
		heightCM: heightCM,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the value was created through NewDimensions.
func (d Dimensions) Validate() error {
	return d.guard.Validate(ErrDimensionsAreNotConstructed)
}

// LengthCM returns the length in centimeters.
func (d Dimensions) LengthCM() float64 { return d.lengthCM }

// WidthCM returns the width in centimeters.
func (d Dimensions) WidthCM() float64 { return d.widthCM }

// HeightCM returns the height in centimeters.
func (d Dimensions) HeightCM() float64 { return d.heightCM }

// VolumeCM3 returns the rectangular volume in cubic centimeters.
func (d Dimensions) VolumeCM3() float64 {
	return d.lengthCM * d.widthCM * d.heightCM
}

// IsZero reports whether no side has a recorded measurement.
func (d Dimensions) IsZero() bool {
	return d.lengthCM == 0 && d.widthCM == 0 && d.heightCM == 0
}

// String formats the dimensions as "LxWxH cm".
func (d Dimensions) String() string {
	return fmt.Sprintf("%gx%gx%g cm", d.lengthCM, d.widthCM, d.heightCM)
}
