package kernel

import (
	"fmt"

	"schoolstore/internal/pkg/errs"
	"schoolstore/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned when validating a Money value that was
// not created through NewMoney or RestoreMoney.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney or RestoreMoney")

// Money is a non-negative amount in the smallest currency unit (paise).
// Integer arithmetic avoids the rounding problems of floating point, which
// matters for order totals that must reconcile exactly against payments.
//
// Example:
//
//	price, _ := kernel.NewMoney(24900) // ₹249.00
//	line := price.MulQty(3)
type Money struct { //nolint:recvcheck //using for validation
	amount int64
	guard  guard.ConstructorGuard
}

// NewMoney creates a Money value. The amount is in paise and must not be
// negative.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is negative", amount))
	}
	return Money{amount: amount, guard: guard.NewConstructorGuard()}, nil
}

// RestoreMoney rehydrates a Money value from persistence without re-running
// business validation beyond the non-negative check.
func RestoreMoney(amount int64) (Money, error) {
	return NewMoney(amount)
}

// Validate ensures the value was created through a constructor.
// A zero amount is valid; a zero value struct is not.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Paise returns the amount in the smallest currency unit.
func (m Money) Paise() int64 {
	return m.amount
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount, guard: guard.NewConstructorGuard()}
}

// MulQty returns the amount multiplied by a quantity.
func (m Money) MulQty(qty int) Money {
	return Money{amount: m.amount * int64(qty), guard: guard.NewConstructorGuard()}
}

// IsEqual reports whether two amounts are equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// String formats the amount in rupees, e.g. "₹249.00".
func (m Money) String() string {
	return fmt.Sprintf("₹%d.%02d", m.amount/100, m.amount%100)
}
