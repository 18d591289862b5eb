package kernel

import (
	"fmt"
	"strings"
	"unicode"

	"schoolstore/internal/pkg/errs"
	"schoolstore/internal/pkg/guard"
)

const (
	phoneMinDigits = 8
	phoneMaxDigits = 15
)

// ErrPhoneIsNotConstructed is returned when validating a Phone value that was
// not created through NewPhone.
var ErrPhoneIsNotConstructed = errs.NewValueIsRequiredError("phone must be created via NewPhone")

// Phone identifies a buyer on the messaging channel. The sender id of an
// inbound message and the recipient of an outbound notification are both
// Phone values, so conversations and orders key off the same identity.
type Phone struct { //nolint:recvcheck //using for validation
	number string
	guard  guard.ConstructorGuard
}

// NewPhone creates a Phone from its string form. A leading "+" is accepted;
// the remaining characters must be 8 to 15 digits.
func NewPhone(number string) (Phone, error) {
	trimmed := strings.TrimSpace(number)
	digits := strings.TrimPrefix(trimmed, "+")
	if digits == "" {
		return Phone{}, errs.NewValueIsRequiredError("phone number")
	}
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return Phone{}, errs.NewValueIsInvalidErrorWithCause("phone number",
				fmt.Errorf("%q contains non-digit characters", trimmed))
		}
	}
	if len(digits) < phoneMinDigits || len(digits) > phoneMaxDigits {
		return Phone{}, errs.NewValueIsOutOfRangeError("phone number digits",
			len(digits), phoneMinDigits, phoneMaxDigits)
	}

	return Phone{number: trimmed, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the value was created through NewPhone.
func (p Phone) Validate() error {
	return p.guard.Validate(ErrPhoneIsNotConstructed)
}

// String returns the phone number as supplied, including any leading "+".
func (p Phone) String() string {
	return p.number
}

// IsEqual reports whether two phone numbers are identical.
func (p Phone) IsEqual(other Phone) bool {
	return p.number == other.number
}
