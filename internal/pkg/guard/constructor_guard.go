// Package guard provides the constructor-guard pattern used by value objects
// and commands throughout the application. A guard distinguishes instances
// created through their designated constructor from zero values, so that
// validation can reject objects that bypassed construction.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a
// nil validation error. Validation always fails with a meaningful message
// even when no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. Embed it in a
// struct and initialize it with NewConstructorGuard inside the constructor;
// a zero-value struct then fails Validate.
//
// Example:
//
//	type Money struct {
//	    amount int64
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewMoney(amount int64) (Money, error) {
//	    if amount < 0 {
//	        return Money{}, errors.New("amount cannot be negative")
//	    }
//	    return Money{amount: amount, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (m Money) Validate() error {
//	    return m.guard.Validate(ErrMoneyIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks its holder as constructed.
// Call it only from the constructor of the guarded object.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the guarded object was created through its
// constructor. Otherwise it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
