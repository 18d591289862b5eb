package conversation

import (
	"fmt"

	"schoolstore/internal/pkg/errs"
)

// State identifies which input the conversation machine expects next from
// the buyer. The machine only ever moves forward through the collection
// sequence or resets to StateAwaitCode; invalid input never changes state.
//
//	await_code ──> await_class ──> await_category ──> await_delivery ──┬──> await_confirm
//	                                                                   └──> await_address ──> await_confirm
type State int

const (
	// StateUnknown catches uninitialized State values.
	StateUnknown State = iota

	// StateAwaitCode expects a 4-digit school code.
	StateAwaitCode

	// StateAwaitClass expects a 1-based index into the presented class list.
	StateAwaitClass

	// StateAwaitCategory expects "1" (booklist) or "2" (stationery).
	StateAwaitCategory

	// StateAwaitDelivery expects "1" (school) or "2" (home).
	StateAwaitDelivery

	// StateAwaitAddress expects a free-text home address.
	StateAwaitAddress

	// StateAwaitConfirm expects the literal "CONFIRM".
	StateAwaitConfirm
)

func getStateStrings() map[State]string {
	return map[State]string{
		StateUnknown:       "unknown",
		StateAwaitCode:     "await_code",
		StateAwaitClass:    "await_class",
		StateAwaitCategory: "await_category",
		StateAwaitDelivery: "await_delivery",
		StateAwaitAddress:  "await_address",
		StateAwaitConfirm:  "await_confirm",
	}
}

// StateFromString parses the persisted name of a state.
func StateFromString(s string) (State, error) {
	for state, name := range getStateStrings() {
		if name == s && state != StateUnknown {
			return state, nil
		}
	}
	return StateUnknown, errs.NewValueIsInvalidErrorWithCause("conversation state",
		fmt.Errorf("unknown state %q", s))
}

// Validate rejects StateUnknown and out-of-range values.
func (s State) Validate() error {
	if _, ok := getStateStrings()[s]; !ok || s == StateUnknown {
		return errs.NewValueIsInvalidErrorWithCause("conversation state",
			fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// String returns the persisted name of the state, e.g. "await_class".
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "unknown"
}
