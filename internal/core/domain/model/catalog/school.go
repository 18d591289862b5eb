package catalog

import (
	"fmt"

	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/pkg/errs"
)

// SchoolCodeLength is the fixed length of the numeric code buyers type to
// select their school at the start of a conversation.
const SchoolCodeLength = 4

// School is a participating school identified by a 4-digit code. Inactive
// schools remain in the catalog but cannot receive new orders.
type School struct {
	id       kernel.UUID
	code     string
	name     string
	address  string
	isActive bool
}

// RestoreSchool rehydrates a School from the catalog store.
func RestoreSchool(id kernel.UUID, code, name, address string, isActive bool) (*School, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if len(code) != SchoolCodeLength {
		return nil, errs.NewValueIsInvalidErrorWithCause("school code",
			fmt.Errorf("%q is not %d characters", code, SchoolCodeLength))
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("school name")
	}

	return &School{id: id, code: code, name: name, address: address, isActive: isActive}, nil
}

// ID returns the school's unique identifier.
func (s *School) ID() kernel.UUID { return s.id }

// Code returns the 4-digit selection code.
func (s *School) Code() string { return s.code }

// Name returns the school's display name.
func (s *School) Name() string { return s.name }

// Address returns the school's physical address, used as the shipment
// destination for school-delivery orders.
func (s *School) Address() string { return s.address }

// IsActive reports whether the school accepts new orders.
func (s *School) IsActive() bool { return s.isActive }
