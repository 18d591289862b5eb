package catalog

import (
	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/pkg/errs"
)

// SchoolClass is a class (grade/section) within a school. Item groups are
// assigned per class, so the chosen class determines which items a buyer
// can order.
type SchoolClass struct {
	id       kernel.UUID
	schoolID kernel.UUID
	name     string
}

// RestoreSchoolClass rehydrates a SchoolClass from the catalog store.
func RestoreSchoolClass(id, schoolID kernel.UUID, name string) (*SchoolClass, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := schoolID.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("class name")
	}

	return &SchoolClass{id: id, schoolID: schoolID, name: name}, nil
}

// ID returns the class's unique identifier.
func (c *SchoolClass) ID() kernel.UUID { return c.id }

// SchoolID returns the identifier of the school this class belongs to.
func (c *SchoolClass) SchoolID() kernel.UUID { return c.schoolID }

// Name returns the class's display name, e.g. "Class 5 - B".
func (c *SchoolClass) Name() string { return c.name }
