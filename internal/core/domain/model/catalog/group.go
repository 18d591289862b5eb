package catalog

import (
	"fmt"

	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/pkg/errs"
)

// GroupType distinguishes the two item categories a buyer can choose during
// a conversation: booklists and stationery sets.
type GroupType int

const (
	// GroupTypeUnknown catches uninitialized GroupType values.
	GroupTypeUnknown GroupType = iota

	// GroupTypeBooklist is the curriculum booklist category.
	GroupTypeBooklist

	// GroupTypeStationery is the stationery set category.
	GroupTypeStationery
)

// GroupTypeFromChoice maps the buyer's "1"/"2" menu input to a GroupType.
// Any other input is invalid.
func GroupTypeFromChoice(choice string) (GroupType, error) {
	switch choice {
	case "1":
		return GroupTypeBooklist, nil
	case "2":
		return GroupTypeStationery, nil
	default:
		return GroupTypeUnknown, errs.NewValueIsInvalidErrorWithCause("category choice",
			fmt.Errorf("%q is not 1 or 2", choice))
	}
}

// Validate rejects GroupTypeUnknown and out-of-range values.
func (t GroupType) Validate() error {
	if t != GroupTypeBooklist && t != GroupTypeStationery {
		return errs.NewValueIsInvalidErrorWithCause("group type",
			fmt.Errorf("%d is not a valid group type", t))
	}
	return nil
}

// String returns the human-readable name of the group type.
func (t GroupType) String() string {
	switch t {
	case GroupTypeBooklist:
		return "Booklist"
	case GroupTypeStationery:
		return "Stationery"
	default:
		return "Unknown"
	}
}

// ItemGroup is a named bundle of items of one GroupType assigned to a class.
// A class may have several groups of the same type; category resolution takes
// the first one in assignment order.
type ItemGroup struct {
	id        kernel.UUID
	classID   kernel.UUID
	groupType GroupType
	name      string
	isActive  bool
}

// RestoreItemGroup rehydrates an ItemGroup from the catalog store.
func RestoreItemGroup(id, classID kernel.UUID, groupType GroupType, name string, isActive bool) (*ItemGroup, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := classID.Validate(); err != nil {
		return nil, err
	}
	if err := groupType.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("group name")
	}

	return &ItemGroup{id: id, classID: classID, groupType: groupType, name: name, isActive: isActive}, nil
}

// ID returns the group's unique identifier.
func (g *ItemGroup) ID() kernel.UUID { return g.id }

// ClassID returns the identifier of the class the group is assigned to.
func (g *ItemGroup) ClassID() kernel.UUID { return g.classID }

// Type returns the group's category.
func (g *ItemGroup) Type() GroupType { return g.groupType }

// Name returns the group's display name.
func (g *ItemGroup) Name() string { return g.name }

// IsActive reports whether the group is available for ordering.
func (g *ItemGroup) IsActive() bool { return g.isActive }
