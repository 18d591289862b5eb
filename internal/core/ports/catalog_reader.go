package ports

import (
	"context"

	"schoolstore/internal/core/domain/model/catalog"
	"schoolstore/internal/core/domain/model/kernel"
)

// CatalogReader defines read access to the externally managed catalog:
// schools, their classes, item groups, and items. The catalog is never
// written through this application; an admin tool owns it.
type CatalogReader interface {
	// SchoolByCode retrieves an active school by its 4-digit code.
	// Returns errs.ErrObjectNotFound for unknown or inactive codes.
	SchoolByCode(ctx context.Context, code string) (*catalog.School, error)

	// SchoolByID retrieves a school by id, active or not. Orders reference
	// schools by id; a school deactivated after an order was placed must
	// still resolve for dispatch.
	SchoolByID(ctx context.Context, id kernel.UUID) (*catalog.School, error)

	// ClassesBySchool retrieves a school's classes in presentation order.
	ClassesBySchool(ctx context.Context, schoolID kernel.UUID) ([]*catalog.SchoolClass, error)

	// GroupsByClass retrieves a class's active item groups.
	GroupsByClass(ctx context.Context, classID kernel.UUID) ([]*catalog.ItemGroup, error)

	// ActiveItemsByGroup retrieves a group's active items.
	ActiveItemsByGroup(ctx context.Context, groupID kernel.UUID) ([]*catalog.Item, error)

	// ItemsByIDs retrieves items by id, active or not. Missing ids are simply
	// absent from the result; the caller decides whether that is an error.
	ItemsByIDs(ctx context.Context, ids []kernel.UUID) ([]*catalog.Item, error)
}
