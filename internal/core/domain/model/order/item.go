package order

import (
	"fmt"

	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/pkg/errs"
	"schoolstore/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when validating an Item that was not
// created through NewItem or RestoreItem.
var ErrItemIsNotConstructed = errs.NewValueIsRequiredError(
	"order item must be created via NewItem or RestoreItem")

// Item is a line of an order: a catalog item reference, the ordered quantity,
// and the unit price captured at order time. The captured price is immutable;
// later catalog price changes never affect an existing order.
type Item struct { //nolint:recvcheck //using for validation
	catalogItemID kernel.UUID
	name          string
	quantity      int
	unitPrice     kernel.Money

	guard guard.ConstructorGuard
}

// NewItem creates an order line, snapshotting the current catalog price and
// display name. Quantity must be positive.
func NewItem(catalogItemID kernel.UUID, name string, quantity int, unitPrice kernel.Money) (Item, error) {
	item := Item{guard: guard.NewConstructorGuard()}

	if err := item.setCatalogItemID(catalogItemID); err != nil {
		return Item{}, err
	}
	if err := item.setName(name); err != nil {
		return Item{}, err
	}
	if err := item.setQuantity(quantity); err != nil {
		return Item{}, err
	}
	if err := item.setUnitPrice(unitPrice); err != nil {
		return Item{}, err
	}

	return item, nil
}

// RestoreItem rehydrates an order line from persistence.
func RestoreItem(catalogItemID kernel.UUID, name string, quantity int, unitPrice kernel.Money) (Item, error) {
	return NewItem(catalogItemID, name, quantity, unitPrice)
}

// Validate ensures the line was created through a constructor.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// CatalogItemID returns the referenced catalog item's identifier.
func (i Item) CatalogItemID() kernel.UUID {
	return i.catalogItemID
}

// Name returns the item name captured at order time.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the unit price captured at order time.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// LineTotal returns unit price multiplied by quantity.
func (i Item) LineTotal() kernel.Money {
	return i.unitPrice.MulQty(i.quantity)
}

func (i *Item) setCatalogItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.catalogItemID = id
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	i.unitPrice = price
	return nil
}
