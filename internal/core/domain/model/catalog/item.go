package catalog

import (
	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/pkg/errs"
)

// Item is a sellable catalog entry with its current price, stock level,
// weight, and packed dimensions. Prices read from an Item are snapshots:
// orders capture the unit price at order time and are unaffected by later
// catalog changes.
type Item struct {
	id          kernel.UUID
	groupID     kernel.UUID
	name        string
	price       kernel.Money
	stock       int
	weightGrams int64
	dimensions  kernel.Dimensions
	isActive    bool
}

// RestoreItem rehydrates an Item from the catalog store.
func RestoreItem(
	id, groupID kernel.UUID,
	name string,
	price kernel.Money,
	stock int,
	weightGrams int64,
	dimensions kernel.Dimensions,
	isActive bool,
) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := groupID.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("item name")
	}
	if err := price.Validate(); err != nil {
		return nil, err
	}
	if err := dimensions.Validate(); err != nil {
		return nil, err
	}

	return &Item{
		id:          id,
		groupID:     groupID,
		name:        name,
		price:       price,
		stock:       stock,
		weightGrams: weightGrams,
		dimensions:  dimensions,
		isActive:    isActive,
	}, nil
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID { return i.id }

// GroupID returns the identifier of the group the item belongs to.
func (i *Item) GroupID() kernel.UUID { return i.groupID }

// Name returns the item's display name.
func (i *Item) Name() string { return i.name }

// Price returns the current catalog price.
func (i *Item) Price() kernel.Money { return i.price }

// Stock returns the current available quantity.
func (i *Item) Stock() int { return i.stock }

// WeightGrams returns the item's shipping weight in grams.
func (i *Item) WeightGrams() int64 { return i.weightGrams }

// Dimensions returns the item's packed dimensions.
func (i *Item) Dimensions() kernel.Dimensions { return i.dimensions }

// IsActive reports whether the item can be ordered.
func (i *Item) IsActive() bool { return i.isActive }

// HasStock reports whether at least qty units are available.
func (i *Item) HasStock(qty int) bool {
	return i.stock >= qty
}
