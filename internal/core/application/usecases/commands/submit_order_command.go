package commands

import (
	"errors"
	"fmt"

	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/core/domain/model/order"
	"schoolstore/internal/pkg/guard"
)

var (
	ErrSubmitOrderCommandIsNotConstructed = errors.New(
		"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
	)
	ErrNoItemsRequested = errors.New("at least one item is required")

	// ErrInvalidSchool is returned when the school code resolves to no active
	// school.
	ErrInvalidSchool = errors.New("school code does not resolve to an active school")

	// ErrUnknownItem is returned when a requested item id is not in the
	// catalog or no longer active.
	ErrUnknownItem = errors.New("requested item is not available in the catalog")

	// ErrInsufficientStock is returned when an item's stock does not cover the
	// requested quantity.
	ErrInsufficientStock = errors.New("requested quantity exceeds available stock")
)

// ItemRequest is one requested order line: a catalog item id and quantity.
type ItemRequest struct {
	ItemID   kernel.UUID
	Quantity int
}

// SubmitOrderCommand represents a request to assemble and persist a new
// order from a completed selection: the conversational flow on CONFIRM, or a
// direct order-creation API call.
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	buyerPhone   kernel.Phone
	buyerName    string
	schoolCode   string
	items        []ItemRequest
	deliveryType order.DeliveryType
	address      string
	rawRequest   string

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand creates a command to assemble a new order.
// rawRequest is kept verbatim on the order as an audit snapshot.
func NewSubmitOrderCommand(
	buyerPhone kernel.Phone,
	buyerName string,
	schoolCode string,
	items []ItemRequest,
	deliveryType order.DeliveryType,
	address string,
	rawRequest string,
) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBuyerPhone(buyerPhone),
		cmd.setSchoolCode(schoolCode),
		cmd.setItems(items),
		cmd.setDeliveryType(deliveryType, address),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	cmd.buyerName = buyerName
	cmd.rawRequest = rawRequest
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// BuyerPhone returns the buyer's messaging-channel identity.
func (c SubmitOrderCommand) BuyerPhone() kernel.Phone { return c.buyerPhone }

// BuyerName returns the buyer's name, possibly empty.
func (c SubmitOrderCommand) BuyerName() string { return c.buyerName }

// SchoolCode returns the 4-digit school code to resolve.
func (c SubmitOrderCommand) SchoolCode() string { return c.schoolCode }

// Items returns the requested lines.
func (c SubmitOrderCommand) Items() []ItemRequest { return c.items }

// DeliveryType reports school or home delivery.
func (c SubmitOrderCommand) DeliveryType() order.DeliveryType { return c.deliveryType }

// Address returns the home delivery address, empty for school delivery.
func (c SubmitOrderCommand) Address() string { return c.address }

// RawRequest returns the audit snapshot of the originating request.
func (c SubmitOrderCommand) RawRequest() string { return c.rawRequest }

func (c *SubmitOrderCommand) setBuyerPhone(phone kernel.Phone) error {
	if err := phone.Validate(); err != nil {
		return err
	}
	c.buyerPhone = phone
	return nil
}

func (c *SubmitOrderCommand) setSchoolCode(code string) error {
	if code == "" {
		return ErrInvalidSchool
	}
	c.schoolCode = code
	return nil
}

func (c *SubmitOrderCommand) setItems(items []ItemRequest) error {
	if len(items) == 0 {
		return ErrNoItemsRequested
	}
	for _, item := range items {
		if err := item.ItemID.Validate(); err != nil {
			return err
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: quantity %d for item %s",
				ErrNoItemsRequested, item.Quantity, item.ItemID)
		}
	}
	c.items = items
	return nil
}

func (c *SubmitOrderCommand) setDeliveryType(deliveryType order.DeliveryType, address string) error {
	if err := deliveryType.Validate(); err != nil {
		return err
	}
	if deliveryType == order.DeliveryHome && address == "" {
		return order.ErrAddressIsRequired
	}
	c.deliveryType = deliveryType
	c.address = address
	return nil
}
