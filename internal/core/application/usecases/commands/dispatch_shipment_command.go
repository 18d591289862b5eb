package commands

import (
	"errors"

	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/pkg/guard"
)

var ErrDispatchShipmentCommandIsNotConstructed = errors.New(
	"DispatchShipmentCommand must be created via NewDispatchShipmentCommand constructor",
)

// DispatchShipmentCommand represents a request to book a shipment for an
// order with the courier provider.
type DispatchShipmentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDispatchShipmentCommand creates a command to dispatch an order.
func NewDispatchShipmentCommand(orderID kernel.UUID) (DispatchShipmentCommand, error) {
	cmd := DispatchShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}
	if err := orderID.Validate(); err != nil {
		return DispatchShipmentCommand{}, err
	}
	cmd.orderID = orderID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchShipmentCommand) Validate() error {
	return c.guard.Validate(ErrDispatchShipmentCommandIsNotConstructed)
}

// OrderID returns the order to dispatch.
func (c DispatchShipmentCommand) OrderID() kernel.UUID {
	return c.orderID
}
