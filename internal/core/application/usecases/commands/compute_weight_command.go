package commands

import (
	"errors"

	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/pkg/guard"
)

var ErrComputeWeightCommandIsNotConstructed = errors.New(
	"ComputeWeightCommand must be created via NewComputeWeightCommand constructor",
)

// ComputeWeightCommand represents a request to compute an order's actual,
// volumetric, and billed weight.
type ComputeWeightCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewComputeWeightCommand creates a command to compute an order's weight.
func NewComputeWeightCommand(orderID kernel.UUID) (ComputeWeightCommand, error) {
	cmd := ComputeWeightCommand{
		guard: guard.NewConstructorGuard(),
	}
	if err := orderID.Validate(); err != nil {
		return ComputeWeightCommand{}, err
	}
	cmd.orderID = orderID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ComputeWeightCommand) Validate() error {
	return c.guard.Validate(ErrComputeWeightCommandIsNotConstructed)
}

// OrderID returns the order to weigh.
func (c ComputeWeightCommand) OrderID() kernel.UUID {
	return c.orderID
}
