package commands

import (
	"errors"

	"schoolstore/internal/pkg/guard"
)

var (
	ErrApplyCourierEventCommandIsNotConstructed = errors.New(
		"ApplyCourierEventCommand must be created via NewApplyCourierEventCommand constructor",
	)
	ErrTrackingIDIsRequired = errors.New("tracking id is required")
	ErrCarrierIsRequired    = errors.New("carrier name is required")
)

// ApplyCourierEventCommand represents one inbound courier webhook delivery,
// keyed by tracking id and carrying the carrier's free-text status.
type ApplyCourierEventCommand struct { //nolint:recvcheck //using for validation
	carrier    string
	trackingID string
	statusText string
	payload    string

	guard guard.ConstructorGuard
}

// NewApplyCourierEventCommand creates a command for one courier webhook
// delivery. payload is the raw body kept for the audit log.
func NewApplyCourierEventCommand(carrier, trackingID, statusText, payload string) (ApplyCourierEventCommand, error) {
	cmd := ApplyCourierEventCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCarrier(carrier),
		cmd.setTrackingID(trackingID),
	); err != nil {
		return ApplyCourierEventCommand{}, err
	}

	cmd.statusText = statusText
	cmd.payload = payload
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyCourierEventCommand) Validate() error {
	return c.guard.Validate(ErrApplyCourierEventCommandIsNotConstructed)
}

// Carrier returns the courier provider's name.
func (c ApplyCourierEventCommand) Carrier() string { return c.carrier }

// TrackingID returns the tracking id the event is keyed by.
func (c ApplyCourierEventCommand) TrackingID() string { return c.trackingID }

// StatusText returns the carrier's free-text status.
func (c ApplyCourierEventCommand) StatusText() string { return c.statusText }

// Payload returns the raw webhook body.
func (c ApplyCourierEventCommand) Payload() string { return c.payload }

func (c *ApplyCourierEventCommand) setCarrier(carrier string) error {
	if carrier == "" {
		return ErrCarrierIsRequired
	}
	c.carrier = carrier
	return nil
}

func (c *ApplyCourierEventCommand) setTrackingID(trackingID string) error {
	if trackingID == "" {
		return ErrTrackingIDIsRequired
	}
	c.trackingID = trackingID
	return nil
}
