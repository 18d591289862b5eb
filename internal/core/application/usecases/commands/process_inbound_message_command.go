package commands

import (
	"errors"

	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/pkg/guard"
)

var (
	ErrProcessInboundMessageCommandIsNotConstructed = errors.New(
		"ProcessInboundMessageCommand must be created via NewProcessInboundMessageCommand constructor",
	)
	ErrMessageTextIsRequired = errors.New("message text is required")
)

// ProcessInboundMessageCommand represents one inbound message from a buyer
// on the conversational channel.
type ProcessInboundMessageCommand struct { //nolint:recvcheck //using for validation
	phone kernel.Phone
	text  string

	guard guard.ConstructorGuard
}

// NewProcessInboundMessageCommand creates a command for one inbound message.
func NewProcessInboundMessageCommand(phone kernel.Phone, text string) (ProcessInboundMessageCommand, error) {
	cmd := ProcessInboundMessageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		phone.Validate(),
		cmd.setText(text),
	); err != nil {
		return ProcessInboundMessageCommand{}, err
	}

	cmd.phone = phone
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessInboundMessageCommand) Validate() error {
	return c.guard.Validate(ErrProcessInboundMessageCommandIsNotConstructed)
}

// Phone returns the sender's identity.
func (c ProcessInboundMessageCommand) Phone() kernel.Phone { return c.phone }

// Text returns the message body as received.
func (c ProcessInboundMessageCommand) Text() string { return c.text }

func (c *ProcessInboundMessageCommand) setText(text string) error {
	if text == "" {
		return ErrMessageTextIsRequired
	}
	c.text = text
	return nil
}
