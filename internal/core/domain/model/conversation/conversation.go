package conversation

import (
	"errors"
	"fmt"
	"time"

	"schoolstore/internal/core/domain/model/catalog"
	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/core/domain/model/order"
	"schoolstore/internal/pkg/errs"
)

var (
	// ErrConversationIsNotConstructed is returned when a Conversation was not
	// created through NewConversation or RestoreConversation.
	ErrConversationIsNotConstructed = errors.New(
		"Conversation must be created via NewConversation or RestoreConversation")

	// ErrWrongState is returned when a transition is attempted from a state
	// that does not expect it. The caller re-prompts and leaves the
	// conversation unchanged.
	ErrWrongState = errors.New("input does not match the conversation state")
)

// Conversation is the per-sender aggregate of the order intake machine.
// There is at most one conversation per phone number; absence implies a
// fresh StateAwaitCode machine. Each accepted input moves the machine one
// step forward and accumulates the selection it carried. Invalid input is
// rejected with ErrWrongState or a validation error and leaves every field
// untouched, so a re-prompt is always safe.
type Conversation struct {
	phone kernel.Phone
	state State

	schoolCode       string
	schoolID         *kernel.UUID
	presentedClasses []kernel.UUID
	classID          *kernel.UUID
	groupType        catalog.GroupType
	candidateItems   []kernel.UUID
	deliveryType     order.DeliveryType
	address          string

	lastActivityAt time.Time

	isConstructed bool
}

// NewConversation starts a fresh machine for a sender in StateAwaitCode.
func NewConversation(phone kernel.Phone) (*Conversation, error) {
	if err := phone.Validate(); err != nil {
		return nil, err
	}
	return &Conversation{
		phone:          phone,
		state:          StateAwaitCode,
		lastActivityAt: time.Now().UTC(),
		isConstructed:  true,
	}, nil
}

// RestoreConversation rehydrates a conversation from persistence.
func RestoreConversation(
	phone kernel.Phone,
	state State,
	schoolCode string,
	schoolID *kernel.UUID,
	presentedClasses []kernel.UUID,
	classID *kernel.UUID,
	groupType catalog.GroupType,
	candidateItems []kernel.UUID,
	deliveryType order.DeliveryType,
	address string,
	lastActivityAt time.Time,
) (*Conversation, error) {
	if err := phone.Validate(); err != nil {
		return nil, err
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}

	return &Conversation{
		phone:            phone,
		state:            state,
		schoolCode:       schoolCode,
		schoolID:         schoolID,
		presentedClasses: presentedClasses,
		classID:          classID,
		groupType:        groupType,
		candidateItems:   candidateItems,
		deliveryType:     deliveryType,
		address:          address,
		lastActivityAt:   lastActivityAt,
		isConstructed:    true,
	}, nil
}

// Validate ensures the conversation was created through a constructor.
func (c *Conversation) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrConversationIsNotConstructed
	}
	return nil
}

// Phone returns the sender identity that keys this conversation.
func (c *Conversation) Phone() kernel.Phone { return c.phone }

// State returns the input the machine expects next.
func (c *Conversation) State() State { return c.state }

// SchoolCode returns the 4-digit code the school was resolved from, empty
// before StateAwaitClass.
func (c *Conversation) SchoolCode() string { return c.schoolCode }

// SchoolID returns the chosen school, nil before StateAwaitClass.
func (c *Conversation) SchoolID() *kernel.UUID { return c.schoolID }

// PresentedClasses returns the class list shown to the buyer, in the order
// it was presented. Class selection indexes into this list.
func (c *Conversation) PresentedClasses() []kernel.UUID { return c.presentedClasses }

// ClassID returns the chosen class, nil before StateAwaitCategory.
func (c *Conversation) ClassID() *kernel.UUID { return c.classID }

// GroupType returns the chosen category, GroupTypeUnknown before selection.
func (c *Conversation) GroupType() catalog.GroupType { return c.groupType }

// CandidateItems returns the item ids resolved for the chosen category.
func (c *Conversation) CandidateItems() []kernel.UUID { return c.candidateItems }

// DeliveryType returns the chosen delivery type, DeliveryTypeUnknown before
// selection.
func (c *Conversation) DeliveryType() order.DeliveryType { return c.deliveryType }

// Address returns the collected home address; empty for school delivery.
func (c *Conversation) Address() string { return c.address }

// LastActivityAt returns the time of the last accepted input.
func (c *Conversation) LastActivityAt() time.Time { return c.lastActivityAt }

// ChooseSchool records the school resolved from a valid 4-digit code and the
// class list presented to the buyer, moving the machine to StateAwaitClass.
func (c *Conversation) ChooseSchool(schoolCode string, schoolID kernel.UUID, presentedClasses []kernel.UUID) error {
	if c.state != StateAwaitCode {
		return ErrWrongState
	}
	if schoolCode == "" {
		return errs.NewValueIsRequiredError("school code")
	}
	if err := schoolID.Validate(); err != nil {
		return err
	}
	if len(presentedClasses) == 0 {
		return errs.NewValueIsRequiredError("presented classes")
	}

	c.schoolCode = schoolCode
	c.schoolID = &schoolID
	c.presentedClasses = presentedClasses
	c.state = StateAwaitClass
	c.touch()
	return nil
}

// ChooseClass resolves a 1-based index into the presented class list and
// moves the machine to StateAwaitCategory. Out-of-range indexes leave the
// conversation unchanged.
func (c *Conversation) ChooseClass(index int) (kernel.UUID, error) {
	if c.state != StateAwaitClass {
		return kernel.UUID{}, ErrWrongState
	}
	if index < 1 || index > len(c.presentedClasses) {
		return kernel.UUID{}, errs.NewValueIsOutOfRangeError("class choice",
			index, 1, len(c.presentedClasses))
	}

	classID := c.presentedClasses[index-1]
	c.classID = &classID
	c.state = StateAwaitCategory
	c.touch()
	return classID, nil
}

// ChooseCategory records the resolved category and its item candidates,
// moving the machine to StateAwaitDelivery. The caller resolves the first
// matching group before calling; an empty candidate list is rejected so
// unavailability never advances the machine.
func (c *Conversation) ChooseCategory(groupType catalog.GroupType, itemIDs []kernel.UUID) error {
	if c.state != StateAwaitCategory {
		return ErrWrongState
	}
	if err := groupType.Validate(); err != nil {
		return err
	}
	if len(itemIDs) == 0 {
		return errs.NewValueIsRequiredError("candidate items")
	}

	c.groupType = groupType
	c.candidateItems = itemIDs
	c.state = StateAwaitDelivery
	c.touch()
	return nil
}

// ChooseDelivery records the delivery type. School delivery moves straight
// to StateAwaitConfirm; home delivery detours through StateAwaitAddress.
func (c *Conversation) ChooseDelivery(deliveryType order.DeliveryType) error {
	if c.state != StateAwaitDelivery {
		return ErrWrongState
	}
	if err := deliveryType.Validate(); err != nil {
		return err
	}

	c.deliveryType = deliveryType
	if deliveryType == order.DeliveryHome {
		c.state = StateAwaitAddress
	} else {
		c.state = StateAwaitConfirm
	}
	c.touch()
	return nil
}

// SetAddress records the buyer's free-text home address and moves the
// machine to StateAwaitConfirm.
func (c *Conversation) SetAddress(address string) error {
	if c.state != StateAwaitAddress {
		return ErrWrongState
	}
	if address == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}

	c.address = address
	c.state = StateAwaitConfirm
	c.touch()
	return nil
}

// ReadyToSubmit reports whether the machine has collected everything the
// order assembler needs and awaits the literal "CONFIRM".
func (c *Conversation) ReadyToSubmit() bool {
	return c.state == StateAwaitConfirm
}

// Submission is the accumulated context handed to the order assembler when
// the buyer confirms.
type Submission struct {
	SchoolCode   string
	SchoolID     kernel.UUID
	ClassID      kernel.UUID
	ItemIDs      []kernel.UUID
	DeliveryType order.DeliveryType
	Address      string
}

// SubmissionInput bundles the accumulated selections for the order
// assembler. It fails when called before the machine is complete.
func (c *Conversation) SubmissionInput() (Submission, error) {
	if !c.ReadyToSubmit() {
		return Submission{}, ErrWrongState
	}
	if c.schoolID == nil || c.classID == nil {
		return Submission{}, errs.NewValueIsRequiredErrorWithCause("conversation context",
			fmt.Errorf("school or class missing in state %s", c.state))
	}
	return Submission{
		SchoolCode:   c.schoolCode,
		SchoolID:     *c.schoolID,
		ClassID:      *c.classID,
		ItemIDs:      c.candidateItems,
		DeliveryType: c.deliveryType,
		Address:      c.address,
	}, nil
}

func (c *Conversation) touch() {
	c.lastActivityAt = time.Now().UTC()
}
