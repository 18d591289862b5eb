package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"schoolstore/internal/core/domain/model/catalog"
	"schoolstore/internal/core/domain/model/conversation"
	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/core/domain/model/order"
	"schoolstore/internal/core/ports"
	"schoolstore/internal/pkg/errs"
)

const (
	resetKeyword   = "START"
	confirmKeyword = "CONFIRM"

	// The flow submits the first up to three available items with quantity 1
	// each; item-level selection is not part of the conversational contract.
	maxItemsPerOrder = 3
)

const (
	msgWelcome = "Welcome to the school store! Reply with your school's 4-digit code to begin."
	msgInvalidCode = "That doesn't look like a school code. " +
		"Please reply with the 4-digit code from your school circular."
	msgNoClasses       = "That school has no classes configured yet. Please contact the school office."
	msgCategoryPrompt  = "What would you like to order?\n1. Booklist\n2. Stationery kit\nReply 1 or 2."
	msgCategoryMissing = "Sorry, that isn't available for your class right now.\n" +
		"1. Booklist\n2. Stationery kit\nReply 1 or 2."
	msgDeliveryPrompt = "How should we deliver your order?\n" +
		"1. Collect at school\n2. Home delivery\nReply 1 or 2."
	msgAddressPrompt = "Please reply with your full delivery address."
	msgConfirmHint   = "Reply CONFIRM to place the order, or START to begin again."
)

// ProcessInboundMessageCommandHandler drives the conversational order intake
// machine. Each inbound message performs one conversation read, the catalog
// reads the current state needs, one conversation write (or delete), and at
// most one outbound reply.
//
// Input that fails the current state's validation produces a guidance reply
// and leaves the conversation untouched. The literal START resets the
// machine from any state; the literal CONFIRM in the final state hands the
// accumulated context to the order assembler and deletes the conversation on
// success.
type ProcessInboundMessageCommandHandler struct {
	uowFactory ConversationUoWFactory
	catalog    ports.CatalogReader
	settings   ports.SettingsReader
	messenger  ports.Messenger
	submit     *SubmitOrderCommandHandler
	logger     *slog.Logger
}

// NewProcessInboundMessageCommandHandler creates a handler for inbound
// messages.
func NewProcessInboundMessageCommandHandler(
	uowFactory ConversationUoWFactory,
	catalogReader ports.CatalogReader,
	settings ports.SettingsReader,
	messenger ports.Messenger,
	submit *SubmitOrderCommandHandler,
	logger *slog.Logger,
) *ProcessInboundMessageCommandHandler {
	return &ProcessInboundMessageCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalogReader,
		settings:   settings,
		messenger:  messenger,
		submit:     submit,
		logger:     logger,
	}
}

// Handle processes one inbound message: advances (or resets) the sender's
// conversation, persists it, and sends the reply. The reply send happens
// after the conversation commit and is fire-and-forget.
func (h *ProcessInboundMessageCommandHandler) Handle(ctx context.Context, cmd ProcessInboundMessageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	input := strings.TrimSpace(cmd.Text())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()
	repo := uow.ConversationRepository()

	if input == resetKeyword {
		return h.reset(ctx, uow, repo, cmd.Phone())
	}

	conv, err := repo.Get(ctx, cmd.Phone())
	if errors.Is(err, errs.ErrObjectNotFound) {
		conv, err = conversation.NewConversation(cmd.Phone())
	}
	if err != nil {
		return err
	}

	reply, submitted, err := h.advance(ctx, conv, input)
	if err != nil {
		return err
	}

	if submitted {
		err = repo.Delete(ctx, cmd.Phone())
	} else {
		err = repo.Upsert(ctx, conv)
	}
	if err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.reply(ctx, cmd.Phone(), reply)
	return nil
}

func (h *ProcessInboundMessageCommandHandler) reset(
	ctx context.Context,
	uow ConversationUoW,
	repo ports.ConversationRepository,
	phone kernel.Phone,
) error {
	if err := repo.Delete(ctx, phone); err != nil {
		return err
	}
	conv, err := conversation.NewConversation(phone)
	if err != nil {
		return err
	}
	if err = repo.Upsert(ctx, conv); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}
	h.reply(ctx, phone, msgWelcome)
	return nil
}

// advance dispatches the input to the current state. A non-nil error means
// infrastructure failure; buyer mistakes come back as a guidance reply with
// the conversation unchanged.
func (h *ProcessInboundMessageCommandHandler) advance(
	ctx context.Context,
	conv *conversation.Conversation,
	input string,
) (reply string, submitted bool, err error) {
	switch conv.State() {
	case conversation.StateAwaitCode:
		reply, err = h.handleSchoolCode(ctx, conv, input)
	case conversation.StateAwaitClass:
		reply, err = h.handleClassChoice(conv, input)
	case conversation.StateAwaitCategory:
		reply, err = h.handleCategoryChoice(ctx, conv, input)
	case conversation.StateAwaitDelivery:
		reply, err = h.handleDeliveryChoice(ctx, conv, input)
	case conversation.StateAwaitAddress:
		reply, err = h.handleAddress(ctx, conv, input)
	case conversation.StateAwaitConfirm:
		return h.handleConfirm(ctx, conv, input)
	default:
		err = conv.State().Validate()
	}
	return reply, false, err
}

func (h *ProcessInboundMessageCommandHandler) handleSchoolCode(
	ctx context.Context,
	conv *conversation.Conversation,
	input string,
) (string, error) {
	if !isSchoolCode(input) {
		return msgInvalidCode, nil
	}

	school, err := h.catalog.SchoolByCode(ctx, input)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return fmt.Sprintf("No school found for code %s. Please check the code and try again.", input), nil
	}
	if err != nil {
		return "", err
	}

	classes, err := h.catalog.ClassesBySchool(ctx, school.ID())
	if err != nil {
		return "", err
	}
	if len(classes) == 0 {
		return msgNoClasses, nil
	}

	classIDs := make([]kernel.UUID, 0, len(classes))
	var list strings.Builder
	fmt.Fprintf(&list, "Welcome to %s!\nWhich class is your child in?\n", school.Name())
	for i, class := range classes {
		classIDs = append(classIDs, class.ID())
		fmt.Fprintf(&list, "%d. %s\n", i+1, class.Name())
	}
	list.WriteString("Reply with the number of the class.")

	if err = conv.ChooseSchool(input, school.ID(), classIDs); err != nil {
		return "", err
	}
	return list.String(), nil
}

func (h *ProcessInboundMessageCommandHandler) handleClassChoice(
	conv *conversation.Conversation,
	input string,
) (string, error) {
	rePrompt := fmt.Sprintf("Please reply with a number between 1 and %d.", len(conv.PresentedClasses()))

	index, err := strconv.Atoi(input)
	if err != nil {
		return rePrompt, nil
	}
	if _, err = conv.ChooseClass(index); err != nil {
		if errors.Is(err, errs.ErrValueIsOutOfRange) {
			return rePrompt, nil
		}
		return "", err
	}
	return msgCategoryPrompt, nil
}

func (h *ProcessInboundMessageCommandHandler) handleCategoryChoice(
	ctx context.Context,
	conv *conversation.Conversation,
	input string,
) (string, error) {
	groupType, err := catalog.GroupTypeFromChoice(input)
	if err != nil {
		return msgCategoryPrompt, nil
	}

	group, err := h.firstGroupOfType(ctx, conv, groupType)
	if err != nil {
		return "", err
	}
	if group == nil {
		return msgCategoryMissing, nil
	}

	items, err := h.catalog.ActiveItemsByGroup(ctx, group.ID())
	if err != nil {
		return "", err
	}
	itemIDs := make([]kernel.UUID, 0, maxItemsPerOrder)
	for _, item := range items {
		if !item.HasStock(1) {
			continue
		}
		itemIDs = append(itemIDs, item.ID())
		if len(itemIDs) == maxItemsPerOrder {
			break
		}
	}
	if len(itemIDs) == 0 {
		return msgCategoryMissing, nil
	}

	if err = conv.ChooseCategory(groupType, itemIDs); err != nil {
		return "", err
	}
	return msgDeliveryPrompt, nil
}

// firstGroupOfType returns the first active group of the requested type
// assigned to the chosen class, or nil when there is none.
func (h *ProcessInboundMessageCommandHandler) firstGroupOfType(
	ctx context.Context,
	conv *conversation.Conversation,
	groupType catalog.GroupType,
) (*catalog.ItemGroup, error) {
	classID := conv.ClassID()
	if classID == nil {
		return nil, conversation.ErrWrongState
	}
	groups, err := h.catalog.GroupsByClass(ctx, *classID)
	if err != nil {
		return nil, err
	}
	for _, group := range groups {
		if group.Type() == groupType && group.IsActive() {
			return group, nil
		}
	}
	return nil, nil
}

func (h *ProcessInboundMessageCommandHandler) handleDeliveryChoice(
	ctx context.Context,
	conv *conversation.Conversation,
	input string,
) (string, error) {
	deliveryType, err := order.DeliveryTypeFromChoice(input)
	if err != nil {
		return msgDeliveryPrompt, nil
	}
	if err = conv.ChooseDelivery(deliveryType); err != nil {
		return "", err
	}
	if deliveryType == order.DeliveryHome {
		return msgAddressPrompt, nil
	}
	return h.orderSummary(ctx, conv)
}

func (h *ProcessInboundMessageCommandHandler) handleAddress(
	ctx context.Context,
	conv *conversation.Conversation,
	input string,
) (string, error) {
	if input == "" {
		return msgAddressPrompt, nil
	}
	if err := conv.SetAddress(input); err != nil {
		return "", err
	}
	return h.orderSummary(ctx, conv)
}

func (h *ProcessInboundMessageCommandHandler) handleConfirm(
	ctx context.Context,
	conv *conversation.Conversation,
	input string,
) (reply string, submitted bool, err error) {
	if input != confirmKeyword {
		return msgConfirmHint, false, nil
	}

	submission, err := conv.SubmissionInput()
	if err != nil {
		return "", false, err
	}

	items := make([]ItemRequest, 0, len(submission.ItemIDs))
	for _, id := range submission.ItemIDs {
		items = append(items, ItemRequest{ItemID: id, Quantity: 1})
	}
	rawRequest := fmt.Sprintf("conversation confirm: school=%s class=%s items=%d delivery=%s",
		submission.SchoolCode, submission.ClassID, len(items), submission.DeliveryType)

	subCmd, err := NewSubmitOrderCommand(
		conv.Phone(), "", submission.SchoolCode, items,
		submission.DeliveryType, submission.Address, rawRequest,
	)
	if err != nil {
		return "", false, err
	}

	created, err := h.submit.Handle(ctx, subCmd)
	switch {
	case errors.Is(err, ErrInsufficientStock):
		return "Sorry, an item in your order just went out of stock. " +
			"Send START to build a new order.", false, nil
	case errors.Is(err, ErrUnknownItem), errors.Is(err, ErrInvalidSchool):
		return "Sorry, part of your order is no longer available. " +
			"Send START to build a new order.", false, nil
	case err != nil:
		return "", false, err
	}

	reply = fmt.Sprintf("Order placed! Your total is %s.", created.Total())
	if link := created.PaymentLink(); link != "" {
		reply += fmt.Sprintf(" Pay here: %s", link)
	} else {
		reply += " Your payment link will follow shortly."
	}
	return reply, true, nil
}

// orderSummary builds the confirmation prompt from the accumulated context.
func (h *ProcessInboundMessageCommandHandler) orderSummary(
	ctx context.Context,
	conv *conversation.Conversation,
) (string, error) {
	items, err := h.catalog.ItemsByIDs(ctx, conv.CandidateItems())
	if err != nil {
		return "", err
	}

	subtotal, err := kernel.NewMoney(0)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Your order:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- %s (%s)\n", item.Name(), item.Price())
		subtotal = subtotal.Add(item.Price())
	}

	charge := h.settings.DeliveryCharge(ctx, conv.DeliveryType())
	fmt.Fprintf(&b, "Delivery (%s): %s\n", conv.DeliveryType(), charge)
	fmt.Fprintf(&b, "Total: %s\n", subtotal.Add(charge))
	b.WriteString(msgConfirmHint)
	return b.String(), nil
}

func (h *ProcessInboundMessageCommandHandler) reply(ctx context.Context, to kernel.Phone, text string) {
	if text == "" {
		return
	}
	if err := h.messenger.SendText(ctx, to, text); err != nil {
		h.logger.ErrorContext(ctx, "reply send failed", "to", to.String(), "error", err)
	}
}

// isSchoolCode reports whether the input looks like a 4-digit school code.
func isSchoolCode(input string) bool {
	if len(input) != catalog.SchoolCodeLength {
		return false
	}
	for _, r := range input {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
