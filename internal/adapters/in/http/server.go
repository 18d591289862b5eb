// Package http exposes the application's inbound REST surface: the
// conversational message webhook, direct order creation, weight computation,
// provider webhooks and the active-orders query.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"schoolstore/internal/core/application/usecases/commands"
	"schoolstore/internal/core/application/usecases/queries"
	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/core/domain/model/order"
	"schoolstore/internal/pkg/errs"
)

// webhookSignatureHeader carries the payment provider's HMAC over the raw
// request body.
const webhookSignatureHeader = "X-Webhook-Signature"

const paymentProviderName = "razorpay"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	processMessageHandler *commands.ProcessInboundMessageCommandHandler
	submitOrderHandler    *commands.SubmitOrderCommandHandler
	computeWeightHandler  *commands.ComputeWeightCommandHandler
	reconcileHandler      *commands.ReconcilePaymentCommandHandler
	courierEventHandler   *commands.ApplyCourierEventCommandHandler

	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
}

// NewServer creates an HTTP server over the given command and query handlers.
func NewServer(
	processMessageHandler *commands.ProcessInboundMessageCommandHandler,
	submitOrderHandler *commands.SubmitOrderCommandHandler,
	computeWeightHandler *commands.ComputeWeightCommandHandler,
	reconcileHandler *commands.ReconcilePaymentCommandHandler,
	courierEventHandler *commands.ApplyCourierEventCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
) *Server {
	return &Server{
		processMessageHandler:  processMessageHandler,
		submitOrderHandler:     submitOrderHandler,
		computeWeightHandler:   computeWeightHandler,
		reconcileHandler:       reconcileHandler,
		courierEventHandler:    courierEventHandler,
		getActiveOrdersHandler: getActiveOrdersHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/messages", s.ProcessMessage)
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/weight", s.ComputeWeight)
	api.POST("/webhooks/payment", s.PaymentWebhook)
	api.POST("/webhooks/courier", s.CourierWebhook)
	api.GET("/orders/active", s.GetActiveOrders)
}

// Error is the structured error payload returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Ack acknowledges a webhook delivery.
type Ack struct {
	Status string `json:"status"`
}

func ack(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, Ack{Status: "ok"})
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}

// InboundMessage is one message received from the conversational channel.
type InboundMessage struct {
	Sender string `json:"sender"`
	Body   string `json:"body"`
}

// ProcessMessage handles POST /api/v1/messages - feeds one inbound message
// into the conversational order intake flow.
//
//	@Summary	Process an inbound buyer message
//	@Accept		json
//	@Param		message	body	InboundMessage	true	"inbound message"
//	@Success	200	{object}	Ack
//	@Failure	400	{object}	Error
//	@Router		/api/v1/messages [post]
func (s *Server) ProcessMessage(ctx echo.Context) error {
	var message InboundMessage
	if err := ctx.Bind(&message); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	phone, err := kernel.NewPhone(message.Sender)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid sender phone: "+err.Error())
	}

	cmd, err := commands.NewProcessInboundMessageCommand(phone, message.Body)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid message: "+err.Error())
	}

	if handleErr := s.processMessageHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to process message")
	}
	return ack(ctx)
}

// NewOrderItem is one requested catalog line in a direct order creation call.
type NewOrderItem struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// NewOrder is the request body for direct order creation.
type NewOrder struct {
	BuyerPhone   string         `json:"buyer_phone"`
	BuyerName    string         `json:"buyer_name"`
	SchoolCode   string         `json:"school_code"`
	Items        []NewOrderItem `json:"items"`
	DeliveryType string         `json:"delivery_type"`
	Address      string         `json:"address"`
}

// OrderCreated is the response to a successful order creation.
type OrderCreated struct {
	OrderID     string `json:"order_id"`
	TotalAmount int64  `json:"total_amount"`
	PaymentLink string `json:"payment_link,omitempty"`
}

// CreateOrder handles POST /api/v1/orders - assembles and persists an order
// directly, bypassing the conversational flow.
//
//	@Summary	Create an order
//	@Accept		json
//	@Produce	json
//	@Param		order	body	NewOrder	true	"order request"
//	@Success	201	{object}	OrderCreated
//	@Failure	400	{object}	Error
//	@Failure	422	{object}	Error
//	@Router		/api/v1/orders [post]
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request NewOrder
	if err := ctx.Bind(&request); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	phone, err := kernel.NewPhone(request.BuyerPhone)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid buyer phone: "+err.Error())
	}

	deliveryType, err := order.DeliveryTypeFromString(request.DeliveryType)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid delivery type: "+request.DeliveryType)
	}

	items := make([]commands.ItemRequest, 0, len(request.Items))
	for _, item := range request.Items {
		itemID, idErr := kernel.UUIDFromString(item.ItemID)
		if idErr != nil {
			return errorJSON(ctx, http.StatusBadRequest, "Invalid item id: "+item.ItemID)
		}
		items = append(items, commands.ItemRequest{ItemID: itemID, Quantity: item.Quantity})
	}

	rawRequest, _ := json.Marshal(request)
	cmd, err := commands.NewSubmitOrderCommand(phone, request.BuyerName, request.SchoolCode,
		items, deliveryType, request.Address, string(rawRequest))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	created, err := s.submitOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidSchool),
			errors.Is(err, commands.ErrUnknownItem),
			errors.Is(err, commands.ErrInsufficientStock):
			return errorJSON(ctx, http.StatusUnprocessableEntity, err.Error())
		default:
			return errorJSON(ctx, http.StatusInternalServerError, "Failed to create order")
		}
	}

	return ctx.JSON(http.StatusCreated, OrderCreated{
		OrderID:     created.ID().String(),
		TotalAmount: created.Total().Paise(),
		PaymentLink: created.PaymentLink(),
	})
}

// WeightBreakdown is the response to a weight computation call.
type WeightBreakdown struct {
	ActualWeightGrams int64 `json:"actual_weight_grams"`
	VolumetricGrams   int64 `json:"volumetric_weight_grams"`
	BilledWeightGrams int64 `json:"billed_weight_grams"`
	PackageCount      int   `json:"package_count"`
}

// ComputeWeight handles POST /api/v1/orders/:id/weight - recomputes and
// persists the order's weight breakdown.
//
//	@Summary	Compute order weight
//	@Produce	json
//	@Param		id	path	string	true	"order id"
//	@Success	200	{object}	WeightBreakdown
//	@Failure	404	{object}	Error
//	@Router		/api/v1/orders/{id}/weight [post]
func (s *Server) ComputeWeight(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id")
	}

	cmd, err := commands.NewComputeWeightCommand(orderID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id")
	}

	result, err := s.computeWeightHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errorJSON(ctx, http.StatusNotFound, "Order not found")
		}
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to compute weight")
	}

	return ctx.JSON(http.StatusOK, WeightBreakdown{
		ActualWeightGrams: result.ActualGrams,
		VolumetricGrams:   result.VolumetricGrams,
		BilledWeightGrams: result.BilledGrams,
		PackageCount:      result.PackageCount,
	})
}

// paymentWebhookBody is the subset of the provider's payload the adapter
// parses out; the raw body still travels with the command for signature
// verification and the audit log.
type paymentWebhookBody struct {
	Event      string `json:"event"`
	PaymentRef string `json:"payment_ref"`
	PaidAt     string `json:"paid_at"`
}

// normalizePaymentEvent maps the provider's wire event names onto the
// application's normalized types. Unlisted events are acknowledged without
// processing.
func normalizePaymentEvent(wire string) (string, bool) {
	switch wire {
	case "payment_link.paid", "payment.captured":
		return commands.EventPaymentCompleted, true
	case "payment_link.cancelled", "payment.failed":
		return commands.EventPaymentFailed, true
	default:
		return "", false
	}
}

// PaymentWebhook handles POST /api/v1/webhooks/payment - reconciles one
// payment provider event against order state.
//
//	@Summary	Payment provider webhook
//	@Accept		json
//	@Success	200	{object}	Ack
//	@Failure	401	{object}	Error
//	@Router		/api/v1/webhooks/payment [post]
func (s *Server) PaymentWebhook(ctx echo.Context) error {
	payload, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Failed to read request body")
	}

	var body paymentWebhookBody
	if err := json.Unmarshal(payload, &body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid webhook payload")
	}

	eventType, known := normalizePaymentEvent(body.Event)
	if !known {
		return ack(ctx)
	}

	paidAt := time.Now().UTC()
	if body.PaidAt != "" {
		if parsed, parseErr := time.Parse(time.RFC3339, body.PaidAt); parseErr == nil {
			paidAt = parsed
		}
	}

	cmd, err := commands.NewReconcilePaymentCommand(paymentProviderName, payload,
		ctx.Request().Header.Get(webhookSignatureHeader), eventType, body.PaymentRef, paidAt)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid webhook data: "+err.Error())
	}

	if handleErr := s.reconcileHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		if errors.Is(handleErr, commands.ErrInvalidWebhookSignature) {
			return errorJSON(ctx, http.StatusUnauthorized, "Invalid webhook signature")
		}
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to process payment event")
	}
	return ack(ctx)
}

// CourierWebhookBody is one courier tracking update.
type CourierWebhookBody struct {
	Carrier    string `json:"carrier"`
	TrackingID string `json:"tracking_id"`
	StatusText string `json:"status_text"`
}

// CourierWebhook handles POST /api/v1/webhooks/courier - normalizes one
// courier status event and applies it to the tracked order.
//
//	@Summary	Courier tracking webhook
//	@Accept		json
//	@Success	200	{object}	Ack
//	@Failure	400	{object}	Error
//	@Router		/api/v1/webhooks/courier [post]
func (s *Server) CourierWebhook(ctx echo.Context) error {
	payload, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Failed to read request body")
	}

	var body CourierWebhookBody
	if err := json.Unmarshal(payload, &body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid webhook payload")
	}

	cmd, err := commands.NewApplyCourierEventCommand(body.Carrier, body.TrackingID,
		body.StatusText, string(payload))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid webhook data: "+err.Error())
	}

	if handleErr := s.courierEventHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to process courier event")
	}
	return ack(ctx)
}

// ActiveOrder is one row of the active-orders listing.
type ActiveOrder struct {
	ID            string    `json:"id"`
	BuyerPhone    string    `json:"buyer_phone"`
	SchoolID      string    `json:"school_id"`
	DeliveryType  string    `json:"delivery_type"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	TotalPaise    int64     `json:"total_paise"`
	TrackingID    string    `json:"tracking_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// GetActiveOrders handles GET /api/v1/orders/active - lists every order not
// yet in a terminal state.
//
//	@Summary	List active orders
//	@Produce	json
//	@Success	200	{array}		ActiveOrder
//	@Failure	500	{object}	Error
//	@Router		/api/v1/orders/active [get]
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
	}

	response := make([]ActiveOrder, len(orders))
	for i, row := range orders {
		response[i] = ActiveOrder{
			ID:            row.ID.String(),
			BuyerPhone:    row.BuyerPhone,
			SchoolID:      row.SchoolID.String(),
			DeliveryType:  row.DeliveryType,
			Status:        row.Status,
			PaymentStatus: row.PaymentStatus,
			TotalPaise:    row.TotalPaise,
			TrackingID:    row.TrackingID,
			CreatedAt:     row.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}
