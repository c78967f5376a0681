package checkout

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ayurbliss/wellness-backend/internal/order"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/payments/create-order", h.createOrder)
	app.Post("/api/payments/verify", h.verify)
}

type createIntentRequest struct {
	Items       []CartItem `json:"items"`
	TotalAmount int64      `json:"totalAmount"`
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	payload := new(createIntentRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	intent, err := h.service.CreateIntent(payload.Items, payload.TotalAmount)
	switch err {
	case nil:
	case ErrNoItems:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Items are required"})
	case ErrInvalidAmount:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Total amount must be greater than 0"})
	default:
		h.log.Error("create payment order", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create payment order"})
	}

	return c.JSON(fiber.Map{"orderId": intent.ID, "amount": intent.Amount})
}

func (h *Handler) verify(c *fiber.Ctx) error {
	payload := new(VerifyRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	created, err := h.service.VerifyAndRecord(c.Context(), *payload)
	switch err {
	case nil:
	case ErrMissingFields:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing payment verification details"})
	case ErrBadSignature:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment signature"})
	case ErrNotCaptured:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payment not captured"})
	case order.ErrDuplicatePayment:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Payment already processed"})
	default:
		h.log.Error("verify payment", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Payment verification failed"})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"paymentId": created.PaymentID,
		"orderId":   created.ID,
	})
}
