package shipping

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ayurbliss/wellness-backend/internal/queue"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/shiprocket/create-order", h.createOrder)
	app.Get("/api/shiprocket/tracking/:orderId", h.tracking)
}

// createOrderItem matches the cart line shape the checkout flow forwards.
type createOrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

type createOrderRequest struct {
	OrderID         string            `json:"orderId"`
	Items           []createOrderItem `json:"items"`
	CustomerName    string            `json:"customer_name"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerPhone   string            `json:"customer_phone"`
	ShippingAddress string            `json:"shipping_address"`
}

// createOrder registers a shipment synchronously. Shipping never blocks a
// sale, so every outcome is a 200; failures just report success:false.
func (h *Handler) createOrder(c *fiber.Ctx) error {
	payload := new(createOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if payload.OrderID == "" {
		return c.JSON(fiber.Map{"success": false, "error": "Order ID is required"})
	}

	items := make([]queue.TaskItem, 0, len(payload.Items))
	for _, it := range payload.Items {
		items = append(items, queue.TaskItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	shipment, err := h.service.Register(c.Context(), queue.ShipmentTask{
		OrderID:         payload.OrderID,
		Items:           items,
		CustomerName:    payload.CustomerName,
		CustomerEmail:   payload.CustomerEmail,
		CustomerPhone:   payload.CustomerPhone,
		ShippingAddress: payload.ShippingAddress,
	})
	if err != nil {
		h.log.Warn("shiprocket order creation failed", zap.String("order_id", payload.OrderID), zap.Error(err))
		return c.JSON(fiber.Map{"success": false, "error": "Shipping order could not be created"})
	}

	return c.JSON(fiber.Map{"success": true, "shipment": shipment})
}

func (h *Handler) tracking(c *fiber.Ctx) error {
	shipment, err := h.service.Track(c.Params("orderId"))
	if err == ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No shipment found for this order"})
	}
	if err != nil {
		h.log.Error("fetch shipment", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch tracking details"})
	}

	return c.JSON(fiber.Map{
		"shiprocket_order_id": shipment.ShiprocketOrderID,
		"awb_code":            shipment.AWBCode,
		"tracking_url":        shipment.TrackingURL,
		"status":              shipment.Status,
	})
}
