package order

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the admin order views. Order creation happens only in
// the checkout pipeline.
type Handler struct {
	repo Repository
	log  *zap.Logger
}

func NewHandler(repo Repository, log *zap.Logger) *Handler {
	return &Handler{repo: repo, log: log}
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App) {
	app.Get("/api/admin/orders", h.list)
	app.Patch("/api/admin/orders/:id", h.updateStatus)
}

func (h *Handler) list(c *fiber.Ctx) error {
	orders, err := h.repo.List()
	if err != nil {
		h.log.Error("list orders", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch orders"})
	}
	return c.JSON(fiber.Map{"orders": orders})
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	payload := new(statusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !ValidStatus(payload.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status"})
	}

	updated, err := h.repo.UpdateStatus(c.Params("id"), payload.Status)
	if err == ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}
	if err != nil {
		h.log.Error("update order status", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update order"})
	}
	return c.JSON(fiber.Map{"order": updated, "success": true})
}
