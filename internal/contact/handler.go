package contact

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/contact", h.submit)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App) {
	app.Get("/api/admin/contact-messages", h.list)
	app.Patch("/api/admin/contact-messages/:id", h.markRead)
}

func (h *Handler) submit(c *fiber.Ctx) error {
	payload := new(Message)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	created, err := h.service.Submit(*payload)
	if err == ErrMissingFields {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "All fields are required"})
	}
	if err != nil {
		h.log.Error("save contact message", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save message"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": created.ID})
}

func (h *Handler) list(c *fiber.Ctx) error {
	messages, err := h.service.List()
	if err != nil {
		h.log.Error("list contact messages", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch messages"})
	}
	return c.JSON(fiber.Map{"messages": messages})
}

func (h *Handler) markRead(c *fiber.Ctx) error {
	updated, err := h.service.MarkRead(c.Params("id"))
	if err == ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Message not found"})
	}
	if err != nil {
		h.log.Error("mark contact message read", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update message"})
	}
	return c.JSON(fiber.Map{"message": updated, "success": true})
}
