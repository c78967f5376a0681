package appointment

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
	app.Post("/api/appointments", h.book)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App) {
	app.Get("/api/admin/appointments", h.list)
	app.Patch("/api/admin/appointments/:id", h.updateStatus)
}

type bookRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Service string  `json:"service"`
	Date    string  `json:"date"`
	Time    string  `json:"time"`
	Message *string `json:"message"`
}

func (h *Handler) book(c *fiber.Ctx) error {
	payload := new(bookRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	created, err := h.service.Book(Appointment{
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Service: payload.Service,
		Date:    payload.Date,
		Time:    payload.Time,
		Message: payload.Message,
	})
	switch err {
	case nil:
	case ErrMissingFields:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "All required fields must be provided"})
	case ErrSlotTaken:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "This time slot is already booked. Please choose another time."})
	default:
		h.log.Error("book appointment", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save appointment"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": created.ID})
}

func (h *Handler) list(c *fiber.Ctx) error {
	appointments, err := h.service.List()
	if err != nil {
		h.log.Error("list appointments", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch appointments"})
	}
	return c.JSON(fiber.Map{"appointments": appointments})
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	payload := new(statusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updated, err := h.service.UpdateStatus(c.Params("id"), payload.Status)
	switch err {
	case nil:
	case ErrInvalidStatus:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status. Must be 'pending', 'confirmed', or 'cancelled'"})
	case ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Appointment not found"})
	default:
		h.log.Error("update appointment status", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update appointment"})
	}

	return c.JSON(fiber.Map{"appointment": updated, "success": true})
}
