package review

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
	app.Get("/api/products/:id/reviews", h.listApproved)
	app.Post("/api/products/:id/reviews", h.submit)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App) {
	app.Get("/api/admin/reviews", h.listAll)
	app.Patch("/api/admin/reviews/:id", h.moderate)
}

func (h *Handler) listApproved(c *fiber.Ctx) error {
	reviews, err := h.service.ListApproved(c.Params("id"))
	if err != nil {
		h.log.Error("list reviews", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch reviews"})
	}
	return c.JSON(fiber.Map{"reviews": reviews})
}

type submitRequest struct {
	UserName   string `json:"user_name"`
	UserEmail  string `json:"user_email"`
	Rating     int    `json:"rating"`
	ReviewText string `json:"review_text"`
	// Status is accepted but ignored; submissions always start pending.
	Status string `json:"status"`
}

func (h *Handler) submit(c *fiber.Ctx) error {
	payload := new(submitRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	created, err := h.service.Submit(Review{
		ProductID:  c.Params("id"),
		UserName:   payload.UserName,
		UserEmail:  payload.UserEmail,
		Rating:     payload.Rating,
		ReviewText: payload.ReviewText,
	})
	switch err {
	case nil:
	case ErrMissingFields:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "All fields are required"})
	case ErrInvalidRating:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Rating must be between 1 and 5"})
	default:
		h.log.Error("submit review", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit review"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"review": created, "success": true})
}

func (h *Handler) listAll(c *fiber.Ctx) error {
	reviews, err := h.service.List(c.Query("status"))
	if err == ErrInvalidStatus {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status"})
	}
	if err != nil {
		h.log.Error("list reviews for admin", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch reviews"})
	}
	return c.JSON(fiber.Map{"reviews": reviews})
}

type moderateRequest struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"admin_notes"`
}

func (h *Handler) moderate(c *fiber.Ctx) error {
	payload := new(moderateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updated, err := h.service.Moderate(c.Params("id"), payload.Status, payload.AdminNotes)
	switch err {
	case nil:
	case ErrInvalidStatus:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status. Must be 'approved', 'rejected', or 'pending'"})
	case ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Review not found"})
	default:
		h.log.Error("moderate review", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update review"})
	}

	return c.JSON(fiber.Map{"review": updated, "success": true})
}
