package gallery

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
	app.Get("/api/gallery", h.list)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App) {
	app.Get("/api/admin/gallery", h.list)
	app.Post("/api/admin/gallery", h.create)
	app.Get("/api/admin/gallery/:id", h.get)
	app.Put("/api/admin/gallery/:id", h.update)
	app.Delete("/api/admin/gallery/:id", h.remove)
}

func (h *Handler) list(c *fiber.Ctx) error {
	images, err := h.service.List(c.Query("category"))
	if err != nil {
		h.log.Error("list gallery images", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch gallery images"})
	}
	return c.JSON(fiber.Map{"images": images})
}

func (h *Handler) get(c *fiber.Ctx) error {
	img, err := h.service.GetByID(c.Params("id"))
	if err == ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Gallery image not found"})
	}
	if err != nil {
		h.log.Error("get gallery image", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch gallery image"})
	}
	return c.JSON(fiber.Map{"image": img})
}

type createRequest struct {
	ImageURL     string  `json:"image_url"`
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	DisplayOrder int     `json:"display_order"`
}

func (h *Handler) create(c *fiber.Ctx) error {
	payload := new(createRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	created, err := h.service.Create(Image{
		ImageURL:     payload.ImageURL,
		Title:        payload.Title,
		Description:  payload.Description,
		Category:     payload.Category,
		DisplayOrder: payload.DisplayOrder,
	})
	if err == ErrMissingImageURL {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image_url is required"})
	}
	if err != nil {
		h.log.Error("create gallery image", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create gallery image"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"image": created, "message": "Gallery image created successfully"})
}

func (h *Handler) update(c *fiber.Ctx) error {
	patch := new(Patch)
	if err := c.BodyParser(patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updated, err := h.service.Update(c.Params("id"), *patch)
	if err == ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Gallery image not found"})
	}
	if err != nil {
		h.log.Error("update gallery image", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update gallery image"})
	}

	return c.JSON(fiber.Map{"image": updated, "message": "Gallery image updated successfully"})
}

func (h *Handler) remove(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Gallery image not found"})
		}
		h.log.Error("delete gallery image", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete gallery image"})
	}
	return c.JSON(fiber.Map{"message": "Gallery image deleted successfully"})
}
