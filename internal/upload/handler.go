package upload

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxFileSize = 5 << 20 // 5MB

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Handler stores admin image uploads on local disk and serves them back
// under /uploads.
type Handler struct {
	dir string
	log *zap.Logger
}

func NewHandler(dir string, log *zap.Logger) *Handler {
	return &Handler{dir: dir, log: log}
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App) {
	app.Post("/api/upload/image", h.uploadImage)
}

func (h *Handler) uploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Image file is required"})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only jpg, jpeg, png and webp images are allowed"})
	}
	if file.Size > maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Image must be smaller than 5MB"})
	}

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		h.log.Error("create upload dir", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save image"})
	}

	fileName := uuid.NewString() + ext
	dst := filepath.Join(h.dir, fileName)
	if err := c.SaveFile(file, dst); err != nil {
		h.log.Error("save uploaded image", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save image"})
	}

	url := fmt.Sprintf("/uploads/%s", fileName)
	return c.JSON(fiber.Map{
		"success":  true,
		"fileName": fileName,
		"path":     dst,
		"url":      url,
	})
}
