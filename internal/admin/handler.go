package admin

import (
	"crypto/subtle"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

const tokenTTL = 12 * time.Hour

// Handler issues admin tokens. There is a single admin account,
// configured through the environment.
type Handler struct {
	email    string
	password string
	secret   string
	log      *zap.Logger
}

func NewHandler(email, password, secret string, log *zap.Logger) *Handler {
	return &Handler{email: email, password: password, secret: secret, log: log}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/admin/login", h.login)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if payload.Email == "" || payload.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and password are required"})
	}

	if h.email == "" || h.password == "" ||
		subtle.ConstantTimeCompare([]byte(payload.Email), []byte(h.email)) != 1 ||
		subtle.ConstantTimeCompare([]byte(payload.Password), []byte(h.password)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	claims := jwt.MapClaims{
		"email": payload.Email,
		"role":  "admin",
		"exp":   time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.secret))
	if err != nil {
		h.log.Error("sign admin token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.JSON(fiber.Map{"success": true, "token": signed})
}
