package admin

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ayurbliss/wellness-backend/internal/middleware"
)

const (
	testEmail    = "admin@ayurbliss.in"
	testPassword = "super-secret"
	testJWTKey   = "jwt-signing-key"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	NewHandler(testEmail, testPassword, testJWTKey, zap.NewNop()).RegisterPublicRoutes(app)
	app.Use("/api/admin", middleware.Protect(testJWTKey))
	app.Get("/api/admin/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func login(t *testing.T, app *fiber.App, email, password string) (int, map[string]interface{}) {
	t.Helper()
	body := `{"email":"` + email + `","password":"` + password + `"}`
	req := httptest.NewRequest("POST", "/api/admin/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	var decoded map[string]interface{}
	_ = json.NewDecoder(res.Body).Decode(&decoded)
	return res.StatusCode, decoded
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := newTestApp()

	status, _ := login(t, app, testEmail, "wrong")
	if status != 401 {
		t.Fatalf("wrong password: status %d", status)
	}
	status, _ = login(t, app, "other@example.com", testPassword)
	if status != 401 {
		t.Fatalf("wrong email: status %d", status)
	}
	status, _ = login(t, app, "", "")
	if status != 400 {
		t.Fatalf("empty credentials: status %d", status)
	}
}

func TestLoginIssuesTokenThatOpensAdminRoutes(t *testing.T) {
	app := newTestApp()

	status, body := login(t, app, testEmail, testPassword)
	if status != 200 {
		t.Fatalf("login: status %d body %v", status, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("expected a token")
	}

	// without a token the admin route is closed
	req := httptest.NewRequest("GET", "/api/admin/ping", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != 401 {
		t.Fatalf("expected 401 without token, got %d", res.StatusCode)
	}

	// with the issued token it opens
	req = httptest.NewRequest("GET", "/api/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200 with token, got %d", res.StatusCode)
	}

	// a token signed with a different key is rejected
	req = httptest.NewRequest("GET", "/api/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token+"tampered")
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != 401 {
		t.Fatalf("expected 401 with tampered token, got %d", res.StatusCode)
	}
}
