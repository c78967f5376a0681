package upload

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func newTestApp(dir string) *fiber.App {
	app := fiber.New()
	NewHandler(dir, zap.NewNop()).RegisterAdminRoutes(app)
	return app
}

func multipartImage(t *testing.T, fieldName, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(fieldName, fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestUploadImage(t *testing.T) {
	dir := t.TempDir()
	app := newTestApp(dir)

	body, contentType := multipartImage(t, "image", "product.jpg", []byte("fake-jpeg-bytes"))
	req := httptest.NewRequest("POST", "/api/upload/image", body)
	req.Header.Set("Content-Type", contentType)

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("upload: status %d", res.StatusCode)
	}

	var decoded map[string]interface{}
	_ = json.NewDecoder(res.Body).Decode(&decoded)
	fileName, _ := decoded["fileName"].(string)
	if !strings.HasSuffix(fileName, ".jpg") {
		t.Fatalf("expected .jpg file name, got %q", fileName)
	}
	url, _ := decoded["url"].(string)
	if !strings.HasPrefix(url, "/uploads/") {
		t.Fatalf("expected /uploads/ url, got %q", url)
	}

	saved, err := os.ReadFile(filepath.Join(dir, fileName))
	if err != nil {
		t.Fatalf("uploaded file not on disk: %v", err)
	}
	if string(saved) != "fake-jpeg-bytes" {
		t.Fatal("uploaded content does not match")
	}
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	app := newTestApp(t.TempDir())

	body, contentType := multipartImage(t, "image", "manual.pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest("POST", "/api/upload/image", body)
	req.Header.Set("Content-Type", contentType)

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != 400 {
		t.Fatalf("expected 400 for pdf, got %d", res.StatusCode)
	}
}

func TestUploadRequiresImageField(t *testing.T) {
	app := newTestApp(t.TempDir())

	body, contentType := multipartImage(t, "file", "product.jpg", []byte("x"))
	req := httptest.NewRequest("POST", "/api/upload/image", body)
	req.Header.Set("Content-Type", contentType)

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != 400 {
		t.Fatalf("expected 400 without image field, got %d", res.StatusCode)
	}
}
