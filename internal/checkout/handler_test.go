package checkout

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ayurbliss/wellness-backend/internal/order"
)

func newTestApp(gw Gateway, repo order.Repository) *fiber.App {
	svc := NewService(gw, repo, &syncDispatcher{}, testSecret, zap.NewNop())
	app := fiber.New()
	NewHandler(svc, zap.NewNop()).RegisterPublicRoutes(app)
	return app
}

func postJSON(app *fiber.App, path, body string) (int, map[string]interface{}) {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		panic(err)
	}
	var decoded map[string]interface{}
	_ = json.NewDecoder(res.Body).Decode(&decoded)
	return res.StatusCode, decoded
}

func TestCreateOrderEndpoint(t *testing.T) {
	app := newTestApp(&fakeGateway{}, order.NewInMemoryRepository())

	status, body := postJSON(app, "/api/payments/create-order", `{"items":[],"totalAmount":1000}`)
	if status != 400 || body["error"] != "Items are required" {
		t.Fatalf("empty items: status %d body %v", status, body)
	}

	status, body = postJSON(app, "/api/payments/create-order",
		`{"items":[{"productId":"p1","quantity":1}],"totalAmount":0}`)
	if status != 400 || body["error"] != "Total amount must be greater than 0" {
		t.Fatalf("zero amount: status %d body %v", status, body)
	}

	status, body = postJSON(app, "/api/payments/create-order",
		`{"items":[{"productId":"p1","quantity":1}],"totalAmount":24900}`)
	if status != 200 {
		t.Fatalf("create order: status %d body %v", status, body)
	}
	if body["orderId"] != "order_abc" {
		t.Fatalf("unexpected orderId %v", body["orderId"])
	}
	if body["amount"].(float64) != 24900 {
		t.Fatalf("unexpected amount %v", body["amount"])
	}
}

func TestVerifyEndpoint(t *testing.T) {
	repo := order.NewInMemoryRepository()
	app := newTestApp(&fakeGateway{payment: capturedPayment(1000)}, repo)

	status, body := postJSON(app, "/api/payments/verify", `{"orderId":"order_abc"}`)
	if status != 400 || body["error"] != "Missing payment verification details" {
		t.Fatalf("missing fields: status %d body %v", status, body)
	}

	status, body = postJSON(app, "/api/payments/verify",
		`{"orderId":"order_abc","paymentId":"pay_1","signature":"bogus"}`)
	if status != 400 || body["error"] != "Invalid payment signature" {
		t.Fatalf("bad signature: status %d body %v", status, body)
	}

	good := fmt.Sprintf(`{"orderId":"order_abc","paymentId":"pay_1","signature":%q,"items":[{"productId":"p1","quantity":1}]}`,
		sign("order_abc", "pay_1", testSecret))
	status, body = postJSON(app, "/api/payments/verify", good)
	if status != 200 {
		t.Fatalf("verify: status %d body %v", status, body)
	}
	if body["success"] != true || body["paymentId"] != "pay_1" {
		t.Fatalf("unexpected body %v", body)
	}

	// replaying the same callback must not create a second order
	status, body = postJSON(app, "/api/payments/verify", good)
	if status != 409 {
		t.Fatalf("replay: status %d body %v", status, body)
	}
	if orders, _ := repo.List(); len(orders) != 1 {
		t.Fatalf("expected a single order after replay, got %d", len(orders))
	}
}

func TestVerifyEndpointUncaptured(t *testing.T) {
	gw := &fakeGateway{payment: Payment{ID: "pay_1", Amount: 1000, Status: "failed"}}
	app := newTestApp(gw, order.NewInMemoryRepository())

	body := fmt.Sprintf(`{"orderId":"order_abc","paymentId":"pay_1","signature":%q}`,
		sign("order_abc", "pay_1", testSecret))
	status, decoded := postJSON(app, "/api/payments/verify", body)
	if status != 400 || decoded["error"] != "Payment not captured" {
		t.Fatalf("uncaptured: status %d body %v", status, decoded)
	}
}
