package checkout

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/ayurbliss/wellness-backend/internal/order"
	"github.com/ayurbliss/wellness-backend/internal/queue"
)

type fakeGateway struct {
	createErr error
	payment   Payment
	fetchErr  error
}

func (g *fakeGateway) CreateOrder(amount int64, currency string) (GatewayOrder, error) {
	if g.createErr != nil {
		return GatewayOrder{}, g.createErr
	}
	return GatewayOrder{ID: "order_abc", Amount: amount}, nil
}

func (g *fakeGateway) FetchPayment(paymentID string) (Payment, error) {
	if g.fetchErr != nil {
		return Payment{}, g.fetchErr
	}
	return g.payment, nil
}

// syncDispatcher records tasks instead of queueing them.
type syncDispatcher struct {
	tasks []queue.ShipmentTask
}

func (d *syncDispatcher) Dispatch(_ context.Context, task queue.ShipmentTask) error {
	d.tasks = append(d.tasks, task)
	return nil
}

const testSecret = "checkout-secret"

func newTestService(gw Gateway, repo order.Repository) (*Service, *syncDispatcher) {
	d := &syncDispatcher{}
	return NewService(gw, repo, d, testSecret, zap.NewNop()), d
}

func capturedPayment(amount int64) Payment {
	return Payment{ID: "pay_1", OrderID: "order_abc", Amount: amount, Status: "captured"}
}

func verifyReq(items []CartItem) VerifyRequest {
	return VerifyRequest{
		OrderID:   "order_abc",
		PaymentID: "pay_1",
		Signature: sign("order_abc", "pay_1", testSecret),
		Items:     items,
	}
}

func TestCreateIntentValidation(t *testing.T) {
	svc, _ := newTestService(&fakeGateway{}, order.NewInMemoryRepository())

	if _, err := svc.CreateIntent(nil, 1000); err != ErrNoItems {
		t.Fatalf("expected ErrNoItems, got %v", err)
	}
	items := []CartItem{{ProductID: "p1", Quantity: 1}}
	if _, err := svc.CreateIntent(items, 0); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}
	if _, err := svc.CreateIntent(items, -5); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}

	intent, err := svc.CreateIntent(items, 24900)
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	if intent.ID != "order_abc" || intent.Amount != 24900 {
		t.Fatalf("unexpected intent %+v", intent)
	}
}

func TestVerifyRejectsMissingFields(t *testing.T) {
	svc, _ := newTestService(&fakeGateway{payment: capturedPayment(1000)}, order.NewInMemoryRepository())

	for _, req := range []VerifyRequest{
		{PaymentID: "pay_1", Signature: "sig"},
		{OrderID: "order_abc", Signature: "sig"},
		{OrderID: "order_abc", PaymentID: "pay_1"},
	} {
		if _, err := svc.VerifyAndRecord(context.Background(), req); err != ErrMissingFields {
			t.Fatalf("expected ErrMissingFields for %+v, got %v", req, err)
		}
	}
}

func TestVerifyRejectsBadSignature(t *testing.T) {
	repo := order.NewInMemoryRepository()
	svc, _ := newTestService(&fakeGateway{payment: capturedPayment(1000)}, repo)

	req := verifyReq(nil)
	req.Signature = sign("order_other", "pay_1", testSecret)
	if _, err := svc.VerifyAndRecord(context.Background(), req); err != ErrBadSignature {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
	if orders, _ := repo.List(); len(orders) != 0 {
		t.Fatalf("no order should be stored on bad signature, got %d", len(orders))
	}
}

func TestVerifyRejectsUncapturedPayment(t *testing.T) {
	gw := &fakeGateway{payment: Payment{ID: "pay_1", Amount: 1000, Status: "authorized"}}
	svc, _ := newTestService(gw, order.NewInMemoryRepository())

	if _, err := svc.VerifyAndRecord(context.Background(), verifyReq(nil)); err != ErrNotCaptured {
		t.Fatalf("expected ErrNotCaptured, got %v", err)
	}
}

func TestVerifyStoresGatewayAmount(t *testing.T) {
	repo := order.NewInMemoryRepository()
	svc, _ := newTestService(&fakeGateway{payment: capturedPayment(50000)}, repo)

	// the client claims a different total; the gateway's number wins
	price := int64(100)
	created, err := svc.VerifyAndRecord(context.Background(), verifyReq([]CartItem{
		{ProductID: "p1", Quantity: 1, Price: &price},
	}))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if created.Amount != 50000 {
		t.Fatalf("expected gateway amount 50000, got %d", created.Amount)
	}
	if created.Status != order.StatusProcessing {
		t.Fatalf("expected status processing, got %q", created.Status)
	}
}

func TestVerifyEqualSplitIsExact(t *testing.T) {
	repo := order.NewInMemoryRepository()
	svc, _ := newTestService(&fakeGateway{payment: capturedPayment(1000)}, repo)

	// 1000 over 3 lines: 334 + 333 + 333
	_, err := svc.VerifyAndRecord(context.Background(), verifyReq([]CartItem{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 2},
		{ProductID: "p3", Quantity: 1},
	}))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	items := repo.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	var sum int64
	for _, it := range items {
		sum += it.PriceAtPurchase
	}
	if sum != 1000 {
		t.Fatalf("split prices must sum to the paid amount, got %d", sum)
	}
	if items[0].PriceAtPurchase != 334 || items[1].PriceAtPurchase != 333 {
		t.Fatalf("unexpected split %d/%d/%d",
			items[0].PriceAtPurchase, items[1].PriceAtPurchase, items[2].PriceAtPurchase)
	}
}

func TestVerifyKeepsExplicitPrices(t *testing.T) {
	repo := order.NewInMemoryRepository()
	svc, _ := newTestService(&fakeGateway{payment: capturedPayment(1000)}, repo)

	explicit := int64(750)
	_, err := svc.VerifyAndRecord(context.Background(), verifyReq([]CartItem{
		{ProductID: "p1", Quantity: 1, Price: &explicit},
		{ProductID: "p2", Quantity: 1},
	}))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	items := repo.Items()
	if items[0].PriceAtPurchase != 750 {
		t.Fatalf("explicit price overwritten: %d", items[0].PriceAtPurchase)
	}
	if items[1].PriceAtPurchase != 500 {
		t.Fatalf("split line expected 500, got %d", items[1].PriceAtPurchase)
	}
}

func TestVerifySingleProductFallback(t *testing.T) {
	repo := order.NewInMemoryRepository()
	svc, _ := newTestService(&fakeGateway{payment: capturedPayment(2000)}, repo)

	req := verifyReq(nil)
	req.ProductID = "p9"
	req.Quantity = 3
	if _, err := svc.VerifyAndRecord(context.Background(), req); err != nil {
		t.Fatalf("verify: %v", err)
	}

	items := repo.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].ProductID != "p9" || items[0].Quantity != 3 || items[0].PriceAtPurchase != 2000 {
		t.Fatalf("unexpected item %+v", items[0])
	}
}

func TestVerifySucceedsWhenItemsInsertFails(t *testing.T) {
	repo := order.NewInMemoryRepository()
	repo.FailItems = true
	svc, _ := newTestService(&fakeGateway{payment: capturedPayment(1000)}, repo)

	created, err := svc.VerifyAndRecord(context.Background(), verifyReq([]CartItem{
		{ProductID: "p1", Quantity: 1},
	}))
	if err != nil {
		t.Fatalf("verify must succeed despite items failure, got %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a stored order")
	}
}

func TestVerifyRejectsReplayedPayment(t *testing.T) {
	repo := order.NewInMemoryRepository()
	svc, _ := newTestService(&fakeGateway{payment: capturedPayment(1000)}, repo)

	req := verifyReq([]CartItem{{ProductID: "p1", Quantity: 1}})
	if _, err := svc.VerifyAndRecord(context.Background(), req); err != nil {
		t.Fatalf("first verify: %v", err)
	}
	if _, err := svc.VerifyAndRecord(context.Background(), req); err != order.ErrDuplicatePayment {
		t.Fatalf("expected ErrDuplicatePayment on replay, got %v", err)
	}
	if orders, _ := repo.List(); len(orders) != 1 {
		t.Fatalf("replay must not mint a second order, got %d", len(orders))
	}
}

func TestVerifyDispatchesShipmentTask(t *testing.T) {
	repo := order.NewInMemoryRepository()
	svc, dispatcher := newTestService(&fakeGateway{payment: capturedPayment(1000)}, repo)

	name := "Asha"
	req := verifyReq([]CartItem{{ProductID: "p1", Quantity: 2}})
	req.CustomerName = &name
	created, err := svc.VerifyAndRecord(context.Background(), req)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if len(dispatcher.tasks) != 1 {
		t.Fatalf("expected 1 shipment task, got %d", len(dispatcher.tasks))
	}
	task := dispatcher.tasks[0]
	if task.OrderID != created.ID {
		t.Fatalf("task order id %q, want %q", task.OrderID, created.ID)
	}
	if task.CustomerName != "Asha" {
		t.Fatalf("task customer name %q", task.CustomerName)
	}
	if len(task.Items) != 1 || task.Items[0].Quantity != 2 {
		t.Fatalf("unexpected task items %+v", task.Items)
	}
}

func TestVerifyPropagatesGatewayError(t *testing.T) {
	gwErr := errors.New("gateway down")
	svc, _ := newTestService(&fakeGateway{fetchErr: gwErr}, order.NewInMemoryRepository())

	if _, err := svc.VerifyAndRecord(context.Background(), verifyReq(nil)); !errors.Is(err, gwErr) {
		t.Fatalf("expected gateway error, got %v", err)
	}
}
