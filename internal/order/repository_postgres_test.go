package order

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreateMapsDuplicatePayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("INSERT INTO orders").
		WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "orders_payment_id_key"`))

	_, err = repo.Create(Order{PaymentID: "pay_1", RazorpayOrderID: "order_1", Amount: 1000, Status: StatusProcessing})
	if err != ErrDuplicatePayment {
		t.Fatalf("expected ErrDuplicatePayment, got %v", err)
	}
}

func TestCreateReturnsTimestamps(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	created, err := repo.Create(Order{PaymentID: "pay_1", RazorpayOrderID: "order_1", Amount: 1000, Status: StatusProcessing})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated id")
	}
	if created.CreatedAt != "2026-08-01T10:00:00Z" {
		t.Fatalf("unexpected created_at %q", created.CreatedAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateItemsBatchInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("INSERT INTO order_items").
		WillReturnResult(sqlmock.NewResult(0, 2))

	items := []Item{
		{OrderID: "o1", ProductID: "p1", Quantity: 1, PriceAtPurchase: 500},
		{OrderID: "o1", ProductID: "p2", Quantity: 2, PriceAtPurchase: 500},
	}
	if err := repo.CreateItems(items); err != nil {
		t.Fatalf("create items: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
