package product

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func productRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "name", "description", "detailed_description", "price",
		"image_url", "images", "in_stock", "stock_quantity",
		"category", "dosage", "ingredients", "benefits",
		"usage_instructions", "weight", "sku", "created_at", "updated_at",
	}).AddRow(
		"p1", "Ashwagandha Capsules", nil, nil, int64(29900),
		nil, []byte(`{a.jpg,b.jpg}`), true, 10,
		"supplements", nil, nil, nil,
		nil, nil, nil, now, now,
	)
}

func TestListFiltersByCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM products WHERE category = \\$1").
		WithArgs("supplements").
		WillReturnRows(productRows())

	products, err := repo.List(Filter{Category: "supplements"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	if products[0].ImageURL == nil || *products[0].ImageURL != "a.jpg" {
		t.Fatalf("first gallery image should become image_url, got %v", products[0].ImageURL)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM products").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByID("missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("DELETE FROM products").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete("missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
