package cart

import (
	"path/filepath"
	"testing"
)

func mustStore(t *testing.T, storage Storage) *Store {
	t.Helper()
	s, err := NewStore(storage)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestAddMergesQuantities(t *testing.T) {
	s := mustStore(t, nil)

	s.Add(Item{ProductID: "p1", Name: "Ashwagandha", Price: 29900, Quantity: 2})
	s.Add(Item{ProductID: "p1", Name: "Ashwagandha", Price: 29900, Quantity: 3})

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", items[0].Quantity)
	}
	if s.TotalItems() != 5 {
		t.Fatalf("total items %d", s.TotalItems())
	}
}

func TestAddIgnoresInvalidItems(t *testing.T) {
	s := mustStore(t, nil)

	s.Add(Item{ProductID: "", Quantity: 1})
	s.Add(Item{ProductID: "p1", Quantity: 0})

	if len(s.Items()) != 0 {
		t.Fatalf("invalid items must not be stored")
	}
}

func TestSetQuantityZeroRemoves(t *testing.T) {
	s := mustStore(t, nil)
	s.Add(Item{ProductID: "p1", Price: 100, Quantity: 2})

	s.SetQuantity("p1", 0)
	if s.Contains("p1") {
		t.Fatal("zero quantity must remove the line")
	}

	s.Add(Item{ProductID: "p1", Price: 100, Quantity: 2})
	s.SetQuantity("p1", -3)
	if s.Contains("p1") {
		t.Fatal("negative quantity must remove the line")
	}
}

func TestTotalPrice(t *testing.T) {
	s := mustStore(t, nil)
	s.Add(Item{ProductID: "p1", Price: 29900, Quantity: 2})
	s.Add(Item{ProductID: "p2", Price: 15000, Quantity: 1})

	if got := s.TotalPrice(); got != 74800 {
		t.Fatalf("total price %d, want 74800", got)
	}

	s.Remove("p2")
	if got := s.TotalPrice(); got != 59800 {
		t.Fatalf("total price after remove %d, want 59800", got)
	}

	s.Clear()
	if s.TotalPrice() != 0 || s.TotalItems() != 0 {
		t.Fatal("clear must empty the cart")
	}
}

func TestFileStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	storage := NewFileStorage(path)

	s := mustStore(t, storage)
	if err := s.Add(Item{ProductID: "p1", Name: "Brahmi Oil", Price: 45000, Quantity: 2}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add(Item{ProductID: "p2", Name: "Triphala", Price: 19900, Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}

	// a fresh store over the same file sees the persisted cart
	reloaded := mustStore(t, storage)
	if reloaded.TotalItems() != 3 {
		t.Fatalf("reloaded total items %d, want 3", reloaded.TotalItems())
	}
	if !reloaded.Contains("p1") || !reloaded.Contains("p2") {
		t.Fatal("reloaded cart missing lines")
	}
}

func TestFileStorageMissingFileIsEmptyCart(t *testing.T) {
	storage := NewFileStorage(filepath.Join(t.TempDir(), "missing.json"))
	s := mustStore(t, storage)
	if len(s.Items()) != 0 {
		t.Fatal("missing file should load as empty cart")
	}
}
