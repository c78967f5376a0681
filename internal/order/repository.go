package order

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrDuplicatePayment means an order already exists for the payment id;
	// a replayed verification callback must not mint a second order.
	ErrDuplicatePayment = errors.New("order already exists for payment")
)

type Repository interface {
	Create(o Order) (Order, error)
	// CreateItems inserts the line items of an order in one statement.
	CreateItems(items []Item) error
	GetByID(id string) (Order, error)
	// List returns orders newest first with items and product details joined.
	List() ([]Order, error)
	UpdateStatus(id, status string) (Order, error)
}

// InMemoryRepository backs checkout and handler tests.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
	items  []Item

	// FailItems forces CreateItems to fail, for exercising the
	// order-exists-but-items-missing window.
	FailItems bool
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Create(o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.orders {
		if existing.PaymentID == o.PaymentID {
			return Order{}, ErrDuplicatePayment
		}
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	o.CreatedAt = now
	o.UpdatedAt = now
	r.orders = append(r.orders, o)
	return o, nil
}

func (r *InMemoryRepository) CreateItems(items []Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailItems {
		return errors.New("items insert failed")
	}
	for _, it := range items {
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		r.items = append(r.items, it)
	}
	return nil
}

func (r *InMemoryRepository) GetByID(id string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.ID == id {
			o.Items = r.itemsFor(id)
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) List() ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0, len(r.orders))
	for _, o := range r.orders {
		o.Items = r.itemsFor(o.ID)
		out = append(out, o)
	}
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(id, status string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
			r.orders[i].UpdatedAt = time.Now().UTC().Format(time.RFC3339)
			return r.orders[i], nil
		}
	}
	return Order{}, ErrNotFound
}

// Items returns a snapshot of all stored line items.
func (r *InMemoryRepository) Items() []Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Item, len(r.items))
	copy(out, r.items)
	return out
}

func (r *InMemoryRepository) itemsFor(orderID string) []Item {
	items := make([]Item, 0)
	for _, it := range r.items {
		if it.OrderID == orderID {
			items = append(items, it)
		}
	}
	return items
}
