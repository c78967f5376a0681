package shipping

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("shipment not found")

type Repository interface {
	Create(s ShiprocketOrder) (ShiprocketOrder, error)
	GetByOrderID(orderID string) (ShiprocketOrder, error)
}

// InMemoryRepository backs handler tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []ShiprocketOrder
}

func NewInMemoryRepository(seed []ShiprocketOrder) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]ShiprocketOrder, 0, len(seed))}
	for _, s := range seed {
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		r.storage = append(r.storage, s)
	}
	return r
}

func (r *InMemoryRepository) Create(s ShiprocketOrder) (ShiprocketOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	s.CreatedAt = now
	s.UpdatedAt = now
	r.storage = append(r.storage, s)
	return s, nil
}

func (r *InMemoryRepository) GetByOrderID(orderID string) (ShiprocketOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.storage {
		if s.OrderID == orderID {
			return s, nil
		}
	}
	return ShiprocketOrder{}, ErrNotFound
}
