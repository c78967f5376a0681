package review

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("review not found")
)

type Repository interface {
	// ListByProduct returns reviews for one product filtered by status.
	ListByProduct(productID, status string) ([]Review, error)
	// List returns all reviews, optionally filtered by status.
	List(status string) ([]Review, error)
	Create(r Review) (Review, error)
	// Moderate sets status and optionally admin notes.
	Moderate(id, status string, adminNotes *string) (Review, error)
}

// InMemoryRepository backs handler tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Review
}

func NewInMemoryRepository(seed []Review) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Review, 0, len(seed))}
	for _, rv := range seed {
		if rv.ID == "" {
			rv.ID = uuid.NewString()
		}
		r.storage = append(r.storage, rv)
	}
	return r
}

func (r *InMemoryRepository) ListByProduct(productID, status string) ([]Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Review, 0)
	for _, rv := range r.storage {
		if rv.ProductID != productID {
			continue
		}
		if status != "" && rv.Status != status {
			continue
		}
		out = append(out, rv)
	}
	return out, nil
}

func (r *InMemoryRepository) List(status string) ([]Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Review, 0)
	for _, rv := range r.storage {
		if status != "" && rv.Status != status {
			continue
		}
		out = append(out, rv)
	}
	return out, nil
}

func (r *InMemoryRepository) Create(rv Review) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	rv.CreatedAt = now
	rv.UpdatedAt = now
	r.storage = append(r.storage, rv)
	return rv, nil
}

func (r *InMemoryRepository) Moderate(id, status string, adminNotes *string) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage[i].Status = status
			if adminNotes != nil {
				r.storage[i].AdminNotes = adminNotes
			}
			r.storage[i].UpdatedAt = time.Now().UTC().Format(time.RFC3339)
			return r.storage[i], nil
		}
	}
	return Review{}, ErrNotFound
}
