package appointment

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("appointment not found")
)

type Repository interface {
	// SlotTaken reports whether a non-cancelled appointment already holds
	// the date+time pair.
	SlotTaken(date, timeOfDay string) (bool, error)
	Create(a Appointment) (Appointment, error)
	List() ([]Appointment, error)
	UpdateStatus(id, status string) (Appointment, error)
}

// InMemoryRepository backs handler tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Appointment
}

func NewInMemoryRepository(seed []Appointment) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Appointment, 0, len(seed))}
	for _, a := range seed {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		r.storage = append(r.storage, a)
	}
	return r
}

func (r *InMemoryRepository) SlotTaken(date, timeOfDay string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.storage {
		if a.Date == date && a.Time == timeOfDay && a.Status != StatusCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryRepository) Create(a Appointment) (Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	a.CreatedAt = now
	a.UpdatedAt = now
	r.storage = append(r.storage, a)
	return a, nil
}

func (r *InMemoryRepository) List() ([]Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Appointment, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(id, status string) (Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage[i].Status = status
			r.storage[i].UpdatedAt = time.Now().UTC().Format(time.RFC3339)
			return r.storage[i], nil
		}
	}
	return Appointment{}, ErrNotFound
}
