package contact

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("message not found")
)

type Repository interface {
	Create(m Message) (Message, error)
	List() ([]Message, error)
	MarkRead(id string) (Message, error)
}

// InMemoryRepository backs handler tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Message
}

func NewInMemoryRepository(seed []Message) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Message, 0, len(seed))}
	for _, m := range seed {
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		r.storage = append(r.storage, m)
	}
	return r
}

func (r *InMemoryRepository) Create(m Message) (Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	r.storage = append(r.storage, m)
	return m, nil
}

func (r *InMemoryRepository) List() ([]Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Message, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) MarkRead(id string) (Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage[i].Read = true
			return r.storage[i], nil
		}
	}
	return Message{}, ErrNotFound
}
