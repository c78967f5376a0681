package gallery

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("gallery image not found")
)

type Repository interface {
	List(category string) ([]Image, error)
	GetByID(id string) (Image, error)
	Create(img Image) (Image, error)
	Update(id string, patch Patch) (Image, error)
	Delete(id string) error
}

// InMemoryRepository backs handler tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Image
}

func NewInMemoryRepository(seed []Image) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Image, 0, len(seed))}
	for _, img := range seed {
		if img.ID == "" {
			img.ID = uuid.NewString()
		}
		r.storage = append(r.storage, img)
	}
	return r
}

func (r *InMemoryRepository) List(category string) ([]Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Image, 0)
	for _, img := range r.storage {
		if category != "" && (img.Category == nil || *img.Category != category) {
			continue
		}
		out = append(out, img)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	return out, nil
}

func (r *InMemoryRepository) GetByID(id string) (Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, img := range r.storage {
		if img.ID == id {
			return img, nil
		}
	}
	return Image{}, ErrNotFound
}

func (r *InMemoryRepository) Create(img Image) (Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if img.ID == "" {
		img.ID = uuid.NewString()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	img.CreatedAt = now
	img.UpdatedAt = now
	r.storage = append(r.storage, img)
	return img, nil
}

func (r *InMemoryRepository) Update(id string, patch Patch) (Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			if patch.ImageURL != nil {
				r.storage[i].ImageURL = *patch.ImageURL
			}
			if patch.Title != nil {
				r.storage[i].Title = patch.Title
			}
			if patch.Description != nil {
				r.storage[i].Description = patch.Description
			}
			if patch.Category != nil {
				r.storage[i].Category = patch.Category
			}
			if patch.DisplayOrder != nil {
				r.storage[i].DisplayOrder = *patch.DisplayOrder
			}
			r.storage[i].UpdatedAt = time.Now().UTC().Format(time.RFC3339)
			return r.storage[i], nil
		}
	}
	return Image{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
