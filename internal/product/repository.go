package product

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("product not found")
)

type Repository interface {
	List(f Filter) ([]Product, error)
	GetByID(id string) (Product, error)
	Create(p Product) (Product, error)
	Update(id string, patch Patch) (Product, error)
	Delete(id string) error
}

// Patch carries the fields an admin update may change; nil fields are
// left untouched.
type Patch struct {
	Name                *string
	Description         *string
	DetailedDescription *string
	Price               *int64
	ImageURL            *string
	Images              *[]string
	InStock             *bool
	StockQuantity       *int
	Category            *string
	Dosage              *string
	Ingredients         *string
	Benefits            *string
	UsageInstructions   *string
	Weight              *string
	SKU                 *string
}

// InMemoryRepository is a simple in-memory implementation useful for tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Product, 0, len(seed))}
	for _, p := range seed {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		r.storage = append(r.storage, p)
	}
	return r
}

func (r *InMemoryRepository) List(f Filter) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0, len(r.storage))
	for _, p := range r.storage {
		if f.Category != "" && (p.Category == nil || *p.Category != f.Category) {
			continue
		}
		if f.InStock != nil && p.InStock != *f.InStock {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(id string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) Update(id string, patch Patch) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			applyPatch(&r.storage[i], patch)
			return r.storage[i], nil
		}
	}
	return Product{}, ErrNotFound
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

func applyPatch(p *Product, patch Patch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = patch.Description
	}
	if patch.DetailedDescription != nil {
		p.DetailedDescription = patch.DetailedDescription
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Images != nil {
		p.Images = *patch.Images
		if len(*patch.Images) > 0 {
			p.ImageURL = &(*patch.Images)[0]
		} else {
			p.ImageURL = nil
		}
	} else if patch.ImageURL != nil {
		p.ImageURL = patch.ImageURL
	}
	if patch.InStock != nil {
		p.InStock = *patch.InStock
	}
	if patch.StockQuantity != nil {
		p.StockQuantity = *patch.StockQuantity
	}
	if patch.Category != nil {
		p.Category = patch.Category
	}
	if patch.Dosage != nil {
		p.Dosage = patch.Dosage
	}
	if patch.Ingredients != nil {
		p.Ingredients = patch.Ingredients
	}
	if patch.Benefits != nil {
		p.Benefits = patch.Benefits
	}
	if patch.UsageInstructions != nil {
		p.UsageInstructions = patch.UsageInstructions
	}
	if patch.Weight != nil {
		p.Weight = patch.Weight
	}
	if patch.SKU != nil {
		p.SKU = patch.SKU
	}
}
