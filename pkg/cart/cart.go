package cart

import (
	"sort"
	"sync"
)

// Item is one cart line. Price is a unit price in paise.
type Item struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"image_url,omitempty"`
}

// Storage persists a cart between sessions. Implementations may be a
// file, a cookie payload, or nothing at all.
type Storage interface {
	Load() ([]Item, error)
	Save(items []Item) error
}

// Store is a client-side cart. It is a pure client concern: the server
// never reconciles it, totals are recomputed at checkout from the
// gateway's numbers.
type Store struct {
	mu      sync.Mutex
	items   map[string]Item
	storage Storage
}

// NewStore loads any persisted cart from storage. A nil storage gives a
// purely in-memory cart.
func NewStore(storage Storage) (*Store, error) {
	s := &Store{items: make(map[string]Item), storage: storage}
	if storage == nil {
		return s, nil
	}
	items, err := storage.Load()
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.ProductID != "" && it.Quantity > 0 {
			s.items[it.ProductID] = it
		}
	}
	return s, nil
}

// Add puts an item in the cart, merging quantities when the product is
// already present. The stored name/price/image are refreshed from the
// incoming item.
func (s *Store) Add(item Item) error {
	if item.ProductID == "" || item.Quantity <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.items[item.ProductID]; ok {
		item.Quantity += existing.Quantity
	}
	s.items[item.ProductID] = item
	return s.save()
}

// Remove drops a product from the cart. Removing an absent product is a
// no-op.
func (s *Store) Remove(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[productID]; !ok {
		return nil
	}
	delete(s.items, productID)
	return s.save()
}

// SetQuantity overwrites a line's quantity. Zero or negative removes the
// line.
func (s *Store) SetQuantity(productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[productID]
	if !ok {
		return nil
	}
	if quantity <= 0 {
		delete(s.items, productID)
	} else {
		item.Quantity = quantity
		s.items[productID] = item
	}
	return s.save()
}

// Clear empties the cart.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]Item)
	return s.save()
}

// Contains reports whether the product is in the cart.
func (s *Store) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[productID]
	return ok
}

// TotalItems is the summed quantity over all lines.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// TotalPrice is the cart total in paise.
func (s *Store) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, it := range s.items {
		total += it.Price * int64(it.Quantity)
	}
	return total
}

// Items returns a snapshot sorted by product id for stable output.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) snapshot() []Item {
	out := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// save persists under the held lock so writers see a consistent list.
func (s *Store) save() error {
	if s.storage == nil {
		return nil
	}
	return s.storage.Save(s.snapshot())
}
