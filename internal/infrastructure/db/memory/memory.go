// Package memory provides in-process implementations of the storage ports.
// They honour the same contracts as the Mongo and Redis adapters and back the
// service and HTTP tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/99minutos/products-api/internal/core/domain"
	"github.com/99minutos/products-api/internal/core/ports"
)

// UserStore implements ports.CredentialStore.
type UserStore struct {
	mu      sync.RWMutex
	byEmail map[string]domain.User
}

func NewUserStore() *UserStore {
	return &UserStore{byEmail: make(map[string]domain.User)}
}

func (s *UserStore) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[user.Email]; ok {
		return nil, domain.ErrUserExists
	}
	u := *user
	u.ID = uuid.NewString()
	s.byEmail[u.Email] = u
	return &u, nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

// Len returns the number of stored identities.
func (s *UserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byEmail)
}

// ProductStore implements ports.ProductStore. Products are kept in insertion
// order, which is also their creation order.
type ProductStore struct {
	mu    sync.RWMutex
	items []*domain.Product
	now   func() time.Time
}

func NewProductStore() *ProductStore {
	return &ProductStore{now: time.Now}
}

func (s *ProductStore) Create(_ context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Version = 0

	stored := *p
	s.items = append(s.items, &stored)
	return nil
}

func (s *ProductStore) FindOne(_ context.Context, filter ports.ProductFilter) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.items {
		if matches(p, filter) {
			out := *p
			return &out, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (s *ProductStore) List(_ context.Context, filter ports.ProductFilter, offset, limit int) ([]*domain.Product, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*domain.Product
	for _, p := range s.items {
		if matches(p, filter) {
			matched = append(matched, p)
		}
	}

	total := int64(len(matched))
	if offset < 0 || offset >= len(matched) {
		return []*domain.Product{}, total, nil
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	page := make([]*domain.Product, 0, end-offset)
	for _, p := range matched[offset:end] {
		out := *p
		page = append(page, &out)
	}
	return page, total, nil
}

func (s *ProductStore) Save(_ context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, stored := range s.items {
		if stored.ID != p.ID {
			continue
		}
		if stored.Version != p.Version {
			return domain.ErrProductConflict
		}
		p.Version++
		p.UpdatedAt = s.now().UTC()
		updated := *p
		s.items[i] = &updated
		return nil
	}
	return domain.ErrProductNotFound
}

// Get returns a copy of the stored product with id, bypassing every filter.
func (s *ProductStore) Get(id string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.items {
		if p.ID == id {
			return *p, true
		}
	}
	return domain.Product{}, false
}

// Len returns the number of stored products in any status.
func (s *ProductStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func matches(p *domain.Product, f ports.ProductFilter) bool {
	if f.ID != "" && p.ID != f.ID {
		return false
	}
	if f.Owner != "" && p.Owner != f.Owner {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	return true
}

// IdempotencyStore implements ports.IdempotencyStore without expiry.
type IdempotencyStore struct {
	mu   sync.Mutex
	keys map[string]string
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{keys: make(map[string]string)}
}

func (s *IdempotencyStore) Lookup(_ context.Context, owner, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.keys[owner+":"+key]
	return id, ok, nil
}

// Remember keeps the first product stored under a key.
func (s *IdempotencyStore) Remember(_ context.Context, owner, key, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := owner + ":" + key
	if _, ok := s.keys[k]; !ok {
		s.keys[k] = productID
	}
	return nil
}
