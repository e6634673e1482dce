package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/baechuer/inventory-service/internal/domain"
)

// ProductRepo is a map-backed product.Repo for tests and dev fallback.
type ProductRepo struct {
	mu   sync.RWMutex
	byID map[string]domain.Product
}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{byID: make(map[string]domain.Product)}
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound()
	}
	return p, nil
}

func (r *ProductRepo) List(ctx context.Context, ownerID string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Product
	for _, p := range r.byID {
		if ownerID == "" || p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	// newest first, matching the mongo sort
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		return domain.Product{}, domain.ErrInternal(nil)
	}
	r.byID[p.ID] = p
	return p, nil
}

func (r *ProductRepo) Update(ctx context.Context, id string, upd domain.ProductUpdate) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound()
	}
	p = upd.Apply(p)
	p.UpdatedAt = time.Now()
	r.byID[id] = p
	return p, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrProductNotFound()
	}
	delete(r.byID, id)
	return nil
}
