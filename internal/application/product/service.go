package product

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/baechuer/inventory-service/internal/domain"
)

/*
Repo
----
Persistence port for products. List returns newest first; ownerID narrows the
result to one owner when non-empty.
*/
type Repo interface {
	GetByID(ctx context.Context, id string) (domain.Product, error)
	List(ctx context.Context, ownerID string) ([]domain.Product, error)
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Update(ctx context.Context, id string, upd domain.ProductUpdate) (domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	products Repo
}

func NewService(products Repo) *Service {
	return &Service{products: products}
}

type CreateInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
	Category    string
	ImageURL    string
}

// List returns all products, or only the requester's when onlyMine is set.
func (s *Service) List(ctx context.Context, requesterID string, onlyMine bool) ([]domain.Product, error) {
	owner := ""
	if onlyMine {
		owner = requesterID
	}
	return s.products.List(ctx, owner)
}

// Get is owner-scoped: a product that exists but belongs to someone else
// reads as not found, so ids cannot be probed across accounts.
func (s *Service) Get(ctx context.Context, requesterID, id string) (domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	if p.OwnerID != requesterID {
		return domain.Product{}, domain.ErrProductNotFound()
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, requesterID string, in CreateInput) (domain.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return domain.Product{}, domain.ErrMissingField("name")
	}
	if in.Price < 0 {
		return domain.Product{}, domain.ErrInvalidField("price", "negative")
	}
	if in.Quantity < 0 {
		return domain.Product{}, domain.ErrInvalidField("quantity", "negative")
	}

	now := time.Now()
	p := domain.Product{
		ID:          uuid.NewString(),
		OwnerID:     requesterID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.products.Create(ctx, p)
}

// Update enforces the ownership contract: 404 when the product does not
// exist, then 403 when the requester is not the owner, before any mutation.
func (s *Service) Update(ctx context.Context, requesterID, id string, upd domain.ProductUpdate) (domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	if p.OwnerID != requesterID {
		return domain.Product{}, domain.ErrNotProductOwner()
	}
	if upd.Price != nil && *upd.Price < 0 {
		return domain.Product{}, domain.ErrInvalidField("price", "negative")
	}
	if upd.Quantity != nil && *upd.Quantity < 0 {
		return domain.Product{}, domain.ErrInvalidField("quantity", "negative")
	}
	return s.products.Update(ctx, id, upd)
}

func (s *Service) Delete(ctx context.Context, requesterID, id string) error {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.OwnerID != requesterID {
		return domain.ErrNotProductOwner()
	}
	return s.products.Delete(ctx, id)
}
