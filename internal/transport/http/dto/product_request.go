package dto

import (
	"strings"

	"github.com/baechuer/inventory-service/internal/application/product"
	"github.com/baechuer/inventory-service/internal/domain"
)

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description,omitempty" validate:"max=2000"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Category    string  `json:"category,omitempty" validate:"max=100"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

func (r *CreateProductRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validateStruct(r)
}

func (r *CreateProductRequest) ToInput() product.CreateInput {
	return product.CreateInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Quantity:    r.Quantity,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
	}
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Quantity    *int     `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,max=100"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
}

func (r *UpdateProductRequest) Validate() error {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		if n == "" {
			return domain.ErrInvalidField("name", "empty")
		}
		r.Name = &n
	}
	return validateStruct(r)
}

func (r *UpdateProductRequest) ToUpdate() domain.ProductUpdate {
	return domain.ProductUpdate{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Quantity:    r.Quantity,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
	}
}
