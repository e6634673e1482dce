package domain

import "time"

// Product is an inventory item. OwnerID is the user that created it; only the
// owner may mutate or delete it.
type Product struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Price       float64
	Quantity    int
	Category    string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductUpdate carries optional field changes for an existing product.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Quantity    *int
	Category    *string
	ImageURL    *string
}

func (upd ProductUpdate) Apply(p Product) Product {
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Quantity != nil {
		p.Quantity = *upd.Quantity
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.ImageURL != nil {
		p.ImageURL = *upd.ImageURL
	}
	return p
}
