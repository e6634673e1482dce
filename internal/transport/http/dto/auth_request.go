package dto

import (
	"strings"

	"github.com/baechuer/inventory-service/internal/application/auth"
	"github.com/baechuer/inventory-service/internal/domain"
)

// -------- Core auth --------

type AddressPayload struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
}

type CompanyPayload struct {
	Name     string `json:"name,omitempty"`
	Position string `json:"position,omitempty"`
}

type RegisterRequest struct {
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=8,max=72"`
	Name     string          `json:"name" validate:"required,max=100"`
	Phone    string          `json:"phone,omitempty" validate:"max=30"`
	Address  *AddressPayload `json:"address,omitempty"`
	Company  *CompanyPayload `json:"company,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	r.Name = strings.TrimSpace(r.Name)
	return validateStruct(r)
}

func (r *RegisterRequest) ToInput() auth.RegisterInput {
	in := auth.RegisterInput{
		Email:    r.Email,
		Password: r.Password,
		Name:     r.Name,
		Phone:    r.Phone,
	}
	if r.Address != nil {
		in.Address = domain.Address{
			Street:  r.Address.Street,
			City:    r.Address.City,
			State:   r.Address.State,
			Country: r.Address.Country,
			ZipCode: r.Address.ZipCode,
		}
	}
	if r.Company != nil {
		in.Company = domain.Company{
			Name:     r.Company.Name,
			Position: r.Company.Position,
		}
	}
	return in
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	return validateStruct(r)
}

// GoogleLoginRequest carries the ID token posted by the Google Sign-In
// widget. The server verifies it; nothing else is trusted from the client.
type GoogleLoginRequest struct {
	Credential string `json:"credential"`
}

func (r *GoogleLoginRequest) Validate() error {
	r.Credential = strings.TrimSpace(r.Credential)
	if r.Credential == "" {
		return domain.ErrTokenMissing()
	}
	return nil
}

// -------- Profile --------

type AddressUpdatePayload struct {
	Street  *string `json:"street,omitempty"`
	City    *string `json:"city,omitempty"`
	State   *string `json:"state,omitempty"`
	Country *string `json:"country,omitempty"`
	ZipCode *string `json:"zipCode,omitempty"`
}

type CompanyUpdatePayload struct {
	Name     *string `json:"name,omitempty"`
	Position *string `json:"position,omitempty"`
}

// UpdateProfileRequest is an allow-list of mutable profile fields. Absent
// fields stay untouched; address and company merge per sub-field.
type UpdateProfileRequest struct {
	Name      *string               `json:"name,omitempty"`
	Email     *string               `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string               `json:"phone,omitempty" validate:"omitempty,max=30"`
	AvatarURL *string               `json:"avatarUrl,omitempty"`
	Address   *AddressUpdatePayload `json:"address,omitempty"`
	Company   *CompanyUpdatePayload `json:"company,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	if r.Email != nil {
		e := strings.TrimSpace(strings.ToLower(*r.Email))
		r.Email = &e
	}
	return validateStruct(r)
}

func (r *UpdateProfileRequest) ToUpdate() domain.UserUpdate {
	upd := domain.UserUpdate{
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		AvatarURL: r.AvatarURL,
	}
	if r.Address != nil {
		upd.Address = domain.AddressUpdate{
			Street:  r.Address.Street,
			City:    r.Address.City,
			State:   r.Address.State,
			Country: r.Address.Country,
			ZipCode: r.Address.ZipCode,
		}
	}
	if r.Company != nil {
		upd.Company = domain.CompanyUpdate{
			Name:     r.Company.Name,
			Position: r.Company.Position,
		}
	}
	return upd
}
