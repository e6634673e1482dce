package dto

import (
	"time"

	"github.com/baechuer/inventory-service/internal/application/auth"
	"github.com/baechuer/inventory-service/internal/domain"
)

// UserView is the public shape of an account. The password hash and Google
// subject never leave the server.
type UserView struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	Name      string          `json:"name,omitempty"`
	Phone     string          `json:"phone,omitempty"`
	Address   *AddressPayload `json:"address,omitempty"`
	Company   *CompanyPayload `json:"company,omitempty"`
	AvatarURL string          `json:"avatarUrl,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func NewUserView(u domain.User) UserView {
	v := UserView{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Address != (domain.Address{}) {
		v.Address = &AddressPayload{
			Street:  u.Address.Street,
			City:    u.Address.City,
			State:   u.Address.State,
			Country: u.Address.Country,
			ZipCode: u.Address.ZipCode,
		}
	}
	if u.Company != (domain.Company{}) {
		v.Company = &CompanyPayload{
			Name:     u.Company.Name,
			Position: u.Company.Position,
		}
	}
	return v
}

// AuthData is returned by register, login and google login.
type AuthData struct {
	User      UserView `json:"user"`
	Token     string   `json:"token"`
	TokenType string   `json:"token_type"`
	ExpiresIn int64    `json:"expires_in"`
}

func NewAuthData(res auth.AuthResult) AuthData {
	return AuthData{
		User:      NewUserView(res.User),
		Token:     res.Token.Token,
		TokenType: res.Token.TokenType,
		ExpiresIn: res.Token.ExpiresIn,
	}
}
