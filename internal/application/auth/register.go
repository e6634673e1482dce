package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/baechuer/inventory-service/internal/domain"
)

// RegisterInput carries the full registration form. Only email and password
// are mandatory; the profile fields mirror the register form of the SPA.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Address  domain.Address
	Company  domain.Company
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" || in.Password == "" {
		return AuthResult{}, domain.ErrInvalidField("email/password", "empty")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return AuthResult{}, domain.ErrHashFailed(err)
	}

	now := time.Now()
	u := domain.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Phone:        in.Phone,
		Address:      in.Address,
		Company:      in.Company,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The store's unique email index is the source of truth for duplicate
	// races; no pre-check here.
	created, err := s.users.Create(ctx, u)
	if err != nil {
		return AuthResult{}, err
	}

	tok, err := s.issueToken(created.ID)
	if err != nil {
		return AuthResult{}, err
	}

	if s.pub != nil {
		// Best-effort: registration must not fail when the broker is down.
		_ = s.pub.PublishUserRegistered(ctx, UserRegisteredEvent{
			UserID: created.ID,
			Email:  created.Email,
			Name:   created.Name,
		})
	}

	s.audit("user_registered", map[string]string{
		"user_id": created.ID,
		"email":   created.Email,
	})

	return AuthResult{User: created, Token: tok}, nil
}
