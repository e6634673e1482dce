package auth

import (
	"context"
	"strings"

	"github.com/baechuer/inventory-service/internal/domain"
)

// fillerPasswordHash is a bcrypt hash of a throwaway value. Compared on the
// unknown-email and passwordless branches so they take as long as a real
// mismatch and response timing does not reveal whether the email exists.
const fillerPasswordHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// Login authenticates a user and issues a session token.
// IMPORTANT: must not leak whether the email exists (avoid user enumeration).
func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if email == "" || password == "" {
		return AuthResult{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Hide not-found behind invalid credentials
		_ = s.hasher.Compare(fillerPasswordHash, password)
		return AuthResult{}, domain.ErrInvalidCredentials()
	}

	// Google-only accounts have no hash; same generic error.
	if !u.HasPassword() {
		_ = s.hasher.Compare(fillerPasswordHash, password)
		return AuthResult{}, domain.ErrInvalidCredentials()
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return AuthResult{}, domain.ErrInvalidCredentials()
	}

	tok, err := s.issueToken(u.ID)
	if err != nil {
		return AuthResult{}, err
	}

	s.audit("user_logged_in", map[string]string{"user_id": u.ID})

	return AuthResult{User: u, Token: tok}, nil
}
