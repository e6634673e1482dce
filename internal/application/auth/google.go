package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/baechuer/inventory-service/internal/domain"
)

// LoginWithGoogle validates a Google ID-token credential and signs the caller
// in when a local account with that email already exists.
//
// There is deliberately no auto-registration here: a Google identity with no
// local account gets registration_required with the extracted email/name so
// the SPA can pre-fill its register form. Auto-creating a credential-less
// account would collide with a later password signup for the same email.
//
// Linking policy: an account registered with a password may also sign in via
// Google when the verified email matches; the first such sign-in stamps the
// Google subject on the account. Profile fields are never overwritten from
// the provider.
func (s *Service) LoginWithGoogle(ctx context.Context, credential string) (AuthResult, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return AuthResult{}, domain.ErrTokenMissing()
	}

	if s.google == nil {
		return AuthResult{}, domain.New(domain.KindValidation, "oauth_not_configured", "google sign-in not configured")
	}

	ident, err := s.google.VerifyCredential(ctx, credential)
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			return AuthResult{}, de
		}
		return AuthResult{}, domain.ErrTokenInvalid()
	}

	email := strings.TrimSpace(strings.ToLower(ident.Email))
	if email == "" || !ident.EmailVerified {
		// Unverified provider emails must not unlock a local account.
		return AuthResult{}, domain.ErrTokenInvalid()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return AuthResult{}, domain.ErrRegistrationRequired(email, ident.Name)
		}
		return AuthResult{}, err
	}

	if u.GoogleSub == "" {
		if err := s.users.LinkGoogleSub(ctx, u.ID, ident.Sub); err != nil {
			return AuthResult{}, err
		}
		u.GoogleSub = ident.Sub
		s.audit("google_linked", map[string]string{"user_id": u.ID})
	} else if u.GoogleSub != ident.Sub {
		// Same email, different Google subject: refuse rather than re-link.
		return AuthResult{}, domain.ErrTokenInvalid()
	}

	tok, err := s.issueToken(u.ID)
	if err != nil {
		return AuthResult{}, err
	}

	s.audit("google_login", map[string]string{"user_id": u.ID})

	return AuthResult{User: u, Token: tok}, nil
}
