package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/baechuer/inventory-service/internal/application/auth"
	"github.com/baechuer/inventory-service/internal/domain"
)

type TokenVerifier interface {
	VerifySessionToken(token string) (auth.TokenClaims, error)
}

// UserChecker is the minimal interface the middleware needs to confirm the
// token's subject still exists. Tokens for deleted accounts are rejected.
type UserChecker interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
}

type WriteErrFunc func(http.ResponseWriter, *http.Request, error)

// Auth verifies Authorization: Bearer <session_token> and injects the
// authenticated user ID into the request context.
func Auth(verifier TokenVerifier, users UserChecker, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" {
				writeErr(w, r, domain.ErrTokenMissing())
				return
			}

			parts := strings.SplitN(h, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}

			raw := strings.TrimSpace(parts[1])
			if raw == "" {
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}

			claims, err := verifier.VerifySessionToken(raw)
			if err != nil {
				writeErr(w, r, err)
				return
			}

			if strings.TrimSpace(claims.UserID) == "" {
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}

			if users != nil {
				if _, err := users.GetByID(r.Context(), claims.UserID); err != nil {
					if domain.Is(err, "user_not_found") {
						writeErr(w, r, domain.ErrTokenInvalid())
						return
					}
					writeErr(w, r, err)
					return
				}
			}

			ctx := WithUser(r.Context(), claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
