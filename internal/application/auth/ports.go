package auth

import (
	"context"
	"time"

	"github.com/baechuer/inventory-service/internal/domain"
)

/*
UserRepo
--------
Persistence port for users.
Only describes WHAT the auth service needs, not HOW it's stored.
Email uniqueness is enforced at the store boundary (unique index); a racing
duplicate Create must fail with email_already_exists, never overwrite.
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)

	// Update merges only the provided fields; address/company sub-objects
	// merge field by field.
	Update(ctx context.Context, userID string, upd domain.UserUpdate) (domain.User, error)

	// LinkGoogleSub records the Google subject on first federated sign-in.
	LinkGoogleSub(ctx context.Context, userID string, sub string) error
}

/*
PasswordHasher
--------------
Abstracts bcrypt / argon2.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenSigner
-----------
Issues and verifies session tokens (JWT).
Used by service + auth middleware.
*/
type TokenClaims struct {
	UserID   string
	IssuedAt time.Time
	Exp      time.Time
}

type TokenSigner interface {
	SignSessionToken(userID string, ttl time.Duration) (string, error)
	VerifySessionToken(token string) (TokenClaims, error)
}

/*
GoogleVerifier
--------------
Validates a Google-issued ID token credential and extracts the identity.
The backend never talks to Google's consent screen; the SPA obtains the
credential and posts it once.
*/
type GoogleIdentity struct {
	Sub           string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

type GoogleVerifier interface {
	VerifyCredential(ctx context.Context, credential string) (GoogleIdentity, error)
}

/*
EventPublisher
--------------
Publishes registration events to RabbitMQ. The mailer consumes them; this
service does not send email directly.
*/
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error
}

type UserRegisteredEvent struct {
	UserID string
	Email  string
	Name   string
}
