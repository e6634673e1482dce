package auth

import (
	"time"

	"github.com/baechuer/inventory-service/internal/domain"
)

type Service struct {
	users  UserRepo
	hasher PasswordHasher
	signer TokenSigner
	google GoogleVerifier
	pub    EventPublisher

	sessionTTL time.Duration
	audit      func(action string, fields map[string]string)
}

type Config struct {
	SessionTTL time.Duration
}

func NewService(
	users UserRepo,
	hasher PasswordHasher,
	signer TokenSigner,
	google GoogleVerifier,
	pub EventPublisher,
	cfg Config,
) *Service {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Service{
		users:      users,
		hasher:     hasher,
		signer:     signer,
		google:     google,
		pub:        pub,
		sessionTTL: ttl,
		audit:      func(string, map[string]string) {},
	}
}

func (s *Service) WithAudit(fn func(action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

// SessionToken is the common token output for handlers/DTO mapping.
type SessionToken struct {
	Token     string
	TokenType string // "Bearer"
	ExpiresIn int64  // seconds
}

type AuthResult struct {
	User  domain.User
	Token SessionToken
}

// issueToken mints a stateless session token for a user.
func (s *Service) issueToken(userID string) (SessionToken, error) {
	signed, err := s.signer.SignSessionToken(userID, s.sessionTTL)
	if err != nil {
		return SessionToken{}, domain.ErrTokenSignFailed(err)
	}
	return SessionToken{
		Token:     signed,
		TokenType: "Bearer",
		ExpiresIn: int64(s.sessionTTL.Seconds()),
	}, nil
}
