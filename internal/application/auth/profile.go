package auth

import (
	"context"
	"strings"

	"github.com/baechuer/inventory-service/internal/domain"
)

// Me returns the current user for the resolved identity.
func (s *Service) Me(ctx context.Context, userID string) (domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile merges the provided fields into the user record. Unknown
// fields were already rejected at decode time; here only the allow-listed
// ones can arrive.
func (s *Service) UpdateProfile(ctx context.Context, userID string, upd domain.UserUpdate) (domain.User, error) {
	if upd.Email != nil {
		e := strings.TrimSpace(strings.ToLower(*upd.Email))
		if e == "" || !strings.Contains(e, "@") {
			return domain.User{}, domain.ErrInvalidField("email", "invalid format")
		}
		upd.Email = &e
	}

	if upd.IsZero() {
		return s.users.GetByID(ctx, userID)
	}

	u, err := s.users.Update(ctx, userID, upd)
	if err != nil {
		return domain.User{}, err
	}

	s.audit("profile_updated", map[string]string{"user_id": userID})
	return u, nil
}
