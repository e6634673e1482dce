package memory

import (
	"context"
	"sync"
	"time"

	"github.com/baechuer/inventory-service/internal/domain"
)

// UserRepo is a map-backed auth.UserRepo with the same semantics as the
// MongoDB implementation. Used in tests and as the dev fallback when no
// database is reachable.
type UserRepo struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string // email -> userID
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return r.byID[id], nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Same contract as the unique index: the first writer wins, the loser
	// gets a deterministic duplicate error.
	if _, exists := r.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}

	if u.ID == "" {
		return domain.User{}, domain.ErrInternal(nil)
	}

	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return u, nil
}

func (r *UserRepo) Update(ctx context.Context, userID string, upd domain.UserUpdate) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}

	if upd.Email != nil && *upd.Email != u.Email {
		if _, taken := r.byEmail[*upd.Email]; taken {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
		delete(r.byEmail, u.Email)
	}

	u = upd.Apply(u)
	u.UpdatedAt = time.Now()
	r.byID[userID] = u
	r.byEmail[u.Email] = userID
	return u, nil
}

func (r *UserRepo) LinkGoogleSub(ctx context.Context, userID string, sub string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.GoogleSub = sub
	u.UpdatedAt = time.Now()
	r.byID[userID] = u
	return nil
}
