package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/AlibekovAA/ricebook/backend/internal/user/domain"
)

// MemoryRepository keeps users in process memory. It enforces the same
// username and email uniqueness as the users table.
type MemoryRepository struct {
	mu         sync.RWMutex
	byUsername map[string]domain.User
	usernameBy map[domain.ID]string
	emails     map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byUsername: make(map[string]domain.User),
		usernameBy: make(map[domain.ID]string),
		emails:     make(map[string]string),
	}
}

func (r *MemoryRepository) Create(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[user.Username]; exists {
		return ErrUserAlreadyExists
	}
	if _, exists := r.emails[user.Email]; exists {
		return ErrUserAlreadyExists
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	r.byUsername[user.Username] = user
	r.usernameBy[user.ID] = user.Username
	r.emails[user.Email] = user.Username
	return nil
}

func (r *MemoryRepository) FindByUsername(_ context.Context, username string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byUsername[username]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id domain.ID) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	username, ok := r.usernameBy[id]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return r.byUsername[username], nil
}

func (r *MemoryRepository) UpdatePassword(_ context.Context, username, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byUsername[username]
	if !ok {
		return ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	r.byUsername[username] = user
	return nil
}

func (r *MemoryRepository) UpdateField(_ context.Context, username string, field domain.Field, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byUsername[username]
	if !ok {
		return ErrUserNotFound
	}

	switch field {
	case domain.FieldHeadline:
		user.Headline = value
	case domain.FieldEmail:
		if owner, taken := r.emails[value]; taken && owner != username {
			return ErrUserAlreadyExists
		}
		delete(r.emails, user.Email)
		r.emails[value] = username
		user.Email = value
	case domain.FieldDob:
		dob, err := time.Parse(domain.DobLayout, value)
		if err != nil {
			return fmt.Errorf("invalid dob %q: %w", value, err)
		}
		user.Dob = dob
	case domain.FieldZipcode:
		user.Zipcode = value
	case domain.FieldPhone:
		user.Phone = value
	case domain.FieldAvatar:
		user.Avatar = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	r.byUsername[username] = user
	return nil
}
