package repository

import (
	"context"
	"errors"

	"github.com/AlibekovAA/ricebook/backend/internal/user/domain"
)

type Repository interface {
	Create(ctx context.Context, user domain.User) error
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) error
	// UpdateField writes one profile field. Dob values use domain.DobLayout.
	UpdateField(ctx context.Context, username string, field domain.Field, value string) error
}

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("username or email already exists")
	ErrUnknownField      = errors.New("unknown profile field")
)
