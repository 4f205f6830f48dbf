// Package session keeps the registry of live login sessions.
package session

import (
	"context"
	"errors"
	"time"
)

type Session struct {
	ID        string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store maps opaque session ids to usernames. Get reports expired sessions as
// ErrSessionNotFound without removing them; DeleteExpired sweeps them.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

var ErrSessionNotFound = errors.New("session not found")
