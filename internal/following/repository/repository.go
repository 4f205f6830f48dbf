package repository

import "context"

// Repository stores follow edges keyed by username. Add is idempotent and
// reports whether a new edge was stored. List returns followees in the order
// they were first followed.
type Repository interface {
	Add(ctx context.Context, follower, followee string) (bool, error)
	Remove(ctx context.Context, follower, followee string) error
	List(ctx context.Context, follower string) ([]string, error)
}
