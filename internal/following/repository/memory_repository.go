package repository

import (
	"context"
	"sync"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	edges map[string][]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{edges: make(map[string][]string)}
}

func (r *MemoryRepository) Add(_ context.Context, follower, followee string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.edges[follower] {
		if existing == followee {
			return false, nil
		}
	}
	r.edges[follower] = append(r.edges[follower], followee)
	return true, nil
}

func (r *MemoryRepository) Remove(_ context.Context, follower, followee string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.edges[follower]
	for i, existing := range list {
		if existing == followee {
			r.edges[follower] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *MemoryRepository) List(_ context.Context, follower string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.edges[follower]))
	copy(out, r.edges[follower])
	return out, nil
}
