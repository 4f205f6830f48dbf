package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/AlibekovAA/ricebook/backend/internal/common/errors"
	"github.com/AlibekovAA/ricebook/backend/internal/common/logger"
	followrepo "github.com/AlibekovAA/ricebook/backend/internal/following/repository"
	"github.com/AlibekovAA/ricebook/backend/internal/observability/metrics"
	userdomain "github.com/AlibekovAA/ricebook/backend/internal/user/domain"
	userrepo "github.com/AlibekovAA/ricebook/backend/internal/user/repository"
)

type mockEdges struct {
	addFunc    func(ctx context.Context, follower, followee string) (bool, error)
	removeFunc func(ctx context.Context, follower, followee string) error
	listFunc   func(ctx context.Context, follower string) ([]string, error)
}

func (m *mockEdges) Add(ctx context.Context, follower, followee string) (bool, error) {
	if m.addFunc != nil {
		return m.addFunc(ctx, follower, followee)
	}
	return true, nil
}

func (m *mockEdges) Remove(ctx context.Context, follower, followee string) error {
	if m.removeFunc != nil {
		return m.removeFunc(ctx, follower, followee)
	}
	return nil
}

func (m *mockEdges) List(ctx context.Context, follower string) ([]string, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, follower)
	}
	return []string{}, nil
}

func seedUsers(t *testing.T, names ...string) *userrepo.MemoryRepository {
	t.Helper()
	repo := userrepo.NewMemoryRepository()
	for _, name := range names {
		require.NoError(t, repo.Create(context.Background(), userdomain.User{
			ID:       userdomain.ID("id-" + name),
			Username: name,
			Email:    name + "@example.com",
			Dob:      time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		}))
	}
	return repo
}

func setupFollowingService(t *testing.T, edges followrepo.Repository) *FollowingService {
	t.Helper()
	if edges == nil {
		edges = followrepo.NewMemoryRepository()
	}
	log, _ := logger.New("", "test", "info")
	return NewFollowingService(seedUsers(t, "alice", "bob", "carol"), edges, log)
}

func TestFollowingService_Follow(t *testing.T) {
	svc := setupFollowingService(t, nil)
	ctx := context.Background()

	res, err := svc.Follow(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, res.Following)

	res, err = svc.Follow(ctx, "alice", "carol")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "carol"}, res.Following)
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestFollowingService_FollowTwiceKeepsSingleEdge(t *testing.T) {
	svc := setupFollowingService(t, nil)
	ctx := context.Background()
	before := counterValue(t, metrics.FollowsTotal)

	res, err := svc.Follow(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, res.Created)

	res, err = svc.Follow(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.False(t, res.Created)

	assert.Equal(t, []string{"bob"}, res.Following)
	assert.Equal(t, before+1, counterValue(t, metrics.FollowsTotal), "repeat follow is not counted")
}

func TestFollowingService_SelfFollow(t *testing.T) {
	edges := &mockEdges{
		addFunc: func(ctx context.Context, follower, followee string) (bool, error) {
			t.Error("self-follow must not reach the store")
			return false, nil
		},
	}
	svc := setupFollowingService(t, edges)

	_, err := svc.Follow(context.Background(), "alice", "alice")
	assert.ErrorIs(t, err, commonerrors.ErrSelfFollow)

	// Checked before existence.
	_, err = svc.Follow(context.Background(), "ghost", "ghost")
	assert.ErrorIs(t, err, commonerrors.ErrSelfFollow)
}

func TestFollowingService_MissingUsers(t *testing.T) {
	svc := setupFollowingService(t, nil)
	ctx := context.Background()

	_, err := svc.Follow(ctx, "alice", "ghost")
	assert.ErrorIs(t, err, commonerrors.ErrUserNotFound)

	_, err = svc.Follow(ctx, "ghost", "alice")
	assert.ErrorIs(t, err, commonerrors.ErrUserNotFound)

	assert.ErrorIs(t, svc.Unfollow(ctx, "alice", "ghost"), commonerrors.ErrUserNotFound)

	_, err = svc.ListFollowing(ctx, "ghost")
	assert.ErrorIs(t, err, commonerrors.ErrUserNotFound)
}

func TestFollowingService_Unfollow(t *testing.T) {
	svc := setupFollowingService(t, nil)
	ctx := context.Background()

	_, err := svc.Follow(ctx, "alice", "bob")
	require.NoError(t, err)

	require.NoError(t, svc.Unfollow(ctx, "alice", "bob"))
	require.NoError(t, svc.Unfollow(ctx, "alice", "carol"), "unfollowing a non-followed user is a no-op")

	following, err := svc.ListFollowing(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, following)
}

func TestFollowingService_StoreFailure(t *testing.T) {
	edges := &mockEdges{
		addFunc: func(ctx context.Context, follower, followee string) (bool, error) {
			return false, errors.New("connection reset")
		},
		listFunc: func(ctx context.Context, follower string) ([]string, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc := setupFollowingService(t, edges)
	ctx := context.Background()

	_, err := svc.Follow(ctx, "alice", "bob")
	assert.ErrorIs(t, err, commonerrors.ErrInternalError)

	_, err = svc.ListFollowing(ctx, "alice")
	assert.ErrorIs(t, err, commonerrors.ErrInternalError)
}
