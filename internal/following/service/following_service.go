package service

import (
	"context"
	"errors"

	commonerrors "github.com/AlibekovAA/ricebook/backend/internal/common/errors"
	"github.com/AlibekovAA/ricebook/backend/internal/common/logger"
	followrepo "github.com/AlibekovAA/ricebook/backend/internal/following/repository"
	"github.com/AlibekovAA/ricebook/backend/internal/observability/metrics"
	userdomain "github.com/AlibekovAA/ricebook/backend/internal/user/domain"
	userrepo "github.com/AlibekovAA/ricebook/backend/internal/user/repository"
)

type UserLookup interface {
	FindByUsername(ctx context.Context, username string) (userdomain.User, error)
}

type FollowResult struct {
	Username  string
	Target    string
	Following []string
	// Created is false when the edge already existed.
	Created bool
}

type FollowingService struct {
	users UserLookup
	edges followrepo.Repository
	log   *logger.Logger
}

func NewFollowingService(users UserLookup, edges followrepo.Repository, log *logger.Logger) *FollowingService {
	return &FollowingService{users: users, edges: edges, log: log}
}

// Follow adds actor -> target. Following someone already followed succeeds
// without creating a second edge.
func (s *FollowingService) Follow(ctx context.Context, actor, target string) (FollowResult, error) {
	if actor == target {
		return FollowResult{}, commonerrors.ErrSelfFollow
	}

	if err := s.requireUsers(ctx, actor, target); err != nil {
		return FollowResult{}, err
	}

	created, err := s.edges.Add(ctx, actor, target)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": actor,
			"target":   target,
			"action":   "follow_failed",
		}).Errorf("follow failed: %v", err)
		return FollowResult{}, commonerrors.Internal(err)
	}

	following, err := s.edges.List(ctx, actor)
	if err != nil {
		return FollowResult{}, commonerrors.Internal(err)
	}

	if created {
		metrics.FollowsTotal.Inc()
	}
	s.log.WithFields(ctx, logger.Fields{
		"username": actor,
		"target":   target,
		"created":  created,
		"action":   "follow_success",
	}).Info("follow success")

	return FollowResult{Username: actor, Target: target, Following: following, Created: created}, nil
}

// Unfollow removes actor -> target; removing an absent edge is a no-op.
func (s *FollowingService) Unfollow(ctx context.Context, actor, target string) error {
	if err := s.requireUsers(ctx, actor, target); err != nil {
		return err
	}

	if err := s.edges.Remove(ctx, actor, target); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": actor,
			"target":   target,
			"action":   "unfollow_failed",
		}).Errorf("unfollow failed: %v", err)
		return commonerrors.Internal(err)
	}

	metrics.UnfollowsTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"username": actor,
		"target":   target,
		"action":   "unfollow_success",
	}).Info("unfollow success")

	return nil
}

func (s *FollowingService) ListFollowing(ctx context.Context, username string) ([]string, error) {
	if err := s.requireUsers(ctx, username); err != nil {
		return nil, err
	}

	following, err := s.edges.List(ctx, username)
	if err != nil {
		return nil, commonerrors.Internal(err)
	}
	return following, nil
}

func (s *FollowingService) requireUsers(ctx context.Context, usernames ...string) error {
	for _, username := range usernames {
		if _, err := s.users.FindByUsername(ctx, username); err != nil {
			if errors.Is(err, userrepo.ErrUserNotFound) {
				return commonerrors.ErrUserNotFound.WithMessage("user " + username + " not found")
			}
			return commonerrors.Internal(err)
		}
	}
	return nil
}
