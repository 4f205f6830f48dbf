package service

import (
	"context"
	"errors"
	"strings"

	commonerrors "github.com/AlibekovAA/ricebook/backend/internal/common/errors"
	"github.com/AlibekovAA/ricebook/backend/internal/common/logger"
	"github.com/AlibekovAA/ricebook/backend/internal/common/validation"
	"github.com/AlibekovAA/ricebook/backend/internal/observability/metrics"
	userdomain "github.com/AlibekovAA/ricebook/backend/internal/user/domain"
	userrepo "github.com/AlibekovAA/ricebook/backend/internal/user/repository"
)

type FieldValue struct {
	Username string
	Field    userdomain.Field
	Value    string
}

type ProfileService struct {
	repo userrepo.Repository
	log  *logger.Logger
}

func NewProfileService(repo userrepo.Repository, log *logger.Logger) *ProfileService {
	return &ProfileService{repo: repo, log: log}
}

func (s *ProfileService) Get(ctx context.Context, target, field string) (FieldValue, error) {
	f, err := parseField(field)
	if err != nil {
		return FieldValue{}, err
	}

	user, err := s.repo.FindByUsername(ctx, target)
	if err != nil {
		return FieldValue{}, mapRepoError(err)
	}

	return FieldValue{Username: user.Username, Field: f, Value: user.Value(f)}, nil
}

// Set writes one of the actor's own fields. An empty target means the actor.
func (s *ProfileService) Set(ctx context.Context, actor, target, field, value string) (FieldValue, error) {
	if target == "" {
		target = actor
	}
	if target != actor {
		s.log.WithFields(ctx, logger.Fields{
			"username": actor,
			"target":   target,
			"field":    field,
			"action":   "profile_update_forbidden",
		}).Warn("profile update rejected: not the owner")
		return FieldValue{}, commonerrors.ErrForbidden
	}

	f, err := parseField(field)
	if err != nil {
		return FieldValue{}, err
	}

	value, err = normalizeValue(f, value)
	if err != nil {
		return FieldValue{}, err
	}

	if err := s.repo.UpdateField(ctx, actor, f, value); err != nil {
		if !errors.Is(err, userrepo.ErrUserNotFound) && !errors.Is(err, userrepo.ErrUserAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"username": actor,
				"field":    string(f),
				"action":   "profile_update_failed",
			}).Errorf("profile update failed: %v", err)
		}
		return FieldValue{}, mapRepoError(err)
	}

	metrics.ProfileUpdates.WithLabelValues(string(f)).Inc()
	s.log.WithFields(ctx, logger.Fields{
		"username": actor,
		"field":    string(f),
		"action":   "profile_update_success",
	}).Info("profile field updated")

	return FieldValue{Username: actor, Field: f, Value: value}, nil
}

func parseField(field string) (userdomain.Field, error) {
	f, ok := userdomain.ParseField(field)
	if !ok {
		return "", commonerrors.Validation("unknown profile field %q", field)
	}
	return f, nil
}

var valueRules = map[userdomain.Field]string{
	userdomain.FieldHeadline: "required,max=280",
	userdomain.FieldEmail:    "required,email",
	userdomain.FieldDob:      "required,date",
	userdomain.FieldZipcode:  "required",
	userdomain.FieldPhone:    "required",
	userdomain.FieldAvatar:   "omitempty,url",
}

func normalizeValue(f userdomain.Field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if err := validation.Var(string(f), value, valueRules[f]); err != nil {
		return "", err
	}
	if f == userdomain.FieldDob {
		dob, err := validation.ParseDate(value)
		if err != nil {
			return "", commonerrors.Validation("dob must be a date in YYYY-MM-DD format")
		}
		value = dob.Format(userdomain.DobLayout)
	}
	return value, nil
}

func mapRepoError(err error) error {
	switch {
	case errors.Is(err, userrepo.ErrUserNotFound):
		return commonerrors.ErrUserNotFound
	case errors.Is(err, userrepo.ErrUserAlreadyExists):
		return commonerrors.ErrUserAlreadyExists
	default:
		return commonerrors.Internal(err)
	}
}
