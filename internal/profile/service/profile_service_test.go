package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/AlibekovAA/ricebook/backend/internal/common/errors"
	"github.com/AlibekovAA/ricebook/backend/internal/common/logger"
	userdomain "github.com/AlibekovAA/ricebook/backend/internal/user/domain"
	userrepo "github.com/AlibekovAA/ricebook/backend/internal/user/repository"
)

func seedUser(t *testing.T, repo *userrepo.MemoryRepository, id, username string) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), userdomain.User{
		ID:       userdomain.ID(id),
		Username: username,
		Email:    username + "@example.com",
		Dob:      time.Date(1990, 4, 1, 0, 0, 0, 0, time.UTC),
		Zipcode:  "77005",
		Phone:    "123-456-7890",
		Avatar:   "https://example.com/" + username + ".png",
	}))
}

func setupProfileService(t *testing.T) *ProfileService {
	t.Helper()
	repo := userrepo.NewMemoryRepository()
	seedUser(t, repo, "u1", "alice")
	seedUser(t, repo, "u2", "bob")

	log, _ := logger.New("", "test", "info")
	return NewProfileService(repo, log)
}

func TestProfileService_SetThenGet(t *testing.T) {
	svc := setupProfileService(t)
	ctx := context.Background()

	got, err := svc.Set(ctx, "alice", "", "headline", "hi")
	require.NoError(t, err)
	assert.Equal(t, FieldValue{Username: "alice", Field: userdomain.FieldHeadline, Value: "hi"}, got)

	got, err = svc.Get(ctx, "alice", "headline")
	require.NoError(t, err)
	assert.Equal(t, "hi", got.Value)
}

func TestProfileService_Set_ExplicitSelfTarget(t *testing.T) {
	svc := setupProfileService(t)

	_, err := svc.Set(context.Background(), "alice", "alice", "zipcode", "10001")
	assert.NoError(t, err)
}

func TestProfileService_Set_OtherUserIsForbidden(t *testing.T) {
	svc := setupProfileService(t)
	ctx := context.Background()

	_, err := svc.Set(ctx, "alice", "bob", "headline", "pwned")
	assert.ErrorIs(t, err, commonerrors.ErrForbidden)

	got, err := svc.Get(ctx, "bob", "headline")
	require.NoError(t, err)
	assert.Empty(t, got.Value)
}

func TestProfileService_Set_Validation(t *testing.T) {
	tests := []struct {
		field string
		value string
	}{
		{"headline", ""},
		{"email", ""},
		{"email", "not-an-email"},
		{"dob", ""},
		{"dob", "someday"},
		{"zipcode", "   "},
		{"phone", ""},
		{"avatar", "not a url"},
		{"nickname", "x"},
	}

	svc := setupProfileService(t)
	for _, tt := range tests {
		t.Run(tt.field+"="+tt.value, func(t *testing.T) {
			_, err := svc.Set(context.Background(), "alice", "", tt.field, tt.value)
			assert.ErrorIs(t, err, commonerrors.ErrValidation)
		})
	}
}

func TestProfileService_Set_AvatarMayBeCleared(t *testing.T) {
	svc := setupProfileService(t)
	ctx := context.Background()

	_, err := svc.Set(ctx, "alice", "", "avatar", "")
	require.NoError(t, err)

	got, err := svc.Get(ctx, "alice", "avatar")
	require.NoError(t, err)
	assert.Empty(t, got.Value)
}

func TestProfileService_Set_DobIsNormalized(t *testing.T) {
	svc := setupProfileService(t)

	got, err := svc.Set(context.Background(), "alice", "", "dob", "1985-12-24T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "1985-12-24", got.Value)
}

func TestProfileService_Set_EmailConflict(t *testing.T) {
	svc := setupProfileService(t)

	_, err := svc.Set(context.Background(), "alice", "", "email", "bob@example.com")
	assert.ErrorIs(t, err, commonerrors.ErrUserAlreadyExists)
}

func TestProfileService_Set_ActorMissing(t *testing.T) {
	svc := setupProfileService(t)

	_, err := svc.Set(context.Background(), "ghost", "", "headline", "boo")
	assert.ErrorIs(t, err, commonerrors.ErrUserNotFound)
}

func TestProfileService_Get_Errors(t *testing.T) {
	svc := setupProfileService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, "ghost", "headline")
	assert.ErrorIs(t, err, commonerrors.ErrUserNotFound)

	_, err = svc.Get(ctx, "alice", "password")
	assert.ErrorIs(t, err, commonerrors.ErrValidation)
}

type failingRepo struct {
	userrepo.Repository
}

func (failingRepo) FindByUsername(context.Context, string) (userdomain.User, error) {
	return userdomain.User{}, errors.New("connection refused")
}

func TestProfileService_StoreFailure(t *testing.T) {
	log, _ := logger.New("", "test", "info")
	svc := NewProfileService(failingRepo{}, log)

	_, err := svc.Get(context.Background(), "alice", "headline")
	assert.ErrorIs(t, err, commonerrors.ErrInternalError)
}
