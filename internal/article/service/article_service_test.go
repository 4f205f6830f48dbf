package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/ricebook/backend/internal/article/domain"
	articlerepo "github.com/AlibekovAA/ricebook/backend/internal/article/repository"
	"github.com/AlibekovAA/ricebook/backend/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/ricebook/backend/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/ricebook/backend/internal/common/errors"
	"github.com/AlibekovAA/ricebook/backend/internal/common/logger"
)

type mockArticleRepo struct {
	articlerepo.Repository
	createFunc       func(ctx context.Context, a domain.Article) error
	findByAuthorFunc func(ctx context.Context, author string) ([]domain.Article, error)
}

func (m *mockArticleRepo) Create(ctx context.Context, a domain.Article) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, a)
	}
	return nil
}

func (m *mockArticleRepo) FindByAuthor(ctx context.Context, author string) ([]domain.Article, error) {
	if m.findByAuthorFunc != nil {
		return m.findByAuthorFunc(ctx, author)
	}
	return []domain.Article{}, nil
}

func setupArticleService(t *testing.T, repo articlerepo.Repository) (*ArticleService, *clock.MockClock) {
	t.Helper()
	if repo == nil {
		repo = articlerepo.NewMemoryRepository()
	}
	clk := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	log, _ := logger.New("", "test", "info")
	return NewArticleService(repo, commoncrypto.NewUUIDGenerator(), clk, log), clk
}

func strPtr(s string) *string { return &s }

func TestArticleService_CreateThenList(t *testing.T) {
	svc, clk := setupArticleService(t, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", CreateInput{
		Title:   "Hello",
		Content: "First post",
		Comments: []CommentInput{
			{User: "bob", Content: "nice"},
		},
	})
	require.NoError(t, err)
	assert.True(t, commoncrypto.IsUUID(created.ID))
	assert.Equal(t, "alice", created.Author)
	require.Len(t, created.Comments, 1)
	assert.Equal(t, clk.Now(), created.Comments[0].Time, "comment time defaults to creation")

	own, err := svc.List(ctx, "alice", "")
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, created.ID, own[0].ID)

	byID, err := svc.List(ctx, "bob", created.ID)
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, "Hello", byID[0].Title)

	byAuthor, err := svc.List(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Len(t, byAuthor, 1)
}

func TestArticleService_Create_Validation(t *testing.T) {
	svc, _ := setupArticleService(t, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", CreateInput{Content: "no title"})
	assert.ErrorIs(t, err, commonerrors.ErrValidation)

	_, err = svc.Create(ctx, "alice", CreateInput{Title: "no content", Content: "  "})
	assert.ErrorIs(t, err, commonerrors.ErrValidation)

	_, err = svc.Create(ctx, "alice", CreateInput{
		Title:    "t",
		Content:  "c",
		Comments: []CommentInput{{User: "bob"}},
	})
	assert.ErrorIs(t, err, commonerrors.ErrValidation)
}

func TestArticleService_Create_KeepsExplicitCommentTime(t *testing.T) {
	svc, _ := setupArticleService(t, nil)
	at := time.Date(2023, 6, 1, 8, 0, 0, 0, time.UTC)

	created, err := svc.Create(context.Background(), "alice", CreateInput{
		Title:    "t",
		Content:  "c",
		Comments: []CommentInput{{User: "bob", Content: "old", Time: &at}},
	})
	require.NoError(t, err)
	assert.Equal(t, at, created.Comments[0].Time)
}

func TestArticleService_Update(t *testing.T) {
	svc, clk := setupArticleService(t, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", CreateInput{Title: "Hello", Content: "First"})
	require.NoError(t, err)

	clk.Advance(time.Minute)

	updated, err := svc.Update(ctx, "alice", created.ID, Patch{Content: strPtr("Edited")})
	require.NoError(t, err)
	assert.Equal(t, "Hello", updated.Title)
	assert.Equal(t, "Edited", updated.Content)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, clk.Now(), updated.UpdatedAt)

	list, err := svc.List(ctx, "alice", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edited", list[0].Content)
}

func TestArticleService_Update_OwnershipIsPartOfLookup(t *testing.T) {
	svc, _ := setupArticleService(t, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", CreateInput{Title: "Hello", Content: "First"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "bob", created.ID, Patch{Title: strPtr("Mine now")})
	assert.ErrorIs(t, err, commonerrors.ErrArticleNotFound)

	list, err := svc.List(ctx, "alice", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", list[0].Title)
}

func TestArticleService_Update_Validation(t *testing.T) {
	svc, _ := setupArticleService(t, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", CreateInput{Title: "Hello", Content: "First"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "alice", "not-an-id", Patch{Title: strPtr("x")})
	assert.ErrorIs(t, err, commonerrors.ErrValidation)

	_, err = svc.Update(ctx, "alice", created.ID, Patch{})
	assert.ErrorIs(t, err, commonerrors.ErrValidation)

	_, err = svc.Update(ctx, "alice", created.ID, Patch{Title: strPtr("")})
	assert.ErrorIs(t, err, commonerrors.ErrValidation)

	_, err = svc.Update(ctx, "alice", "3f2c1a9e-8b7d-4c6e-9a5f-1b2c3d4e5f60", Patch{Title: strPtr("x")})
	assert.ErrorIs(t, err, commonerrors.ErrArticleNotFound)
}

func TestArticleService_List_Fallbacks(t *testing.T) {
	svc, _ := setupArticleService(t, nil)
	ctx := context.Background()

	own, err := svc.List(ctx, "carol", "")
	require.NoError(t, err)
	assert.Empty(t, own, "no segment and no articles is an empty list")

	_, err = svc.List(ctx, "carol", "nobody")
	assert.ErrorIs(t, err, commonerrors.ErrArticleNotFound)

	_, err = svc.List(ctx, "carol", "3f2c1a9e-8b7d-4c6e-9a5f-1b2c3d4e5f60")
	assert.ErrorIs(t, err, commonerrors.ErrArticleNotFound)
}

func TestArticleService_StoreFailure(t *testing.T) {
	repo := &mockArticleRepo{
		createFunc: func(ctx context.Context, a domain.Article) error {
			return errors.New("connection refused")
		},
		findByAuthorFunc: func(ctx context.Context, author string) ([]domain.Article, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc, _ := setupArticleService(t, repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", CreateInput{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, commonerrors.ErrInternalError)

	_, err = svc.List(ctx, "alice", "")
	assert.ErrorIs(t, err, commonerrors.ErrInternalError)
}
