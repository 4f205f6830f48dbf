package repository

import (
	"context"
	"errors"

	"github.com/AlibekovAA/ricebook/backend/internal/article/domain"
)

type Repository interface {
	Create(ctx context.Context, article domain.Article) error
	FindByID(ctx context.Context, id string) (domain.Article, error)
	// FindOwned matches on id and author together.
	FindOwned(ctx context.Context, id, author string) (domain.Article, error)
	// FindByAuthor returns articles oldest first; an empty slice when none.
	FindByAuthor(ctx context.Context, author string) ([]domain.Article, error)
	// Update rewrites title, content, comments and updated_at of an article
	// owned by article.Author.
	Update(ctx context.Context, article domain.Article) error
}

var ErrArticleNotFound = errors.New("article not found")
