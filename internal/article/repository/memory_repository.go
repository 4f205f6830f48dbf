package repository

import (
	"context"
	"sync"

	"github.com/AlibekovAA/ricebook/backend/internal/article/domain"
)

type MemoryRepository struct {
	mu       sync.RWMutex
	articles map[string]domain.Article
	order    []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{articles: make(map[string]domain.Article)}
}

func (r *MemoryRepository) Create(_ context.Context, article domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.articles[article.ID] = clone(article)
	r.order = append(r.order, article.ID)
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (domain.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	article, ok := r.articles[id]
	if !ok {
		return domain.Article{}, ErrArticleNotFound
	}
	return clone(article), nil
}

func (r *MemoryRepository) FindOwned(ctx context.Context, id, author string) (domain.Article, error) {
	article, err := r.FindByID(ctx, id)
	if err != nil {
		return domain.Article{}, err
	}
	if article.Author != author {
		return domain.Article{}, ErrArticleNotFound
	}
	return article, nil
}

func (r *MemoryRepository) FindByAuthor(_ context.Context, author string) ([]domain.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.Article{}
	for _, id := range r.order {
		if article := r.articles[id]; article.Author == author {
			out = append(out, clone(article))
		}
	}
	return out, nil
}

func (r *MemoryRepository) Update(_ context.Context, article domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.articles[article.ID]
	if !ok || existing.Author != article.Author {
		return ErrArticleNotFound
	}

	existing.Title = article.Title
	existing.Content = article.Content
	existing.Comments = article.Comments
	existing.UpdatedAt = article.UpdatedAt
	r.articles[article.ID] = clone(existing)
	return nil
}

func clone(a domain.Article) domain.Article {
	comments := make([]domain.Comment, len(a.Comments))
	copy(comments, a.Comments)
	a.Comments = comments
	return a
}
