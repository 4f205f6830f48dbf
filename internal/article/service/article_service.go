package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/AlibekovAA/ricebook/backend/internal/article/domain"
	articlerepo "github.com/AlibekovAA/ricebook/backend/internal/article/repository"
	"github.com/AlibekovAA/ricebook/backend/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/ricebook/backend/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/ricebook/backend/internal/common/errors"
	"github.com/AlibekovAA/ricebook/backend/internal/common/logger"
	"github.com/AlibekovAA/ricebook/backend/internal/common/validation"
	"github.com/AlibekovAA/ricebook/backend/internal/observability/metrics"
)

type CommentInput struct {
	User    string     `json:"user" validate:"required"`
	Content string     `json:"content" validate:"required"`
	Time    *time.Time `json:"time"`
}

type CreateInput struct {
	Title    string         `json:"title" validate:"required,max=200"`
	Content  string         `json:"content" validate:"required"`
	Comments []CommentInput `json:"comments" validate:"dive"`
}

// Patch holds the fields to change; nil means unchanged. A present field
// must not be empty.
type Patch struct {
	Title    *string         `json:"title"`
	Content  *string         `json:"content"`
	Comments *[]CommentInput `json:"comments"`
}

type ArticleService struct {
	repo        articlerepo.Repository
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
}

func NewArticleService(repo articlerepo.Repository, idGenerator commoncrypto.IDGenerator, clk clock.Clock, log *logger.Logger) *ArticleService {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &ArticleService{repo: repo, idGenerator: idGenerator, clock: clk, log: log}
}

func (s *ArticleService) Create(ctx context.Context, author string, input CreateInput) (domain.Article, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Content = strings.TrimSpace(input.Content)

	if err := validation.Struct(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": author,
			"action":   "article_create_validation_failed",
		}).Warnf("article create validation failed: %v", err)
		return domain.Article{}, err
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return domain.Article{}, commonerrors.Internal(err)
	}

	now := s.clock.Now()
	article := domain.Article{
		ID:        id,
		Author:    author,
		Title:     input.Title,
		Content:   input.Content,
		Comments:  buildComments(input.Comments, now),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, article); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": author,
			"action":   "article_create_failed",
		}).Errorf("article create failed: %v", err)
		return domain.Article{}, commonerrors.Internal(err)
	}

	metrics.ArticlesCreated.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"username":   author,
		"article_id": article.ID,
		"action":     "article_create_success",
	}).Info("article created")

	return article, nil
}

// Update patches an article the author owns. Articles owned by someone else
// are reported as not found.
func (s *ArticleService) Update(ctx context.Context, author, id string, patch Patch) (domain.Article, error) {
	if !commoncrypto.IsUUID(id) {
		return domain.Article{}, commonerrors.Validation("article id must be a valid id")
	}
	if err := validatePatch(patch); err != nil {
		return domain.Article{}, err
	}

	article, err := s.repo.FindOwned(ctx, id, author)
	if err != nil {
		return domain.Article{}, mapRepoError(err)
	}

	now := s.clock.Now()
	if patch.Title != nil {
		article.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Content != nil {
		article.Content = strings.TrimSpace(*patch.Content)
	}
	if patch.Comments != nil {
		article.Comments = buildComments(*patch.Comments, now)
	}
	article.UpdatedAt = now

	if err := s.repo.Update(ctx, article); err != nil {
		if !errors.Is(err, articlerepo.ErrArticleNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"username":   author,
				"article_id": id,
				"action":     "article_update_failed",
			}).Errorf("article update failed: %v", err)
		}
		return domain.Article{}, mapRepoError(err)
	}

	metrics.ArticlesUpdated.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"username":   author,
		"article_id": id,
		"action":     "article_update_success",
	}).Info("article updated")

	return article, nil
}

// List resolves segment in order: empty means the viewer's own articles, an
// existing article id means that article, anything else is an author name.
func (s *ArticleService) List(ctx context.Context, viewer, segment string) ([]domain.Article, error) {
	if segment == "" {
		articles, err := s.repo.FindByAuthor(ctx, viewer)
		if err != nil {
			return nil, commonerrors.Internal(err)
		}
		return articles, nil
	}

	if commoncrypto.IsUUID(segment) {
		article, err := s.repo.FindByID(ctx, segment)
		switch {
		case err == nil:
			return []domain.Article{article}, nil
		case !errors.Is(err, articlerepo.ErrArticleNotFound):
			return nil, commonerrors.Internal(err)
		}
	}

	articles, err := s.repo.FindByAuthor(ctx, segment)
	if err != nil {
		return nil, commonerrors.Internal(err)
	}
	if len(articles) == 0 {
		return nil, commonerrors.ErrArticleNotFound
	}
	return articles, nil
}

func validatePatch(p Patch) error {
	if p.Title == nil && p.Content == nil && p.Comments == nil {
		return commonerrors.Validation("nothing to update")
	}
	if p.Title != nil {
		if err := validation.Var("title", strings.TrimSpace(*p.Title), "required,max=200"); err != nil {
			return err
		}
	}
	if p.Content != nil {
		if err := validation.Var("content", strings.TrimSpace(*p.Content), "required"); err != nil {
			return err
		}
	}
	if p.Comments != nil {
		for _, c := range *p.Comments {
			if err := validation.Struct(c); err != nil {
				return err
			}
		}
	}
	return nil
}

func buildComments(in []CommentInput, now time.Time) []domain.Comment {
	comments := make([]domain.Comment, 0, len(in))
	for _, c := range in {
		at := now
		if c.Time != nil && !c.Time.IsZero() {
			at = *c.Time
		}
		comments = append(comments, domain.Comment{User: c.User, Content: c.Content, Time: at})
	}
	return comments
}

func mapRepoError(err error) error {
	if errors.Is(err, articlerepo.ErrArticleNotFound) {
		return commonerrors.ErrArticleNotFound
	}
	return commonerrors.Internal(err)
}
