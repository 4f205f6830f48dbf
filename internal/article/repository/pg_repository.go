package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/ricebook/backend/internal/article/domain"
	"github.com/AlibekovAA/ricebook/backend/internal/common/db"
)

const articlesTable = "articles"

const selectArticle = `SELECT id, author, title, content, comments, created_at, updated_at FROM articles`

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, article domain.Article) error {
	comments, err := encodeComments(article.Comments)
	if err != nil {
		return err
	}

	ctx, cancel := db.WithQueryTimeout(ctx)
	defer cancel()

	start := time.Now()
	_, err = r.pool.Exec(
		ctx,
		`INSERT INTO articles (id, author, title, content, comments, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7)`,
		article.ID,
		article.Author,
		article.Title,
		article.Content,
		comments,
		article.CreatedAt,
		article.UpdatedAt,
	)
	return db.HandleExecError(err, "create_article", articlesTable, start)
}

func (r *PgRepository) FindByID(ctx context.Context, id string) (domain.Article, error) {
	ctx, cancel := db.WithQueryTimeout(ctx)
	defer cancel()

	start := time.Now()
	article, err := scanArticle(r.pool.QueryRow(ctx, selectArticle+` WHERE id = $1`, id))
	if err := db.HandleQueryError(err, ErrArticleNotFound, "find_article", articlesTable, start); err != nil {
		return domain.Article{}, err
	}
	return article, nil
}

func (r *PgRepository) FindOwned(ctx context.Context, id, author string) (domain.Article, error) {
	ctx, cancel := db.WithQueryTimeout(ctx)
	defer cancel()

	start := time.Now()
	article, err := scanArticle(r.pool.QueryRow(ctx, selectArticle+` WHERE id = $1 AND author = $2`, id, author))
	if err := db.HandleQueryError(err, ErrArticleNotFound, "find_owned_article", articlesTable, start); err != nil {
		return domain.Article{}, err
	}
	return article, nil
}

func (r *PgRepository) FindByAuthor(ctx context.Context, author string) ([]domain.Article, error) {
	ctx, cancel := db.WithQueryTimeout(ctx)
	defer cancel()

	start := time.Now()
	rows, err := r.pool.Query(ctx, selectArticle+` WHERE author = $1 ORDER BY created_at ASC`, author)
	if err != nil {
		return nil, db.HandleExecError(err, "find_articles_by_author", articlesTable, start)
	}
	defer rows.Close()

	articles := []domain.Article{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, db.HandleExecError(err, "find_articles_by_author", articlesTable, start)
	}

	db.MeasureQueryDuration("find_articles_by_author", articlesTable, start)
	return articles, nil
}

func (r *PgRepository) Update(ctx context.Context, article domain.Article) error {
	comments, err := encodeComments(article.Comments)
	if err != nil {
		return err
	}

	ctx, cancel := db.WithQueryTimeout(ctx)
	defer cancel()

	start := time.Now()
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE articles SET title = $1, content = $2, comments = $3::jsonb, updated_at = $4
		 WHERE id = $5 AND author = $6`,
		article.Title,
		article.Content,
		comments,
		article.UpdatedAt,
		article.ID,
		article.Author,
	)
	if err := db.HandleExecError(err, "update_article", articlesTable, start); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrArticleNotFound
	}
	return nil
}

func scanArticle(row pgx.Row) (domain.Article, error) {
	var article domain.Article
	var rawComments []byte
	err := row.Scan(
		&article.ID,
		&article.Author,
		&article.Title,
		&article.Content,
		&rawComments,
		&article.CreatedAt,
		&article.UpdatedAt,
	)
	if err != nil {
		return domain.Article{}, err
	}
	if err := json.Unmarshal(rawComments, &article.Comments); err != nil {
		return domain.Article{}, fmt.Errorf("failed to decode comments: %w", err)
	}
	if article.Comments == nil {
		article.Comments = []domain.Comment{}
	}
	return article, nil
}

func encodeComments(comments []domain.Comment) (string, error) {
	if comments == nil {
		comments = []domain.Comment{}
	}
	raw, err := json.Marshal(comments)
	if err != nil {
		return "", fmt.Errorf("failed to encode comments: %w", err)
	}
	return string(raw), nil
}
