package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/ricebook/backend/internal/common/db"
)

const followsTable = "follows"

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Add(ctx context.Context, follower, followee string) (bool, error) {
	ctx, cancel := db.WithQueryTimeout(ctx)
	defer cancel()

	start := time.Now()
	tag, err := r.pool.Exec(
		ctx,
		`INSERT INTO follows (follower_id, followee_id)
		 SELECT f.id, t.id FROM users f, users t
		 WHERE f.username = $1 AND t.username = $2
		 ON CONFLICT (follower_id, followee_id) DO NOTHING`,
		follower,
		followee,
	)
	if err := db.HandleExecError(err, "add_follow", followsTable, start); err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgRepository) Remove(ctx context.Context, follower, followee string) error {
	ctx, cancel := db.WithQueryTimeout(ctx)
	defer cancel()

	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`DELETE FROM follows
		 USING users f, users t
		 WHERE follows.follower_id = f.id AND follows.followee_id = t.id
		   AND f.username = $1 AND t.username = $2`,
		follower,
		followee,
	)
	return db.HandleExecError(err, "remove_follow", followsTable, start)
}

func (r *PgRepository) List(ctx context.Context, follower string) ([]string, error) {
	ctx, cancel := db.WithQueryTimeout(ctx)
	defer cancel()

	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT t.username
		 FROM follows
		 JOIN users f ON f.id = follows.follower_id
		 JOIN users t ON t.id = follows.followee_id
		 WHERE f.username = $1
		 ORDER BY follows.created_at ASC`,
		follower,
	)
	if err != nil {
		return nil, db.HandleExecError(err, "list_following", followsTable, start)
	}
	defer rows.Close()

	following := []string{}
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, fmt.Errorf("failed to scan followee: %w", err)
		}
		following = append(following, username)
	}
	if err := rows.Err(); err != nil {
		return nil, db.HandleExecError(err, "list_following", followsTable, start)
	}

	db.MeasureQueryDuration("list_following", followsTable, start)
	return following, nil
}
