package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/ricebook/backend/internal/common/clock"
	"github.com/AlibekovAA/ricebook/backend/internal/common/db"
)

const sessionsTable = "sessions"

// PgStore shares sessions between instances. Only the SHA-256 of a session
// id is persisted.
type PgStore struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func NewPgStore(pool *pgxpool.Pool, clk clock.Clock) *PgStore {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &PgStore{pool: pool, clock: clk}
}

func hashID(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}

func (s *PgStore) Create(ctx context.Context, sess Session) error {
	ctx, cancel := db.WithQueryTimeout(ctx)
	defer cancel()

	start := time.Now()
	_, err := s.pool.Exec(
		ctx,
		`INSERT INTO sessions (token_hash, username, created_at, expires_at) VALUES ($1, $2, $3, $4)`,
		hashID(sess.ID),
		sess.Username,
		sess.CreatedAt,
		sess.ExpiresAt,
	)
	return db.HandleExecError(err, "create_session", sessionsTable, start)
}

func (s *PgStore) Get(ctx context.Context, id string) (Session, error) {
	ctx, cancel := db.WithQueryTimeout(ctx)
	defer cancel()

	start := time.Now()
	sess := Session{ID: id}
	err := s.pool.QueryRow(
		ctx,
		`SELECT username, created_at, expires_at FROM sessions WHERE token_hash = $1 AND expires_at > $2`,
		hashID(id),
		s.clock.Now(),
	).Scan(&sess.Username, &sess.CreatedAt, &sess.ExpiresAt)
	if err := db.HandleQueryError(err, ErrSessionNotFound, "get_session", sessionsTable, start); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *PgStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := db.WithQueryTimeout(ctx)
	defer cancel()

	start := time.Now()
	tag, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE token_hash = $1`, hashID(id))
	if err := db.HandleExecError(err, "delete_session", sessionsTable, start); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (s *PgStore) DeleteExpired(ctx context.Context) (int64, error) {
	ctx, cancel := db.WithQueryTimeout(ctx)
	defer cancel()

	start := time.Now()
	tag, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, s.clock.Now())
	if err := db.HandleExecError(err, "delete_expired_sessions", sessionsTable, start); err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
