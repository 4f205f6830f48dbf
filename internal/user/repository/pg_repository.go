package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/ricebook/backend/internal/common/db"
	"github.com/AlibekovAA/ricebook/backend/internal/user/domain"
)

const usersTable = "users"

const selectUser = `SELECT id, username, password_hash, email, dob, zipcode, phone, avatar, headline, created_at FROM users`

var fieldColumns = map[domain.Field]string{
	domain.FieldHeadline: "headline = $1",
	domain.FieldEmail:    "email = $1",
	domain.FieldDob:      "dob = $1::date",
	domain.FieldZipcode:  "zipcode = $1",
	domain.FieldPhone:    "phone = $1",
	domain.FieldAvatar:   "avatar = $1",
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, user domain.User) error {
	ctx, cancel := db.WithQueryTimeout(ctx)
	defer cancel()

	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO users (id, username, password_hash, email, dob, zipcode, phone, avatar, headline)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		string(user.ID),
		user.Username,
		user.PasswordHash,
		user.Email,
		user.Dob,
		user.Zipcode,
		user.Phone,
		user.Avatar,
		user.Headline,
	)
	if db.IsUniqueViolation(err) {
		db.MeasureQueryDuration("create_user", usersTable, start)
		return ErrUserAlreadyExists
	}
	return db.HandleExecError(err, "create_user", usersTable, start)
}

func (r *PgRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.findOne(ctx, "find_user_by_username", selectUser+` WHERE username = $1`, username)
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	return r.findOne(ctx, "find_user_by_id", selectUser+` WHERE id = $1`, string(id))
}

func (r *PgRepository) findOne(ctx context.Context, operation, query string, arg any) (domain.User, error) {
	ctx, cancel := db.WithQueryTimeout(ctx)
	defer cancel()

	start := time.Now()
	var user domain.User
	var id string
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&id,
		&user.Username,
		&user.PasswordHash,
		&user.Email,
		&user.Dob,
		&user.Zipcode,
		&user.Phone,
		&user.Avatar,
		&user.Headline,
		&user.CreatedAt,
	)
	if err := db.HandleQueryError(err, ErrUserNotFound, operation, usersTable, start); err != nil {
		return domain.User{}, err
	}
	user.ID = domain.ID(id)
	return user, nil
}

func (r *PgRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	return r.update(ctx, "update_password", `UPDATE users SET password_hash = $1 WHERE username = $2`, passwordHash, username)
}

func (r *PgRepository) UpdateField(ctx context.Context, username string, field domain.Field, value string) error {
	assignment, ok := fieldColumns[field]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	query := fmt.Sprintf(`UPDATE users SET %s WHERE username = $2`, assignment)
	return r.update(ctx, "update_"+string(field), query, value, username)
}

func (r *PgRepository) update(ctx context.Context, operation, query string, args ...any) error {
	ctx, cancel := db.WithQueryTimeout(ctx)
	defer cancel()

	start := time.Now()
	tag, err := r.pool.Exec(ctx, query, args...)
	if db.IsUniqueViolation(err) {
		db.MeasureQueryDuration(operation, usersTable, start)
		return ErrUserAlreadyExists
	}
	if err := db.HandleExecError(err, operation, usersTable, start); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
