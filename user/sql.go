package user

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("user id or email already exists")
)

type Repository struct {
	db sqlx.ExtContext
}

func NewRepository(db sqlx.ExtContext) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, u User) error {
	_, err := r.db.ExecContext(ctx, createUserQuery,
		u.ID, u.Name, u.Email, u.Phone, u.PasswordHash, u.RegisteredAt, u.Status)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAlreadyExists
	}
	return err
}

const createUserQuery = `
INSERT INTO users (id, name, email, phone, password_hash, registered_at, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

const userColumns = `id, name, email, phone, password_hash, registered_at, status, total_rides, total_hours, total_spent`

func (r *Repository) Get(ctx context.Context, id int64) (User, error) {
	var u User
	err := sqlx.GetContext(ctx, r.db, &u, getUserQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

const getUserQuery = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

// GetByLogin accepts either an email address or a numeric user id.
func (r *Repository) GetByLogin(ctx context.Context, loginID string) (User, error) {
	id, err := strconv.ParseInt(loginID, 10, 64)
	if err != nil {
		id = 0
	}
	var u User
	err = sqlx.GetContext(ctx, r.db, &u, getUserByLoginQuery, loginID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

const getUserByLoginQuery = `SELECT ` + userColumns + ` FROM users WHERE email = $1 OR id = $2 ORDER BY (email = $1) DESC LIMIT 1`

// AddTotals credits one completed ride to the user's running totals.
func (r *Repository) AddTotals(ctx context.Context, id int64, hours float64, spent int64) error {
	res, err := r.db.ExecContext(ctx, addTotalsQuery, id, hours, spent)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const addTotalsQuery = `
UPDATE users
SET total_rides = total_rides + 1, total_hours = total_hours + $2, total_spent = total_spent + $3
WHERE id = $1
`

func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, r.db, &n, `SELECT count(*) FROM users`)
	return n, err
}
