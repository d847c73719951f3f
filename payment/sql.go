package payment

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

var ErrDuplicate = errors.New("ride already has a payment")

type Repository struct {
	db sqlx.ExtContext
}

func NewRepository(db sqlx.ExtContext) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ctx context.Context, p Payment) error {
	_, err := r.db.ExecContext(ctx, insertPaymentQuery,
		p.ID, p.RideID, p.UserID, p.BikeID, p.Amount, p.Method, p.Status, p.PaidAt,
		p.DurationMinutes, p.DurationHours)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

const insertPaymentQuery = `
INSERT INTO payments (id, ride_id, user_id, bike_id, amount, method, status, paid_at, duration_minutes, duration_hours)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

// ListByUser returns the user's payments, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]Payment, error) {
	payments := []Payment{}
	err := sqlx.SelectContext(ctx, r.db, &payments, listByUserQuery, userID)
	return payments, err
}

const listByUserQuery = `
SELECT id, ride_id, user_id, bike_id, amount, method, status, paid_at, duration_minutes, duration_hours
FROM payments WHERE user_id = $1 ORDER BY paid_at DESC
`

func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
