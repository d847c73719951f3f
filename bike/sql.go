package bike

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound     = errors.New("bike not found")
	ErrNotAvailable = errors.New("bike not available")
)

// Repository works against either a *sqlx.DB or a *sqlx.Tx.
type Repository struct {
	db sqlx.ExtContext
}

func NewRepository(db sqlx.ExtContext) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetBikes(ctx context.Context) ([]Bike, error) {
	bikes := []Bike{}
	err := sqlx.SelectContext(ctx, r.db, &bikes, getBikes)
	return bikes, err
}

const getBikes = `SELECT id, model, type, station_id, available FROM bikes ORDER BY id`

func (r *Repository) GetBike(ctx context.Context, id int64) (Bike, error) {
	var bike Bike
	err := sqlx.GetContext(ctx, r.db, &bike, getBike, id)
	if errors.Is(err, sql.ErrNoRows) {
		return bike, ErrNotFound
	}
	return bike, err
}

const getBike = `SELECT id, model, type, station_id, available FROM bikes WHERE id = $1`

// GetBikeForUpdate locks the row until the surrounding transaction ends.
func (r *Repository) GetBikeForUpdate(ctx context.Context, id int64) (Bike, error) {
	var bike Bike
	err := sqlx.GetContext(ctx, r.db, &bike, getBikeForUpdate, id)
	if errors.Is(err, sql.ErrNoRows) {
		return bike, ErrNotFound
	}
	return bike, err
}

const getBikeForUpdate = getBike + ` FOR UPDATE`

// MarkRented flips an available bike to rented and takes it off its station.
// It returns ErrNotAvailable if the bike was already rented.
func (r *Repository) MarkRented(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, markRented, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotAvailable
	}
	return nil
}

const markRented = `UPDATE bikes SET available = false, station_id = NULL WHERE id = $1 AND available`

// Return parks the bike at stationID and makes it available again.
func (r *Repository) Return(ctx context.Context, id, stationID int64) error {
	res, err := r.db.ExecContext(ctx, returnBike, id, stationID)
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

const returnBike = `UPDATE bikes SET available = true, station_id = $2 WHERE id = $1`

func (r *Repository) Insert(ctx context.Context, b Bike) error {
	_, err := r.db.ExecContext(ctx, insertBike, b.ID, b.Model, b.Type, b.StationID, b.Available)
	return err
}

const insertBike = `INSERT INTO bikes (id, model, type, station_id, available) VALUES ($1, $2, $3, $4, $5)`

func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bikes`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *Repository) MarkAllAvailable(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE bikes SET available = true`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
