package station

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("station not found")

type Repository struct {
	db sqlx.ExtContext
}

func NewRepository(db sqlx.ExtContext) *Repository {
	return &Repository{
		db: db,
	}
}

// GetStations persists a zero over any negative counter before listing.
func (r *Repository) GetStations(ctx context.Context) ([]Station, error) {
	if _, err := r.db.ExecContext(ctx, clampNegative); err != nil {
		return nil, err
	}
	stations := []Station{}
	err := sqlx.SelectContext(ctx, r.db, &stations, getStations)
	return stations, err
}

const clampNegative = `UPDATE stations SET available_bikes = 0 WHERE available_bikes < 0`

const getStations = `SELECT id, name, address, city, available_bikes, total_capacity FROM stations ORDER BY id`

func (r *Repository) GetStation(ctx context.Context, id int64) (Station, error) {
	var station Station
	err := sqlx.GetContext(ctx, r.db, &station, getStation, id)
	if errors.Is(err, sql.ErrNoRows) {
		return station, ErrNotFound
	}
	return station.Clamp(), err
}

const getStation = `SELECT id, name, address, city, available_bikes, total_capacity FROM stations WHERE id = $1`

// AdjustAvailable adds delta to the counter, stopping at zero.
func (r *Repository) AdjustAvailable(ctx context.Context, id int64, delta int) error {
	res, err := r.db.ExecContext(ctx, adjustAvailable, id, delta)
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

const adjustAvailable = `UPDATE stations SET available_bikes = GREATEST(available_bikes + $2, 0) WHERE id = $1`

func (r *Repository) SetAvailable(ctx context.Context, id int64, n int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE stations SET available_bikes = $2 WHERE id = $1`, id, n)
	return err
}

func (r *Repository) Insert(ctx context.Context, s Station) error {
	_, err := r.db.ExecContext(ctx, insertStation, s.ID, s.Name, s.Address, s.City, s.AvailableBikes, s.TotalCapacity)
	return err
}

const insertStation = `
INSERT INTO stations (id, name, address, city, available_bikes, total_capacity)
VALUES ($1, $2, $3, $4, $5, $6)
`

func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stations`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
