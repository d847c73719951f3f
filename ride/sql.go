package ride

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/semanticallynull/smartbike-backend/bike"
)

var (
	ErrNotFound         = errors.New("ride not found")
	ErrAlreadyCompleted = errors.New("ride already completed")
)

type Repository struct {
	db sqlx.ExtContext
}

func NewRepository(db sqlx.ExtContext) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Insert(ctx context.Context, ride Ride) error {
	_, err := r.db.ExecContext(ctx, insertRideQuery,
		ride.ID, ride.UserID, ride.BikeID, ride.StationID, ride.StartedAt,
		ride.RequestedHours, ride.EstimatedAmount, ride.Status)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == oneOngoingPerBike {
		return &bikeInUseError{bikeID: ride.BikeID}
	}
	return err
}

const oneOngoingPerBike = "rides_one_ongoing_per_bike"

const insertRideQuery = `
INSERT INTO rides (id, user_id, bike_id, station_id, started_at, requested_hours, estimated_amount, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

const rideColumns = `id, user_id, bike_id, station_id, started_at, requested_hours, estimated_amount, status,
ended_at, elapsed_minutes, elapsed_hours, final_amount, dropoff_station_id`

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (Ride, error) {
	return r.get(ctx, getRideQuery, id)
}

const getRideQuery = `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`

// GetForUpdate locks the ride row until the surrounding transaction ends.
func (r *Repository) GetForUpdate(ctx context.Context, id uuid.UUID) (Ride, error) {
	return r.get(ctx, getRideQuery+` FOR UPDATE`, id)
}

func (r *Repository) get(ctx context.Context, query string, id uuid.UUID) (Ride, error) {
	var ride Ride
	err := sqlx.GetContext(ctx, r.db, &ride, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Ride{}, ErrNotFound
	}
	return ride, err
}

// Complete persists the billing fields of a completed ride. Only an ongoing ride
// can be completed; anything else returns ErrAlreadyCompleted.
func (r *Repository) Complete(ctx context.Context, ride Ride) error {
	res, err := r.db.ExecContext(ctx, completeRideQuery, ride.ID,
		ride.EndedAt, ride.ElapsedMinutes, ride.ElapsedHours, ride.FinalAmount, ride.DropoffStationID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlreadyCompleted
	}
	return nil
}

const completeRideQuery = `
UPDATE rides
SET status = 'Completed', ended_at = $2, elapsed_minutes = $3, elapsed_hours = $4,
    final_amount = $5, dropoff_station_id = $6
WHERE id = $1 AND status = 'Ongoing'
`

// ListByUser returns the user's rides newest first. A limit of zero means no limit.
func (r *Repository) ListByUser(ctx context.Context, userID int64, limit int) ([]Ride, error) {
	query := listByUserQuery
	if limit > 0 {
		query += ` LIMIT ` + strconv.Itoa(limit)
	}
	rides := []Ride{}
	err := sqlx.SelectContext(ctx, r.db, &rides, query, userID)
	return rides, err
}

const listByUserQuery = `SELECT ` + rideColumns + ` FROM rides WHERE user_id = $1 ORDER BY started_at DESC`

func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rides`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type bikeInUseError struct {
	bikeID int64
}

func (e *bikeInUseError) Error() string {
	return "ride in progress for bike " + strconv.FormatInt(e.bikeID, 10)
}

func (e *bikeInUseError) Unwrap() error {
	return bike.ErrNotAvailable
}

// BikeFromInUseError reports which bike already had an ongoing ride.
func BikeFromInUseError(err error) (int64, bool) {
	var inUse *bikeInUseError
	if errors.As(err, &inUse) {
		return inUse.bikeID, true
	}
	return 0, false
}
