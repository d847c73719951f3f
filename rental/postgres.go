package rental

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/semanticallynull/smartbike-backend/bike"
	"github.com/semanticallynull/smartbike-backend/payment"
	"github.com/semanticallynull/smartbike-backend/ride"
	"github.com/semanticallynull/smartbike-backend/station"
	"github.com/semanticallynull/smartbike-backend/user"
)

// PostgresStore is the Store backed by the entity repositories.
type PostgresStore struct {
	db       *sqlx.DB
	bikes    *bike.Repository
	stations *station.Repository
	users    *user.Repository
	rides    *ride.Repository
	payments *payment.Repository
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{
		db:       db,
		bikes:    bike.NewRepository(db),
		stations: station.NewRepository(db),
		users:    user.NewRepository(db),
		rides:    ride.NewRepository(db),
		payments: payment.NewRepository(db),
	}
}

func (s *PostgresStore) Update(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = fn(ctx, &postgresTx{
		bikes:    bike.NewRepository(tx),
		users:    user.NewRepository(tx),
		rides:    ride.NewRepository(tx),
		payments: payment.NewRepository(tx),
	})
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (s *PostgresStore) Bikes(ctx context.Context) ([]bike.Bike, error) {
	return s.bikes.GetBikes(ctx)
}

func (s *PostgresStore) Stations(ctx context.Context) ([]station.Station, error) {
	return s.stations.GetStations(ctx)
}

func (s *PostgresStore) User(ctx context.Context, id int64) (user.User, error) {
	return s.users.Get(ctx, id)
}

func (s *PostgresStore) UserByLogin(ctx context.Context, loginID string) (user.User, error) {
	return s.users.GetByLogin(ctx, loginID)
}

func (s *PostgresStore) CreateUser(ctx context.Context, u user.User) error {
	return s.users.Create(ctx, u)
}

func (s *PostgresStore) RidesByUser(ctx context.Context, userID int64, limit int) ([]ride.Ride, error) {
	return s.rides.ListByUser(ctx, userID, limit)
}

func (s *PostgresStore) PaymentsByUser(ctx context.Context, userID int64) ([]payment.Payment, error) {
	return s.payments.ListByUser(ctx, userID)
}

func (s *PostgresStore) AdjustStationBikes(ctx context.Context, stationID int64, delta int) error {
	return s.stations.AdjustAvailable(ctx, stationID, delta)
}

type postgresTx struct {
	bikes    *bike.Repository
	users    *user.Repository
	rides    *ride.Repository
	payments *payment.Repository
}

func (t *postgresTx) Bike(ctx context.Context, id int64) (bike.Bike, error) {
	return t.bikes.GetBikeForUpdate(ctx, id)
}

func (t *postgresTx) MarkBikeRented(ctx context.Context, id int64) error {
	return t.bikes.MarkRented(ctx, id)
}

func (t *postgresTx) ReturnBike(ctx context.Context, id, stationID int64) error {
	return t.bikes.Return(ctx, id, stationID)
}

func (t *postgresTx) InsertRide(ctx context.Context, r ride.Ride) error {
	return t.rides.Insert(ctx, r)
}

func (t *postgresTx) Ride(ctx context.Context, id uuid.UUID) (ride.Ride, error) {
	return t.rides.GetForUpdate(ctx, id)
}

func (t *postgresTx) CompleteRide(ctx context.Context, r ride.Ride) error {
	return t.rides.Complete(ctx, r)
}

func (t *postgresTx) InsertPayment(ctx context.Context, p payment.Payment) error {
	return t.payments.Insert(ctx, p)
}

func (t *postgresTx) AddUserTotals(ctx context.Context, userID int64, hours float64, spent int64) error {
	return t.users.AddTotals(ctx, userID, hours, spent)
}
