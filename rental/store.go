// Package rental runs the ride lifecycle: renting a bike, ending the ride, billing
// it and keeping the rider's totals in step.
//
// Every multi-record write goes through Store.Update, so a ride, its bike, its
// payment and its rider change together or not at all. Station counters and
// external charges are best effort: they run after the commit and their outcome is
// reported as a SideEffect instead of failing the operation.
package rental

import (
	"context"

	"github.com/google/uuid"

	"github.com/semanticallynull/smartbike-backend/bike"
	"github.com/semanticallynull/smartbike-backend/payment"
	"github.com/semanticallynull/smartbike-backend/ride"
	"github.com/semanticallynull/smartbike-backend/station"
	"github.com/semanticallynull/smartbike-backend/user"
)

// Store is the persistence the lifecycle and the HTTP layer need.
type Store interface {
	// Update runs fn in a single transaction. If fn returns an error none of its
	// writes are kept. fn must only use tx, not the Store itself.
	Update(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error

	Bikes(ctx context.Context) ([]bike.Bike, error)
	// Stations never returns a negative counter; negatives found are reset to zero.
	Stations(ctx context.Context) ([]station.Station, error)
	User(ctx context.Context, id int64) (user.User, error)
	UserByLogin(ctx context.Context, loginID string) (user.User, error)
	CreateUser(ctx context.Context, u user.User) error
	// RidesByUser is newest first. A limit of zero means all rides.
	RidesByUser(ctx context.Context, userID int64, limit int) ([]ride.Ride, error)
	PaymentsByUser(ctx context.Context, userID int64) ([]payment.Payment, error)

	// AdjustStationBikes moves a station counter by delta, never below zero. It is
	// outside any transaction.
	AdjustStationBikes(ctx context.Context, stationID int64, delta int) error
}

// Tx is the set of writes available inside Store.Update.
type Tx interface {
	// Bike reads a bike and holds it until the transaction ends.
	Bike(ctx context.Context, id int64) (bike.Bike, error)
	MarkBikeRented(ctx context.Context, id int64) error
	ReturnBike(ctx context.Context, id, stationID int64) error

	InsertRide(ctx context.Context, r ride.Ride) error
	// Ride reads a ride and holds it until the transaction ends.
	Ride(ctx context.Context, id uuid.UUID) (ride.Ride, error)
	CompleteRide(ctx context.Context, r ride.Ride) error

	InsertPayment(ctx context.Context, p payment.Payment) error
	AddUserTotals(ctx context.Context, userID int64, hours float64, spent int64) error
}
