package fleet

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/semanticallynull/smartbike-backend/bike"
	"github.com/semanticallynull/smartbike-backend/payment"
	"github.com/semanticallynull/smartbike-backend/ride"
	"github.com/semanticallynull/smartbike-backend/station"
)

// Report counts the rows a maintenance run touched.
type Report struct {
	Stations int64
	Bikes    int64
	Rides    int64
	Payments int64
}

// Load replaces every station and bike with the reference fleet. Rides and payments
// are left alone.
func Load(ctx context.Context, db *sqlx.DB) (Report, error) {
	var rep Report
	err := inTx(ctx, db, func(tx *sqlx.Tx) error {
		bikes := bike.NewRepository(tx)
		stations := station.NewRepository(tx)

		if _, err := bikes.DeleteAll(ctx); err != nil {
			return fmt.Errorf("delete bikes: %w", err)
		}
		if _, err := stations.DeleteAll(ctx); err != nil {
			return fmt.Errorf("delete stations: %w", err)
		}
		for _, s := range Stations() {
			if err := stations.Insert(ctx, s); err != nil {
				return fmt.Errorf("insert station %d: %w", s.ID, err)
			}
			rep.Stations++
		}
		for _, b := range Bikes() {
			if err := bikes.Insert(ctx, b); err != nil {
				return fmt.Errorf("insert bike %d: %w", b.ID, err)
			}
			rep.Bikes++
		}
		return nil
	})
	return rep, err
}

// Reset clears all ride history and puts every fleet bike back at its home station,
// available. Station counters are set to the bikes parked there afterwards.
func Reset(ctx context.Context, db *sqlx.DB) (Report, error) {
	var rep Report
	err := inTx(ctx, db, func(tx *sqlx.Tx) error {
		bikes := bike.NewRepository(tx)
		stations := station.NewRepository(tx)

		var err error
		if rep.Payments, err = payment.NewRepository(tx).DeleteAll(ctx); err != nil {
			return fmt.Errorf("delete payments: %w", err)
		}
		if rep.Rides, err = ride.NewRepository(tx).DeleteAll(ctx); err != nil {
			return fmt.Errorf("delete rides: %w", err)
		}
		if rep.Bikes, err = bikes.MarkAllAvailable(ctx); err != nil {
			return fmt.Errorf("mark bikes available: %w", err)
		}
		for _, b := range Bikes() {
			// Bikes removed since seeding are skipped.
			if err := bikes.Return(ctx, b.ID, *b.StationID); err != nil && !errors.Is(err, bike.ErrNotFound) {
				return fmt.Errorf("park bike %d: %w", b.ID, err)
			}
		}

		parked, err := bikes.GetBikes(ctx)
		if err != nil {
			return err
		}
		for id, n := range HomeCounts(parked) {
			if err := stations.SetAvailable(ctx, id, n); err != nil {
				return fmt.Errorf("reset station %d: %w", id, err)
			}
			rep.Stations++
		}
		return nil
	})
	return rep, err
}

// HomeCounts counts the available bikes parked at each station, including stations
// with none.
func HomeCounts(bikes []bike.Bike) map[int64]int {
	counts := make(map[int64]int, len(stations))
	for _, s := range stations {
		counts[s.ID] = 0
	}
	for _, b := range bikes {
		if b.Available && b.StationID != nil {
			counts[*b.StationID]++
		}
	}
	return counts
}

func inTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
