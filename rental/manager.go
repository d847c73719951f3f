package rental

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/semanticallynull/smartbike-backend/bike"
	"github.com/semanticallynull/smartbike-backend/payment"
	"github.com/semanticallynull/smartbike-backend/ride"
)

var ErrInvalidRequest = errors.New("invalid request")

// MaxRequestedHours is the longest rental that can be booked up front.
const MaxRequestedHours = 24

type Manager struct {
	store   Store
	charger payment.Charger
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
	now     func() time.Time
	rate    int64
	method  string
}

type Option func(*Manager)

func WithCharger(c payment.Charger) Option {
	return func(m *Manager) { m.charger = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

func WithMetrics(mt *Metrics) Option {
	return func(m *Manager) { m.metrics = mt }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithHourlyRate(rate int64) Option {
	return func(m *Manager) { m.rate = rate }
}

func WithPaymentMethod(method string) Option {
	return func(m *Manager) { m.method = method }
}

func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		charger: payment.NoopCharger{},
		logger:  slog.Default(),
		tracer:  otel.Tracer("rental"),
		now:     time.Now,
		rate:    ride.HourlyRate,
		method:  payment.MethodOnline,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type StartRequest struct {
	UserID         int64
	BikeID         int64
	StationID      int64
	RequestedHours int
}

func (r StartRequest) validate() error {
	switch {
	case r.UserID <= 0:
		return fmt.Errorf("%w: userId must be positive", ErrInvalidRequest)
	case r.BikeID <= 0:
		return fmt.Errorf("%w: bikeId must be positive", ErrInvalidRequest)
	case r.StationID <= 0:
		return fmt.Errorf("%w: stationId must be positive", ErrInvalidRequest)
	case r.RequestedHours <= 0:
		return fmt.Errorf("%w: duration must be at least one hour", ErrInvalidRequest)
	case r.RequestedHours > MaxRequestedHours:
		return fmt.Errorf("%w: duration must be at most %d hours", ErrInvalidRequest, MaxRequestedHours)
	}
	return nil
}

type RideHandle struct {
	RideID uuid.UUID
	// EstimatedAmount is requested hours times the rate. The rider is billed for
	// the measured time when the ride ends.
	EstimatedAmount int64
	SideEffects     SideEffects
}

// StartRide rents an available bike to a user.
func (m *Manager) StartRide(ctx context.Context, req StartRequest) (RideHandle, error) {
	ctx, span := m.tracer.Start(ctx, "rental.StartRide", trace.WithAttributes(
		attribute.Int64("user.id", req.UserID),
		attribute.Int64("bike.id", req.BikeID),
		attribute.Int64("station.id", req.StationID),
	))
	defer span.End()

	if err := req.validate(); err != nil {
		return RideHandle{}, err
	}
	if _, err := m.store.User(ctx, req.UserID); err != nil {
		return RideHandle{}, fmt.Errorf("start ride: %w", err)
	}

	r := ride.New(req.UserID, req.BikeID, req.StationID, req.RequestedHours, m.now(), m.rate)
	err := m.store.Update(ctx, func(ctx context.Context, tx Tx) error {
		b, err := tx.Bike(ctx, req.BikeID)
		if err != nil {
			return err
		}
		if !b.Available {
			return bike.ErrNotAvailable
		}
		if err := tx.InsertRide(ctx, r); err != nil {
			return err
		}
		return tx.MarkBikeRented(ctx, req.BikeID)
	})
	if err != nil {
		span.RecordError(err)
		return RideHandle{}, fmt.Errorf("start ride: %w", err)
	}

	m.metrics.rideStarted()
	m.logger.InfoContext(ctx, "ride started",
		"ride_id", r.ID, "user_id", r.UserID, "bike_id", r.BikeID, "station_id", r.StationID)

	return RideHandle{
		RideID:          r.ID,
		EstimatedAmount: r.EstimatedAmount,
		SideEffects: SideEffects{
			m.adjustStation(ctx, StepStationCheckout, req.StationID, -1),
		},
	}, nil
}

type Receipt struct {
	RideID         uuid.UUID
	PaymentID      uuid.UUID
	FinalAmount    int64
	ElapsedMinutes int64
	ElapsedHours   float64
	SideEffects    SideEffects
}

// EndRide closes an ongoing ride at the drop-off station and bills it.
func (m *Manager) EndRide(ctx context.Context, rideID uuid.UUID, dropoffStationID int64) (Receipt, error) {
	ctx, span := m.tracer.Start(ctx, "rental.EndRide", trace.WithAttributes(
		attribute.String("ride.id", rideID.String()),
		attribute.Int64("station.id", dropoffStationID),
	))
	defer span.End()

	if dropoffStationID <= 0 {
		return Receipt{}, fmt.Errorf("%w: stationId must be positive", ErrInvalidRequest)
	}

	var (
		done ride.Ride
		paid payment.Payment
	)
	err := m.store.Update(ctx, func(ctx context.Context, tx Tx) error {
		r, err := tx.Ride(ctx, rideID)
		if err != nil {
			return err
		}
		if !r.Ongoing() {
			return ride.ErrAlreadyCompleted
		}

		end := m.now()
		bill := ride.Charge(r.StartedAt, end, m.rate)
		done = r.Complete(end, bill, dropoffStationID)
		if err := tx.CompleteRide(ctx, done); err != nil {
			return err
		}

		paid = payment.ForRide(done, m.method)
		if err := tx.InsertPayment(ctx, paid); err != nil {
			return err
		}
		if err := tx.AddUserTotals(ctx, done.UserID, bill.Hours, bill.Amount); err != nil {
			return err
		}
		return tx.ReturnBike(ctx, done.BikeID, dropoffStationID)
	})
	if err != nil {
		span.RecordError(err)
		return Receipt{}, fmt.Errorf("end ride: %w", err)
	}

	m.metrics.rideCompleted(done)
	m.logger.InfoContext(ctx, "ride completed",
		"ride_id", done.ID, "user_id", done.UserID, "bike_id", done.BikeID,
		"minutes", done.ElapsedMinutes.Int64, "amount", done.FinalAmount.Int64)

	return Receipt{
		RideID:         done.ID,
		PaymentID:      paid.ID,
		FinalAmount:    done.FinalAmount.Int64,
		ElapsedMinutes: done.ElapsedMinutes.Int64,
		ElapsedHours:   done.ElapsedHours.Float64,
		SideEffects: SideEffects{
			m.adjustStation(ctx, StepStationReturn, dropoffStationID, 1),
			m.charge(ctx, paid),
		},
	}, nil
}

type Statistics struct {
	TotalRides  int
	TotalHours  float64
	TotalSpent  int64
	ActiveRides int
}

// GetUserStatistics aggregates every ride the user has taken.
func (m *Manager) GetUserStatistics(ctx context.Context, userID int64) (Statistics, error) {
	ctx, span := m.tracer.Start(ctx, "rental.GetUserStatistics")
	defer span.End()

	var rides []ride.Ride
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := m.store.User(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		rides, err = m.store.RidesByUser(gctx, userID, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return Statistics{}, fmt.Errorf("user statistics: %w", err)
	}

	stats := Statistics{TotalRides: len(rides)}
	for _, r := range rides {
		if r.Ongoing() {
			stats.ActiveRides++
			continue
		}
		stats.TotalHours += r.ElapsedHours.Float64
		stats.TotalSpent += r.FinalAmount.Int64
	}
	stats.TotalHours = math.Round(stats.TotalHours*100) / 100
	return stats, nil
}

type Activity struct {
	Type        string
	Description string
	Date        time.Time
	Status      string
}

// RecentActivity describes the user's latest rides, newest first.
func (m *Manager) RecentActivity(ctx context.Context, userID int64, limit int) ([]Activity, error) {
	rides, err := m.store.RidesByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}

	activities := make([]Activity, 0, len(rides))
	for _, r := range rides {
		hours := float64(r.RequestedHours)
		if r.ElapsedHours.Valid {
			hours = r.ElapsedHours.Float64
		}
		activities = append(activities, Activity{
			Type:        "Bike Ride",
			Description: fmt.Sprintf("Rode Bike #%d for %s hours", r.BikeID, strconv.FormatFloat(hours, 'f', -1, 64)),
			Date:        r.StartedAt,
			Status:      strings.ToLower(string(r.Status)),
		})
	}
	return activities, nil
}

func (m *Manager) adjustStation(ctx context.Context, step string, stationID int64, delta int) SideEffect {
	err := m.store.AdjustStationBikes(ctx, stationID, delta)
	if err != nil {
		m.logger.WarnContext(ctx, "station update skipped",
			"step", step, "station_id", stationID, "error", err)
		m.metrics.bestEffortFailed(step)
	}
	return SideEffect{Step: step, Ref: strconv.FormatInt(stationID, 10), Err: err}
}

func (m *Manager) charge(ctx context.Context, p payment.Payment) SideEffect {
	ref, err := m.charger.Charge(ctx, p)
	if err != nil {
		m.logger.WarnContext(ctx, "payment charge failed",
			"payment_id", p.ID, "ride_id", p.RideID, "error", err)
		m.metrics.bestEffortFailed(StepCharge)
	}
	return SideEffect{Step: StepCharge, Ref: ref, Err: err}
}
