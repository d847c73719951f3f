package payment

import (
	"time"

	"github.com/google/uuid"

	"github.com/semanticallynull/smartbike-backend/ride"
)

const (
	MethodOnline    = "Online"
	StatusCompleted = "Completed"
)

// Payment is the immutable record of what a completed ride cost.
type Payment struct {
	ID              uuid.UUID
	RideID          uuid.UUID `db:"ride_id"`
	UserID          int64     `db:"user_id"`
	BikeID          int64     `db:"bike_id"`
	Amount          int64
	Method          string
	Status          string
	PaidAt          time.Time `db:"paid_at"`
	DurationMinutes int64     `db:"duration_minutes"`
	DurationHours   float64   `db:"duration_hours"`
}

// ForRide builds the payment for a completed ride.
func ForRide(r ride.Ride, method string) Payment {
	return Payment{
		ID:              uuid.New(),
		RideID:          r.ID,
		UserID:          r.UserID,
		BikeID:          r.BikeID,
		Amount:          r.FinalAmount.Int64,
		Method:          method,
		Status:          StatusCompleted,
		PaidAt:          r.EndedAt.Time,
		DurationMinutes: r.ElapsedMinutes.Int64,
		DurationHours:   r.ElapsedHours.Float64,
	}
}
