package ride

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusOngoing   Status = "Ongoing"
	StatusCompleted Status = "Completed"
)

type Ride struct {
	ID        uuid.UUID
	UserID    int64     `db:"user_id"`
	BikeID    int64     `db:"bike_id"`
	StationID int64     `db:"station_id"`
	StartedAt time.Time `db:"started_at"`
	// RequestedHours and EstimatedAmount are what the rider asked for at rent time.
	// Billing only uses the measured duration.
	RequestedHours  int   `db:"requested_hours"`
	EstimatedAmount int64 `db:"estimated_amount"`
	Status          Status

	EndedAt          sql.NullTime    `db:"ended_at"`
	ElapsedMinutes   sql.NullInt64   `db:"elapsed_minutes"`
	ElapsedHours     sql.NullFloat64 `db:"elapsed_hours"`
	FinalAmount      sql.NullInt64   `db:"final_amount"`
	DropoffStationID sql.NullInt64   `db:"dropoff_station_id"`
}

// New returns an ongoing ride with no billing fields set.
func New(userID, bikeID, stationID int64, requestedHours int, startedAt time.Time, rate int64) Ride {
	return Ride{
		ID:              uuid.New(),
		UserID:          userID,
		BikeID:          bikeID,
		StationID:       stationID,
		StartedAt:       startedAt,
		RequestedHours:  requestedHours,
		EstimatedAmount: int64(requestedHours) * rate,
		Status:          StatusOngoing,
	}
}

func (r Ride) Ongoing() bool {
	return r.Status == StatusOngoing
}

// Complete returns a copy of the ride closed out with the given bill.
func (r Ride) Complete(endedAt time.Time, b Bill, dropoffStationID int64) Ride {
	r.Status = StatusCompleted
	r.EndedAt = sql.NullTime{Time: endedAt, Valid: true}
	r.ElapsedMinutes = sql.NullInt64{Int64: b.Minutes, Valid: true}
	r.ElapsedHours = sql.NullFloat64{Float64: b.Hours, Valid: true}
	r.FinalAmount = sql.NullInt64{Int64: b.Amount, Valid: true}
	r.DropoffStationID = sql.NullInt64{Int64: dropoffStationID, Valid: true}
	return r
}
