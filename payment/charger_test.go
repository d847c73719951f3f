package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v84"

	"github.com/semanticallynull/smartbike-backend/ride"
)

func completedRide(t *testing.T) ride.Ride {
	t.Helper()
	t0 := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	r := ride.New(11, 5, 3, 2, t0, ride.HourlyRate)
	end := t0.Add(90 * time.Minute)
	return r.Complete(end, ride.Charge(t0, end, ride.HourlyRate), 4)
}

func TestForRide(t *testing.T) {
	r := completedRide(t)
	p := ForRide(r, MethodOnline)

	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, r.ID, p.RideID)
	assert.Equal(t, int64(11), p.UserID)
	assert.Equal(t, int64(5), p.BikeID)
	assert.Equal(t, int64(15), p.Amount)
	assert.Equal(t, int64(90), p.DurationMinutes)
	assert.InDelta(t, 1.5, p.DurationHours, 1e-9)
	assert.Equal(t, r.EndedAt.Time, p.PaidAt)
	assert.Equal(t, StatusCompleted, p.Status)
}

func TestStripeCharger_Charge(t *testing.T) {
	p := ForRide(completedRide(t), MethodOnline)

	var got *stripe.PaymentIntentParams
	c := &StripeCharger{
		currency: "inr",
		create: func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
			got = params
			return &stripe.PaymentIntent{ID: "pi_123"}, nil
		},
	}

	ref, err := c.Charge(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "pi_123", ref)

	require.NotNil(t, got)
	assert.Equal(t, int64(1500), *got.Amount)
	assert.Equal(t, "inr", *got.Currency)
	assert.Equal(t, p.RideID.String(), got.Metadata["ride_id"])
	assert.Equal(t, "11", got.Metadata["user_id"])
}

func TestStripeCharger_SkipsFreeRides(t *testing.T) {
	called := false
	c := &StripeCharger{
		currency: "inr",
		create: func(*stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
			called = true
			return nil, errors.New("should not be called")
		},
	}

	p := ForRide(completedRide(t), MethodOnline)
	p.Amount = 0
	ref, err := c.Charge(context.Background(), p)
	require.NoError(t, err)
	assert.Empty(t, ref)
	assert.False(t, called)
}

func TestStripeCharger_WrapsErrors(t *testing.T) {
	boom := errors.New("card_declined")
	c := &StripeCharger{
		currency: "inr",
		create: func(*stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
			return nil, boom
		},
	}

	_, err := c.Charge(context.Background(), ForRide(completedRide(t), MethodOnline))
	assert.ErrorIs(t, err, boom)
}

func TestNoopCharger(t *testing.T) {
	ref, err := NoopCharger{}.Charge(context.Background(), Payment{Amount: 15})
	require.NoError(t, err)
	assert.Empty(t, ref)
}
