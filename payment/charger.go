package payment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/paymentintent"
)

// Charger collects a recorded payment from an external processor.
type Charger interface {
	Charge(ctx context.Context, p Payment) (string, error)
}

// NoopCharger leaves collection to someone else.
type NoopCharger struct{}

func (NoopCharger) Charge(context.Context, Payment) (string, error) {
	return "", nil
}

// StripeCharger opens a Stripe PaymentIntent for every payment.
type StripeCharger struct {
	currency string
	create   func(*stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

func NewStripeCharger(key, currency string) *StripeCharger {
	stripe.Key = key
	return &StripeCharger{
		currency: currency,
		create:   paymentintent.New,
	}
}

func (s *StripeCharger) Charge(ctx context.Context, p Payment) (string, error) {
	if p.Amount <= 0 {
		return "", nil
	}
	params := s.intentParams(p)
	params.Context = ctx

	pi, err := s.create(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return pi.ID, nil
}

func (s *StripeCharger) intentParams(p Payment) *stripe.PaymentIntentParams {
	params := &stripe.PaymentIntentParams{
		// Stripe amounts are in the currency's minor unit.
		Amount:      stripe.Int64(p.Amount * 100),
		Currency:    stripe.String(s.currency),
		Description: stripe.String(fmt.Sprintf("Bike Ride #%d - %d minutes", p.BikeID, p.DurationMinutes)),
	}
	params.AddMetadata("payment_id", p.ID.String())
	params.AddMetadata("ride_id", p.RideID.String())
	params.AddMetadata("user_id", strconv.FormatInt(p.UserID, 10))
	params.SetIdempotencyKey("ride-" + p.RideID.String())
	return params
}
