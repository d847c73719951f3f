package rental

import (
	"go.uber.org/multierr"
)

const (
	StepStationCheckout = "station_checkout"
	StepStationReturn   = "station_return"
	StepCharge          = "payment_charge"
)

// SideEffect is the outcome of one best-effort step run after a lifecycle commit.
type SideEffect struct {
	Step string
	// Ref identifies what the step touched: a station id, or a processor reference
	// for charges.
	Ref string
	Err error
}

type SideEffects []SideEffect

// Err combines the errors of every failed step, or returns nil.
func (s SideEffects) Err() error {
	var err error
	for _, e := range s {
		err = multierr.Append(err, e.Err)
	}
	return err
}

// Warnings renders the failed steps for clients.
func (s SideEffects) Warnings() []string {
	var out []string
	for _, e := range s {
		if e.Err != nil {
			out = append(out, e.Step+": "+e.Err.Error())
		}
	}
	return out
}

func (s SideEffects) Failed(step string) bool {
	for _, e := range s {
		if e.Step == step && e.Err != nil {
			return true
		}
	}
	return false
}
