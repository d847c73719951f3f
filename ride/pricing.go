package ride

import (
	"math"
	"time"
)

// HourlyRate is the flat price of one hour of riding, in whole currency units.
const HourlyRate int64 = 10

// Bill is the measured cost of a ride.
type Bill struct {
	Minutes int64
	// Hours is Minutes/60 rounded to two decimals.
	Hours  float64
	Amount int64
}

// Charge bills the span between start and end. Every started minute counts, and the
// amount is round(minutes/60 * rate) with halves rounded up.
func Charge(start, end time.Time, rate int64) Bill {
	d := end.Sub(start)
	if d < 0 {
		d = 0
	}
	minutes := int64(d / time.Minute)
	if d%time.Minute != 0 {
		minutes++
	}

	return Bill{
		Minutes: minutes,
		Hours:   math.Round(float64(minutes)/60*100) / 100,
		Amount:  (2*minutes*rate + 60) / 120,
	}
}
