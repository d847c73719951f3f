package rental

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/semanticallynull/smartbike-backend/ride"
)

// Metrics tracks the lifecycle. A nil *Metrics records nothing.
type Metrics struct {
	ridesStarted       prometheus.Counter
	ridesCompleted     prometheus.Counter
	revenue            prometheus.Counter
	rideMinutes        prometheus.Histogram
	bestEffortFailures *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ridesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rides_started_total",
			Help: "Rides started",
		}),
		ridesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rides_completed_total",
			Help: "Rides completed and billed",
		}),
		revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ride_revenue_total",
			Help: "Sum of final ride amounts in currency units",
		}),
		rideMinutes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ride_duration_minutes",
			Help:    "Billed ride duration in minutes",
			Buckets: []float64{5, 15, 30, 60, 120, 240, 480, 1440},
		}),
		bestEffortFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ride_best_effort_failures_total",
				Help: "Best-effort steps that failed after a lifecycle commit",
			},
			[]string{"step"},
		),
	}
	reg.MustRegister(m.ridesStarted, m.ridesCompleted, m.revenue, m.rideMinutes, m.bestEffortFailures)
	return m
}

func (m *Metrics) rideStarted() {
	if m == nil {
		return
	}
	m.ridesStarted.Inc()
}

func (m *Metrics) rideCompleted(r ride.Ride) {
	if m == nil {
		return
	}
	m.ridesCompleted.Inc()
	m.revenue.Add(float64(r.FinalAmount.Int64))
	m.rideMinutes.Observe(float64(r.ElapsedMinutes.Int64))
}

func (m *Metrics) bestEffortFailed(step string) {
	if m == nil {
		return
	}
	m.bestEffortFailures.WithLabelValues(step).Inc()
}
