package metrics

import "github.com/prometheus/client_golang/prometheus"

// SchedulingMetrics exposes counters/histograms for booking flows.
type SchedulingMetrics struct {
	bookingsTotal *prometheus.CounterVec
	cascadesTotal *prometheus.CounterVec
	slotListings  prometheus.Counter
	verifyLatency prometheus.Histogram
}

func NewSchedulingMetrics(reg prometheus.Registerer) *SchedulingMetrics {
	m := &SchedulingMetrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "scheduling",
			Name:      "bookings_total",
			Help:      "Booking attempts by outcome",
		}, []string{"outcome"}),
		cascadesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "scheduling",
			Name:      "cascade_deletes_total",
			Help:      "Cascade deletions by parent entity and status",
		}, []string{"entity", "status"}),
		slotListings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "scheduling",
			Name:      "slot_listings_total",
			Help:      "Total day slot listings served",
		}),
		verifyLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "credentials",
			Name:      "verify_latency_seconds",
			Help:      "Latency of credential verification",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal, m.cascadesTotal, m.slotListings, m.verifyLatency)
	return m
}

// ObserveBooking records a booking attempt. Outcome is "created" or the
// rejection kind ("conflict", "past", "out_of_hours", "break", "error").
func (m *SchedulingMetrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}

func (m *SchedulingMetrics) ObserveCascade(entity, status string) {
	if m == nil {
		return
	}
	m.cascadesTotal.WithLabelValues(entity, status).Inc()
}

func (m *SchedulingMetrics) ObserveSlotListing() {
	if m == nil {
		return
	}
	m.slotListings.Inc()
}

func (m *SchedulingMetrics) ObserveVerifyLatency(seconds float64) {
	if m == nil {
		return
	}
	m.verifyLatency.Observe(seconds)
}
