package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestSchedulingMetricsObserve(t *testing.T) {
	m := NewSchedulingMetrics(prometheus.NewRegistry())
	m.ObserveBooking("created")
	m.ObserveBooking("conflict")
	m.ObserveCascade("doctor", "ok")
	m.ObserveSlotListing()
	m.ObserveVerifyLatency(0.25)
}

func TestSchedulingMetricsDefaultRegistry(t *testing.T) {
	m := NewSchedulingMetrics(nil)
	m.ObserveBooking("created")
}

func TestSchedulingMetricsNilSafe(t *testing.T) {
	var m *SchedulingMetrics
	m.ObserveBooking("created")
	m.ObserveCascade("patient", "error")
	m.ObserveSlotListing()
	m.ObserveVerifyLatency(0.1)
}
