// Package metrics exposes domain counters for the allocation engine and
// the review workflows.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"internhub/internal/model"
)

// Domain records business events. Its methods are safe on a nil receiver so
// services can run without a registry in tests.
type Domain struct {
	allocations      *prometheus.CounterVec
	exhausted        prometheus.Counter
	statusChanges    *prometheus.CounterVec
	bulkRunDurations prometheus.Histogram
}

// NewDomain registers the domain collectors on reg.
func NewDomain(reg prometheus.Registerer) (*Domain, error) {
	d := &Domain{
		allocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "internhub_allocations_total",
				Help: "Allocations created, by selection tier.",
			},
			[]string{"tier"},
		),
		exhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "internhub_allocations_exhausted_total",
			Help: "Allocation attempts that found every faculty member at capacity.",
		}),
		statusChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "internhub_status_changes_total",
				Help: "Workflow status changes, by entity and target status.",
			},
			[]string{"entity", "status"},
		),
		bulkRunDurations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "internhub_bulk_allocation_duration_seconds",
			Help:    "Duration of bulk allocation runs.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	for _, c := range []prometheus.Collector{d.allocations, d.exhausted, d.statusChanges, d.bulkRunDurations} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Domain) AllocationCreated(tier model.AllocationTier) {
	if d == nil {
		return
	}
	d.allocations.WithLabelValues(string(tier)).Inc()
}

func (d *Domain) AllocationExhausted() {
	if d == nil {
		return
	}
	d.exhausted.Inc()
}

// StatusChanged counts a transition of entity ("document" or "application") into status.
func (d *Domain) StatusChanged(entity, status string) {
	if d == nil {
		return
	}
	d.statusChanges.WithLabelValues(entity, status).Inc()
}

func (d *Domain) BulkRunObserved(seconds float64) {
	if d == nil {
		return
	}
	d.bulkRunDurations.Observe(seconds)
}
