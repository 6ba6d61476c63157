package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internhub/internal/model"
)

func TestDomain_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	d, err := NewDomain(reg)
	require.NoError(t, err)

	d.AllocationCreated(model.TierSameEmployer)
	d.AllocationCreated(model.TierSameEmployer)
	d.AllocationCreated(model.TierLeastLoaded)
	d.AllocationExhausted()
	d.StatusChanged("document", "approved")
	d.BulkRunObserved(0.25)

	assert.Equal(t, float64(2), testutil.ToFloat64(d.allocations.WithLabelValues("same_employer")))
	assert.Equal(t, float64(1), testutil.ToFloat64(d.allocations.WithLabelValues("least_loaded")))
	assert.Equal(t, float64(1), testutil.ToFloat64(d.exhausted))
	assert.Equal(t, float64(1), testutil.ToFloat64(d.statusChanges.WithLabelValues("document", "approved")))
	assert.Equal(t, 1, testutil.CollectAndCount(d.bulkRunDurations))
}

func TestDomain_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewDomain(reg)
	require.NoError(t, err)

	_, err = NewDomain(reg)
	assert.Error(t, err)
}

func TestDomain_NilReceiver(t *testing.T) {
	var d *Domain
	assert.NotPanics(t, func() {
		d.AllocationCreated(model.TierManual)
		d.AllocationExhausted()
		d.StatusChanged("application", "accepted")
		d.BulkRunObserved(1)
	})
}
