package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_CountsByOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRegistration("success")
	c.RecordRegistration("success")
	c.RecordRegistration("duplicate")
	c.RecordLogin("not_approved")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.registrations.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.registrations.WithLabelValues("duplicate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.logins.WithLabelValues("not_approved")))
}

func TestCollector_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordApproval()
	c.RecordMessagePosted()
	c.RecordMessagePosted()
	c.RecordAssetDeleteFailure()

	assert.Equal(t, 1.0, testutil.ToFloat64(c.approvals))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.messagesPosted))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.assetDeleteFailures))
}

func TestCollector_HTTPRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPRequest("POST", "/api/v1/messages", 201, 15*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("POST", "/api/v1/messages", "201")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.httpLatency))
}

func TestNewCollector_RegistersAll(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordApproval()

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "convene_approvals_total")
	assert.Panics(t, func() { NewCollector(reg) })
}
