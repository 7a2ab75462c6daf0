package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIdentityResolved_CountsByOutcome(t *testing.T) {
	m := New("test")
	m.IdentityResolved("remote", OutcomeOK, time.Millisecond)
	m.IdentityResolved("remote", OutcomeOK, time.Millisecond)
	m.IdentityResolved("remote", OutcomeUnavailable, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.identityResolveTotal.WithLabelValues("remote", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.identityResolveTotal.WithLabelValues("remote", OutcomeUnavailable)))
}

func TestRequestLifecycle(t *testing.T) {
	m := New("test")
	m.RequestStarted()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpInFlight))

	m.RequestFinished("GET", "/branches/:id", "200", 5*time.Millisecond)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/branches/:id", "200")))
}

func TestNilMetrics_NoPanic(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RequestStarted()
		m.RequestFinished("GET", "/", "200", time.Millisecond)
		m.IdentityResolved("jwt", OutcomeOK, time.Millisecond)
	})
}
