package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()
	m.LifecycleAction("renewal", "success")
	m.LifecycleAction("renewal", "success")
	m.LifecycleAction("cancel", "error")
	m.ReportServed("synthetic")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.lifecycleActions.WithLabelValues("renewal", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lifecycleActions.WithLabelValues("cancel", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reportSource.WithLabelValues("synthetic")))
}

func TestNilReceiver(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTP("GET", "/api/payment-logs", 200, time.Millisecond)
		m.LifecycleAction("cancel", "success")
		m.ReportServed("live")
		m.BillingRequest("productRtPaypal", "success")
		m.CacheLookup("hit")
	})
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.ObserveHTTP("GET", "/api/payment-logs", 200, 20*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dashboard_http_requests_total")
}
