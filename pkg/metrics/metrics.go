package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build independent instances.
// All methods are safe on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	lifecycleActions *prometheus.CounterVec
	reportSource     *prometheus.CounterVec
	billingRequests  *prometheus.CounterVec
	cacheLookups     *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_http_requests_total",
			Help: "HTTP requests served, by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		lifecycleActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_lifecycle_actions_total",
			Help: "Subscription lifecycle actions, by work type and outcome.",
		}, []string{"work_type", "outcome"}),
		reportSource: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_report_source_total",
			Help: "Report responses by data source (live or synthetic).",
		}, []string{"source"}),
		billingRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_billing_api_requests_total",
			Help: "Outbound billing API calls, by method and outcome.",
		}, []string{"method", "outcome"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_filter_cache_lookups_total",
			Help: "Filter option cache lookups, by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.lifecycleActions,
		m.reportSource,
		m.billingRequests,
		m.cacheLookups,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) LifecycleAction(workType, outcome string) {
	if m == nil {
		return
	}
	m.lifecycleActions.WithLabelValues(workType, outcome).Inc()
}

func (m *Metrics) ReportServed(source string) {
	if m == nil {
		return
	}
	m.reportSource.WithLabelValues(source).Inc()
}

func (m *Metrics) BillingRequest(method, outcome string) {
	if m == nil {
		return
	}
	m.billingRequests.WithLabelValues(method, outcome).Inc()
}

func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}
