package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-коллекторов сервиса.
// Все методы безопасны для вызова на nil (метрики выключены).
type Metrics struct {
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	dbQueryDuration     *prometheus.HistogramVec
	dbConnections       *prometheus.GaugeVec
	bookingDecisions    *prometheus.CounterVec
	ruleViolations      *prometheus.CounterVec
	unavailability      *prometheus.CounterVec
	cacheRequests       *prometheus.CounterVec
}

// New регистрирует метрики в стандартном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "path"}),
		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"operation"}),
		dbConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),
		bookingDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "court_booking_decisions_total",
			Help:        "Court booking attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		ruleViolations: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "court_booking_rule_violations_total",
			Help:        "Booking rule violations by rule",
			ConstLabels: constLabels,
		}, []string{"rule"}),
		unavailability: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "court_unavailability_entries_total",
			Help:        "Unavailability entries reported by providers, by reason",
			ConstLabels: constLabels,
		}, []string{"reason"}),
		cacheRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "cache_requests_total",
			Help:        "Cache lookups by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}
}

func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *Metrics) SetDBConnections(state string, value int) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues(state).Set(float64(value))
}

func (m *Metrics) IncBookingDecision(outcome string) {
	if m == nil {
		return
	}
	m.bookingDecisions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncRuleViolation(rule string) {
	if m == nil {
		return
	}
	m.ruleViolations.WithLabelValues(rule).Inc()
}

func (m *Metrics) IncUnavailability(reason string) {
	if m == nil {
		return
	}
	m.unavailability.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncCacheHit() {
	if m == nil {
		return
	}
	m.cacheRequests.WithLabelValues("hit").Inc()
}

func (m *Metrics) IncCacheMiss() {
	if m == nil {
		return
	}
	m.cacheRequests.WithLabelValues("miss").Inc()
}
