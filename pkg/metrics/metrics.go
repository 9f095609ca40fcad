package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "smc"

// Metrics набор prometheus-метрик сервиса
// Все методы Record* безопасны для nil-получателя: при выключенных метриках
// вызывающему коду не нужны проверки
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbConnections   *prometheus.GaugeVec

	txRetries         *prometheus.CounterVec
	bookingRejections *prometheus.CounterVec
	bookingsCreated   *prometheus.CounterVec
}

// New создает метрики и регистрирует их в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в указанном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": sanitize(serviceName)}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "query_duration_seconds",
			Help:        "Database query latency by statement type.",
			ConstLabels: labels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "query_errors_total",
			Help:        "Database query errors by statement type.",
			ConstLabels: labels,
		}, []string{"operation"}),
		dbConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "connections",
			Help:        "Connection pool state.",
			ConstLabels: labels,
		}, []string{"state"}),
		txRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "tx_retries_total",
			Help:        "Transactions retried after a serialization failure.",
			ConstLabels: labels,
		}, []string{"isolation"}),
		bookingRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "booking",
			Name:        "rejections_total",
			Help:        "Booking attempts rejected by policy, by reason.",
			ConstLabels: labels,
		}, []string{"reason"}),
		bookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "booking",
			Name:        "created_total",
			Help:        "Bookings created, by origin.",
			ConstLabels: labels,
		}, []string{"origin"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbQueryErrors,
		m.dbConnections,
		m.txRetries,
		m.bookingRejections,
		m.bookingsCreated,
	)

	return m
}

// RecordHTTPRequest фиксирует завершённый HTTP запрос
func (m *Metrics) RecordHTTPRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordDBQuery фиксирует выполнение SQL запроса
func (m *Metrics) RecordDBQuery(operation string, seconds float64, failed bool) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(seconds)
	if failed {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBConnections обновляет состояние пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues("open").Set(float64(open))
	m.dbConnections.WithLabelValues("in_use").Set(float64(inUse))
	m.dbConnections.WithLabelValues("idle").Set(float64(idle))
}

// RecordTxRetry фиксирует повтор транзакции
func (m *Metrics) RecordTxRetry(isolation string) {
	if m == nil {
		return
	}
	m.txRetries.WithLabelValues(isolation).Inc()
}

// RecordBookingRejection фиксирует отказ в бронировании по правилам
func (m *Metrics) RecordBookingRejection(reason string) {
	if m == nil {
		return
	}
	m.bookingRejections.WithLabelValues(reason).Inc()
}

// RecordBookingCreated фиксирует созданное бронирование (origin: single, recurring)
func (m *Metrics) RecordBookingCreated(origin string) {
	if m == nil {
		return
	}
	m.bookingsCreated.WithLabelValues(origin).Inc()
}

func sanitize(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return "unknown"
	}
	return strings.ReplaceAll(name, " ", "_")
}
