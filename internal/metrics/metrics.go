// Package metrics описывает метрики Prometheus магазина.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Причины отказа в заказе.
const (
	ReasonInsufficientStock = "insufficient_stock"
	ReasonNotFound          = "not_found"
	ReasonInvalidInput      = "invalid_input"
	ReasonForbidden         = "forbidden"
	ReasonUnauthenticated   = "unauthenticated"
	ReasonInternal          = "internal"
)

// Metrics — набор метрик с собственным реестром.
type Metrics struct {
	Registry *prometheus.Registry

	OrdersPlaced    prometheus.Counter
	OrdersAccepted  prometheus.Counter
	OrderRejections *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
}

// New создаёт метрики и регистрирует их вместе со стандартными коллекторами Go и процесса.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shop",
			Name:      "orders_placed_total",
			Help:      "Number of orders placed.",
		}),
		OrdersAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shop",
			Name:      "orders_accepted_total",
			Help:      "Number of orders accepted by an administrator.",
		}),
		OrderRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shop",
			Name:      "order_rejections_total",
			Help:      "Number of failed place and accept attempts by operation and reason.",
		}, []string{"operation", "reason"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "shop",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern, method and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "code"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.OrdersPlaced,
		m.OrdersAccepted,
		m.OrderRejections,
		m.HTTPDuration,
	)
	return m
}

// Handler отдаёт метрики реестра в формате Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// OrderPlaced увеличивает счётчик оформленных заказов.
func (m *Metrics) OrderPlaced() { m.OrdersPlaced.Inc() }

// OrderAccepted увеличивает счётчик подтверждённых заказов.
func (m *Metrics) OrderAccepted() { m.OrdersAccepted.Inc() }

// OrderRejected учитывает отказ операции operation по причине reason.
func (m *Metrics) OrderRejected(operation, reason string) {
	m.OrderRejections.WithLabelValues(operation, reason).Inc()
}
