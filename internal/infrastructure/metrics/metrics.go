// Package metrics expone métricas Prometheus del API y del flujo de facturas.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/domain"
)

const namespace = "facturacion"

// Metrics agrupa los collectors en un registro propio (no el global de prometheus).
type Metrics struct {
	registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	invoiceOps      *prometheus.CounterVec
	invoiceDuration *prometheus.HistogramVec
}

var _ billing.OperationRecorder = (*Metrics)(nil)

// New crea y registra los collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Peticiones HTTP en curso.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Peticiones HTTP atendidas.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duración de las peticiones HTTP.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms a ~5s
		}, []string{"method", "route"}),
		invoiceOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "invoices",
			Name:      "operations_total",
			Help:      "Operaciones del flujo de facturas por resultado.",
		}, []string{"operation", "outcome"}),
		invoiceDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "invoices",
			Name:      "operation_duration_seconds",
			Help:      "Duración de las operaciones del flujo de facturas.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms a ~4s
		}, []string{"operation"}),
	}

	m.registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.invoiceOps,
		m.invoiceDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
	return m
}

// Registry devuelve el registro (tests y exporters externos).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveInvoiceOperation implementa billing.OperationRecorder.
// El outcome es "ok" o el Kind del error en minúsculas.
func (m *Metrics) ObserveInvoiceOperation(operation string, kind domain.Kind, elapsed time.Duration) {
	outcome := "ok"
	if kind != "" {
		outcome = strings.ToLower(string(kind))
	}
	m.invoiceOps.WithLabelValues(operation, outcome).Inc()
	m.invoiceDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// Handler sirve la exposición de métricas en formato Prometheus.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Middleware mide cada petición HTTP. La ruta se etiqueta con el patrón
// registrado (/api/invoices/:id), no con el path concreto.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}

		start := time.Now()
		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		if route == "" {
			route = "unknown"
		}
		method := c.Method()
		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}
