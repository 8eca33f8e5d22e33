package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a registry with the HTTP and generation collectors
type Metrics struct {
	ServiceName string

	registry             *prometheus.Registry
	requestCounter       *prometheus.CounterVec
	requestDuration      *prometheus.HistogramVec
	statusCategory       *prometheus.CounterVec
	generationCounter    *prometheus.CounterVec
	generationDuration   *prometheus.HistogramVec
	reportCounter        *prometheus.CounterVec
	paymentStatusCounter *prometheus.CounterVec
}

func New(serviceName string) *Metrics {
	m := &Metrics{
		ServiceName: serviceName,
		registry:    prometheus.NewRegistry(),
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"service", "method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "path", "status"},
		),
		statusCategory: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_status_category_total",
				Help: "Total number of responses by status category (2xx, 4xx, 5xx)",
			},
			[]string{"service", "category"},
		),
		generationCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tokenomics_generations_total",
				Help: "Total number of generated tokenomics designs by source",
			},
			[]string{"source"},
		),
		generationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tokenomics_generation_duration_seconds",
				Help:    "Duration of tokenomics generation in seconds",
				Buckets: []float64{0.01, 0.1, 1, 5, 15, 30, 60, 90, 120},
			},
			[]string{"source"},
		),
		reportCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tokenomics_reports_total",
				Help: "Total number of rendered reports by result",
			},
			[]string{"result"},
		),
		paymentStatusCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_status_changes_total",
				Help: "Total number of payment status changes by new status",
			},
			[]string{"status"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestCounter,
		m.requestDuration,
		m.statusCategory,
		m.generationCounter,
		m.generationDuration,
		m.reportCounter,
		m.paymentStatusCounter,
	)
	return m
}

// ObserveGeneration records one finished generation
func (m *Metrics) ObserveGeneration(source string, elapsed time.Duration) {
	m.generationCounter.WithLabelValues(source).Inc()
	m.generationDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// ObserveReport records one report rendering attempt
func (m *Metrics) ObserveReport(err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.reportCounter.WithLabelValues(result).Inc()
}

// ObservePaymentStatus records a payment status change
func (m *Metrics) ObservePaymentStatus(status string) {
	m.paymentStatusCounter.WithLabelValues(status).Inc()
}

// Middleware records request count, duration and status category
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		path := c.Route().Path
		statusStr := strconv.Itoa(status)

		m.requestCounter.WithLabelValues(m.ServiceName, c.Method(), path, statusStr).Inc()
		m.requestDuration.WithLabelValues(m.ServiceName, c.Method(), path, statusStr).Observe(time.Since(start).Seconds())
		if category := statusCategory(status); category != "" {
			m.statusCategory.WithLabelValues(m.ServiceName, category).Inc()
		}
		return err
	}
}

func statusCategory(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500 && status < 600:
		return "5xx"
	default:
		return ""
	}
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
