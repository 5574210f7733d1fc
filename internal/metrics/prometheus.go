package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/latinogino/prestashop-mcp/internal/integrations"
)

// Metrics owns its registry so tests and embedders never collide on the global one.
type Metrics struct {
	Registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	toolCallsTotal  *prometheus.CounterVec
	toolDuration    *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prestashop_requests_total",
				Help: "Total number of webservice requests.",
			},
			[]string{"method", "resource", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "prestashop_request_duration_seconds",
				Help:    "Histogram of webservice request durations.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"method", "resource"},
		),
		toolCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcp_tool_calls_total",
				Help: "Total number of tool calls by outcome.",
			},
			[]string{"tool", "outcome"},
		),
		toolDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mcp_tool_call_duration_seconds",
				Help:    "Histogram of tool call durations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
	}
	m.Registry.MustRegister(m.requestsTotal, m.requestDuration, m.toolCallsTotal, m.toolDuration)
	return m
}

// ObserveRequest records one webservice round trip. Status 0 means the request never got an answer.
func (m *Metrics) ObserveRequest(method, resource string, status int, elapsed time.Duration) {
	m.requestsTotal.WithLabelValues(method, resource, classifyStatus(status)).Inc()
	m.requestDuration.WithLabelValues(method, resource).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveCall(_ context.Context, c integrations.Call) {
	m.toolCallsTotal.WithLabelValues(c.Tool, c.Result.Kind()).Inc()
	m.toolDuration.WithLabelValues(c.Tool).Observe(c.Duration.Seconds())
}

func classifyStatus(statusCode int) string {
	switch {
	case statusCode == 0:
		return "error"
	case statusCode >= 100 && statusCode < 600:
		return strconv.Itoa(statusCode/100) + "xx"
	}
	return "unknown"
}
