package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// Traffic: исходящие запросы к API по методу и статусу ("error" для сбоев транспорта)
	TotalRequests *prometheus.CounterVec

	// Latency: полное время вызова, включая ожидание лимитера
	RequestDuration *prometheus.HistogramVec

	// Сколько раз токен был выселен по 401
	Evictions prometheus.Counter

	// Saturation: состояние Circuit Breaker (0 - closed, 1 - open, 2 - half-open)
	CircuitBreakerState prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	// Если рег не передан, используем локальный, который никуда не подключен
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Metrics{
		TotalRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_console_gateway_requests_total",
			Help: "Total number of outbound API requests.",
		}, []string{"method", "status"}),

		RequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "inventory_console_gateway_request_duration_seconds",
			Help:    "Histogram of outbound API request latencies.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method"}),

		Evictions: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "inventory_console_gateway_evictions_total",
			Help: "Number of session tokens evicted after a 401 response.",
		}),

		CircuitBreakerState: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "inventory_console_gateway_circuit_breaker_state",
			Help: "Current state of the API circuit breaker (0=closed, 1=open, 2=half-open).",
		}),
	}
}
