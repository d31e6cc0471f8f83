package activity

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// Saturation: заполненность буфера (backpressure)
	BufferFill prometheus.Gauge

	// Сброшенные события: overflow или запись после Stop
	Dropped *prometheus.CounterVec

	// События, отданные хранилищам, и сбои записи
	Flushed    prometheus.Counter
	SinkErrors prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Metrics{
		BufferFill: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "inventory_console_activity_buffer_utilization",
			Help: "Current number of events waiting in the activity buffer.",
		}),
		Dropped: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_console_activity_dropped_total",
			Help: "Activity events dropped before reaching any sink.",
		}, []string{"reason"}), // overflow, stopped
		Flushed: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "inventory_console_activity_flushed_total",
			Help: "Activity events handed to sinks.",
		}),
		SinkErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "inventory_console_activity_sink_errors_total",
			Help: "Failed batch writes to activity sinks.",
		}),
	}
}
