package httpclient

import (
	"time"

	"github.com/andyle182810/boxsdk/boxresponse"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records one observation per exchange, labelled by outcome category.
type Metrics struct {
	exchanges *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

func NewMetrics(registerer prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		exchanges: factory.NewCounterVec(
			prometheus.CounterOpts{ //nolint:exhaustruct
				Namespace: namespace,
				Subsystem: "httpclient",
				Name:      "exchanges_total",
				Help:      "HTTP exchanges by method and outcome category.",
			},
			[]string{"method", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{ //nolint:exhaustruct
				Namespace: namespace,
				Subsystem: "httpclient",
				Name:      "exchange_duration_seconds",
				Help:      "Latency of HTTP exchanges.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
}

func (m *Metrics) observe(method string, status boxresponse.Status, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.exchanges.WithLabelValues(method, status.String()).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}
