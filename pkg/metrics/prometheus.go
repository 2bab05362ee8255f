package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	DirectoryLoads prometheus.Counter
	LookupsServed  prometheus.Counter
	RelaysSent     prometheus.Counter
	RelayTime      prometheus.Histogram
	ErrorsCount    *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		DirectoryLoads: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "directory_loads_total",
			Help:      "The total number of department source documents loaded",
		}),
		LookupsServed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_served_total",
			Help:      "The total number of contact lookups served",
		}),
		RelaysSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relays_sent_total",
			Help:      "The total number of messages relayed to email or WhatsApp",
		}),
		RelayTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "relay_time_seconds",
			Help:      "Time taken to dispatch relay attempts",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
