package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/fibscroll/internal/sequence"
)

// SequenceRecorder implements sequence.Recorder with Prometheus collectors.
type SequenceRecorder struct {
	requests   *prometheus.CounterVec
	duration   prometheus.Histogram
	cacheLen   prometheus.Gauge
	queueDepth prometheus.Gauge
}

var _ sequence.Recorder = (*SequenceRecorder)(nil)

// NewSequenceRecorder creates the collectors and registers them on reg.
func NewSequenceRecorder(reg prometheus.Registerer) *SequenceRecorder {
	r := &SequenceRecorder{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fibscroll",
			Subsystem: "sequence",
			Name:      "requests_total",
			Help:      "Sequence lookups processed by the worker, by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fibscroll",
			Subsystem: "sequence",
			Name:      "lookup_duration_seconds",
			Help:      "Time spent by the worker on a single lookup.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
		}),
		cacheLen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fibscroll",
			Subsystem: "sequence",
			Name:      "cache_length",
			Help:      "Number of memoized sequence entries.",
		}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fibscroll",
			Subsystem: "sequence",
			Name:      "queue_depth",
			Help:      "Requests waiting for the worker.",
		}),
	}
	reg.MustRegister(r.requests, r.duration, r.cacheLen, r.queueDepth)
	return r
}

// ObserveRequest counts one processed lookup and records its duration.
func (r *SequenceRecorder) ObserveRequest(outcome sequence.Outcome, d time.Duration) {
	r.requests.WithLabelValues(string(outcome)).Inc()
	r.duration.Observe(d.Seconds())
}

// SetCacheLength records the cache size.
func (r *SequenceRecorder) SetCacheLength(n int) { r.cacheLen.Set(float64(n)) }

// SetQueueDepth records the number of pending requests.
func (r *SequenceRecorder) SetQueueDepth(n int) { r.queueDepth.Set(float64(n)) }
