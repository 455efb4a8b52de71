// Package metrics counts what a run did, the counters can be exported in the
// node_exporter textfile format after the run ends.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wallpyper"

type Metrics struct {
	registry *prometheus.Registry

	Posts     prometheus.Counter
	Downloads prometheus.Counter
	Bytes     prometheus.Counter
	Failures  prometheus.Counter
	Skipped   *prometheus.CounterVec
	LastRun   prometheus.Gauge
}

// New registers the counters of a single run in a fresh registry.
func New(subreddit string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	labels := prometheus.Labels{"subreddit": subreddit}

	return &Metrics{
		registry: reg,
		Posts: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "posts_total",
			Help:        "Posts fetched from the listing.",
			ConstLabels: labels,
		}),
		Downloads: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "downloads_total",
			Help:        "Images stored on disk.",
			ConstLabels: labels,
		}),
		Bytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "downloaded_bytes_total",
			Help:        "Bytes written to disk.",
			ConstLabels: labels,
		}),
		Failures: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "failures_total",
			Help:        "Posts that passed the filters but could not be stored.",
			ConstLabels: labels,
		}),
		Skipped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "skipped_total",
			Help:        "Posts rejected by a filter.",
			ConstLabels: labels,
		}, []string{"reason"}),
		LastRun: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "last_run_timestamp_seconds",
			Help:        "Unix time the last run finished.",
			ConstLabels: labels,
		}),
	}
}

// Gatherer exposes the underlying registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile stamps the run as finished and writes every metric to path.
func (m *Metrics) WriteTextfile(path string) error {
	m.LastRun.Set(float64(time.Now().Unix()))
	if err := prometheus.WriteToTextfile(path, m.Gatherer()); err != nil {
		return fmt.Errorf("%w: couldn't write metrics(path=%s)", err, path)
	}
	return nil
}
