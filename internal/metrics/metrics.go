// Package metrics records what a meshpipe run did in a private Prometheus
// registry, written out in text format for the node exporter's textfile
// collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Recorder struct {
	registry *prometheus.Registry
	vertices *prometheus.CounterVec
	faces    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		vertices: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meshpipe_vertices_transformed_total",
				Help: "Vertices mapped by an operator.",
			},
			[]string{"op", "format"},
		),
		faces: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meshpipe_faces_total",
				Help: "Faces passed through unchanged.",
			},
			[]string{"op", "format"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "meshpipe_transform_duration_seconds",
				Help:    "Time spent applying an operator to a whole mesh.",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"op"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meshpipe_failures_total",
				Help: "Runs that ended in an error, by kind.",
			},
			[]string{"op", "kind"},
		),
	}
	r.registry.MustRegister(r.vertices, r.faces, r.duration, r.failures)
	return r
}

// Observe records one successful operator run.
func (r *Recorder) Observe(op, format string, vertices, faces int, took time.Duration) {
	r.vertices.WithLabelValues(op, format).Add(float64(vertices))
	r.faces.WithLabelValues(op, format).Add(float64(faces))
	r.duration.WithLabelValues(op).Observe(took.Seconds())
}

func (r *Recorder) Fail(op, kind string) {
	r.failures.WithLabelValues(op, kind).Inc()
}

func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteFile atomically replaces path with the current metrics.
func (r *Recorder) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
