package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics tracks conversion pipeline counters and latencies.
type Metrics struct {
	ConversionsStarted   prometheus.Counter
	ConversionsCompleted prometheus.Counter
	ConversionsFailed    prometheus.Counter
	StaticFallbacks      prometheus.Counter
	FramesAnalyzed       prometheus.Counter
	FacesDetected        prometheus.Counter
	SegmentsRendered     prometheus.Counter
	DetectionSeconds     prometheus.Histogram
	RenderSeconds        prometheus.Histogram

	registry *prometheus.Registry
}

// New creates and registers all collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		ConversionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "faceify_conversions_started_total",
			Help: "Conversions accepted for processing",
		}),
		ConversionsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "faceify_conversions_completed_total",
			Help: "Conversions that produced an output file",
		}),
		ConversionsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "faceify_conversions_failed_total",
			Help: "Conversions that failed fatally",
		}),
		StaticFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "faceify_static_fallbacks_total",
			Help: "Conversions that degraded to a single static crop",
		}),
		FramesAnalyzed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "faceify_frames_analyzed_total",
			Help: "Frames run through face detection",
		}),
		FacesDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "faceify_faces_detected_total",
			Help: "Faces detected across all frames",
		}),
		SegmentsRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "faceify_segments_rendered_total",
			Help: "Individual crop segments rendered",
		}),
		DetectionSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "faceify_detection_seconds",
			Help:    "Per-frame face detection latency",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		}),
		RenderSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "faceify_render_seconds",
			Help:    "Per-segment render latency",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.ConversionsStarted,
		m.ConversionsCompleted,
		m.ConversionsFailed,
		m.StaticFallbacks,
		m.FramesAnalyzed,
		m.FacesDetected,
		m.SegmentsRendered,
		m.DetectionSeconds,
		m.RenderSeconds,
	)
	return m
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
