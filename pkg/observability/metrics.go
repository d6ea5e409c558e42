package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/chembot/pkg/document"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chembot"

// Metrics holds the ChemBot collectors on their own registry.
type Metrics struct {
	Registry *prometheus.Registry

	DocumentsRendered *prometheus.CounterVec
	ElementsRendered  *prometheus.CounterVec
	RenderDuration    *prometheus.HistogramVec
	Messages          *prometheus.CounterVec
	StateChanges      *prometheus.CounterVec
	Selections        *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		DocumentsRendered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "documents_rendered_total",
				Help:      "Total number of documents rendered, by output format",
			},
			[]string{"format"},
		),
		ElementsRendered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "elements_rendered_total",
				Help:      "Total number of document elements rendered, by kind",
			},
			[]string{"kind"},
		),
		RenderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "render_duration_seconds",
				Help:      "Duration of parsing and rendering a document",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"format"},
		),
		Messages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "messages_total",
				Help:      "Total number of transcript messages, by role",
			},
			[]string{"role"},
		),
		StateChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "state_changes_total",
				Help:      "Total number of screen changes, by destination",
			},
			[]string{"to"},
		),
		Selections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "wizard_completions_total",
				Help:      "Total number of completed past-paper selections, by whether the library had a solution",
			},
			[]string{"found"},
		),
	}

	m.Registry.MustRegister(
		m.DocumentsRendered,
		m.ElementsRendered,
		m.RenderDuration,
		m.Messages,
		m.StateChanges,
		m.Selections,
	)
	return m
}

// ObserveRender records one rendered document.
func (m *Metrics) ObserveRender(format string, elements []document.Element, elapsed time.Duration) {
	m.DocumentsRendered.WithLabelValues(format).Inc()
	m.RenderDuration.WithLabelValues(format).Observe(elapsed.Seconds())
	for _, el := range elements {
		m.ElementsRendered.WithLabelValues(el.Kind.String()).Inc()
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func boolLabel(b bool) string {
	return strconv.FormatBool(b)
}
