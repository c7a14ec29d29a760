// Package metrics exposes Prometheus counters for name resolution runs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics implements application.Observer and application.FeatureObserver.
type Metrics struct {
	featuresResolved     prometheus.Counter
	featuresFailed       prometheus.Counter
	latinSource          *prometheus.CounterVec
	collaboratorFailures *prometheus.CounterVec
}

// New registers the counters on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		featuresResolved: f.NewCounter(prometheus.CounterOpts{
			Name: "omtnames_features_resolved_total",
			Help: "Total number of features whose names were resolved and written.",
		}),
		featuresFailed: f.NewCounter(prometheus.CounterOpts{
			Name: "omtnames_features_failed_total",
			Help: "Total number of features that could not be read or written.",
		}),
		latinSource: f.NewCounterVec(prometheus.CounterOpts{
			Name: "omtnames_latin_source_total",
			Help: "Resolved bundles by where name:latin came from.",
		}, []string{"source"}),
		collaboratorFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "omtnames_collaborator_failures_total",
			Help: "Script classification or transliteration failures by stage.",
		}, []string{"stage"}),
	}
}

func (m *Metrics) LatinSource(source string) {
	m.latinSource.WithLabelValues(source).Inc()
}

func (m *Metrics) CollaboratorFailure(stage string, _ error) {
	m.collaboratorFailures.WithLabelValues(stage).Inc()
}

func (m *Metrics) FeatureResolved() {
	m.featuresResolved.Inc()
}

func (m *Metrics) FeatureFailed() {
	m.featuresFailed.Inc()
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
