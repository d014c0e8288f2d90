package metrics

import (
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// State holds the two process-wide prediction counters. The plain counters
// back the JSON /metrics contract; the same increments are mirrored into
// Prometheus counters for scraping. Reset only by process restart.
type State struct {
	predictions atomic.Uint64
	errors      atomic.Uint64

	registry        *prometheus.Registry
	promPredictions prometheus.Counter
	promErrors      prometheus.Counter
}

// NewState creates a State with its own Prometheus registry, so concurrent
// instances (tests, mainly) never collide on metric registration.
func NewState() *State {
	s := &State{
		registry: prometheus.NewRegistry(),
		promPredictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hct_predictions_total",
			Help: "Total number of successful survival predictions.",
		}),
		promErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hct_prediction_errors_total",
			Help: "Total number of failed inference attempts.",
		}),
	}
	s.registry.MustRegister(s.promPredictions, s.promErrors)
	return s
}

// RecordPrediction increments the success counter.
func (s *State) RecordPrediction() {
	s.predictions.Add(1)
	s.promPredictions.Inc()
}

// RecordError increments the error counter.
func (s *State) RecordError() {
	s.errors.Add(1)
	s.promErrors.Inc()
}

// Snapshot returns the current success and error counts.
func (s *State) Snapshot() (predictions, errors uint64) {
	return s.predictions.Load(), s.errors.Load()
}

// PrometheusHandler serves this state's registry in exposition format.
func (s *State) PrometheusHandler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}
