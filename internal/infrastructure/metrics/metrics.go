// Package metrics counts confirmation sessions with prometheus collectors.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-confirm/internal/core/domain"
	"github.com/tdex-network/tdex-confirm/internal/core/ports"
)

const namespace = "tdex_confirm"

// Recorder implements ports.Recorder on top of prometheus counters.
type Recorder struct {
	registry *prometheus.Registry

	started   *prometheus.CounterVec
	switches  *prometheus.CounterVec
	decisions *prometheus.CounterVec
	abandoned *prometheus.CounterVec
}

var _ ports.Recorder = (*Recorder)(nil)

// NewRecorder returns a Recorder with its own registry.
func NewRecorder() (*Recorder, error) {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		started: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Number of confirmation sessions presented to the holder.",
		}, []string{"kind"}),
		switches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_switches_total",
			Help:      "Number of view switches, by the view switched to.",
		}, []string{"kind", "view"}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decisions_total",
			Help:      "Number of decisions taken by the holder.",
		}, []string{"kind", "decision"}),
		abandoned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_abandoned_total",
			Help:      "Number of sessions withdrawn before a decision.",
		}, []string{"kind"}),
	}

	for _, c := range []prometheus.Collector{
		r.started, r.switches, r.decisions, r.abandoned,
	} {
		if err := r.registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}
	return r, nil
}

// SessionStarted ...
func (r *Recorder) SessionStarted(kind domain.ValueKind) {
	r.started.WithLabelValues(kind.String()).Inc()
}

// ViewSwitched ...
func (r *Recorder) ViewSwitched(kind domain.ValueKind, view domain.View) {
	r.switches.WithLabelValues(kind.String(), view.String()).Inc()
}

// SessionDecided ...
func (r *Recorder) SessionDecided(kind domain.ValueKind, decision domain.Decision) {
	r.decisions.WithLabelValues(kind.String(), decision.String()).Inc()
}

// SessionAbandoned ...
func (r *Recorder) SessionAbandoned(kind domain.ValueKind) {
	r.abandoned.WithLabelValues(kind.String()).Inc()
}

// Gatherer exposes the recorder's registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile dumps the counters to filename in the text exposition
// format, for node_exporter's textfile collector.
func (r *Recorder) WriteTextfile(filename string) error {
	if err := prometheus.WriteToTextfile(filename, r.Gatherer()); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", filename, err)
	}
	log.WithField("file", filename).Debug("metrics written")
	return nil
}
