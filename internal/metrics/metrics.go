// Package metrics collects per-run counters and exports them in the
// Prometheus text format for the node_exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the collectors of one run on a private registry
type Recorder struct {
	registry      *prometheus.Registry
	tokensTotal   *prometheus.CounterVec
	rowsTotal     *prometheus.CounterVec
	chunksWritten prometheus.Counter
	stageDuration *prometheus.GaugeVec
}

// NewRecorder creates a recorder with all collectors registered
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		tokensTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "abbrevkit_tokens_total",
				Help: "Tokens seen by the filter stage by outcome",
			},
			[]string{"stage", "outcome"},
		),
		rowsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "abbrevkit_rows_total",
				Help: "Rows written by each stage",
			},
			[]string{"stage"},
		),
		chunksWritten: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "abbrevkit_chunks_written_total",
				Help: "Chunk files written",
			},
		),
		stageDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "abbrevkit_stage_duration_seconds",
				Help: "Wall time of the last run of each stage",
			},
			[]string{"stage"},
		),
	}

	r.registry.MustRegister(
		r.tokensTotal,
		r.rowsTotal,
		r.chunksWritten,
		r.stageDuration,
	)
	return r
}

// AddTokens increments the token counter for an outcome
func (r *Recorder) AddTokens(stage, outcome string, n int) {
	r.tokensTotal.WithLabelValues(stage, outcome).Add(float64(n))
}

// AddRows increments the written rows counter
func (r *Recorder) AddRows(stage string, n int) {
	r.rowsTotal.WithLabelValues(stage).Add(float64(n))
}

// AddChunks increments the chunk file counter
func (r *Recorder) AddChunks(n int) {
	r.chunksWritten.Add(float64(n))
}

// ObserveStage records how long a stage took
func (r *Recorder) ObserveStage(stage string, d time.Duration) {
	r.stageDuration.WithLabelValues(stage).Set(d.Seconds())
}

// Gatherer exposes the registry, mainly for tests
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteFile writes all metrics to path in the text exposition format
func (r *Recorder) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
