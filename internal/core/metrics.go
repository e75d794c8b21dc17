package core

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsRecorder receives service-level processing outcomes. Implementations
// must be safe for concurrent use.
type MetricsRecorder interface {
	// ObservePlan records one processed plan and its duration.
	ObservePlan(ctx context.Context, success bool, duration time.Duration)
	// ObserveCorrection records one applied correction by rule name.
	ObserveCorrection(ctx context.Context, rule string)
}

// NopMetricsRecorder discards every observation.
type NopMetricsRecorder struct{}

// ObservePlan implements MetricsRecorder.
func (NopMetricsRecorder) ObservePlan(context.Context, bool, time.Duration) {}

// ObserveCorrection implements MetricsRecorder.
func (NopMetricsRecorder) ObserveCorrection(context.Context, string) {}

// PrometheusMetricsRecorder exports processing counters and latency through
// a Prometheus registry.
type PrometheusMetricsRecorder struct {
	plans       *prometheus.CounterVec
	corrections *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewPrometheusMetricsRecorder constructs and registers the denticore
// collectors on the supplied registerer (prometheus.DefaultRegisterer when
// nil).
func NewPrometheusMetricsRecorder(reg prometheus.Registerer) (*PrometheusMetricsRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &PrometheusMetricsRecorder{
		plans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "denticore",
			Name:      "plans_processed_total",
			Help:      "Treatment plans run through the correction pipeline, by outcome.",
		}, []string{"outcome"}),
		corrections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "denticore",
			Name:      "corrections_applied_total",
			Help:      "Corrections applied to treatment plans, by rule.",
		}, []string{"rule"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "denticore",
			Name:      "plan_processing_seconds",
			Help:      "Wall-clock duration of one correction pass.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	for _, c := range []prometheus.Collector{r.plans, r.corrections, r.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ObservePlan implements MetricsRecorder.
func (r *PrometheusMetricsRecorder) ObservePlan(_ context.Context, success bool, duration time.Duration) {
	outcome := "error"
	if success {
		outcome = "success"
	}
	r.plans.WithLabelValues(outcome).Inc()
	r.duration.Observe(duration.Seconds())
}

// ObserveCorrection implements MetricsRecorder.
func (r *PrometheusMetricsRecorder) ObserveCorrection(_ context.Context, rule string) {
	r.corrections.WithLabelValues(rule).Inc()
}

// PlanTraceEntry is a serialized span for one correction pass.
type PlanTraceEntry struct {
	Tooth       string    `json:"tooth"`
	CavityClass string    `json:"cavity_class"`
	Corrections int       `json:"corrections"`
	Status      string    `json:"status"`
	DurationMS  float64   `json:"duration_ms"`
	Error       string    `json:"error,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	EndedAt     time.Time `json:"ended_at"`
}

// JSONTraceLog serializes per-plan trace entries as JSON lines and retains
// them for inspection.
type JSONTraceLog struct {
	mu      sync.Mutex
	entries []PlanTraceEntry
	enc     *json.Encoder
}

// NewJSONTraceLog constructs a trace log writing to w (retention-only when
// w is nil).
func NewJSONTraceLog(w io.Writer) *JSONTraceLog {
	var enc *json.Encoder
	if w != nil {
		enc = json.NewEncoder(w)
	}
	return &JSONTraceLog{enc: enc}
}

// Record appends a trace entry and writes it through when a writer is set.
func (t *JSONTraceLog) Record(entry PlanTraceEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, entry)
	if t.enc != nil {
		_ = t.enc.Encode(entry)
	}
}

// Entries returns a copy of all recorded trace entries.
func (t *JSONTraceLog) Entries() []PlanTraceEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]PlanTraceEntry, len(t.entries))
	copy(out, t.entries)
	return out
}
