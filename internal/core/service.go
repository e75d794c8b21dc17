package core

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"denticore/pkg/domain"
)

// PlanArchiver persists corrected plan snapshots. Implementations live in
// the blob layer; the service only needs a byte sink keyed by archive key.
type PlanArchiver interface {
	Archive(ctx context.Context, key string, data []byte) error
}

// Report summarises one ProcessPlan call.
type Report struct {
	Result     domain.Result
	Warning    *string
	ArchiveKey string
}

// Service fronts the correction engine with the advisory check, snapshot
// archiving, metrics, and logging. Zero-value options degrade to no-ops so
// the engine stays usable as a bare library.
type Service struct {
	engine   *Engine
	archiver PlanArchiver
	metrics  MetricsRecorder
	trace    *JSONTraceLog
	logger   *zap.Logger
	seq      atomic.Uint64
}

// ServiceOption configures optional service collaborators.
type ServiceOption func(*Service)

// WithArchiver wires a corrected-plan snapshot archive.
func WithArchiver(archiver PlanArchiver) ServiceOption {
	return func(s *Service) { s.archiver = archiver }
}

// WithMetrics wires a metrics recorder.
func WithMetrics(metrics MetricsRecorder) ServiceOption {
	return func(s *Service) { s.metrics = metrics }
}

// WithTraceLog wires a per-plan JSON trace log.
func WithTraceLog(trace *JSONTraceLog) ServiceOption {
	return func(s *Service) { s.trace = trace }
}

// WithLogger wires a structured logger.
func WithLogger(logger *zap.Logger) ServiceOption {
	return func(s *Service) { s.logger = logger }
}

// NewService constructs a service around the engine.
func NewService(engine *Engine, opts ...ServiceOption) *Service {
	s := &Service{
		engine:  engine,
		metrics: NopMetricsRecorder{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessPlan normalizes the plan, appends the minimum-layer advisory
// warning when one applies, archives the corrected snapshot, and records
// observability signals. The correction itself never fails; only an
// internal rule error (none exist in the built-in set) surfaces as error.
func (s *Service) ProcessPlan(ctx context.Context, plan domain.Plan, caseCtx domain.CaseContext) (domain.Plan, Report, error) {
	started := time.Now().UTC()
	corrected, res, err := s.engine.Normalize(ctx, plan, caseCtx)
	duration := time.Since(started)
	s.metrics.ObservePlan(ctx, err == nil, duration)
	if s.trace != nil {
		entry := PlanTraceEntry{
			Tooth:       caseCtx.Tooth,
			CavityClass: caseCtx.CavityClass,
			Corrections: len(res.Corrections),
			Status:      "success",
			DurationMS:  float64(duration) / float64(time.Millisecond),
			StartedAt:   started,
			EndedAt:     started.Add(duration),
		}
		if err != nil {
			entry.Status = "error"
			entry.Error = err.Error()
		}
		s.trace.Record(entry)
	}
	if err != nil {
		s.logger.Error("plan normalization failed", zap.Error(err))
		return plan, Report{}, err
	}
	for _, c := range res.Corrections {
		s.metrics.ObserveCorrection(ctx, c.Rule)
	}

	report := Report{Result: res}
	if warning := ValidateMinimumLayerCount(corrected.Layers, caseCtx, s.engine.Tables()); warning != nil {
		corrected.Warnings = append(corrected.Warnings, *warning)
		report.Warning = warning
	}

	if s.archiver != nil {
		key := s.archiveKey(started)
		data, marshalErr := json.Marshal(corrected)
		if marshalErr != nil {
			s.logger.Warn("plan snapshot encode failed", zap.Error(marshalErr))
		} else if archiveErr := s.archiver.Archive(ctx, key, data); archiveErr != nil {
			// Archive failure never fails the correction.
			s.logger.Warn("plan snapshot archive failed", zap.String("key", key), zap.Error(archiveErr))
		} else {
			report.ArchiveKey = key
		}
	}

	s.logger.Info("plan processed",
		zap.String("tooth", caseCtx.Tooth),
		zap.String("cavity_class", caseCtx.CavityClass),
		zap.Int("layers", len(corrected.Layers)),
		zap.Int("corrections", len(res.Corrections)),
		zap.Bool("warning", report.Warning != nil),
	)
	return corrected, report, nil
}

func (s *Service) archiveKey(ts time.Time) string {
	return fmt.Sprintf("plans/%s-%06d.json", ts.Format("20060102T150405.000000000Z"), s.seq.Add(1))
}
