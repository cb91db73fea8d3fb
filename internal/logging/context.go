package logging

import (
	"context"
	"log/slog"

	"wordsplice/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldStage is the standardized structured logging key for pipeline stage names.
	FieldStage = "stage"
	// FieldSource is the standardized structured logging key for source audio paths.
	FieldSource = "source"
	// FieldCorrelationID is the standardized structured logging key for run identifiers.
	FieldCorrelationID = "correlation_id"
	// FieldEventType classifies warnings and errors.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step for the operator.
	FieldErrorHint = "error_hint"
	// FieldDecisionType names the decision recorded by DecisionAttrs.
	FieldDecisionType = "decision_type"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if stage, ok := services.StageFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldStage, stage))
	}
	if source, ok := services.SourceFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldSource, source))
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, rid))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
