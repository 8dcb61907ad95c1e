package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const plannerTracerName = "github.com/vsinha/moldplan/pkg/application/services/planning"

// PlannerTracer starts the spans of a planning run
type PlannerTracer struct {
	tracer trace.Tracer
}

// NewPlannerTracer uses tp, or the global provider when tp is nil
func NewPlannerTracer(tp trace.TracerProvider) *PlannerTracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &PlannerTracer{tracer: tp.Tracer(plannerTracerName)}
}

// StartRun opens the root span of one machine's run
func (t *PlannerTracer) StartRun(ctx context.Context, runID, machineID string, start time.Time, horizonDays int) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "planning.run",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.String("machine_id", machineID),
			attribute.String("plan.start", start.Format("2006-01-02")),
			attribute.Int("plan.horizon_days", horizonDays),
		),
	)
}

// StartSolve opens the span around the assignment solver
func (t *PlannerTracer) StartSolve(ctx context.Context, jobs, slots int) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "planning.solve",
		trace.WithAttributes(
			attribute.Int("solve.jobs", jobs),
			attribute.Int("solve.slots", slots),
		),
	)
}

// RecordSolveResult annotates a solve span
func RecordSolveResult(span trace.Span, solverStatus string, scheduled, unscheduled, objective int) {
	span.SetAttributes(
		attribute.String("solve.status", solverStatus),
		attribute.Int("solve.scheduled", scheduled),
		attribute.Int("solve.unscheduled", unscheduled),
		attribute.Int("solve.objective", objective),
	)
}

// RecordRunResult annotates a run span. Blocked runs and errors mark the span failed.
func RecordRunResult(span trace.Span, status string, jobs, scheduled int, blocked bool, err error) {
	span.SetAttributes(
		attribute.String("plan.status", status),
		attribute.Int("plan.jobs", jobs),
		attribute.Int("plan.scheduled", scheduled),
	)
	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case blocked:
		span.SetStatus(codes.Error, status)
	default:
		span.SetStatus(codes.Ok, "")
	}
}
