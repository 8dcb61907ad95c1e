package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const planningMeterName = "moldplan.planning"

// PlanningMetrics records run outcomes and solver timings
type PlanningMetrics struct {
	runs          metric.Int64Counter
	jobs          metric.Int64Counter
	unscheduled   metric.Int64Counter
	skippedParts  metric.Int64Counter
	solveDuration metric.Float64Histogram
}

// NewPlanningMetrics registers the instruments on mp, or on the global provider when mp is nil
func NewPlanningMetrics(mp metric.MeterProvider) (*PlanningMetrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(planningMeterName)

	runs, err := meter.Int64Counter(
		"planning_runs_total",
		metric.WithDescription("Planning runs by outcome status"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	jobs, err := meter.Int64Counter(
		"planning_jobs_total",
		metric.WithDescription("Job tickets generated by the replenishment simulation"),
		metric.WithUnit("{job}"),
	)
	if err != nil {
		return nil, err
	}

	unscheduled, err := meter.Int64Counter(
		"planning_jobs_unscheduled_total",
		metric.WithDescription("Job tickets left without a slot"),
		metric.WithUnit("{job}"),
	)
	if err != nil {
		return nil, err
	}

	skippedParts, err := meter.Int64Counter(
		"planning_parts_skipped_total",
		metric.WithDescription("Parts excluded from planning by reason"),
		metric.WithUnit("{part}"),
	)
	if err != nil {
		return nil, err
	}

	solveDuration, err := meter.Float64Histogram(
		"planning_solve_duration_seconds",
		metric.WithDescription("Assignment solver wall time"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60,
		),
	)
	if err != nil {
		return nil, err
	}

	return &PlanningMetrics{
		runs:          runs,
		jobs:          jobs,
		unscheduled:   unscheduled,
		skippedParts:  skippedParts,
		solveDuration: solveDuration,
	}, nil
}

func (m *PlanningMetrics) RecordRun(ctx context.Context, machineID, status string, jobs, unscheduled int) {
	attrs := metric.WithAttributes(
		attribute.String("machine_id", machineID),
		attribute.String("status", status),
	)
	m.runs.Add(ctx, 1, attrs)
	m.jobs.Add(ctx, int64(jobs), attrs)
	m.unscheduled.Add(ctx, int64(unscheduled), attrs)
}

func (m *PlanningMetrics) RecordSkippedPart(ctx context.Context, reason string) {
	m.skippedParts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

func (m *PlanningMetrics) RecordSolveDuration(ctx context.Context, solverStatus string, duration time.Duration) {
	m.solveDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("solver_status", solverStatus),
	))
}
