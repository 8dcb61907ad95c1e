package planning

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/vsinha/moldplan/pkg/domain/entities"
	"github.com/vsinha/moldplan/pkg/infrastructure/observability/metrics"
	"github.com/vsinha/moldplan/pkg/infrastructure/observability/tracing"
)

func TestPlan_RecordsSpans(t *testing.T) {
	service, m := newService(t)
	m.expectData([]*entities.Part{bracket()}, flatDemand("P1", 1000, 30), nil, standardCalendar())
	recorder := tracetest.NewSpanRecorder()
	service.WithTracer(tracing.NewPlannerTracer(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))))

	if _, err := service.Plan(context.Background(), DefaultRequest(monday, 14)); err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("Expected solve and run spans, got %d", len(spans))
	}
	run := spans[1]
	if run.Name() != "planning.run" || run.Status().Code != codes.Ok {
		t.Errorf("Expected an Ok planning.run span, got %s/%v", run.Name(), run.Status().Code)
	}
	for _, attr := range run.Attributes() {
		if attr.Key == "plan.status" && attr.Value.AsString() != "OPTIMAL" {
			t.Errorf("Expected plan.status OPTIMAL, got %s", attr.Value.AsString())
		}
	}
}

func TestPlan_BlockedRunMarksSpanFailed(t *testing.T) {
	service, m := newService(t)
	m.expectData(nil, nil, nil, standardCalendar())
	recorder := tracetest.NewSpanRecorder()
	service.WithTracer(tracing.NewPlannerTracer(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))))

	result, err := service.Plan(context.Background(), DefaultRequest(monday, 14))
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if result.Status != entities.StatusConfigurationError {
		t.Fatalf("Expected CONFIGURATION_ERROR, got %s", result.Status)
	}

	spans := recorder.Ended()
	if len(spans) != 1 || spans[0].Status().Code != codes.Error {
		t.Errorf("Expected a single failed run span, got %d spans", len(spans))
	}
}

func TestPlan_RecordsMetrics(t *testing.T) {
	service, m := newService(t)
	parts := []*entities.Part{bracket(), {PartNumber: "P2", CycleTimeSeconds: 30, Cavity: 4, MachineID: "M1"}}
	m.expectData(parts, flatDemand("P1", 1000, 30), nil, standardCalendar())

	reader := sdkmetric.NewManualReader()
	planningMetrics, err := metrics.NewPlanningMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	if err != nil {
		t.Fatalf("NewPlanningMetrics failed: %v", err)
	}
	service.WithMetrics(planningMetrics)

	if _, err := service.Plan(context.Background(), DefaultRequest(monday, 14)); err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	seen := make(map[string]bool)
	for _, scope := range rm.ScopeMetrics {
		for _, metric := range scope.Metrics {
			seen[metric.Name] = true
		}
	}
	// P2 has no demand and is skipped
	for _, name := range []string{"planning_runs_total", "planning_jobs_total", "planning_parts_skipped_total", "planning_solve_duration_seconds"} {
		if !seen[name] {
			t.Errorf("Expected metric %s to be recorded", name)
		}
	}
}
