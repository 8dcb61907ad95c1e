package metrics

import (
	"context"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	byName := make(map[string]metricdata.Aggregation)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			byName[m.Name] = m.Data
		}
	}
	return byName
}

func sumInt64(t *testing.T, data metricdata.Aggregation) int64 {
	t.Helper()
	sum, ok := data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("Expected an int64 sum, got %T", data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestPlanningMetrics_Record(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	m, err := NewPlanningMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	if err != nil {
		t.Fatalf("NewPlanningMetrics failed: %v", err)
	}

	ctx := context.Background()
	m.RecordRun(ctx, "MC-01", "OPTIMAL", 6, 0)
	m.RecordRun(ctx, "MC-01", "OVERLOAD", 10, 3)
	m.RecordSkippedPart(ctx, "NO_DEMAND")
	m.RecordSolveDuration(ctx, "OPTIMAL", 150*time.Millisecond)

	data := collect(t, reader)

	testCases := []struct {
		name     string
		expected int64
	}{
		{"planning_runs_total", 2},
		{"planning_jobs_total", 16},
		{"planning_jobs_unscheduled_total", 3},
		{"planning_parts_skipped_total", 1},
	}
	for _, tc := range testCases {
		agg, ok := data[tc.name]
		if !ok {
			t.Errorf("Expected metric %s to be collected", tc.name)
			continue
		}
		if got := sumInt64(t, agg); got != tc.expected {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.expected, got)
		}
	}

	hist, ok := data["planning_solve_duration_seconds"].(metricdata.Histogram[float64])
	if !ok || len(hist.DataPoints) != 1 || hist.DataPoints[0].Count != 1 {
		t.Errorf("Expected one solve duration observation, got %+v", data["planning_solve_duration_seconds"])
	}
}
