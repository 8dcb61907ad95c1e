package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vsinha/moldplan/pkg/application/dto"
	"github.com/vsinha/moldplan/pkg/domain/entities"
)

// stepSchedule fires every interval for a fixed number of runs
type stepSchedule struct {
	mu       sync.Mutex
	interval time.Duration
	left     int
}

func (s *stepSchedule) Next(t time.Time) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.left == 0 {
		return time.Time{}
	}
	s.left--
	return t.Add(s.interval)
}

func TestParseSchedule(t *testing.T) {
	if _, err := ParseSchedule("0 6 * * 1-6"); err != nil {
		t.Errorf("Expected valid schedule, got %v", err)
	}

	testCases := []string{"", "every morning", "0 6 * *", "61 6 * * *"}
	for _, spec := range testCases {
		if _, err := ParseSchedule(spec); err == nil {
			t.Errorf("Expected error for %q", spec)
		}
	}
}

func TestNextRuns_SkipsSundays(t *testing.T) {
	schedule, err := ParseSchedule("0 6 * * 1-6")
	if err != nil {
		t.Fatalf("ParseSchedule failed: %v", err)
	}

	from := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC) // Saturday
	until := time.Date(2025, 3, 11, 23, 59, 0, 0, time.UTC)
	runs := NextRuns(schedule, from, until)

	expected := []string{"2025-03-08", "2025-03-10", "2025-03-11"}
	if len(runs) != len(expected) {
		t.Fatalf("Expected %d runs, got %d: %v", len(expected), len(runs), runs)
	}
	for i, run := range runs {
		if entities.DateKey(run) != expected[i] || run.Hour() != 6 {
			t.Errorf("Run %d: expected %s 06:00, got %v", i, expected[i], run)
		}
	}
}

func TestReplanner_RunsUntilScheduleEnds(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	job := func(ctx context.Context, at time.Time) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls == 2 {
			return errors.New("source unavailable")
		}
		return nil
	}

	replanner := NewReplanner(&stepSchedule{interval: 5 * time.Millisecond, left: 3}, job, nil)

	done := make(chan struct{})
	go func() {
		replanner.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected Run to return once the schedule is exhausted")
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 3 {
		t.Errorf("Expected 3 job runs despite one failure, got %d", calls)
	}
}

func TestReplanner_StopsOnCancel(t *testing.T) {
	job := func(ctx context.Context, at time.Time) error {
		t.Error("Expected job not to run before cancellation")
		return nil
	}
	replanner := NewReplanner(&stepSchedule{interval: time.Hour, left: 1}, job, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		replanner.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected Run to return after cancellation")
	}
}

type fakePlanner struct {
	requests []dto.PlanRequest
	machines []string
	err      error
}

func (f *fakePlanner) PlanMachines(ctx context.Context, machineIDs []string, req dto.PlanRequest) ([]*dto.PlanResult, error) {
	f.requests = append(f.requests, req)
	f.machines = machineIDs
	results := make([]*dto.PlanResult, len(machineIDs))
	for i, id := range machineIDs {
		if f.err != nil && i == 0 {
			continue
		}
		results[i] = &dto.PlanResult{MachineID: id, StartDate: req.StartDate}
	}
	return results, f.err
}

func TestPlanJob_StoresLatestPerMachine(t *testing.T) {
	planner := &fakePlanner{}
	latest := NewLatestResults()
	machines := func(context.Context) ([]string, error) { return []string{"MC-02", "MC-01"}, nil }
	job := PlanJob(planner, machines, dto.PlanRequest{HorizonDays: 14}, latest)

	at := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
	if err := job(context.Background(), at); err != nil {
		t.Fatalf("job failed: %v", err)
	}

	if len(planner.requests) != 1 || entities.DateKey(planner.requests[0].StartDate) != "2025-03-10" {
		t.Fatalf("Expected one request starting 2025-03-10, got %+v", planner.requests)
	}
	if planner.requests[0].HorizonDays != 14 {
		t.Errorf("Expected defaults carried over, got horizon %d", planner.requests[0].HorizonDays)
	}

	results := latest.Latest()
	if len(results) != 2 || results[0].MachineID != "MC-01" || results[1].MachineID != "MC-02" {
		t.Errorf("Expected results for MC-01 and MC-02 in order, got %+v", results)
	}

	// A later run replaces the earlier result
	if err := job(context.Background(), at.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("job failed: %v", err)
	}
	if got := entities.DateKey(latest.Latest()[0].StartDate); got != "2025-03-11" {
		t.Errorf("Expected latest result from 2025-03-11, got %s", got)
	}
}

func TestPlanJob_Errors(t *testing.T) {
	latest := NewLatestResults()

	noMachines := PlanJob(&fakePlanner{}, func(context.Context) ([]string, error) { return nil, nil }, dto.PlanRequest{}, latest)
	if err := noMachines(context.Background(), time.Now()); err == nil || err.Error() != "no machines to replan" {
		t.Errorf("Expected 'no machines to replan', got %v", err)
	}

	partial := &fakePlanner{err: errors.New("machine MC-01: failed to load parts")}
	job := PlanJob(partial, func(context.Context) ([]string, error) { return []string{"MC-01", "MC-02"}, nil }, dto.PlanRequest{}, latest)
	if err := job(context.Background(), time.Now()); err == nil {
		t.Error("Expected the planner error to be returned")
	}
	results := latest.Latest()
	if len(results) != 1 || results[0].MachineID != "MC-02" {
		t.Errorf("Expected the surviving machine stored, got %+v", results)
	}
}

func TestPlanJob_StartsOnUTCDay(t *testing.T) {
	planner := &fakePlanner{}
	machines := func(context.Context) ([]string, error) { return []string{"MC-01"}, nil }
	job := PlanJob(planner, machines, dto.PlanRequest{}, NewLatestResults())

	// 02:00 on the 11th in UTC+7 is still the 10th in UTC
	jakarta := time.FixedZone("WIB", 7*60*60)
	at := time.Date(2025, 3, 11, 2, 0, 0, 0, jakarta)
	if err := job(context.Background(), at); err != nil {
		t.Fatalf("job failed: %v", err)
	}

	start := planner.requests[0].StartDate
	if entities.DateKey(start) != "2025-03-10" || start.Location() != time.UTC {
		t.Errorf("Expected start 2025-03-10 UTC, got %v", start)
	}
}
