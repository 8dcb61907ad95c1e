package assignment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/vsinha/moldplan/pkg/domain/entities"
)

var weekStart = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC) // Monday

// buildSlots creates two shifts per day for the given number of days
func buildSlots(days int) []entities.Slot {
	slots := make([]entities.Slot, 0, days*2)
	for d := 0; d < days; d++ {
		date := entities.AddDays(weekStart, d)
		for _, label := range []string{"Shift1", "Shift2"} {
			slots = append(slots, entities.NewSlot(date, label, len(slots)))
		}
	}
	return slots
}

func buildJobs(n int, earliest time.Time) []entities.JobTicket {
	jobs := make([]entities.JobTicket, 0, n)
	for i := 0; i < n; i++ {
		jobs = append(jobs, entities.JobTicket{
			ID:             fmt.Sprintf("P1_%s_%d", entities.DateKey(earliest), i),
			PartNumber:     "P1",
			PartName:       "Bracket",
			EarliestStart:  earliest,
			DurationShifts: 1,
		})
	}
	return jobs
}

func assertValidSchedule(t *testing.T, jobs []entities.JobTicket, result *Result) {
	t.Helper()

	usedSlots := make(map[string]bool)
	usedJobs := make(map[string]bool)
	for _, a := range result.Assignments {
		if usedSlots[a.Slot.ID] {
			t.Errorf("Slot %s holds more than one job", a.Slot.ID)
		}
		usedSlots[a.Slot.ID] = true
		if usedJobs[a.Job.ID] {
			t.Errorf("Job %s placed more than once", a.Job.ID)
		}
		usedJobs[a.Job.ID] = true
		if a.Slot.Date.Before(a.Job.EarliestStart) {
			t.Errorf("Job %s placed on %s before its earliest start %s",
				a.Job.ID, entities.DateKey(a.Slot.Date), entities.DateKey(a.Job.EarliestStart))
		}
	}

	if len(result.Assignments)+len(result.Unscheduled) != len(jobs) {
		t.Errorf("Expected every job accounted for: %d assigned + %d unscheduled != %d",
			len(result.Assignments), len(result.Unscheduled), len(jobs))
	}
	for _, job := range result.Unscheduled {
		if usedJobs[job.ID] {
			t.Errorf("Job %s both assigned and unscheduled", job.ID)
		}
	}
}

func TestSolver_AllJobsFit(t *testing.T) {
	jobs := buildJobs(4, weekStart)
	slots := buildSlots(2)

	result := NewSolver(Options{}).Solve(context.Background(), jobs, slots)

	if result.Status != Optimal {
		t.Fatalf("Expected OPTIMAL, got %s", result.Status)
	}
	if len(result.Assignments) != 4 {
		t.Fatalf("Expected 4 assignments, got %d", len(result.Assignments))
	}
	if len(result.Unscheduled) != 0 {
		t.Errorf("Expected no unscheduled jobs, got %d", len(result.Unscheduled))
	}
	// 0 + 1 + 2 + 3
	if result.Objective != 6 {
		t.Errorf("Expected objective 6, got %d", result.Objective)
	}
	assertValidSchedule(t, jobs, result)
}

func TestSolver_OverloadSchedulesAsManyAsPossible(t *testing.T) {
	jobs := buildJobs(6, weekStart)
	slots := buildSlots(2)

	result := NewSolver(Options{}).Solve(context.Background(), jobs, slots)

	if len(result.Assignments) != 4 {
		t.Fatalf("Expected 4 assignments, got %d", len(result.Assignments))
	}
	if len(result.Unscheduled) != 2 {
		t.Errorf("Expected 2 unscheduled jobs, got %d", len(result.Unscheduled))
	}
	assertValidSchedule(t, jobs, result)
}

func TestSolver_RespectsEarliestStart(t *testing.T) {
	thursday := entities.AddDays(weekStart, 3)
	jobs := append(buildJobs(2, thursday), buildJobs(1, weekStart)...)
	jobs[2].ID = "P2_early"
	slots := buildSlots(5)

	result := NewSolver(Options{}).Solve(context.Background(), jobs, slots)

	if result.Status != Optimal {
		t.Fatalf("Expected OPTIMAL, got %s", result.Status)
	}
	assertValidSchedule(t, jobs, result)

	for _, a := range result.Assignments {
		if a.Job.ID == "P2_early" && a.Slot.Ordinal != 0 {
			t.Errorf("Expected early job in the first slot, got ordinal %d", a.Slot.Ordinal)
		}
		if a.Job.EarliestStart.Equal(thursday) && a.Slot.Date.Before(thursday) {
			t.Errorf("Job %s scheduled before Thursday", a.Job.ID)
		}
	}
}

func TestSolver_PrefersEarliestSlots(t *testing.T) {
	jobs := buildJobs(3, weekStart)
	slots := buildSlots(5)

	result := NewSolver(Options{}).Solve(context.Background(), jobs, slots)

	if len(result.Assignments) != 3 {
		t.Fatalf("Expected 3 assignments, got %d", len(result.Assignments))
	}
	for i, a := range result.Assignments {
		if a.Slot.Ordinal != i {
			t.Errorf("Expected assignment %d in slot %d, got slot %d", i, i, a.Slot.Ordinal)
		}
	}
}

func TestSolver_NoEligibleSlot(t *testing.T) {
	// Every slot ends before the job may start
	jobs := buildJobs(2, entities.AddDays(weekStart, 10))
	slots := buildSlots(3)

	result := NewSolver(Options{}).Solve(context.Background(), jobs, slots)

	if result.Status != NoSolution {
		t.Errorf("Expected NO_SOLUTION, got %s", result.Status)
	}
	if len(result.Unscheduled) != 2 {
		t.Errorf("Expected 2 unscheduled jobs, got %d", len(result.Unscheduled))
	}
}

func TestSolver_EmptyInputs(t *testing.T) {
	solver := NewSolver(Options{})

	result := solver.Solve(context.Background(), nil, buildSlots(1))
	if result.Status != Optimal || len(result.Assignments) != 0 {
		t.Errorf("Expected empty OPTIMAL result for no jobs, got %s with %d assignments",
			result.Status, len(result.Assignments))
	}

	jobs := buildJobs(3, weekStart)
	result = solver.Solve(context.Background(), jobs, nil)
	if result.Status != NoSolution {
		t.Errorf("Expected NO_SOLUTION for no slots, got %s", result.Status)
	}
	if len(result.Unscheduled) != 3 {
		t.Errorf("Expected all 3 jobs unscheduled, got %d", len(result.Unscheduled))
	}
}

func TestSolver_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := buildJobs(4, weekStart)
	result := NewSolver(Options{TimeLimit: time.Second}).Solve(ctx, jobs, buildSlots(2))

	if result.Status != NoSolution {
		t.Errorf("Expected NO_SOLUTION when interrupted before any placement, got %s", result.Status)
	}
	assertValidSchedule(t, jobs, result)
}

func TestSolver_Rows(t *testing.T) {
	jobs := buildJobs(1, weekStart)
	result := NewSolver(Options{}).Solve(context.Background(), jobs, buildSlots(1))

	rows := result.Rows()
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if rows[0].SlotID != "2025-03-03_Shift1" || rows[0].JobID != jobs[0].ID {
		t.Errorf("Unexpected row %+v", rows[0])
	}
}

func TestSolverStatus_String(t *testing.T) {
	if Optimal.String() != "OPTIMAL" || Feasible.String() != "FEASIBLE" || NoSolution.String() != "NO_SOLUTION" {
		t.Error("Unexpected solver status names")
	}
}
