package assignment

import (
	"context"
	"sort"
	"time"

	"github.com/vsinha/moldplan/pkg/domain/entities"
)

// DefaultTimeLimit bounds a single solve
const DefaultTimeLimit = 30 * time.Second

// SolverStatus describes the quality of the returned assignment
type SolverStatus int

const (
	// Optimal: as many jobs as possible are placed, at minimum total slot ordinal
	Optimal SolverStatus = iota
	// Feasible: the time limit hit first; the placement is valid but may be improvable
	Feasible
	// NoSolution: nothing could be placed
	NoSolution
)

// String method for SolverStatus enum
func (s SolverStatus) String() string {
	switch s {
	case Optimal:
		return "OPTIMAL"
	case Feasible:
		return "FEASIBLE"
	case NoSolution:
		return "NO_SOLUTION"
	default:
		return "UNKNOWN"
	}
}

// Options configures the solver
type Options struct {
	TimeLimit time.Duration
}

// Result is the outcome of one solve
type Result struct {
	Status      SolverStatus
	Assignments []entities.Assignment // in slot order
	Unscheduled []entities.JobTicket  // in input order
	// Objective is the sum of the ordinals of the used slots
	Objective int
	WallTime  time.Duration
}

// Rows flattens the assignments into schedule rows
func (r *Result) Rows() []entities.ScheduleRow {
	rows := make([]entities.ScheduleRow, 0, len(r.Assignments))
	for _, a := range r.Assignments {
		rows = append(rows, a.Row())
	}
	return rows
}

// Solver places job tickets into slots: at most one job per slot, at most one
// slot per job, never before a job's earliest start. It maximizes the number of
// placed jobs and, among those placements, minimizes the sum of slot positions.
type Solver struct {
	options Options
}

// NewSolver creates a stateless solver
func NewSolver(options Options) *Solver {
	if options.TimeLimit <= 0 {
		options.TimeLimit = DefaultTimeLimit
	}
	return &Solver{options: options}
}

// Solve assigns jobs to slots. Slot position is the index in slots, which is
// expected to be in chronological order.
func (s *Solver) Solve(ctx context.Context, jobs []entities.JobTicket, slots []entities.Slot) *Result {
	started := time.Now()
	result := &Result{
		Status:      Optimal,
		Assignments: []entities.Assignment{},
		Unscheduled: []entities.JobTicket{},
	}

	if len(jobs) == 0 {
		result.WallTime = time.Since(started)
		return result
	}
	if len(slots) == 0 {
		result.Status = NoSolution
		result.Unscheduled = append(result.Unscheduled, jobs...)
		result.WallTime = time.Since(started)
		return result
	}

	ctx, cancel := context.WithTimeout(ctx, s.options.TimeLimit)
	defer cancel()

	// source | jobs | slots | sink
	source := 0
	jobBase := 1
	slotBase := jobBase + len(jobs)
	sink := slotBase + len(slots)
	network := newFlowNetwork(sink + 1)

	slotDays := make([]string, len(slots))
	for i, slot := range slots {
		slotDays[i] = entities.DateKey(slot.Date)
		network.addArc(slotBase+i, sink, 1, 0)
	}

	candidates := make([][]*arc, len(jobs))
	for j, job := range jobs {
		network.addArc(source, jobBase+j, 1, 0)
		earliest := entities.DateKey(job.EarliestStart)
		for i := range slots {
			// YYYY-MM-DD compares chronologically as a string
			if slotDays[i] < earliest {
				continue
			}
			candidates[j] = append(candidates[j], network.addArc(jobBase+j, slotBase+i, 1, i))
		}
	}

	flow, cost, interrupted := network.minCostFlow(ctx, source, sink, len(jobs))

	for j, job := range jobs {
		placed := false
		for _, e := range candidates[j] {
			if e.cap == 0 {
				result.Assignments = append(result.Assignments, entities.Assignment{
					Job:  job,
					Slot: slots[e.to-slotBase],
				})
				placed = true
				break
			}
		}
		if !placed {
			result.Unscheduled = append(result.Unscheduled, job)
		}
	}

	sort.SliceStable(result.Assignments, func(a, b int) bool {
		return result.Assignments[a].Slot.Ordinal < result.Assignments[b].Slot.Ordinal
	})

	result.Objective = cost
	switch {
	case flow == 0:
		result.Status = NoSolution
	case interrupted:
		result.Status = Feasible
	}
	result.WallTime = time.Since(started)
	return result
}
