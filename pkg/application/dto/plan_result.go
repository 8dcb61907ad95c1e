package dto

import (
	"fmt"
	"time"

	"github.com/vsinha/moldplan/pkg/domain/entities"
)

const (
	MaxHorizonDays   = 366
	DefaultTimeLimit = 30 * time.Second
)

// PlanRequest carries the parameters of one planning run
type PlanRequest struct {
	MachineID       string        `json:"machine_id" yaml:"machine_id"`
	StartDate       time.Time     `json:"start_date" yaml:"start_date"`
	HorizonDays     int           `json:"horizon_days" yaml:"horizon_days"`
	MinCoverageDays int           `json:"min_coverage_days" yaml:"min_coverage_days"`
	MaxCoverageDays int           `json:"max_coverage_days" yaml:"max_coverage_days"`
	ShiftMinutes    int           `json:"shift_minutes" yaml:"shift_minutes"`
	TimeLimit       time.Duration `json:"time_limit" yaml:"time_limit"`
}

// Validate rejects malformed requests with ErrInvalidRequest
func (r PlanRequest) Validate() error {
	if r.StartDate.IsZero() {
		return fmt.Errorf("%w: start date cannot be empty", entities.ErrInvalidRequest)
	}
	if r.HorizonDays < 1 || r.HorizonDays > MaxHorizonDays {
		return fmt.Errorf("%w: horizon days must be between 1 and %d, got %d",
			entities.ErrInvalidRequest, MaxHorizonDays, r.HorizonDays)
	}
	if r.MinCoverageDays < 1 {
		return fmt.Errorf("%w: min coverage days must be positive, got %d",
			entities.ErrInvalidRequest, r.MinCoverageDays)
	}
	if r.MaxCoverageDays < r.MinCoverageDays {
		return fmt.Errorf("%w: max coverage days (%d) cannot be less than min coverage days (%d)",
			entities.ErrInvalidRequest, r.MaxCoverageDays, r.MinCoverageDays)
	}
	if r.ShiftMinutes < 1 {
		return fmt.Errorf("%w: shift minutes must be positive, got %d",
			entities.ErrInvalidRequest, r.ShiftMinutes)
	}
	if r.TimeLimit <= 0 {
		return fmt.Errorf("%w: time limit must be positive, got %s",
			entities.ErrInvalidRequest, r.TimeLimit)
	}
	return nil
}

// Summary holds the counters shown above a schedule
type Summary struct {
	TotalJobs          int            `json:"total_jobs"`
	PartsWithJobs      int            `json:"parts_with_jobs"`
	DistinctParts      int            `json:"distinct_parts"` // parts with at least one scheduled job
	Scheduled          int            `json:"scheduled"`
	Unscheduled        int            `json:"unscheduled"`
	Slots              int            `json:"slots"`
	UtilizationPercent float64        `json:"utilization_percent"`
	SkippedByReason    map[string]int `json:"skipped_by_reason,omitempty"`
}

// PlanResult contains the complete output of a planning run
type PlanResult struct {
	RunID        string                 `json:"run_id"`
	MachineID    string                 `json:"machine_id,omitempty"`
	StartDate    time.Time              `json:"start_date"`
	HorizonDays  int                    `json:"horizon_days"`
	Status       entities.PlanStatus    `json:"status"`
	Message      string                 `json:"message,omitempty"`
	Jobs         []entities.JobTicket   `json:"jobs"`
	Slots        []entities.Slot        `json:"slots"`
	Schedule     []entities.ScheduleRow `json:"schedule"`
	Unscheduled  []entities.JobTicket   `json:"unscheduled"`
	Skipped      []entities.SkippedPart `json:"skipped"`
	Summary      Summary                `json:"summary"`
	SolverStatus string                 `json:"solver_status,omitempty"`
	SolveTime    time.Duration          `json:"solve_time"`
}

// NewSummary derives the counters from a run's jobs, slots and schedule
func NewSummary(jobs []entities.JobTicket, slots []entities.Slot, schedule []entities.ScheduleRow, skipped []entities.SkippedPart) Summary {
	jobParts := make(map[entities.PartNumber]struct{})
	for _, job := range jobs {
		jobParts[job.PartNumber] = struct{}{}
	}
	scheduledParts := make(map[entities.PartNumber]struct{})
	for _, row := range schedule {
		scheduledParts[row.PartNumber] = struct{}{}
	}

	summary := Summary{
		TotalJobs:     len(jobs),
		PartsWithJobs: len(jobParts),
		DistinctParts: len(scheduledParts),
		Scheduled:     len(schedule),
		Unscheduled:   len(jobs) - len(schedule),
		Slots:         len(slots),
	}
	if len(slots) > 0 {
		summary.UtilizationPercent = float64(len(schedule)) / float64(len(slots)) * 100
	}
	if len(skipped) > 0 {
		summary.SkippedByReason = make(map[string]int)
		for _, s := range skipped {
			summary.SkippedByReason[s.Reason.String()]++
		}
	}
	return summary
}
