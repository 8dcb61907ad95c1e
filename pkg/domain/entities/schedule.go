package entities

import (
	"fmt"
	"time"
)

// PlanStatus is the outcome of a planning run as shown to operators
type PlanStatus int

const (
	StatusOptimal PlanStatus = iota
	StatusOverload
	StatusInfeasible
	StatusNoJobsNeeded
	StatusConfigurationError
)

// String method for PlanStatus enum
func (s PlanStatus) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusOverload:
		return "OVERLOAD"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusNoJobsNeeded:
		return "NO_JOBS_NEEDED"
	case StatusConfigurationError:
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the status by name in JSON and YAML
func (s PlanStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status name written by MarshalText
func (s *PlanStatus) UnmarshalText(text []byte) error {
	for candidate := StatusOptimal; candidate <= StatusConfigurationError; candidate++ {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown plan status %q", text)
}

// IsWarning reports whether operators must act on an otherwise valid result
func (s PlanStatus) IsWarning() bool {
	return s == StatusOverload || s == StatusInfeasible
}

// Assignment places one job ticket into one slot
type Assignment struct {
	Job  JobTicket `json:"job"`
	Slot Slot      `json:"slot"`
}

// ScheduleRow is one occupied slot of the final schedule
type ScheduleRow struct {
	Date       time.Time  `json:"date"`
	ShiftLabel string     `json:"shift"`
	PartNumber PartNumber `json:"part_no"`
	PartName   string     `json:"part_name"`
	JobID      string     `json:"job_id"`
	SlotID     string     `json:"slot_id"`
}

// Row flattens an assignment into a schedule row
func (a Assignment) Row() ScheduleRow {
	return ScheduleRow{
		Date:       a.Slot.Date,
		ShiftLabel: a.Slot.ShiftLabel,
		PartNumber: a.Job.PartNumber,
		PartName:   a.Job.PartName,
		JobID:      a.Job.ID,
		SlotID:     a.Slot.ID,
	}
}

// SkipReason explains why a part produced no job tickets
type SkipReason int

const (
	SkipZeroOutput SkipReason = iota
	SkipNoDemand
)

// String method for SkipReason enum
func (r SkipReason) String() string {
	switch r {
	case SkipZeroOutput:
		return "ZERO_OUTPUT_PER_SHIFT"
	case SkipNoDemand:
		return "NO_DEMAND"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the reason by name
func (r SkipReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText parses a reason name written by MarshalText
func (r *SkipReason) UnmarshalText(text []byte) error {
	for _, candidate := range []SkipReason{SkipZeroOutput, SkipNoDemand} {
		if candidate.String() == string(text) {
			*r = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown skip reason %q", text)
}

// SkippedPart records a data-quality exclusion
type SkippedPart struct {
	PartNumber PartNumber `json:"part_no"`
	Reason     SkipReason `json:"reason"`
}
