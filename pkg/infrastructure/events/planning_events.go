package events

import (
	"time"

	"github.com/vsinha/moldplan/pkg/domain/entities"
)

const (
	PlanStartedEvent    = "plan.started"
	JobsGeneratedEvent  = "jobs.generated"
	ScheduleSolvedEvent = "schedule.solved"
	PlanCompletedEvent  = "plan.completed"
	PartSkippedEvent    = "part.skipped"
)

// AllPlanningEvents lists every event type a planning run can emit
var AllPlanningEvents = []string{
	PlanStartedEvent,
	JobsGeneratedEvent,
	ScheduleSolvedEvent,
	PlanCompletedEvent,
	PartSkippedEvent,
}

type PlanStarted struct {
	MachineID   string    `json:"machine_id"`
	StartDate   time.Time `json:"start_date"`
	HorizonDays int       `json:"horizon_days"`
	Parts       int       `json:"parts"`
}

type JobsGenerated struct {
	Jobs  int `json:"jobs"`
	Parts int `json:"parts"`
}

type ScheduleSolved struct {
	SolverStatus string        `json:"solver_status"`
	Slots        int           `json:"slots"`
	Scheduled    int           `json:"scheduled"`
	Unscheduled  int           `json:"unscheduled"`
	WallTime     time.Duration `json:"wall_time"`
}

type PlanCompleted struct {
	Status  entities.PlanStatus `json:"status"`
	Message string              `json:"message,omitempty"`
}

type PartSkipped struct {
	Part entities.SkippedPart `json:"part"`
}

// Planning events share one stream per run id

func NewPlanStartedEvent(runID string, data PlanStarted) Event {
	return NewEvent(PlanStartedEvent, runID, data)
}

func NewJobsGeneratedEvent(runID string, jobs, parts int) Event {
	return NewEvent(JobsGeneratedEvent, runID, JobsGenerated{Jobs: jobs, Parts: parts})
}

func NewScheduleSolvedEvent(runID string, data ScheduleSolved) Event {
	return NewEvent(ScheduleSolvedEvent, runID, data)
}

func NewPlanCompletedEvent(runID string, status entities.PlanStatus, message string) Event {
	return NewEvent(PlanCompletedEvent, runID, PlanCompleted{Status: status, Message: message})
}

func NewPartSkippedEvent(runID string, part entities.SkippedPart) Event {
	return NewEvent(PartSkippedEvent, runID, PartSkipped{Part: part})
}
