package planning

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/vsinha/moldplan/pkg/application/dto"
	"github.com/vsinha/moldplan/pkg/application/services/aggregation"
	"github.com/vsinha/moldplan/pkg/application/services/assignment"
	"github.com/vsinha/moldplan/pkg/application/services/replenishment"
	"github.com/vsinha/moldplan/pkg/application/services/slots"
	"github.com/vsinha/moldplan/pkg/domain/entities"
	"github.com/vsinha/moldplan/pkg/domain/repositories"
	"github.com/vsinha/moldplan/pkg/infrastructure/events"
	"github.com/vsinha/moldplan/pkg/infrastructure/observability/metrics"
	"github.com/vsinha/moldplan/pkg/infrastructure/observability/tracing"
)

// ForecastBufferDays is how far past the horizon the daily forecast is loaded
const ForecastBufferDays = 30

// PlanningData is everything a run consumes, already loaded from collaborators
type PlanningData struct {
	Parts      []*entities.Part
	Demand     []*entities.DemandRecord
	Stock      []*entities.StockRecord
	ShiftRules []*entities.ShiftRule
}

// PlanningService coordinates aggregation, replenishment, slot generation and
// assignment for one machine's part list
type PlanningService struct {
	partRepo     repositories.PartRepository
	demandRepo   repositories.DemandRepository
	stockRepo    repositories.StockRepository
	calendarRepo repositories.CalendarRepository
	eventStore   events.EventStore
	tracer       *tracing.PlannerTracer
	metrics      *metrics.PlanningMetrics
	logger       *zap.Logger
}

// NewPlanningService creates a new planning service
func NewPlanningService(
	partRepo repositories.PartRepository,
	demandRepo repositories.DemandRepository,
	stockRepo repositories.StockRepository,
	calendarRepo repositories.CalendarRepository,
	logger *zap.Logger,
) *PlanningService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanningService{
		partRepo:     partRepo,
		demandRepo:   demandRepo,
		stockRepo:    stockRepo,
		calendarRepo: calendarRepo,
		tracer:       tracing.NewPlannerTracer(nil),
		logger:       logger,
	}
}

// WithEventStore publishes run lifecycle events to store
func (s *PlanningService) WithEventStore(store events.EventStore) *PlanningService {
	s.eventStore = store
	return s
}

// WithTracer replaces the tracer built on the global provider
func (s *PlanningService) WithTracer(tracer *tracing.PlannerTracer) *PlanningService {
	s.tracer = tracer
	return s
}

// WithMetrics records run outcomes and solver timings to m
func (s *PlanningService) WithMetrics(m *metrics.PlanningMetrics) *PlanningService {
	s.metrics = m
	return s
}

// DefaultRequest fills the policy defaults for a run starting at start
func DefaultRequest(start time.Time, horizonDays int) dto.PlanRequest {
	return dto.PlanRequest{
		StartDate:       entities.DateOf(start),
		HorizonDays:     horizonDays,
		MinCoverageDays: replenishment.DefaultMinCoverageDays,
		MaxCoverageDays: replenishment.DefaultMaxCoverageDays,
		ShiftMinutes:    entities.DefaultShiftMinutes,
		TimeLimit:       assignment.DefaultTimeLimit,
	}
}

// Plan loads the machine's data from the repositories and runs the planner.
// Only invalid requests and repository failures return an error; every
// planning outcome is reported through the result status.
func (s *PlanningService) Plan(ctx context.Context, req dto.PlanRequest) (*dto.PlanResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	data, err := s.load(ctx, req)
	if err != nil {
		return nil, err
	}

	return s.Run(ctx, req, data)
}

func (s *PlanningService) load(ctx context.Context, req dto.PlanRequest) (*PlanningData, error) {
	parts, err := s.partRepo.GetParts(ctx, req.MachineID)
	if err != nil {
		return nil, fmt.Errorf("failed to load parts for machine %q: %w", req.MachineID, err)
	}
	if len(parts) == 0 {
		return &PlanningData{}, nil
	}

	partNumbers := make([]entities.PartNumber, 0, len(parts))
	for _, part := range parts {
		partNumbers = append(partNumbers, part.PartNumber)
	}

	// Coverage windows look past the horizon
	buffer := ForecastBufferDays
	if req.MaxCoverageDays > buffer {
		buffer = req.MaxCoverageDays
	}
	start := entities.DateOf(req.StartDate)
	end := entities.AddDays(start, req.HorizonDays+buffer)

	demand, err := s.demandRepo.GetDailyDemand(ctx, partNumbers, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load demand: %w", err)
	}

	stock, err := s.stockRepo.GetStock(ctx, partNumbers)
	if err != nil {
		return nil, fmt.Errorf("failed to load stock: %w", err)
	}

	rules, err := s.calendarRepo.GetShiftRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load shift calendar: %w", err)
	}

	return &PlanningData{
		Parts:      parts,
		Demand:     demand,
		Stock:      stock,
		ShiftRules: rules,
	}, nil
}

// Run executes one planning run over already loaded data
func (s *PlanningService) Run(ctx context.Context, req dto.PlanRequest, data *PlanningData) (*dto.PlanResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if data == nil {
		data = &PlanningData{}
	}

	start := entities.DateOf(req.StartDate)
	runID := uuid.NewString()
	ctx, span := s.tracer.StartRun(ctx, runID, req.MachineID, start, req.HorizonDays)
	defer span.End()
	logger := s.logger.With(
		zap.String("run_id", runID),
		zap.String("machine_id", req.MachineID),
	)

	result := &dto.PlanResult{
		RunID:       runID,
		MachineID:   req.MachineID,
		StartDate:   start,
		HorizonDays: req.HorizonDays,
		Jobs:        []entities.JobTicket{},
		Slots:       []entities.Slot{},
		Schedule:    []entities.ScheduleRow{},
		Unscheduled: []entities.JobTicket{},
		Skipped:     []entities.SkippedPart{},
	}

	logger.Info("planning run started",
		zap.Time("start_date", start),
		zap.Int("horizon_days", req.HorizonDays),
		zap.Int("parts", len(data.Parts)))
	s.publish(events.NewPlanStartedEvent(runID, events.PlanStarted{
		MachineID:   req.MachineID,
		StartDate:   start,
		HorizonDays: req.HorizonDays,
		Parts:       len(data.Parts),
	}))

	// Step 1: Master data is required
	if len(data.Parts) == 0 {
		return s.finish(ctx, logger, result, entities.StatusConfigurationError,
			fmt.Sprintf("%s %q: check the part master", entities.ErrNoMasterData, req.MachineID)), nil
	}

	// Step 2: Aggregate demand and stock per part
	aggregated := aggregation.NewAggregator(req.ShiftMinutes).Aggregate(data.Parts, data.Demand, data.Stock)
	if aggregated.OrphanDemandRecords > 0 {
		logger.Debug("ignored demand for parts outside the master",
			zap.Int("records", aggregated.OrphanDemandRecords))
	}

	// Step 3: Simulate the replenishment policy
	simulator := replenishment.NewSimulator(replenishment.Config{
		MinCoverageDays: req.MinCoverageDays,
		MaxCoverageDays: req.MaxCoverageDays,
	})
	simulated, err := simulator.Run(aggregated.Inputs, start, req.HorizonDays)
	if err != nil {
		err = fmt.Errorf("%w: %v", entities.ErrInvalidRequest, err)
		tracing.RecordRunResult(span, "", 0, 0, false, err)
		return nil, err
	}

	result.Skipped = append(result.Skipped, aggregated.Skipped...)
	result.Skipped = append(result.Skipped, simulated.Skipped...)
	for _, skipped := range result.Skipped {
		logger.Info("part skipped", zap.String("part_no", string(skipped.PartNumber)),
			zap.Stringer("reason", skipped.Reason))
		s.publish(events.NewPartSkippedEvent(runID, skipped))
		if s.metrics != nil {
			s.metrics.RecordSkippedPart(ctx, skipped.Reason.String())
		}
	}

	result.Jobs = append(result.Jobs, simulated.Tickets...)
	result.Summary = dto.NewSummary(result.Jobs, nil, nil, result.Skipped)
	s.publish(events.NewJobsGeneratedEvent(runID, len(result.Jobs), result.Summary.PartsWithJobs))

	if len(result.Jobs) == 0 {
		return s.finish(ctx, logger, result, entities.StatusNoJobsNeeded,
			"stock covers demand for the whole horizon"), nil
	}

	// Step 4: Expand the calendar past the horizon
	generated := slots.NewGenerator(data.ShiftRules).Generate(start, req.HorizonDays+slots.LookaheadDays)
	result.Slots = append(result.Slots, generated...)
	if len(result.Slots) == 0 {
		result.Unscheduled = append(result.Unscheduled, result.Jobs...)
		result.Summary = dto.NewSummary(result.Jobs, nil, nil, result.Skipped)
		return s.finish(ctx, logger, result, entities.StatusConfigurationError,
			fmt.Sprintf("%s: %d jobs cannot be scheduled, check the shift calendar",
				entities.ErrEmptyCalendar, len(result.Jobs))), nil
	}

	// Step 5: Assign jobs to slots
	solveCtx, solveSpan := s.tracer.StartSolve(ctx, len(result.Jobs), len(result.Slots))
	solved := assignment.NewSolver(assignment.Options{TimeLimit: req.TimeLimit}).
		Solve(solveCtx, result.Jobs, result.Slots)
	tracing.RecordSolveResult(solveSpan, solved.Status.String(), len(solved.Assignments), len(solved.Unscheduled), solved.Objective)
	solveSpan.End()
	if s.metrics != nil {
		s.metrics.RecordSolveDuration(ctx, solved.Status.String(), solved.WallTime)
	}

	result.Schedule = solved.Rows()
	result.Unscheduled = append(result.Unscheduled, solved.Unscheduled...)
	result.SolverStatus = solved.Status.String()
	result.SolveTime = solved.WallTime
	result.Summary = dto.NewSummary(result.Jobs, result.Slots, result.Schedule, result.Skipped)

	logger.Info("schedule solved",
		zap.Stringer("solver_status", solved.Status),
		zap.Int("jobs", len(result.Jobs)),
		zap.Int("slots", len(result.Slots)),
		zap.Int("scheduled", len(result.Schedule)),
		zap.Int("objective", solved.Objective),
		zap.Duration("wall_time", solved.WallTime))
	s.publish(events.NewScheduleSolvedEvent(runID, events.ScheduleSolved{
		SolverStatus: solved.Status.String(),
		Slots:        len(result.Slots),
		Scheduled:    len(result.Schedule),
		Unscheduled:  len(result.Unscheduled),
		WallTime:     solved.WallTime,
	}))

	status := DeriveStatus(len(result.Jobs), len(result.Slots), len(result.Schedule))
	return s.finish(ctx, logger, result, status, statusMessage(status, result.Summary, solved.Status == assignment.Feasible)), nil
}

// DeriveStatus maps the run counters onto the operator-facing status
func DeriveStatus(jobs, slotCount, scheduled int) entities.PlanStatus {
	switch {
	case jobs == 0:
		return entities.StatusNoJobsNeeded
	case slotCount == 0:
		return entities.StatusConfigurationError
	case scheduled == jobs:
		return entities.StatusOptimal
	case jobs > slotCount:
		return entities.StatusOverload
	default:
		return entities.StatusInfeasible
	}
}

// statusMessage explains the status; timedOut means the solver stopped at its time limit
func statusMessage(status entities.PlanStatus, summary dto.Summary, timedOut bool) string {
	if timedOut && summary.Unscheduled > 0 {
		return fmt.Sprintf("solver time limit reached, %d of %d jobs left unscheduled",
			summary.Unscheduled, summary.TotalJobs)
	}
	switch status {
	case entities.StatusOptimal:
		return fmt.Sprintf("all %d jobs scheduled", summary.TotalJobs)
	case entities.StatusOverload:
		return fmt.Sprintf("%d jobs exceed %d available slots, %d left unscheduled",
			summary.TotalJobs, summary.Slots, summary.Unscheduled)
	case entities.StatusInfeasible:
		return fmt.Sprintf("%d of %d jobs could not be placed on or after their earliest start",
			summary.Unscheduled, summary.TotalJobs)
	default:
		return ""
	}
}

func (s *PlanningService) finish(
	ctx context.Context,
	logger *zap.Logger,
	result *dto.PlanResult,
	status entities.PlanStatus,
	message string,
) *dto.PlanResult {
	result.Status = status
	result.Message = message

	fields := []zap.Field{
		zap.Stringer("status", status),
		zap.Int("jobs", result.Summary.TotalJobs),
		zap.Int("scheduled", result.Summary.Scheduled),
	}
	switch {
	case status == entities.StatusConfigurationError:
		logger.Error("planning run blocked", append(fields, zap.String("message", message))...)
	case status.IsWarning():
		logger.Warn("planning run completed with warnings", append(fields, zap.String("message", message))...)
	default:
		logger.Info("planning run completed", fields...)
	}

	tracing.RecordRunResult(trace.SpanFromContext(ctx), status.String(),
		result.Summary.TotalJobs, result.Summary.Scheduled, status == entities.StatusConfigurationError, nil)
	if s.metrics != nil {
		s.metrics.RecordRun(ctx, result.MachineID, status.String(), result.Summary.TotalJobs, result.Summary.Unscheduled)
	}

	s.publish(events.NewPlanCompletedEvent(result.RunID, status, message))
	return result
}

func (s *PlanningService) publish(event events.Event) {
	if s.eventStore == nil {
		return
	}
	if err := s.eventStore.AppendEvent(event.StreamID(), event); err != nil {
		s.logger.Warn("failed to publish planning event",
			zap.String("type", event.Type()), zap.Error(err))
	}
}

// PlanMachines runs one independent plan per machine concurrently. Results
// are returned in machineIDs order; a failed machine leaves a nil entry and
// contributes to the joined error.
func (s *PlanningService) PlanMachines(
	ctx context.Context,
	machineIDs []string,
	req dto.PlanRequest,
) ([]*dto.PlanResult, error) {
	results := make([]*dto.PlanResult, len(machineIDs))
	errs := make([]error, len(machineIDs))

	var wg sync.WaitGroup
	for i, machineID := range machineIDs {
		wg.Add(1)
		go func(i int, machineID string) {
			defer wg.Done()

			machineReq := req
			machineReq.MachineID = machineID
			result, err := s.Plan(ctx, machineReq)
			if err != nil {
				errs[i] = fmt.Errorf("machine %s: %w", machineID, err)
				return
			}
			results[i] = result
		}(i, machineID)
	}
	wg.Wait()

	return results, errors.Join(errs...)
}
