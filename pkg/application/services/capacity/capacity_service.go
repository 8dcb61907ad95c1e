package capacity

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/moldplan/pkg/application/dto"
	"github.com/vsinha/moldplan/pkg/domain/entities"
	"github.com/vsinha/moldplan/pkg/domain/repositories"
)

// CapacityService builds the monthly machine-class load report
type CapacityService struct {
	partRepo     repositories.PartRepository
	demandRepo   repositories.DemandRepository
	calendarRepo repositories.CalendarRepository
	machineRepo  repositories.MachineRepository
	logger       *zap.Logger
}

// NewCapacityService creates a new capacity service
func NewCapacityService(
	partRepo repositories.PartRepository,
	demandRepo repositories.DemandRepository,
	calendarRepo repositories.CalendarRepository,
	machineRepo repositories.MachineRepository,
	logger *zap.Logger,
) *CapacityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CapacityService{
		partRepo:     partRepo,
		demandRepo:   demandRepo,
		calendarRepo: calendarRepo,
		machineRepo:  machineRepo,
		logger:       logger,
	}
}

// Analyze computes per-part requirements and per-class load for a forecast month
func (s *CapacityService) Analyze(ctx context.Context, req dto.CapacityRequest) (*dto.CapacityReport, error) {
	if _, err := time.Parse("2006-01", req.Month); err != nil {
		return nil, fmt.Errorf("%w: month must be YYYY-MM, got %q", entities.ErrInvalidRequest, req.Month)
	}
	if req.WorkingDays < 0 {
		return nil, fmt.Errorf("%w: working days cannot be negative, got %d", entities.ErrInvalidRequest, req.WorkingDays)
	}
	workingDays := req.WorkingDays
	if workingDays == 0 {
		workingDays = DefaultWorkingDays
	}

	forecast, err := s.demandRepo.GetMonthlyForecast(ctx, req.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly forecast: %w", err)
	}
	parts, err := s.partRepo.GetParts(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load parts: %w", err)
	}
	rules, err := s.rules(ctx)
	if err != nil {
		return nil, err
	}

	var machines []*entities.Machine
	if s.machineRepo != nil {
		machines, err = s.machineRepo.GetActiveMachines(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load machines: %w", err)
		}
	}

	latest := LatestRevision(forecast)
	report := &dto.CapacityReport{
		Month:                req.Month,
		WorkingDays:          workingDays,
		EffectiveHoursPerDay: rules.EffectiveHoursPerDay(),
		Parts:                []dto.PartCapacity{},
	}

	master := make(map[entities.PartNumber]*entities.Part, len(parts))
	for _, part := range parts {
		if part != nil {
			master[NormalizePartNumber(string(part.PartNumber))] = part
		}
	}
	for _, row := range latest {
		if part, ok := master[row.PartNumber]; ok {
			report.Parts = append(report.Parts, PartRequirement(row, part, rules))
		}
	}

	// Only classes with a press are reported when the press list is known
	machinesByClass := make(map[string][]string)
	var classes []string
	for _, machine := range machines {
		if _, ok := machinesByClass[machine.Tonnage]; !ok {
			classes = append(classes, machine.Tonnage)
		}
		machinesByClass[machine.Tonnage] = append(machinesByClass[machine.Tonnage], machine.MachineID)
	}

	report.Classes, report.Unmatched = MachineClassLoad(latest, parts, rules, workingDays, classes)

	if len(machinesByClass) > 0 {
		capPerMachine := CapacityDays(workingDays, rules) * HoursPerWorkday
		report.Allocations = make(map[string][]dto.MachineAllocation)
		for _, class := range report.Classes {
			report.Allocations[class.Tonnage] = AllocateHours(class.TotalHours, machinesByClass[class.Tonnage], capPerMachine)
		}
	}

	s.logger.Info("capacity analysis completed",
		zap.String("month", req.Month),
		zap.Int("forecast_rows", len(forecast)),
		zap.Int("parts", len(report.Parts)),
		zap.Int("classes", len(report.Classes)),
		zap.Int("unmatched", len(report.Unmatched)))

	return report, nil
}

func (s *CapacityService) rules(ctx context.Context) (entities.CapacityRules, error) {
	if s.calendarRepo == nil {
		return entities.DefaultCapacityRules(), nil
	}
	rules, err := s.calendarRepo.GetCapacityRules(ctx)
	if err != nil {
		return entities.CapacityRules{}, fmt.Errorf("failed to load capacity rules: %w", err)
	}
	if rules == nil {
		return entities.DefaultCapacityRules(), nil
	}
	return *rules, nil
}
