package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vsinha/moldplan/pkg/application/dto"
	"github.com/vsinha/moldplan/pkg/domain/entities"
	csvrepo "github.com/vsinha/moldplan/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/moldplan/pkg/infrastructure/repositories/memory"
)

// FileName is the scenario file looked up inside a scenario directory
const FileName = "scenario.yaml"

// Scenario holds the run parameters and optional shift calendar of a scenario directory.
// Zero values leave the caller's defaults in place.
type Scenario struct {
	MachineID       string         `yaml:"machine_id"`
	StartDate       string         `yaml:"start_date"`
	HorizonDays     int            `yaml:"horizon_days"`
	MinCoverageDays int            `yaml:"min_coverage_days"`
	MaxCoverageDays int            `yaml:"max_coverage_days"`
	ShiftMinutes    int            `yaml:"shift_minutes"`
	TimeLimit       time.Duration  `yaml:"time_limit"`
	Shifts          *ShiftCalendar `yaml:"shifts,omitempty"`
}

// ShiftCalendar lists the shift labels worked per day type, in slot order
type ShiftCalendar struct {
	Weekday  []string `yaml:"weekday"`
	Saturday []string `yaml:"saturday"`
	Sunday   []string `yaml:"sunday"`
}

// LoadScenario loads and validates a scenario file
func LoadScenario(filename string) (*Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

func validateScenario(scenario *Scenario) error {
	if scenario.StartDate != "" {
		if _, err := entities.ParseDate(scenario.StartDate); err != nil {
			return fmt.Errorf("start_date must be YYYY-MM-DD, got %q", scenario.StartDate)
		}
	}
	if scenario.HorizonDays < 0 || scenario.HorizonDays > dto.MaxHorizonDays {
		return fmt.Errorf("horizon_days must be between 1 and %d", dto.MaxHorizonDays)
	}
	if scenario.MinCoverageDays < 0 || scenario.MaxCoverageDays < 0 {
		return errors.New("coverage days cannot be negative")
	}
	if scenario.ShiftMinutes < 0 {
		return errors.New("shift_minutes cannot be negative")
	}
	if scenario.TimeLimit < 0 {
		return errors.New("time_limit cannot be negative")
	}
	if scenario.Shifts != nil {
		if _, err := scenario.Shifts.Rules(); err != nil {
			return err
		}
	}
	return nil
}

// Rules converts the calendar to shift rules, weekday shifts first
func (c *ShiftCalendar) Rules() ([]*entities.ShiftRule, error) {
	var rules []*entities.ShiftRule
	for _, group := range []struct {
		dayType entities.DayType
		labels  []string
	}{
		{entities.Weekday, c.Weekday},
		{entities.Saturday, c.Saturday},
		{entities.Sunday, c.Sunday},
	} {
		for _, label := range group.labels {
			rule, err := entities.NewShiftRule(group.dayType.String(), label)
			if err != nil {
				return nil, fmt.Errorf("shifts.%s: %w", group.dayType, err)
			}
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

// Apply overlays the scenario's non-zero parameters onto req
func (s *Scenario) Apply(req dto.PlanRequest) dto.PlanRequest {
	if s.MachineID != "" {
		req.MachineID = s.MachineID
	}
	if s.StartDate != "" {
		if start, err := entities.ParseDate(s.StartDate); err == nil {
			req.StartDate = start
		}
	}
	if s.HorizonDays > 0 {
		req.HorizonDays = s.HorizonDays
	}
	if s.MinCoverageDays > 0 {
		req.MinCoverageDays = s.MinCoverageDays
	}
	if s.MaxCoverageDays > 0 {
		req.MaxCoverageDays = s.MaxCoverageDays
	}
	if s.ShiftMinutes > 0 {
		req.ShiftMinutes = s.ShiftMinutes
	}
	if s.TimeLimit > 0 {
		req.TimeLimit = s.TimeLimit
	}
	return req
}

// LoadDirectory loads the CSV tables of dir into a store and overlays scenario.yaml when present.
// A shift calendar in scenario.yaml replaces shifts.csv.
func LoadDirectory(dir string) (*memory.Store, *Scenario, error) {
	store, err := csvrepo.NewLoader().LoadDirectory(dir)
	if err != nil {
		return nil, nil, err
	}

	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return store, &Scenario{}, nil
	}

	scenario, err := LoadScenario(path)
	if err != nil {
		return nil, nil, err
	}

	if scenario.Shifts != nil {
		rules, err := scenario.Shifts.Rules()
		if err != nil {
			return nil, nil, err
		}
		if err := store.ReplaceShiftRules(rules); err != nil {
			return nil, nil, err
		}
	}

	return store, scenario, nil
}
