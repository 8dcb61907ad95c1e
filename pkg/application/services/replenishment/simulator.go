package replenishment

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/moldplan/pkg/application/services/aggregation"
	"github.com/vsinha/moldplan/pkg/domain/entities"
)

const (
	DefaultMinCoverageDays = 2
	DefaultMaxCoverageDays = 15
)

// Config holds the min-max coverage policy
type Config struct {
	// MinCoverageDays is the trigger window: replenish when stock cannot cover it
	MinCoverageDays int
	// MaxCoverageDays is the refill target window
	MaxCoverageDays int
}

// DefaultConfig returns the standard 2/15 day coverage policy
func DefaultConfig() Config {
	return Config{
		MinCoverageDays: DefaultMinCoverageDays,
		MaxCoverageDays: DefaultMaxCoverageDays,
	}
}

// Validate checks the coverage windows
func (c Config) Validate() error {
	if c.MinCoverageDays < 1 {
		return fmt.Errorf("min coverage days must be positive, got %d", c.MinCoverageDays)
	}
	if c.MaxCoverageDays < c.MinCoverageDays {
		return fmt.Errorf("max coverage days (%d) cannot be less than min coverage days (%d)",
			c.MaxCoverageDays, c.MinCoverageDays)
	}
	return nil
}

// Trigger records one replenishment decision
type Trigger struct {
	PartNumber     entities.PartNumber
	Date           time.Time
	ProjectedStock decimal.Decimal // after the day's demand, before the credit
	NearTermNeed   decimal.Decimal
	TargetNeed     decimal.Decimal
	Deficit        decimal.Decimal
	Shifts         int
}

// Result contains the simulated tickets and the parts that produced none for lack of data
type Result struct {
	Tickets  []entities.JobTicket
	Triggers []Trigger
	Skipped  []entities.SkippedPart
}

// Simulator runs a day-by-day (s, S) reorder policy per part
type Simulator struct {
	config Config
}

// NewSimulator creates a simulator with the given policy
func NewSimulator(config Config) *Simulator {
	return &Simulator{config: config}
}

// Run simulates every input over [start, start+horizonDays) and emits one
// single-shift ticket per required shift. Output is ordered by input, then day.
func (s *Simulator) Run(inputs []aggregation.PlanningInput, start time.Time, horizonDays int) (*Result, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	if horizonDays < 0 {
		return nil, fmt.Errorf("horizon days cannot be negative, got %d", horizonDays)
	}

	result := &Result{
		Tickets:  []entities.JobTicket{},
		Triggers: []Trigger{},
		Skipped:  []entities.SkippedPart{},
	}
	start = entities.DateOf(start)

	for _, input := range inputs {
		if input.Series == nil || input.Series.IsEmpty() {
			result.Skipped = append(result.Skipped, entities.SkippedPart{
				PartNumber: input.Part.PartNumber,
				Reason:     entities.SkipNoDemand,
			})
			continue
		}
		// Guarded upstream; never divide by a zero output
		if input.OutputPerShift <= 0 {
			result.Skipped = append(result.Skipped, entities.SkippedPart{
				PartNumber: input.Part.PartNumber,
				Reason:     entities.SkipZeroOutput,
			})
			continue
		}

		tickets, triggers, err := s.simulatePart(input, start, horizonDays)
		if err != nil {
			return nil, fmt.Errorf("failed to simulate part %s: %w", input.Part.PartNumber, err)
		}
		result.Tickets = append(result.Tickets, tickets...)
		result.Triggers = append(result.Triggers, triggers...)
	}

	return result, nil
}

func (s *Simulator) simulatePart(
	input aggregation.PlanningInput,
	start time.Time,
	horizonDays int,
) ([]entities.JobTicket, []Trigger, error) {
	var tickets []entities.JobTicket
	var triggers []Trigger

	output := decimal.NewFromInt(input.OutputPerShift)
	projected := input.StartingStock

	for d := 0; d < horizonDays; d++ {
		current := entities.AddDays(start, d)

		projected = projected.Sub(input.Series.QuantityOn(current))

		nearTerm := input.Series.SumAfter(current, s.config.MinCoverageDays)
		if !projected.LessThan(nearTerm) {
			continue
		}

		target := input.Series.SumAfter(current, s.config.MaxCoverageDays)
		deficit := target.Sub(projected)
		if !deficit.IsPositive() {
			deficit = decimal.NewFromInt(1)
		}

		shifts := int(deficit.Div(output).Ceil().IntPart())
		if shifts < 1 {
			shifts = 1
		}

		for i := 0; i < shifts; i++ {
			ticket, err := entities.NewJobTicket(input.Part, current, i)
			if err != nil {
				return nil, nil, err
			}
			tickets = append(tickets, *ticket)
		}

		triggers = append(triggers, Trigger{
			PartNumber:     input.Part.PartNumber,
			Date:           current,
			ProjectedStock: projected,
			NearTermNeed:   nearTerm,
			TargetNeed:     target,
			Deficit:        deficit,
			Shifts:         shifts,
		})

		// The run is credited immediately so the same shortage does not re-trigger tomorrow
		projected = projected.Add(output.Mul(decimal.NewFromInt(int64(shifts))))
	}

	return tickets, triggers, nil
}
