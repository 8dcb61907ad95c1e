package aggregation

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/moldplan/pkg/domain/entities"
)

// PlanningInput is everything the simulator needs for one part
type PlanningInput struct {
	Part           *entities.Part
	Series         *entities.DemandSeries
	StartingStock  decimal.Decimal
	OutputPerShift int64
}

// Result contains the aggregated inputs plus the parts excluded from planning
type Result struct {
	Inputs  []PlanningInput
	Skipped []entities.SkippedPart
	// OrphanDemandRecords counts forecast rows whose part is not in the master list
	OrphanDemandRecords int
}

// Aggregator assembles per-part demand series and starting stock
type Aggregator struct {
	shiftMinutes int
}

// NewAggregator creates an aggregator for the given shift length
func NewAggregator(shiftMinutes int) *Aggregator {
	if shiftMinutes <= 0 {
		shiftMinutes = entities.DefaultShiftMinutes
	}
	return &Aggregator{shiftMinutes: shiftMinutes}
}

// Aggregate builds one PlanningInput per plannable master part, in master order.
// Parts without a usable output per shift are reported in Skipped, never as errors.
func (a *Aggregator) Aggregate(
	parts []*entities.Part,
	demand []*entities.DemandRecord,
	stock []*entities.StockRecord,
) *Result {
	result := &Result{
		Inputs:  make([]PlanningInput, 0, len(parts)),
		Skipped: []entities.SkippedPart{},
	}

	master := make(map[entities.PartNumber]bool, len(parts))
	for _, part := range parts {
		if part != nil {
			master[part.PartNumber] = true
		}
	}

	// Group demand by part
	points := make(map[entities.PartNumber][]entities.DemandPoint, len(parts))
	for _, record := range demand {
		if record == nil {
			continue
		}
		if !master[record.PartNumber] {
			result.OrphanDemandRecords++
			continue
		}
		points[record.PartNumber] = append(points[record.PartNumber], entities.DemandPoint{
			Date:     record.Date,
			Quantity: record.Quantity,
		})
	}

	stockMap := NewStockMapFromRecords(stock)

	seen := make(map[entities.PartNumber]bool, len(parts))
	for _, part := range parts {
		if part == nil || seen[part.PartNumber] {
			continue
		}
		seen[part.PartNumber] = true

		output := part.OutputPerShift(a.shiftMinutes)
		if output <= 0 {
			result.Skipped = append(result.Skipped, entities.SkippedPart{
				PartNumber: part.PartNumber,
				Reason:     entities.SkipZeroOutput,
			})
			continue
		}

		result.Inputs = append(result.Inputs, PlanningInput{
			Part:           part,
			Series:         entities.NewDemandSeries(points[part.PartNumber]),
			StartingStock:  stockMap.Get(part.PartNumber),
			OutputPerShift: output,
		})
	}

	return result
}
