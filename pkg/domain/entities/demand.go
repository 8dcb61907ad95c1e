package entities

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DemandRecord represents the forecast quantity of a part for one day
type DemandRecord struct {
	PartNumber PartNumber
	Date       time.Time
	Quantity   decimal.Decimal
}

// NewDemandRecord creates a validated DemandRecord
func NewDemandRecord(partNumber PartNumber, date time.Time, quantity decimal.Decimal) (*DemandRecord, error) {
	if string(partNumber) == "" {
		return nil, fmt.Errorf("part number cannot be empty")
	}
	if date.IsZero() {
		return nil, fmt.Errorf("forecast date cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, fmt.Errorf("quantity cannot be negative, got %s", quantity)
	}

	return &DemandRecord{
		PartNumber: partNumber,
		Date:       DateOf(date),
		Quantity:   quantity,
	}, nil
}

// DemandPoint is one dated quantity inside a DemandSeries
type DemandPoint struct {
	Date     time.Time
	Quantity decimal.Decimal
}

// DemandSeries is the date-ordered forecast of a single part. Dates need not
// be contiguous; missing days fall back to the series mean.
type DemandSeries struct {
	points []DemandPoint
	byDate map[string]decimal.Decimal
	mean   decimal.Decimal
}

// NewDemandSeries builds a series from points, summing duplicates of the same date
func NewDemandSeries(points []DemandPoint) *DemandSeries {
	byDate := make(map[string]decimal.Decimal, len(points))
	for _, p := range points {
		key := DateKey(p.Date)
		byDate[key] = byDate[key].Add(p.Quantity)
	}

	merged := make([]DemandPoint, 0, len(byDate))
	for key, qty := range byDate {
		date, _ := ParseDate(key)
		merged = append(merged, DemandPoint{Date: date, Quantity: qty})
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Date.Before(merged[j].Date)
	})

	return &DemandSeries{
		points: merged,
		byDate: byDate,
		mean:   fallbackMean(merged),
	}
}

// fallbackMean averages the non-zero quantities; 1 when there are none
func fallbackMean(points []DemandPoint) decimal.Decimal {
	sum := decimal.Zero
	count := 0
	for _, p := range points {
		if p.Quantity.IsZero() {
			continue
		}
		sum = sum.Add(p.Quantity)
		count++
	}
	if count == 0 {
		return decimal.NewFromInt(1)
	}

	mean := sum.Div(decimal.NewFromInt(int64(count)))
	if !mean.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return mean
}

// Points returns the series in date order
func (s *DemandSeries) Points() []DemandPoint {
	return s.points
}

// Len returns the number of dated entries
func (s *DemandSeries) Len() int {
	return len(s.points)
}

// IsEmpty reports whether the series has no entries at all
func (s *DemandSeries) IsEmpty() bool {
	return len(s.points) == 0
}

// Mean returns the fallback quantity used for days without a forecast
func (s *DemandSeries) Mean() decimal.Decimal {
	return s.mean
}

// QuantityOn returns the forecast for date, or the mean when the date is absent
func (s *DemandSeries) QuantityOn(date time.Time) decimal.Decimal {
	if qty, ok := s.byDate[DateKey(date)]; ok {
		return qty
	}
	return s.mean
}

// SumAfter sums the demand of the days date+1 through date+days
func (s *DemandSeries) SumAfter(date time.Time, days int) decimal.Decimal {
	total := decimal.Zero
	for k := 1; k <= days; k++ {
		total = total.Add(s.QuantityOn(AddDays(date, k)))
	}
	return total
}

// MonthlyForecast is one revision of a customer's monthly forecast for a part
type MonthlyForecast struct {
	PartNumber PartNumber
	Month      string
	Customer   string
	Quantity   decimal.Decimal
	Revision   int
}
