package aggregation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/moldplan/pkg/domain/entities"
)

func date(s string) time.Time {
	d, err := entities.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func qty(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func TestAggregator_CombinesDemandAndStock(t *testing.T) {
	parts := []*entities.Part{
		{PartNumber: "P1", Name: "Bracket", CycleTimeSeconds: 30, Cavity: 4},
		{PartNumber: "P2", Name: "Cover", CycleTimeSeconds: 60, Cavity: 2},
	}
	demand := []*entities.DemandRecord{
		{PartNumber: "P1", Date: date("2025-03-04"), Quantity: qty(200)},
		{PartNumber: "P1", Date: date("2025-03-03"), Quantity: qty(100)},
		{PartNumber: "P9", Date: date("2025-03-03"), Quantity: qty(5)},
	}
	stock := []*entities.StockRecord{
		{
			PartNumber:     "P1",
			FinishedGoods:  decimal.NewNullDecimal(qty(500)),
			WorkInProgress: decimal.NewNullDecimal(qty(250)),
		},
		{
			PartNumber:    "P2",
			FinishedGoods: decimal.NewNullDecimal(qty(40)),
		},
	}

	result := NewAggregator(entities.DefaultShiftMinutes).Aggregate(parts, demand, stock)

	if len(result.Inputs) != 2 {
		t.Fatalf("Expected 2 planning inputs, got %d", len(result.Inputs))
	}
	if result.OrphanDemandRecords != 1 {
		t.Errorf("Expected 1 orphan demand record, got %d", result.OrphanDemandRecords)
	}

	p1 := result.Inputs[0]
	if p1.Part.PartNumber != "P1" {
		t.Fatalf("Expected master order preserved, got %s first", p1.Part.PartNumber)
	}
	if !p1.StartingStock.Equal(qty(750)) {
		t.Errorf("Expected P1 stock 750, got %s", p1.StartingStock)
	}
	if p1.OutputPerShift != 3360 {
		t.Errorf("Expected P1 output per shift 3360, got %d", p1.OutputPerShift)
	}
	points := p1.Series.Points()
	if len(points) != 2 || !points[0].Date.Equal(date("2025-03-03")) {
		t.Errorf("Expected P1 series sorted by date, got %+v", points)
	}

	p2 := result.Inputs[1]
	if !p2.StartingStock.Equal(qty(40)) {
		t.Errorf("Expected P2 stock 40 with missing WIP, got %s", p2.StartingStock)
	}
	if !p2.Series.IsEmpty() {
		t.Errorf("Expected empty series for P2, got %d points", p2.Series.Len())
	}
}

func TestAggregator_SkipsZeroOutputParts(t *testing.T) {
	parts := []*entities.Part{
		{PartNumber: "NOCT", CycleTimeSeconds: 0, Cavity: 4},
		{PartNumber: "NOCAV", CycleTimeSeconds: 30, Cavity: 0},
		{PartNumber: "SLOW", CycleTimeSeconds: 30000, Cavity: 1},
		{PartNumber: "OK", CycleTimeSeconds: 30, Cavity: 1},
	}

	result := NewAggregator(entities.DefaultShiftMinutes).Aggregate(parts, nil, nil)

	if len(result.Inputs) != 1 || result.Inputs[0].Part.PartNumber != "OK" {
		t.Fatalf("Expected only OK to be plannable, got %+v", result.Inputs)
	}
	if len(result.Skipped) != 3 {
		t.Fatalf("Expected 3 skipped parts, got %d", len(result.Skipped))
	}
	for _, skipped := range result.Skipped {
		if skipped.Reason != entities.SkipZeroOutput {
			t.Errorf("Expected %s skipped for zero output, got %s", skipped.PartNumber, skipped.Reason)
		}
	}
	if !result.Inputs[0].StartingStock.IsZero() {
		t.Errorf("Expected missing stock to default to 0, got %s", result.Inputs[0].StartingStock)
	}
}

func TestAggregator_DeduplicatesMasterParts(t *testing.T) {
	parts := []*entities.Part{
		{PartNumber: "P1", CycleTimeSeconds: 30, Cavity: 1},
		{PartNumber: "P1", CycleTimeSeconds: 30, Cavity: 1},
		nil,
	}

	result := NewAggregator(0).Aggregate(parts, nil, nil)
	if len(result.Inputs) != 1 {
		t.Errorf("Expected duplicate master rows planned once, got %d inputs", len(result.Inputs))
	}
}

func TestStockMap_SumsMultipleRecords(t *testing.T) {
	stockMap := NewStockMapFromRecords([]*entities.StockRecord{
		{PartNumber: "P1", FinishedGoods: decimal.NewNullDecimal(qty(10))},
		{PartNumber: "P1", WorkInProgress: decimal.NewNullDecimal(qty(-3))},
		nil,
	})

	if !stockMap.Get("P1").Equal(qty(7)) {
		t.Errorf("Expected combined stock 7, got %s", stockMap.Get("P1"))
	}
	if stockMap.Has("P2") {
		t.Error("Expected no entry for P2")
	}
	if !stockMap.Get("P2").IsZero() {
		t.Errorf("Expected zero stock for unknown part, got %s", stockMap.Get("P2"))
	}
}
