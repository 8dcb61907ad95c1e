package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func day(s string) time.Time {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDemandRecord_Validation(t *testing.T) {
	record, err := NewDemandRecord("P1", time.Date(2025, 3, 3, 15, 4, 0, 0, time.UTC), decimal.NewFromInt(10))
	if err != nil {
		t.Fatalf("Expected valid demand record creation to succeed: %v", err)
	}
	if !record.Date.Equal(day("2025-03-03")) {
		t.Errorf("Expected date truncated to 2025-03-03, got %v", record.Date)
	}

	testCases := []struct {
		name        string
		partNumber  PartNumber
		date        time.Time
		quantity    decimal.Decimal
		expectError string
	}{
		{"empty part number", "", day("2025-03-03"), decimal.NewFromInt(1), "part number cannot be empty"},
		{"zero date", "P1", time.Time{}, decimal.NewFromInt(1), "forecast date cannot be empty"},
		{"negative quantity", "P1", day("2025-03-03"), decimal.NewFromInt(-5), "quantity cannot be negative, got -5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewDemandRecord(tc.partNumber, tc.date, tc.quantity)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestDemandSeries_OrderingAndDuplicates(t *testing.T) {
	series := NewDemandSeries([]DemandPoint{
		{Date: day("2025-03-05"), Quantity: decimal.NewFromInt(30)},
		{Date: day("2025-03-03"), Quantity: decimal.NewFromInt(10)},
		{Date: day("2025-03-05"), Quantity: decimal.NewFromInt(5)},
	})

	points := series.Points()
	if len(points) != 2 {
		t.Fatalf("Expected 2 merged points, got %d", len(points))
	}
	if !points[0].Date.Equal(day("2025-03-03")) {
		t.Errorf("Expected first point on 2025-03-03, got %v", points[0].Date)
	}
	if !points[1].Quantity.Equal(decimal.NewFromInt(35)) {
		t.Errorf("Expected duplicate dates summed to 35, got %s", points[1].Quantity)
	}
}

func TestDemandSeries_FallbackMean(t *testing.T) {
	testCases := []struct {
		name     string
		points   []DemandPoint
		expected decimal.Decimal
	}{
		{"empty series", nil, decimal.NewFromInt(1)},
		{"all zero", []DemandPoint{
			{Date: day("2025-03-03"), Quantity: decimal.Zero},
			{Date: day("2025-03-04"), Quantity: decimal.Zero},
		}, decimal.NewFromInt(1)},
		{"zeros excluded", []DemandPoint{
			{Date: day("2025-03-03"), Quantity: decimal.NewFromInt(100)},
			{Date: day("2025-03-04"), Quantity: decimal.Zero},
			{Date: day("2025-03-05"), Quantity: decimal.NewFromInt(200)},
		}, decimal.NewFromInt(150)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			series := NewDemandSeries(tc.points)
			if !series.Mean().Equal(tc.expected) {
				t.Errorf("Expected mean %s, got %s", tc.expected, series.Mean())
			}
		})
	}
}

func TestDemandSeries_QuantityOnAndSumAfter(t *testing.T) {
	series := NewDemandSeries([]DemandPoint{
		{Date: day("2025-03-03"), Quantity: decimal.NewFromInt(100)},
		{Date: day("2025-03-04"), Quantity: decimal.Zero},
		{Date: day("2025-03-06"), Quantity: decimal.NewFromInt(300)},
	})

	// mean of non-zero entries = 200
	if got := series.QuantityOn(day("2025-03-04")); !got.IsZero() {
		t.Errorf("Expected explicit zero on 2025-03-04, got %s", got)
	}
	if got := series.QuantityOn(day("2025-03-05")); !got.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Expected fallback mean 200 on missing date, got %s", got)
	}

	// 03-04 (0) + 03-05 (200 fallback) + 03-06 (300)
	sum := series.SumAfter(day("2025-03-03"), 3)
	if !sum.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Expected sum 500, got %s", sum)
	}

	if got := series.SumAfter(day("2025-03-03"), 0); !got.IsZero() {
		t.Errorf("Expected zero-day window to sum to 0, got %s", got)
	}
}
