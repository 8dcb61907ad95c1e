package capacity

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/vsinha/moldplan/pkg/application/dto"
	"github.com/vsinha/moldplan/pkg/domain/entities"
	"github.com/vsinha/moldplan/pkg/domain/repositories"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculator_ZeroSafe(t *testing.T) {
	testCases := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"output per hour", OutputPerHour(30, 4, 0.9), 432},
		{"output per hour zero cycle", OutputPerHour(0, 4, 0.9), 0},
		{"required hours", RequiredHours(864, 432), 2},
		{"required hours zero output", RequiredHours(864, 0), 0},
		{"required days", RequiredDays(37.8, 18.9), 2},
		{"required days zero hours per day", RequiredDays(10, 0), 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if !approx(tc.got, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, tc.got)
			}
		})
	}
}

func TestAllocateHours(t *testing.T) {
	allocations := AllocateHours(250, []string{"MC-01", "MC-02", "MC-03"}, 100)

	expected := []float64{100, 100, 50}
	for i, a := range allocations {
		if a.AssignedHours != expected[i] {
			t.Errorf("Machine %s: expected %v hours, got %v", a.MachineID, expected[i], a.AssignedHours)
		}
	}

	overflow := AllocateHours(500, []string{"MC-01"}, 100)
	if len(overflow) != 1 || overflow[0].AssignedHours != 100 {
		t.Errorf("Expected single machine capped at 100, got %+v", overflow)
	}

	idle := AllocateHours(0, []string{"MC-01", "MC-02"}, 100)
	for _, a := range idle {
		if a.AssignedHours != 0 {
			t.Errorf("Expected zero hours for %s, got %v", a.MachineID, a.AssignedHours)
		}
	}
}

func TestLatestRevision(t *testing.T) {
	rows := []*entities.MonthlyForecast{
		{PartNumber: " p1 ", Revision: 1, Quantity: decimal.NewFromInt(100)},
		{PartNumber: "P1", Revision: 3, Quantity: decimal.NewFromInt(300)},
		{PartNumber: "p1", Revision: 2, Quantity: decimal.NewFromInt(200)},
		{PartNumber: "P2", Revision: 0, Quantity: decimal.NewFromInt(50)},
		nil,
	}

	latest := LatestRevision(rows)
	if len(latest) != 2 {
		t.Fatalf("Expected 2 parts, got %d", len(latest))
	}
	if latest[0].PartNumber != "P1" || !latest[0].Quantity.Equal(decimal.NewFromInt(300)) {
		t.Errorf("Expected P1 revision 3 with 300, got %s %s", latest[0].PartNumber, latest[0].Quantity)
	}
	if rows[0].PartNumber != " p1 " {
		t.Error("Expected input rows left untouched")
	}
}

func TestMachineClassLoad(t *testing.T) {
	rules := entities.DefaultCapacityRules()
	parts := []*entities.Part{
		{PartNumber: "A", CycleTimeSeconds: 36, Cavity: 1, Tonnage: "250T"},
		{PartNumber: "B", CycleTimeSeconds: 72, Cavity: 2, Tonnage: "250T"},
		{PartNumber: "C", CycleTimeSeconds: 60, Cavity: 1, Tonnage: "1500T"},
		{PartNumber: "D", CycleTimeSeconds: 60, Cavity: 1},
	}
	forecast := []*entities.MonthlyForecast{
		{PartNumber: "a", Quantity: decimal.NewFromInt(1000)}, // 10 h
		{PartNumber: "B", Quantity: decimal.NewFromInt(500)},  // 10 h
		{PartNumber: "C", Quantity: decimal.NewFromInt(60)},   // 1 h
		{PartNumber: "D", Quantity: decimal.NewFromInt(1)},
		{PartNumber: "GHOST", Quantity: decimal.NewFromInt(1)},
	}

	loads, unmatched := MachineClassLoad(forecast, parts, rules, 30, nil)

	if len(unmatched) != 2 {
		t.Errorf("Expected 2 unmatched rows, got %v", unmatched)
	}
	if len(loads) != 2 || loads[0].Tonnage != "250T" || loads[1].Tonnage != "1500T" {
		t.Fatalf("Expected classes ordered 250T, 1500T, got %+v", loads)
	}

	small := loads[0]
	if !approx(small.ProductionHours, 20) {
		t.Errorf("Expected 20 production hours, got %v", small.ProductionHours)
	}
	if !approx(small.ChangeoverHours, 0.5) {
		t.Errorf("Expected 0.5 changeover hours for 2 parts, got %v", small.ChangeoverHours)
	}
	if !approx(small.TotalHours, 20.75) {
		t.Errorf("Expected 20.75 total hours, got %v", small.TotalHours)
	}
	// 24 * 30 * 0.9 / 8
	if !approx(small.CapacityDays, 81) {
		t.Errorf("Expected 81 capacity days, got %v", small.CapacityDays)
	}

	single := loads[1]
	if single.ChangeoverHours != 0 {
		t.Errorf("Expected no changeover for a single part, got %v", single.ChangeoverHours)
	}

	filtered, _ := MachineClassLoad(forecast, parts, rules, 30, []string{"1500T"})
	if len(filtered) != 1 || filtered[0].Tonnage != "1500T" {
		t.Errorf("Expected only 1500T, got %+v", filtered)
	}
}

func TestClassifyLoad(t *testing.T) {
	testCases := []struct {
		days     float64
		expected LoadStatus
	}{
		{10, VerySafe},
		{20, Safe},
		{22, Safe},
		{23, NeedOvertime},
		{26, NeedOvertime},
		{26.5, NeedAdjustment},
	}

	for _, tc := range testCases {
		if got := ClassifyLoad(tc.days); got != tc.expected {
			t.Errorf("%v days: expected %s, got %s", tc.days, tc.expected, got)
		}
	}
}

func TestCapacityService_Analyze(t *testing.T) {
	ctrl := gomock.NewController(t)
	partRepo := repositories.NewMockPartRepository(ctrl)
	demandRepo := repositories.NewMockDemandRepository(ctrl)
	calendarRepo := repositories.NewMockCalendarRepository(ctrl)
	machineRepo := repositories.NewMockMachineRepository(ctrl)

	partRepo.EXPECT().GetParts(gomock.Any(), "").Return([]*entities.Part{
		{PartNumber: "A", Name: "Housing", CycleTimeSeconds: 36, Cavity: 1, Tonnage: "250T"},
		{PartNumber: "C", Name: "Frame", CycleTimeSeconds: 60, Cavity: 1, Tonnage: "850T"},
	}, nil)
	demandRepo.EXPECT().GetMonthlyForecast(gomock.Any(), "2025-03").Return([]*entities.MonthlyForecast{
		{PartNumber: "A", Revision: 1, Quantity: decimal.NewFromInt(500)},
		{PartNumber: "A", Revision: 2, Quantity: decimal.NewFromInt(1000)},
		{PartNumber: "C", Revision: 1, Quantity: decimal.NewFromInt(60)},
	}, nil)
	calendarRepo.EXPECT().GetCapacityRules(gomock.Any()).Return(nil, nil)
	machineRepo.EXPECT().GetActiveMachines(gomock.Any()).Return([]*entities.Machine{
		{MachineID: "MC-01", Tonnage: "250T", Active: true},
		{MachineID: "MC-02", Tonnage: "250T", Active: true},
	}, nil)

	service := NewCapacityService(partRepo, demandRepo, calendarRepo, machineRepo, zap.NewNop())
	report, err := service.Analyze(context.Background(), dto.CapacityRequest{Month: "2025-03"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if report.WorkingDays != DefaultWorkingDays {
		t.Errorf("Expected default working days, got %d", report.WorkingDays)
	}
	if len(report.Parts) != 2 {
		t.Fatalf("Expected 2 part rows, got %d", len(report.Parts))
	}
	if !report.Parts[0].ForecastQty.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Expected latest revision quantity 1000, got %s", report.Parts[0].ForecastQty)
	}
	if len(report.Classes) != 1 || report.Classes[0].Tonnage != "250T" {
		t.Fatalf("Expected only the 250T class with presses, got %+v", report.Classes)
	}

	allocations := report.Allocations["250T"]
	if len(allocations) != 2 || !approx(allocations[0].AssignedHours, report.Classes[0].TotalHours) {
		t.Errorf("Expected all hours on the first press, got %+v", allocations)
	}
}

func TestCapacityService_InvalidMonth(t *testing.T) {
	service := NewCapacityService(nil, nil, nil, nil, nil)

	_, err := service.Analyze(context.Background(), dto.CapacityRequest{Month: "March"})
	if !errors.Is(err, entities.ErrInvalidRequest) {
		t.Errorf("Expected ErrInvalidRequest, got %v", err)
	}
}
