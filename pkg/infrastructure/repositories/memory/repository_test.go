package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/moldplan/pkg/domain/entities"
)

func day(s string) time.Time {
	d, err := entities.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestPartRepository_FiltersByMachine(t *testing.T) {
	repo := NewPartRepository(3)
	_ = repo.LoadParts([]*entities.Part{
		{PartNumber: "P1", MachineID: "MC-01", CycleTimeSeconds: 30, Cavity: 1},
		{PartNumber: "P2", MachineID: "MC-02", CycleTimeSeconds: 30, Cavity: 1},
		{PartNumber: "P3", MachineID: "MC-01", CycleTimeSeconds: 30, Cavity: 1},
	})

	parts, err := repo.GetParts(context.Background(), "MC-01")
	if err != nil {
		t.Fatalf("Failed to get parts: %v", err)
	}
	if len(parts) != 2 || parts[0].PartNumber != "P1" || parts[1].PartNumber != "P3" {
		t.Errorf("Expected P1, P3 in load order, got %+v", parts)
	}

	all, _ := repo.GetParts(context.Background(), "")
	if len(all) != 3 {
		t.Errorf("Expected 3 parts without a machine filter, got %d", len(all))
	}

	// Returned parts are copies
	all[0].Cavity = 99
	again, _ := repo.GetParts(context.Background(), "")
	if again[0].Cavity != 1 {
		t.Error("Expected repository contents unaffected by caller mutation")
	}
}

func TestPartRepository_ReplacesDuplicate(t *testing.T) {
	repo := NewPartRepository(0)
	repo.AddPart(entities.Part{PartNumber: "P1", Name: "First"})
	repo.AddPart(entities.Part{PartNumber: "P1", Name: "Second"})

	parts, _ := repo.GetParts(context.Background(), "")
	if len(parts) != 1 || parts[0].Name != "Second" {
		t.Errorf("Expected duplicate replaced in place, got %+v", parts)
	}
}

func TestPartRepository_ActiveMachines(t *testing.T) {
	repo := NewPartRepository(0)
	repo.AddMachine(entities.Machine{MachineID: "MC-01", Tonnage: "250T", Active: true})
	repo.AddMachine(entities.Machine{MachineID: "MC-02", Tonnage: "250T", Active: false})

	machines, _ := repo.GetActiveMachines(context.Background())
	if len(machines) != 1 || machines[0].MachineID != "MC-01" {
		t.Errorf("Expected only MC-01, got %+v", machines)
	}
}

func TestDemandRepository_DateWindow(t *testing.T) {
	repo := NewDemandRepository()
	_ = repo.LoadDemand([]*entities.DemandRecord{
		{PartNumber: "P1", Date: day("2025-03-02"), Quantity: decimal.NewFromInt(1)},
		{PartNumber: "P1", Date: day("2025-03-03"), Quantity: decimal.NewFromInt(2)},
		{PartNumber: "P1", Date: day("2025-03-10"), Quantity: decimal.NewFromInt(3)},
		{PartNumber: "P1", Date: day("2025-03-11"), Quantity: decimal.NewFromInt(4)},
		{PartNumber: "P2", Date: day("2025-03-05"), Quantity: decimal.NewFromInt(5)},
	})

	records, err := repo.GetDailyDemand(context.Background(), []entities.PartNumber{"P1"}, day("2025-03-03"), day("2025-03-10"))
	if err != nil {
		t.Fatalf("Failed to get demand: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records within the inclusive window, got %d", len(records))
	}
	if !records[1].Quantity.Equal(decimal.NewFromInt(3)) {
		t.Errorf("Expected the window end included, got %s", records[1].Quantity)
	}
}

func TestDemandRepository_MonthlyForecast(t *testing.T) {
	repo := NewDemandRepository()
	_ = repo.LoadMonthlyForecast([]*entities.MonthlyForecast{
		{PartNumber: "P1", Month: "2025-03", Revision: 1},
		{PartNumber: "P1", Month: "2025-03", Revision: 2},
		{PartNumber: "P1", Month: "2025-04", Revision: 1},
	})

	rows, _ := repo.GetMonthlyForecast(context.Background(), "2025-03")
	if len(rows) != 2 {
		t.Errorf("Expected both March revisions, got %d", len(rows))
	}
}

func TestStockRepository_GetStock(t *testing.T) {
	repo := NewStockRepository()
	_ = repo.LoadStock([]*entities.StockRecord{
		{PartNumber: "P1", FinishedGoods: decimal.NewNullDecimal(decimal.NewFromInt(10))},
		{PartNumber: "P2", FinishedGoods: decimal.NewNullDecimal(decimal.NewFromInt(20))},
	})

	records, _ := repo.GetStock(context.Background(), []entities.PartNumber{"P2", "P9"})
	if len(records) != 1 || records[0].PartNumber != "P2" {
		t.Errorf("Expected only P2, got %+v", records)
	}
}

func TestCalendarRepository_Defaults(t *testing.T) {
	repo := NewCalendarRepository()

	rules, _ := repo.GetCapacityRules(context.Background())
	if *rules != entities.DefaultCapacityRules() {
		t.Errorf("Expected default capacity rules, got %+v", rules)
	}

	repo.SetCapacityRules(entities.CapacityRules{ShiftHours: 8, ShiftsPerDay: 2, Efficiency: 1})
	rules, _ = repo.GetCapacityRules(context.Background())
	if rules.ShiftHours != 8 {
		t.Errorf("Expected configured shift hours 8, got %v", rules.ShiftHours)
	}

	_ = repo.LoadShiftRules([]*entities.ShiftRule{
		{DayType: entities.Weekday, ShiftLabel: "Shift2"},
		{DayType: entities.Weekday, ShiftLabel: "Shift1"},
	})
	shifts, _ := repo.GetShiftRules(context.Background())
	if len(shifts) != 2 || shifts[0].ShiftLabel != "Shift2" {
		t.Errorf("Expected calendar order preserved, got %+v", shifts)
	}
}
