package postgres

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vsinha/moldplan/pkg/domain/entities"
)

func TestMergeStock(t *testing.T) {
	parts := []entities.PartNumber{"P1", "P2", "P3", "P1"}
	fg := []stockRow{
		{PartNo: "P1", Stock: decimal.NewNullDecimal(decimal.NewFromInt(100))},
		{PartNo: "P2", Stock: decimal.NewNullDecimal(decimal.NewFromInt(40))},
		{PartNo: "OTHER", Stock: decimal.NewNullDecimal(decimal.NewFromInt(999))},
	}
	wip := []stockRow{
		{PartNo: "P1", Stock: decimal.NewNullDecimal(decimal.NewFromInt(25))},
	}

	records := mergeStock(parts, fg, wip)

	if len(records) != 3 {
		t.Fatalf("Expected one record per distinct part, got %d", len(records))
	}
	if !records[0].Total().Equal(decimal.NewFromInt(125)) {
		t.Errorf("Expected P1 total 125, got %s", records[0].Total())
	}
	if records[1].WorkInProgress.Valid {
		t.Error("Expected P2 WIP to stay null")
	}
	if !records[2].Total().IsZero() {
		t.Errorf("Expected P3 with no stock rows to total 0, got %s", records[2].Total())
	}
}

func TestRowConversions(t *testing.T) {
	part, err := masterRow{PartNo: " P1 ", PartName: "Bracket", CycleTime: 30, Cavity: 4, Tonnage: "450T", MachineID: "MC-01"}.toEntity()
	if err != nil {
		t.Fatalf("Expected master row conversion to succeed: %v", err)
	}
	if part.PartNumber != "P1" || part.OutputPerShift(entities.DefaultShiftMinutes) != 3360 {
		t.Errorf("Unexpected part %+v", part)
	}

	if _, err := (masterRow{PartNo: "", CycleTime: 30}).toEntity(); err == nil {
		t.Error("Expected error for empty part number")
	}

	machine := machineRow{MachineID: "MC-01", Tonnage: "450", Status: "active"}.toEntity()
	if !machine.Active {
		t.Error("Expected case-insensitive active status")
	}

	rules := rulesRow{ShiftHours: 8, ShiftPerDay: 2, Efficiency: 0.85, DandoryMin: 45, StartupMin: 10}.toEntity()
	if rules.ChangeoverMinutes != 45 || rules.EffectiveHoursPerDay() != 13.6 {
		t.Errorf("Unexpected rules %+v", rules)
	}
}
