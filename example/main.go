package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/moldplan/pkg/application/dto"
	"github.com/vsinha/moldplan/pkg/application/services/planning"
	"github.com/vsinha/moldplan/pkg/domain/entities"
	"github.com/vsinha/moldplan/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	store := memory.NewStore()
	setupBracketLine(store, start)

	service := planning.NewPlanningService(store, store, store, store, nil)
	result, err := service.Plan(ctx, dto.PlanRequest{
		MachineID:       "MC-07",
		StartDate:       start,
		HorizonDays:     14,
		MinCoverageDays: 2,
		MaxCoverageDays: 15,
		ShiftMinutes:    entities.DefaultShiftMinutes,
		TimeLimit:       10 * time.Second,
	})
	if err != nil {
		fmt.Printf("Error running planner: %v\n", err)
		return
	}

	fmt.Printf("Status: %s (%s)\n", result.Status, result.Message)
	fmt.Printf("Jobs: %d, slots: %d, scheduled: %d\n\n", len(result.Jobs), len(result.Slots), len(result.Schedule))
	for _, row := range result.Schedule {
		fmt.Printf("  %s %-7s %-8s %s\n", entities.DateKey(row.Date), row.ShiftLabel, row.PartNumber, row.JobID)
	}
	for _, job := range result.Unscheduled {
		fmt.Printf("  unscheduled: %s\n", job.ID)
	}
}

// setupBracketLine loads two parts sharing one 450T press with a two-shift weekday calendar
func setupBracketLine(store *memory.Store, start time.Time) {
	parts := []*entities.Part{
		{PartNumber: "BRK-L", Name: "Bracket Left", CycleTimeSeconds: 32, Cavity: 2, Tonnage: "450T", MachineID: "MC-07"},
		{PartNumber: "BRK-R", Name: "Bracket Right", CycleTimeSeconds: 32, Cavity: 2, Tonnage: "450T", MachineID: "MC-07"},
	}
	if err := store.LoadParts(parts); err != nil {
		panic(err)
	}

	var demand []*entities.DemandRecord
	for d := 0; d < 45; d++ {
		date := entities.AddDays(start, d)
		for _, part := range parts {
			demand = append(demand, &entities.DemandRecord{PartNumber: part.PartNumber, Date: date, Quantity: decimal.NewFromInt(600)})
		}
	}
	if err := store.LoadDemand(demand); err != nil {
		panic(err)
	}

	if err := store.LoadStock([]*entities.StockRecord{
		{PartNumber: "BRK-L", FinishedGoods: decimal.NewNullDecimal(decimal.NewFromInt(900))},
		{PartNumber: "BRK-R", FinishedGoods: decimal.NewNullDecimal(decimal.NewFromInt(2400))},
	}); err != nil {
		panic(err)
	}

	var rules []*entities.ShiftRule
	for _, label := range []string{"Shift1", "Shift2"} {
		rule, err := entities.NewShiftRule("WEEKDAY", label)
		if err != nil {
			panic(err)
		}
		rules = append(rules, rule)
	}
	if err := store.LoadShiftRules(rules); err != nil {
		panic(err)
	}
}
