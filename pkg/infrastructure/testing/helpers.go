package testing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	redismodule "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/vsinha/moldplan/pkg/domain/entities"
	"github.com/vsinha/moldplan/pkg/infrastructure/repositories/memory"
)

// PressShopMachine is the press used by BuildPressShopTestData
const PressShopMachine = "MC-01"

// PressShopStart is the Monday the press shop forecast starts on
var PressShopStart = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

// BuildPressShopTestData builds a small press shop: three parts on MC-01, one on MC-02,
// three weeks of daily forecast, a March monthly forecast with one unknown part, latest stock
// and a three-shift weekday calendar with one Saturday shift.
func BuildPressShopTestData() *memory.Store {
	store := memory.NewStore()

	parts := []*entities.Part{
		{PartNumber: "BRK-100", Name: "Bracket", CycleTimeSeconds: 30, Cavity: 4, Tonnage: "450T", MachineID: PressShopMachine},
		{PartNumber: "CVR-200", Name: "Cover", CycleTimeSeconds: 45, Cavity: 2, Tonnage: "450T", MachineID: PressShopMachine},
		{PartNumber: "CLP-300", Name: "Clip", CycleTimeSeconds: 20, Cavity: 8, Tonnage: "450T", MachineID: PressShopMachine},
		{PartNumber: "HSG-400", Name: "Housing", CycleTimeSeconds: 60, Cavity: 1, Tonnage: "650T", MachineID: "MC-02"},
	}
	if err := store.LoadParts(parts); err != nil {
		panic(err)
	}

	store.AddMachine(entities.Machine{MachineID: PressShopMachine, Tonnage: "450T", Active: true})
	store.AddMachine(entities.Machine{MachineID: "MC-02", Tonnage: "650T", Active: true})

	daily := map[entities.PartNumber]int64{
		"BRK-100": 1000,
		"CVR-200": 400,
		"CLP-300": 0,
		"HSG-400": 150,
	}
	var demand []*entities.DemandRecord
	for _, part := range parts {
		for d := 0; d < 21; d++ {
			demand = append(demand, &entities.DemandRecord{
				PartNumber: part.PartNumber,
				Date:       entities.AddDays(PressShopStart, d),
				Quantity:   decimal.NewFromInt(daily[part.PartNumber]),
			})
		}
	}
	if err := store.LoadDemand(demand); err != nil {
		panic(err)
	}

	stock := []*entities.StockRecord{
		{PartNumber: "BRK-100", FinishedGoods: decimal.NewNullDecimal(decimal.NewFromInt(3000))},
		{
			PartNumber:     "CVR-200",
			FinishedGoods:  decimal.NewNullDecimal(decimal.NewFromInt(200)),
			WorkInProgress: decimal.NewNullDecimal(decimal.NewFromInt(100)),
		},
		{PartNumber: "CLP-300", FinishedGoods: decimal.NewNullDecimal(decimal.NewFromInt(5000))},
	}
	if err := store.LoadStock(stock); err != nil {
		panic(err)
	}

	monthly := []*entities.MonthlyForecast{
		{PartNumber: "BRK-100", Month: "2025-03", Customer: "ACME", Quantity: decimal.NewFromInt(30000), Revision: 0},
		{PartNumber: "BRK-100", Month: "2025-03", Customer: "ACME", Quantity: decimal.NewFromInt(31000), Revision: 1},
		{PartNumber: "CVR-200", Month: "2025-03", Customer: "ACME", Quantity: decimal.NewFromInt(12000), Revision: 0},
		{PartNumber: "HSG-400", Month: "2025-03", Customer: "Globex", Quantity: decimal.NewFromInt(4500), Revision: 0},
		{PartNumber: "XYZ-999", Month: "2025-03", Customer: "Globex", Quantity: decimal.NewFromInt(100), Revision: 0},
	}
	if err := store.LoadMonthlyForecast(monthly); err != nil {
		panic(err)
	}

	if err := store.LoadShiftRules(BuildShiftRules(3, 1)); err != nil {
		panic(err)
	}

	store.SetCapacityRules(entities.DefaultCapacityRules())
	return store
}

// BuildShiftRules returns a calendar with the given number of weekday and Saturday shifts
func BuildShiftRules(weekdayShifts, saturdayShifts int) []*entities.ShiftRule {
	var rules []*entities.ShiftRule
	for i := 1; i <= weekdayShifts; i++ {
		rules = append(rules, &entities.ShiftRule{DayType: entities.Weekday, ShiftLabel: shiftLabel(i)})
	}
	for i := 1; i <= saturdayShifts; i++ {
		rules = append(rules, &entities.ShiftRule{DayType: entities.Saturday, ShiftLabel: shiftLabel(i)})
	}
	return rules
}

func shiftLabel(i int) string {
	return fmt.Sprintf("Shift%d", i)
}

// SetupRedisContainer starts a disposable redis and skips the test when docker is unavailable
func SetupRedisContainer(ctx context.Context, t *testing.T) (*redis.Client, func()) {
	t.Helper()

	defer func() {
		if r := recover(); r != nil {
			t.Skipf("failed to start redis container: %v", r)
		}
	}()

	container, err := redismodule.Run(ctx, "redis:8-alpine")
	if err != nil {
		t.Skipf("failed to start redis container: %v", err)
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Skipf("failed to get redis endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: endpoint,
	})

	cleanup := func() {
		if err := client.Close(); err != nil {
			t.Logf("failed to close redis client: %v", err)
		}

		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	}

	return client, cleanup
}
