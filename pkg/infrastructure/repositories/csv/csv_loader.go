package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/moldplan/pkg/domain/entities"
	"github.com/vsinha/moldplan/pkg/infrastructure/repositories/memory"
)

// Scenario directory file names
const (
	PartsFile           = "parts.csv"
	ForecastFile        = "forecast.csv"
	StockFile           = "stock.csv"
	ShiftsFile          = "shifts.csv"
	MachinesFile        = "machines.csv"
	MonthlyForecastFile = "forecast_monthly.csv"
	RulesFile           = "rules.csv"
)

var (
	partsHeader           = []string{"part_no", "part_name", "cycle_time", "cavity", "tonnage", "machine_id"}
	forecastHeader        = []string{"part_no", "forecast_date", "qty"}
	stockHeader           = []string{"part_no", "fg_stock", "wip_stock"}
	shiftsHeader          = []string{"day_type", "shift_name"}
	machinesHeader        = []string{"machine_id", "tonnage", "status"}
	monthlyForecastHeader = []string{"forecast_month", "part_no", "customer_name", "forecast_qty_monthly", "revision_no"}
	rulesHeader           = []string{"shift_hours", "shift_per_day", "efficiency", "dandory_min", "startup_min"}
)

// Loader handles loading planning data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadParts loads the part master from a CSV file
func (l *Loader) LoadParts(filename string) ([]*entities.Part, error) {
	records, err := readTable(filename, "parts", partsHeader, false)
	if err != nil {
		return nil, err
	}

	var parts []*entities.Part
	for i, record := range records {
		part, err := parsePart(record)
		if err != nil {
			return nil, fmt.Errorf("parts CSV row %d: %w", i+2, err)
		}
		parts = append(parts, part)
	}

	return parts, nil
}

// LoadForecast loads daily forecast records from a CSV file
func (l *Loader) LoadForecast(filename string) ([]*entities.DemandRecord, error) {
	records, err := readTable(filename, "forecast", forecastHeader, true)
	if err != nil {
		return nil, err
	}

	var demand []*entities.DemandRecord
	for i, record := range records {
		date, err := entities.ParseDate(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("forecast CSV row %d: invalid forecast_date format: %s (expected YYYY-MM-DD)", i+2, record[1])
		}
		quantity, err := decimal.NewFromString(strings.TrimSpace(record[2]))
		if err != nil {
			return nil, fmt.Errorf("forecast CSV row %d: invalid qty: %s", i+2, record[2])
		}

		demandRecord, err := entities.NewDemandRecord(entities.PartNumber(strings.TrimSpace(record[0])), date, quantity)
		if err != nil {
			return nil, fmt.Errorf("forecast CSV row %d: %w", i+2, err)
		}
		demand = append(demand, demandRecord)
	}

	return demand, nil
}

// LoadStock loads latest FG and WIP levels from a CSV file. Blank cells are absent values.
func (l *Loader) LoadStock(filename string) ([]*entities.StockRecord, error) {
	records, err := readTable(filename, "stock", stockHeader, true)
	if err != nil {
		return nil, err
	}

	var stock []*entities.StockRecord
	for i, record := range records {
		finishedGoods, err := parseOptionalDecimal(record[1])
		if err != nil {
			return nil, fmt.Errorf("stock CSV row %d: invalid fg_stock: %s", i+2, record[1])
		}
		workInProgress, err := parseOptionalDecimal(record[2])
		if err != nil {
			return nil, fmt.Errorf("stock CSV row %d: invalid wip_stock: %s", i+2, record[2])
		}

		stockRecord, err := entities.NewStockRecord(entities.PartNumber(strings.TrimSpace(record[0])), finishedGoods, workInProgress)
		if err != nil {
			return nil, fmt.Errorf("stock CSV row %d: %w", i+2, err)
		}
		stock = append(stock, stockRecord)
	}

	return stock, nil
}

// LoadShiftRules loads the shift calendar from a CSV file. A header-only file is an empty calendar.
func (l *Loader) LoadShiftRules(filename string) ([]*entities.ShiftRule, error) {
	records, err := readTable(filename, "shifts", shiftsHeader, true)
	if err != nil {
		return nil, err
	}

	var rules []*entities.ShiftRule
	for i, record := range records {
		rule, err := entities.NewShiftRule(record[0], record[1])
		if err != nil {
			return nil, fmt.Errorf("shifts CSV row %d: %w", i+2, err)
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

// LoadMachines loads the press list from a CSV file
func (l *Loader) LoadMachines(filename string) ([]*entities.Machine, error) {
	records, err := readTable(filename, "machines", machinesHeader, true)
	if err != nil {
		return nil, err
	}

	var machines []*entities.Machine
	for i, record := range records {
		machineID := strings.TrimSpace(record[0])
		if machineID == "" {
			return nil, fmt.Errorf("machines CSV row %d: machine_id cannot be empty", i+2)
		}
		machines = append(machines, &entities.Machine{
			MachineID: machineID,
			Tonnage:   strings.TrimSpace(record[1]),
			Active:    strings.EqualFold(strings.TrimSpace(record[2]), "active"),
		})
	}

	return machines, nil
}

// LoadMonthlyForecast loads monthly forecast revisions from a CSV file
func (l *Loader) LoadMonthlyForecast(filename string) ([]*entities.MonthlyForecast, error) {
	records, err := readTable(filename, "monthly forecast", monthlyForecastHeader, true)
	if err != nil {
		return nil, err
	}

	var rows []*entities.MonthlyForecast
	for i, record := range records {
		quantity, err := decimal.NewFromString(strings.TrimSpace(record[3]))
		if err != nil {
			return nil, fmt.Errorf("monthly forecast CSV row %d: invalid forecast_qty_monthly: %s", i+2, record[3])
		}
		revision, err := strconv.Atoi(strings.TrimSpace(record[4]))
		if err != nil {
			return nil, fmt.Errorf("monthly forecast CSV row %d: invalid revision_no: %s", i+2, record[4])
		}

		rows = append(rows, &entities.MonthlyForecast{
			Month:      strings.TrimSpace(record[0]),
			PartNumber: entities.PartNumber(strings.TrimSpace(record[1])),
			Customer:   strings.TrimSpace(record[2]),
			Quantity:   quantity,
			Revision:   revision,
		})
	}

	return rows, nil
}

// LoadCapacityRules loads the last rules row from a CSV file
func (l *Loader) LoadCapacityRules(filename string) (*entities.CapacityRules, error) {
	records, err := readTable(filename, "rules", rulesHeader, false)
	if err != nil {
		return nil, err
	}

	record := records[len(records)-1]
	values := make([]float64, len(record))
	for i, cell := range record {
		value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, fmt.Errorf("rules CSV row %d: invalid %s: %s", len(records)+1, rulesHeader[i], cell)
		}
		values[i] = value
	}

	return &entities.CapacityRules{
		ShiftHours:        values[0],
		ShiftsPerDay:      int(values[1]),
		Efficiency:        values[2],
		ChangeoverMinutes: values[3],
		StartupMinutes:    values[4],
	}, nil
}

// LoadDirectory loads a scenario directory into an in-memory store.
// parts.csv is required; every other file is optional and a missing shifts.csv is an empty calendar.
func (l *Loader) LoadDirectory(dir string) (*memory.Store, error) {
	store := memory.NewStore()

	parts, err := l.LoadParts(filepath.Join(dir, PartsFile))
	if err != nil {
		return nil, err
	}
	if err := store.LoadParts(parts); err != nil {
		return nil, err
	}

	if path, ok := optional(dir, ShiftsFile); ok {
		rules, err := l.LoadShiftRules(path)
		if err != nil {
			return nil, err
		}
		if err := store.LoadShiftRules(rules); err != nil {
			return nil, err
		}
	}

	if path, ok := optional(dir, ForecastFile); ok {
		demand, err := l.LoadForecast(path)
		if err != nil {
			return nil, err
		}
		if err := store.LoadDemand(demand); err != nil {
			return nil, err
		}
	}

	if path, ok := optional(dir, StockFile); ok {
		stock, err := l.LoadStock(path)
		if err != nil {
			return nil, err
		}
		if err := store.LoadStock(stock); err != nil {
			return nil, err
		}
	}

	if path, ok := optional(dir, MachinesFile); ok {
		machines, err := l.LoadMachines(path)
		if err != nil {
			return nil, err
		}
		for _, machine := range machines {
			store.AddMachine(*machine)
		}
	}

	if path, ok := optional(dir, MonthlyForecastFile); ok {
		monthly, err := l.LoadMonthlyForecast(path)
		if err != nil {
			return nil, err
		}
		if err := store.LoadMonthlyForecast(monthly); err != nil {
			return nil, err
		}
	}

	if path, ok := optional(dir, RulesFile); ok {
		capacityRules, err := l.LoadCapacityRules(path)
		if err != nil {
			return nil, err
		}
		store.SetCapacityRules(*capacityRules)
	}

	return store, nil
}

// Helper functions for parsing CSV records

func optional(dir, name string) (string, bool) {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return "", false
	}
	return path, true
}

// readTable reads a CSV file, validates its header and column counts, and returns the data rows
func readTable(filename, name string, expectedHeader []string, allowEmpty bool) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", name, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", name, err)
	}

	if len(records) == 0 || (!allowEmpty && len(records) < 2) {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", name)
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", name, expectedHeader, header)
	}

	rows := records[1:]
	for i, record := range rows {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", name, i+2, len(expectedHeader), len(record))
		}
	}

	return rows, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		// Spreadsheet exports often carry a UTF-8 BOM on the first cell
		if strings.ToLower(strings.TrimSpace(strings.TrimPrefix(actual[i], "\ufeff"))) != col {
			return false
		}
	}

	return true
}

func parsePart(record []string) (*entities.Part, error) {
	cycleTime, err := parseOptionalFloat(record[2])
	if err != nil {
		return nil, fmt.Errorf("invalid cycle_time: %s", record[2])
	}

	cavity := 0
	if raw := strings.TrimSpace(record[3]); raw != "" {
		cavity, err = strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid cavity: %s", record[3])
		}
	}

	return entities.NewPart(
		entities.PartNumber(strings.TrimSpace(record[0])),
		strings.TrimSpace(record[1]),
		cycleTime,
		cavity,
		strings.TrimSpace(record[4]),
		strings.TrimSpace(record[5]),
	)
}

// parseOptionalFloat treats a blank cell as 0 so the part is skipped downstream
func parseOptionalFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseOptionalDecimal(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(value), nil
}
