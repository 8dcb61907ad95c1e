package commands

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/moldplan/pkg/domain/entities"
	csvrepo "github.com/vsinha/moldplan/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/moldplan/pkg/infrastructure/scenario"
)

// GenerateConfig holds configuration for synthetic scenario generation
type GenerateConfig struct {
	Parts         int     // Number of parts in the master
	Machines      int     // Number of presses, at most len(pressCatalog)
	Days          int     // Days of daily forecast written from Start
	Start         string  // First forecast date, YYYY-MM-DD
	StockCoverage float64 // Average finished-goods stock in days of demand
	OutputDir     string  // Scenario directory to create
	Seed          int64   // Random seed for reproducible generation
}

type press struct {
	id      string
	tonnage int
}

var (
	pressCatalog = []press{
		{"MC-01", 50}, {"MC-02", 80}, {"MC-03", 110}, {"MC-04", 150},
		{"MC-05", 250}, {"MC-06", 350}, {"MC-07", 450}, {"MC-08", 650},
	}
	partTypes = []string{"Cover", "Housing", "Bracket", "Gear", "Cap", "Lever", "Panel"}
	partSides = []string{"Front", "Rear", "Inner", "Outer"}
	customers = []string{"Astra Honda", "Toyota Motor", "Yamaha Music", "Samsung", "LG Electronics"}
	cavities  = []int{1, 2, 4, 8, 16}
)

// parts heavier than this many grams prefer presses of bigTonnage or more
const (
	heavyWeight = 200.0
	bigTonnage  = 250
)

type generatedPart struct {
	number    string
	name      string
	cycle     float64
	cavity    int
	machine   press
	customer  string
	baseDaily int64
}

// generator writes one synthetic scenario directory
type generator struct {
	config GenerateConfig
	rand   *rand.Rand
	logger *zap.Logger
}

func newGenerator(config GenerateConfig, logger *zap.Logger) *generator {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &generator{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
		logger: logger,
	}
}

func newGenerateCommand(a *app) *cobra.Command {
	config := GenerateConfig{}

	cmd := &cobra.Command{
		Use:   "generate <dir>",
		Short: "Generate a synthetic press-shop scenario directory",
		Long: `Generate writes parts, machines, daily and monthly forecast, stock, shift
calendar and capacity rules CSV files plus a scenario.yaml into <dir>.
The result can be planned directly with "moldplan plan -s <dir>".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.OutputDir = args[0]
			if err := validateGenerateConfig(config); err != nil {
				return err
			}
			if err := newGenerator(config, a.logger).run(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "✅ Scenario written to %s (%d parts, %d machines, %d days)\n",
				config.OutputDir, config.Parts, config.Machines, config.Days)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&config.Parts, "parts", 12, "Number of parts to generate")
	flags.IntVar(&config.Machines, "machines", 2, "Number of presses to generate (max 8)")
	flags.IntVar(&config.Days, "days", 60, "Days of daily forecast to generate")
	flags.StringVar(&config.Start, "start", entities.DateKey(time.Now()), "First forecast date (YYYY-MM-DD)")
	flags.Float64Var(&config.StockCoverage, "stock-coverage", 3, "Average starting stock in days of demand")
	flags.Int64Var(&config.Seed, "seed", 0, "Random seed (0 = time based)")

	return cmd
}

func validateGenerateConfig(config GenerateConfig) error {
	if config.Parts <= 0 {
		return fmt.Errorf("parts must be positive, got %d", config.Parts)
	}
	if config.Machines <= 0 || config.Machines > len(pressCatalog) {
		return fmt.Errorf("machines must be between 1 and %d, got %d", len(pressCatalog), config.Machines)
	}
	if config.Days <= 0 {
		return fmt.Errorf("days must be positive, got %d", config.Days)
	}
	if config.StockCoverage < 0 {
		return fmt.Errorf("stock coverage cannot be negative, got %g", config.StockCoverage)
	}
	if _, err := entities.ParseDate(config.Start); err != nil {
		return fmt.Errorf("start must be YYYY-MM-DD, got %q", config.Start)
	}
	return nil
}

func (g *generator) run() error {
	if err := os.MkdirAll(g.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create scenario directory: %w", err)
	}

	start, _ := entities.ParseDate(g.config.Start)
	machines := pressCatalog[:g.config.Machines]
	parts := g.generateParts(machines)

	steps := []struct {
		file string
		rows [][]string
	}{
		{csvrepo.PartsFile, g.partRows(parts)},
		{csvrepo.MachinesFile, g.machineRows(machines)},
		{csvrepo.ForecastFile, g.forecastRows(parts, start)},
		{csvrepo.MonthlyForecastFile, g.monthlyRows(parts, start)},
		{csvrepo.StockFile, g.stockRows(parts)},
		{csvrepo.ShiftsFile, shiftRows()},
		{csvrepo.RulesFile, ruleRows(entities.DefaultCapacityRules())},
	}
	for _, step := range steps {
		if err := writeCSV(filepath.Join(g.config.OutputDir, step.file), step.rows); err != nil {
			return err
		}
		if g.logger != nil {
			g.logger.Debug("generated scenario file", zap.String("file", step.file), zap.Int("rows", len(step.rows)-1))
		}
	}

	return g.writeScenario(machines[0].id, start)
}

// generateParts draws the part master; heavy parts go to the big presses when any exist
func (g *generator) generateParts(machines []press) []generatedPart {
	var small, big []press
	for _, m := range machines {
		if m.tonnage >= bigTonnage {
			big = append(big, m)
		} else {
			small = append(small, m)
		}
	}

	seen := make(map[string]bool)
	parts := make([]generatedPart, 0, g.config.Parts)
	for len(parts) < g.config.Parts {
		number := fmt.Sprintf("PN-%04d-%c", 1000+g.rand.Intn(9000), 'A'+rune(g.rand.Intn(3)))
		if seen[number] {
			continue
		}
		seen[number] = true

		weight := 5 + g.rand.Float64()*495
		pool := small
		if (weight > heavyWeight && len(big) > 0) || len(small) == 0 {
			pool = big
		}

		part := generatedPart{
			number:   number,
			name:     partTypes[g.rand.Intn(len(partTypes))] + " " + partSides[g.rand.Intn(len(partSides))],
			cycle:    math.Round((weight/10+5+g.rand.Float64()*15)*10) / 10,
			cavity:   cavities[g.rand.Intn(len(cavities))],
			machine:  pool[g.rand.Intn(len(pool))],
			customer: customers[g.rand.Intn(len(customers))],
		}

		// Roughly one part in ten has no demand at all
		if g.rand.Intn(10) > 0 {
			perShift := float64(entities.DefaultShiftMinutes*60) / part.cycle * float64(part.cavity)
			part.baseDaily = int64(perShift * (0.02 + g.rand.Float64()*0.2))
		}
		parts = append(parts, part)
	}
	return parts
}

func (g *generator) partRows(parts []generatedPart) [][]string {
	rows := [][]string{{"part_no", "part_name", "cycle_time", "cavity", "tonnage", "machine_id"}}
	for _, p := range parts {
		rows = append(rows, []string{
			p.number,
			p.name,
			strconv.FormatFloat(p.cycle, 'f', 1, 64),
			strconv.Itoa(p.cavity),
			fmt.Sprintf("%dT", p.machine.tonnage),
			p.machine.id,
		})
	}
	return rows
}

func (g *generator) machineRows(machines []press) [][]string {
	rows := [][]string{{"machine_id", "tonnage", "status"}}
	for _, m := range machines {
		rows = append(rows, []string{m.id, fmt.Sprintf("%dT", m.tonnage), "active"})
	}
	return rows
}

// forecastRows writes a noisy daily series around each part's base demand; Sundays are zero
func (g *generator) forecastRows(parts []generatedPart, start time.Time) [][]string {
	rows := [][]string{{"part_no", "forecast_date", "qty"}}
	for _, p := range parts {
		for d := 0; d < g.config.Days; d++ {
			date := entities.AddDays(start, d)
			qty := g.dailyQuantity(p, date)
			rows = append(rows, []string{p.number, entities.DateKey(date), strconv.FormatInt(qty, 10)})
		}
	}
	return rows
}

func (g *generator) dailyQuantity(p generatedPart, date time.Time) int64 {
	if entities.DayTypeOf(date) == entities.Sunday {
		return 0
	}
	return int64(float64(p.baseDaily) * (0.7 + g.rand.Float64()*0.6))
}

// monthlyRows totals each calendar month touched by the horizon from the base demand,
// with an occasional upward revision
func (g *generator) monthlyRows(parts []generatedPart, start time.Time) [][]string {
	rows := [][]string{{"forecast_month", "part_no", "customer_name", "forecast_qty_monthly", "revision_no"}}
	end := entities.AddDays(start, g.config.Days-1)
	for month := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC); !month.After(end); month = month.AddDate(0, 1, 0) {
		workingDays := 0
		for d := month; d.Month() == month.Month(); d = d.AddDate(0, 0, 1) {
			if entities.DayTypeOf(d) != entities.Sunday {
				workingDays++
			}
		}
		for _, p := range parts {
			total := p.baseDaily * int64(workingDays)
			rows = append(rows, []string{month.Format("2006-01"), p.number, p.customer, strconv.FormatInt(total, 10), "0"})
			if g.rand.Intn(5) == 0 {
				revised := total + total/10
				rows = append(rows, []string{month.Format("2006-01"), p.number, p.customer, strconv.FormatInt(revised, 10), "1"})
			}
		}
	}
	return rows
}

// stockRows leaves some WIP cells blank, which loads as missing rather than zero
func (g *generator) stockRows(parts []generatedPart) [][]string {
	rows := [][]string{{"part_no", "fg_stock", "wip_stock"}}
	for _, p := range parts {
		fg := int64(float64(p.baseDaily) * g.config.StockCoverage * 2 * g.rand.Float64())
		wip := ""
		if g.rand.Intn(10) > 0 {
			wip = strconv.FormatInt(int64(float64(p.baseDaily)*g.rand.Float64()*0.5), 10)
		}
		rows = append(rows, []string{p.number, strconv.FormatInt(fg, 10), wip})
	}
	return rows
}

func shiftRows() [][]string {
	rows := [][]string{{"day_type", "shift_name"}}
	for i := 1; i <= 3; i++ {
		rows = append(rows, []string{entities.Weekday.String(), fmt.Sprintf("Shift%d", i)})
	}
	rows = append(rows, []string{entities.Saturday.String(), "Shift1"})
	return rows
}

func ruleRows(rules entities.CapacityRules) [][]string {
	format := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return [][]string{
		{"shift_hours", "shift_per_day", "efficiency", "dandory_min", "startup_min"},
		{
			format(rules.ShiftHours),
			strconv.Itoa(rules.ShiftsPerDay),
			format(rules.Efficiency),
			format(rules.ChangeoverMinutes),
			format(rules.StartupMinutes),
		},
	}
}

func (g *generator) writeScenario(machineID string, start time.Time) error {
	horizon := 14
	if g.config.Days < horizon {
		horizon = g.config.Days
	}
	sc := scenario.Scenario{
		MachineID:   machineID,
		StartDate:   entities.DateKey(start),
		HorizonDays: horizon,
	}

	data, err := yaml.Marshal(&sc)
	if err != nil {
		return fmt.Errorf("failed to encode scenario: %w", err)
	}
	header := fmt.Sprintf("# generated by moldplan generate (seed %d)\n", g.config.Seed)
	filename := filepath.Join(g.config.OutputDir, scenario.FileName)
	if err := os.WriteFile(filename, append([]byte(header), data...), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", scenario.FileName, err)
	}
	return nil
}

func writeCSV(filename string, rows [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(filename), err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(filename), err)
	}
	return nil
}
