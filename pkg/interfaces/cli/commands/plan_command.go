package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vsinha/moldplan/pkg/application/dto"
	"github.com/vsinha/moldplan/pkg/application/services/planning"
	"github.com/vsinha/moldplan/pkg/domain/entities"
	"github.com/vsinha/moldplan/pkg/infrastructure/config"
	"github.com/vsinha/moldplan/pkg/infrastructure/events"
	"github.com/vsinha/moldplan/pkg/infrastructure/scenario"
	"github.com/vsinha/moldplan/pkg/interfaces/cli/output"
)

// planFlags holds the per-run overrides of the plan command
type planFlags struct {
	source          sourceFlags
	machines        []string
	start           string
	horizonDays     int
	minCoverageDays int
	maxCoverageDays int
	shiftMinutes    int
	timeLimit       time.Duration
}

func newPlanCommand(a *app) *cobra.Command {
	f := &planFlags{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate job tickets and a shift schedule for one or more presses",
		Example: `  # Plan the scenario directory's press
  moldplan plan --scenario examples/press_shop -v

  # Plan two presses from PostgreSQL and save CSV tables
  moldplan plan --source postgres --machine MC-01 --machine MC-02 -f csv -o results/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, a, f)
		},
	}

	f.register(cmd)
	return cmd
}

func (f *planFlags) register(cmd *cobra.Command) {
	f.source.register(cmd)
	cmd.Flags().StringSliceVarP(&f.machines, "machine", "m", nil, "Machine id(s) to plan; repeat for several presses")
	cmd.Flags().StringVar(&f.start, "start", "", "Plan start date YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&f.horizonDays, "horizon", 0, "Planning horizon in days")
	cmd.Flags().IntVar(&f.minCoverageDays, "min-coverage", 0, "Reorder when stock covers fewer days than this")
	cmd.Flags().IntVar(&f.maxCoverageDays, "max-coverage", 0, "Days of demand an order tops stock up to")
	cmd.Flags().IntVar(&f.shiftMinutes, "shift-minutes", 0, "Productive minutes per shift")
	cmd.Flags().DurationVar(&f.timeLimit, "time-limit", 0, "Solver wall-clock limit")
}

// planRequestDefaults starts a request from the configured planning policy
func planRequestDefaults(cfg config.PlanningConfig, today time.Time) dto.PlanRequest {
	return dto.PlanRequest{
		StartDate:       entities.DateOf(today),
		HorizonDays:     cfg.HorizonDays,
		MinCoverageDays: cfg.MinCoverageDays,
		MaxCoverageDays: cfg.MaxCoverageDays,
		ShiftMinutes:    cfg.ShiftMinutes,
		TimeLimit:       cfg.TimeLimit,
	}
}

// buildPlanRequest layers config defaults, scenario.yaml and explicit flags
func buildPlanRequest(cmd *cobra.Command, cfg config.PlanningConfig, sc *scenario.Scenario, f *planFlags, today time.Time) (dto.PlanRequest, error) {
	req := sc.Apply(planRequestDefaults(cfg, today))

	flags := cmd.Flags()
	if flags.Changed("start") {
		start, err := entities.ParseDate(f.start)
		if err != nil {
			return req, fmt.Errorf("invalid --start %q (expected YYYY-MM-DD)", f.start)
		}
		req.StartDate = start
	}
	if flags.Changed("horizon") {
		req.HorizonDays = f.horizonDays
	}
	if flags.Changed("min-coverage") {
		req.MinCoverageDays = f.minCoverageDays
	}
	if flags.Changed("max-coverage") {
		req.MaxCoverageDays = f.maxCoverageDays
	}
	if flags.Changed("shift-minutes") {
		req.ShiftMinutes = f.shiftMinutes
	}
	if flags.Changed("time-limit") {
		req.TimeLimit = f.timeLimit
	}
	if len(f.machines) == 1 {
		req.MachineID = f.machines[0]
	}

	return req, req.Validate()
}

func runPlan(cmd *cobra.Command, a *app, f *planFlags) error {
	opened, err := openSource(a, f.source)
	if err != nil {
		return err
	}
	defer opened.close()

	req, err := buildPlanRequest(cmd, a.cfg.Planning, opened.scenario, f, time.Now())
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if a.verbose {
		fmt.Fprintf(a.out, "🚀 Molding Planner\n")
		fmt.Fprintf(a.out, "Source: %s\n", f.source.kind)
		fmt.Fprintf(a.out, "Start: %s, horizon %d days, coverage %d..%d days\n",
			entities.DateKey(req.StartDate), req.HorizonDays, req.MinCoverageDays, req.MaxCoverageDays)
		fmt.Fprintf(a.out, "Output format: %s\n\n", a.format)
	}

	eventStore := events.NewInMemoryEventStore(a.logger)
	service := planning.NewPlanningService(opened.source, opened.source, opened.source, opened.source, a.logger).
		WithEventStore(eventStore)

	ctx := cmd.Context()
	startTime := time.Now()

	var results []*dto.PlanResult
	if len(f.machines) > 1 {
		results, err = service.PlanMachines(ctx, f.machines, req)
	} else {
		var result *dto.PlanResult
		result, err = service.Plan(ctx, req)
		results = append(results, result)
	}
	if err != nil {
		return fmt.Errorf("error running planner: %w", err)
	}

	if a.verbose {
		fmt.Fprintf(a.out, "✅ Planning completed in %v\n\n", time.Since(startTime))
	}

	for _, result := range results {
		outCfg := a.outputConfig()
		if len(results) > 1 && outCfg.OutputDir != "" {
			outCfg.OutputDir = filepath.Join(outCfg.OutputDir, result.MachineID)
		}
		if err := output.Generate(result, outCfg); err != nil {
			return fmt.Errorf("error generating output: %w", err)
		}
		if a.verbose {
			printRunEvents(a, eventStore, result.RunID)
		}
	}

	if a.verbose {
		fmt.Fprintln(a.out, "🏁 Planning complete!")
	}
	return nil
}

func printRunEvents(a *app, store events.EventStore, runID string) {
	stored, err := store.ReadEvents(runID, 0)
	if err != nil || len(stored) == 0 {
		return
	}
	fmt.Fprintf(a.out, "📜 Run %s events:\n", runID)
	for _, event := range stored {
		fmt.Fprintf(a.out, "  %s %s\n", event.Timestamp().Format("15:04:05.000"), event.Type())
	}
	fmt.Fprintln(a.out)
}
