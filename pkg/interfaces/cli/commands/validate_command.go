package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vsinha/moldplan/pkg/domain/services"
)

func newValidateCommand(a *app) *cobra.Command {
	var (
		source sourceFlags
		month  string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check master data, machines, monthly forecast and calendar before planning",
		RunE: func(cmd *cobra.Command, args []string) error {
			opened, err := openSource(a, source)
			if err != nil {
				return err
			}
			defer opened.close()

			ctx := cmd.Context()
			if month == "" {
				month = time.Now().Format("2006-01")
			}

			parts, err := opened.source.GetParts(ctx, "")
			if err != nil {
				return fmt.Errorf("error loading parts: %w", err)
			}
			machines, err := opened.source.GetActiveMachines(ctx)
			if err != nil {
				return fmt.Errorf("error loading machines: %w", err)
			}
			monthly, err := opened.source.GetMonthlyForecast(ctx, month)
			if err != nil {
				return fmt.Errorf("error loading monthly forecast: %w", err)
			}
			rules, err := opened.source.GetShiftRules(ctx)
			if err != nil {
				return fmt.Errorf("error loading shift calendar: %w", err)
			}

			shiftMinutes := opened.scenario.Apply(planRequestDefaults(a.cfg.Planning, time.Now())).ShiftMinutes
			result := services.NewMasterDataValidator(shiftMinutes).Validate(parts, machines, monthly, rules)

			fmt.Fprintf(a.out, "🔎 Validated %d parts, %d active machines, %d forecast rows (%s), %d shift rules\n",
				len(parts), len(machines), len(monthly), month, len(rules))
			for _, msg := range result.Errors {
				fmt.Fprintf(a.out, "  ❌ %s\n", msg)
			}
			for _, msg := range result.Warnings {
				fmt.Fprintf(a.out, "  ⚠️  %s\n", msg)
			}
			if !result.Valid() {
				return fmt.Errorf("master data has %d error(s)", len(result.Errors))
			}
			fmt.Fprintln(a.out, "✅ Master data is plannable")
			return nil
		},
	}

	source.register(cmd)
	cmd.Flags().StringVar(&month, "month", "", "Monthly forecast to cross-check YYYY-MM (default current month)")

	return cmd
}
