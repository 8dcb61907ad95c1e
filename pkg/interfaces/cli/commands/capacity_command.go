package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vsinha/moldplan/pkg/application/dto"
	"github.com/vsinha/moldplan/pkg/application/services/capacity"
	"github.com/vsinha/moldplan/pkg/interfaces/cli/output"
)

func newCapacityCommand(a *app) *cobra.Command {
	var (
		source      sourceFlags
		month       string
		workingDays int
	)

	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Compare a monthly forecast against press capacity per tonnage class",
		RunE: func(cmd *cobra.Command, args []string) error {
			opened, err := openSource(a, source)
			if err != nil {
				return err
			}
			defer opened.close()

			if month == "" {
				month = time.Now().Format("2006-01")
			}
			if !cmd.Flags().Changed("working-days") {
				workingDays = a.cfg.Planning.WorkingDays
			}

			service := capacity.NewCapacityService(opened.source, opened.source, opened.source, opened.source, a.logger)
			report, err := service.Analyze(cmd.Context(), dto.CapacityRequest{Month: month, WorkingDays: workingDays})
			if err != nil {
				return fmt.Errorf("error analyzing capacity: %w", err)
			}

			return output.GenerateCapacity(report, a.outputConfig())
		},
	}

	source.register(cmd)
	cmd.Flags().StringVar(&month, "month", "", "Forecast month YYYY-MM (default current month)")
	cmd.Flags().IntVar(&workingDays, "working-days", 0, "Working days in the month")

	return cmd
}
