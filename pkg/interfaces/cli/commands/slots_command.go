package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vsinha/moldplan/pkg/application/services/slots"
	"github.com/vsinha/moldplan/pkg/domain/entities"
	"github.com/vsinha/moldplan/pkg/interfaces/cli/output"
)

func newSlotsCommand(a *app) *cobra.Command {
	var (
		source sourceFlags
		start  string
		days   int
	)

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List the production slots the shift calendar yields",
		RunE: func(cmd *cobra.Command, args []string) error {
			opened, err := openSource(a, source)
			if err != nil {
				return err
			}
			defer opened.close()

			req := opened.scenario.Apply(planRequestDefaults(a.cfg.Planning, time.Now()))
			if cmd.Flags().Changed("start") {
				if req.StartDate, err = entities.ParseDate(start); err != nil {
					return fmt.Errorf("invalid --start %q (expected YYYY-MM-DD)", start)
				}
			}
			if !cmd.Flags().Changed("days") {
				days = req.HorizonDays + slots.LookaheadDays
			}
			if days < 1 {
				return fmt.Errorf("--days must be positive, got %d", days)
			}

			rules, err := opened.source.GetShiftRules(cmd.Context())
			if err != nil {
				return fmt.Errorf("error loading shift calendar: %w", err)
			}

			generated := slots.NewGenerator(rules).Generate(req.StartDate, days)
			outCfg := a.outputConfig()
			if outCfg.Format != "json" {
				outCfg.Format = "text"
			}
			return output.GenerateSlots(generated, outCfg)
		},
	}

	source.register(cmd)
	cmd.Flags().StringVar(&start, "start", "", "First calendar day YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&days, "days", 0, "Calendar days to expand (default horizon + lookahead)")

	return cmd
}
