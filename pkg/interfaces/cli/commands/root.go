package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/moldplan/pkg/infrastructure/config"
	applogger "github.com/vsinha/moldplan/pkg/infrastructure/logger"
	"github.com/vsinha/moldplan/pkg/interfaces/cli/output"
)

// app carries what every subcommand needs after the root pre-run
type app struct {
	configFile string
	format     string
	outputDir  string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
	out    io.Writer
}

func (a *app) outputConfig() output.Config {
	return output.Config{
		Format:    a.format,
		OutputDir: a.outputDir,
		Verbose:   a.verbose,
		Writer:    a.out,
	}
}

// NewRootCommand builds the moldplan command tree
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "moldplan",
		Short: "Injection molding production planner",
		Long: `A CLI tool that turns a demand forecast, stock levels and a shift calendar
into a shift-level injection schedule for one press.

Data comes from a scenario directory of CSV files or from PostgreSQL, optionally
fronted by a redis cache. The same planner is served over HTTP by "serve".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger, err := applogger.NewLogger(&cfg.Log)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.cfg = cfg
			a.logger = logger
			a.out = cmd.OutOrStdout()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "Path to config file (default ./config/config.yaml or ./config.yaml)")
	flags.StringVarP(&a.format, "format", "f", "text", "Output format: text, json, csv, svg")
	flags.StringVarP(&a.outputDir, "output", "o", "", "Output directory for results (optional)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(
		newPlanCommand(a),
		newSlotsCommand(a),
		newCapacityCommand(a),
		newValidateCommand(a),
		newServeCommand(a),
		newGenerateCommand(a),
	)

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}
