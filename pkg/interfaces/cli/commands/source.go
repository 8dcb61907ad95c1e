package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/moldplan/pkg/infrastructure/cache"
	"github.com/vsinha/moldplan/pkg/infrastructure/database"
	"github.com/vsinha/moldplan/pkg/infrastructure/repositories/postgres"
	"github.com/vsinha/moldplan/pkg/infrastructure/scenario"
)

const (
	sourceCSV      = "csv"
	sourcePostgres = "postgres"
)

// sourceFlags selects where planning data is read from
type sourceFlags struct {
	kind        string
	scenarioDir string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.kind, "source", sourceCSV, "Data source: csv or postgres")
	cmd.Flags().StringVarP(&f.scenarioDir, "scenario", "s", "", "Scenario directory with CSV files (csv source)")
}

// openedSource is a data source plus whatever scenario.yaml contributed
type openedSource struct {
	source   cache.Source
	scenario *scenario.Scenario
	close    func()
}

// openSource opens the selected source and wraps it in the redis cache when enabled
func openSource(a *app, flags sourceFlags) (*openedSource, error) {
	opened := &openedSource{scenario: &scenario.Scenario{}, close: func() {}}

	switch flags.kind {
	case sourceCSV:
		if flags.scenarioDir == "" {
			return nil, fmt.Errorf("must specify --scenario directory for the csv source")
		}
		store, sc, err := scenario.LoadDirectory(flags.scenarioDir)
		if err != nil {
			return nil, fmt.Errorf("error loading scenario: %w", err)
		}
		opened.source = store
		opened.scenario = sc
		if a.verbose {
			fmt.Fprintf(a.out, "📂 Loaded scenario from %s\n", flags.scenarioDir)
		}
		return opened, nil

	case sourcePostgres:
		db, err := database.NewDB(&a.cfg.Database, a.logger)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		opened.source = postgres.NewRepository(db, a.logger)
		opened.close = func() { _ = sqlDB.Close() }

		if a.cfg.Redis.Enabled {
			client, err := cache.NewClient(&a.cfg.Redis, a.logger)
			if err != nil {
				a.logger.Warn("redis unavailable, reading without cache", zap.Error(err))
				return opened, nil
			}
			opened.source = cache.NewCachedRepository(opened.source, client, a.cfg.Redis.TTL, a.logger)
			closeDB := opened.close
			opened.close = func() {
				_ = client.Close()
				closeDB()
			}
		}
		return opened, nil

	default:
		return nil, fmt.Errorf("unsupported source: %s (expected csv or postgres)", flags.kind)
	}
}
