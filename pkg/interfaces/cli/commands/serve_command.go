package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/moldplan/pkg/application/services/capacity"
	"github.com/vsinha/moldplan/pkg/application/services/planning"
	"github.com/vsinha/moldplan/pkg/application/dto"
	"github.com/vsinha/moldplan/pkg/infrastructure/cache"
	"github.com/vsinha/moldplan/pkg/infrastructure/events"
	"github.com/vsinha/moldplan/pkg/infrastructure/observability"
	"github.com/vsinha/moldplan/pkg/infrastructure/observability/metrics"
	"github.com/vsinha/moldplan/pkg/infrastructure/scheduler"
	"github.com/vsinha/moldplan/pkg/interfaces/http/handler"
	"github.com/vsinha/moldplan/pkg/interfaces/http/router"
)

func newServeCommand(a *app) *cobra.Command {
	var (
		source sourceFlags
		port   int
		replan string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planner over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			opened, err := openSource(a, source)
			if err != nil {
				return err
			}
			defer opened.close()

			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			if cmd.Flags().Changed("replan") {
				a.cfg.Planning.ReplanSchedule = replan
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			shutdownTelemetry, err := observability.Setup(ctx, &a.cfg.Telemetry, a.logger)
			if err != nil {
				return err
			}
			defer func() {
				flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdownTelemetry(flushCtx); err != nil {
					a.logger.Warn("telemetry shutdown failed", zap.Error(err))
				}
			}()

			planningMetrics, err := metrics.NewPlanningMetrics(nil)
			if err != nil {
				return fmt.Errorf("failed to register planning metrics: %w", err)
			}

			eventStore := events.NewInMemoryEventStore(a.logger)
			planner := planning.NewPlanningService(opened.source, opened.source, opened.source, opened.source, a.logger).
				WithEventStore(eventStore).
				WithMetrics(planningMetrics)
			analyzer := capacity.NewCapacityService(opened.source, opened.source, opened.source, opened.source, a.logger)
			defaults := opened.scenario.Apply(planRequestDefaults(a.cfg.Planning, time.Now()))

			h := handler.NewHandler(planner, analyzer, eventStore, defaults)
			if a.cfg.Planning.ReplanSchedule != "" {
				schedule, err := scheduler.ParseSchedule(a.cfg.Planning.ReplanSchedule)
				if err != nil {
					return err
				}
				latest := scheduler.NewLatestResults()
				job := scheduler.PlanJob(planner, replanMachines(opened.source, defaults), defaults, latest)
				go scheduler.NewReplanner(schedule, job, a.logger.Named("replanner")).Run(ctx)

				h = h.WithLatestPlans(latest)
				a.logger.Info("scheduled replanning enabled", zap.String("schedule", a.cfg.Planning.ReplanSchedule))
			}

			engine := router.Setup(a.cfg.Server.Mode, h, a.logger)

			srv := &http.Server{
				Addr:         fmt.Sprintf(":%d", a.cfg.Server.Port),
				Handler:      engine,
				ReadTimeout:  a.cfg.Server.ReadTimeout,
				WriteTimeout: a.cfg.Server.WriteTimeout,
				IdleTimeout:  60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("http server started", zap.String("addr", srv.Addr), zap.String("source", source.kind))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("http server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			a.logger.Info("shutdown signal received, draining connections")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.logger.Error("server shutdown failed", zap.Error(err))
				return err
			}

			a.logger.Info("server stopped")
			return nil
		},
	}

	source.register(cmd)
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (default server.port from config)")
	cmd.Flags().StringVar(&replan, "replan", "", "Cron schedule for automatic replanning, e.g. \"0 6 * * 1-6\"")

	return cmd
}

// replanMachines plans the configured machine, or every active machine when none is set
func replanMachines(source cache.Source, defaults dto.PlanRequest) func(ctx context.Context) ([]string, error) {
	return func(ctx context.Context) ([]string, error) {
		if defaults.MachineID != "" {
			return []string{defaults.MachineID}, nil
		}
		machines, err := source.GetActiveMachines(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(machines))
		for _, machine := range machines {
			ids = append(ids, machine.MachineID)
		}
		return ids, nil
	}
}
