package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/vsinha/moldplan/pkg/application/dto"
	"github.com/vsinha/moldplan/pkg/domain/entities"
)

// ParseSchedule parses a five-field cron expression (minute hour dom month dow)
func ParseSchedule(spec string) (cron.Schedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid replan schedule %q: %w", spec, err)
	}
	return schedule, nil
}

// NextRuns lists the firings of schedule after from and up to until
func NextRuns(schedule cron.Schedule, from, until time.Time) []time.Time {
	var runs []time.Time
	current := from
	for {
		next := schedule.Next(current)
		if next.IsZero() || next.After(until) {
			return runs
		}
		runs = append(runs, next)
		current = next
	}
}

// Job is one scheduled replanning pass fired at the given time
type Job func(ctx context.Context, at time.Time) error

// Replanner fires a job on a cron schedule until its context ends
type Replanner struct {
	schedule cron.Schedule
	job      Job
	logger   *zap.Logger
	now      func() time.Time
}

// NewReplanner creates a replanner for schedule
func NewReplanner(schedule cron.Schedule, job Job, logger *zap.Logger) *Replanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Replanner{schedule: schedule, job: job, logger: logger, now: time.Now}
}

// Run blocks until ctx is done. A failing job is logged and the schedule continues.
func (r *Replanner) Run(ctx context.Context) {
	for {
		next := r.schedule.Next(r.now())
		if next.IsZero() {
			r.logger.Warn("replan schedule has no further runs")
			return
		}
		r.logger.Debug("next replan scheduled", zap.Time("at", next))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		started := r.now()
		if err := r.job(ctx, next); err != nil {
			r.logger.Error("scheduled replan failed", zap.Time("at", next), zap.Error(err))
			continue
		}
		r.logger.Info("scheduled replan completed", zap.Time("at", next), zap.Duration("took", r.now().Sub(started)))
	}
}

// LatestResults keeps the most recent plan per machine
type LatestResults struct {
	mu      sync.RWMutex
	results map[string]*dto.PlanResult
}

func NewLatestResults() *LatestResults {
	return &LatestResults{results: make(map[string]*dto.PlanResult)}
}

// Store replaces the machine's previous result; nil results are ignored
func (l *LatestResults) Store(result *dto.PlanResult) {
	if result == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.results[result.MachineID] = result
}

// Latest returns the stored results ordered by machine id
func (l *LatestResults) Latest() []*dto.PlanResult {
	l.mu.RLock()
	defer l.mu.RUnlock()

	list := make([]*dto.PlanResult, 0, len(l.results))
	for _, result := range l.results {
		list = append(list, result)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].MachineID < list[j].MachineID
	})
	return list
}

// Planner is the subset of the planning service a replan job needs
type Planner interface {
	PlanMachines(ctx context.Context, machineIDs []string, req dto.PlanRequest) ([]*dto.PlanResult, error)
}

// PlanJob replans machines starting on the firing day (UTC) and keeps the results in latest.
// Machines that fail are logged; the others are still stored.
func PlanJob(planner Planner, machines func(ctx context.Context) ([]string, error), defaults dto.PlanRequest, latest *LatestResults) Job {
	return func(ctx context.Context, at time.Time) error {
		machineIDs, err := machines(ctx)
		if err != nil {
			return fmt.Errorf("failed to list machines: %w", err)
		}
		if len(machineIDs) == 0 {
			return errors.New("no machines to replan")
		}

		req := defaults
		req.StartDate = entities.DateOf(at.UTC())

		results, err := planner.PlanMachines(ctx, machineIDs, req)
		for _, result := range results {
			latest.Store(result)
		}
		return err
	}
}
