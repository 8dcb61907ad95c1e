package handler

import (
	"context"

	"github.com/vsinha/moldplan/pkg/application/dto"
	"github.com/vsinha/moldplan/pkg/infrastructure/events"
)

// Planner runs production plans
type Planner interface {
	Plan(ctx context.Context, req dto.PlanRequest) (*dto.PlanResult, error)
	PlanMachines(ctx context.Context, machineIDs []string, req dto.PlanRequest) ([]*dto.PlanResult, error)
}

// CapacityAnalyzer builds monthly capacity reports
type CapacityAnalyzer interface {
	Analyze(ctx context.Context, req dto.CapacityRequest) (*dto.CapacityReport, error)
}

// LatestPlans exposes the most recent scheduled plan per machine
type LatestPlans interface {
	Latest() []*dto.PlanResult
}

// Handler groups every HTTP handler
type Handler struct {
	Plan     *PlanHandler
	Capacity *CapacityHandler
}

// NewHandler creates the handler set. eventStore may be nil, which disables run event lookup.
func NewHandler(planner Planner, analyzer CapacityAnalyzer, eventStore events.EventStore, defaults dto.PlanRequest) *Handler {
	return &Handler{
		Plan:     NewPlanHandler(planner, eventStore, defaults),
		Capacity: NewCapacityHandler(analyzer),
	}
}

// WithLatestPlans enables GET /api/v1/plans/latest
func (h *Handler) WithLatestPlans(latest LatestPlans) *Handler {
	h.Plan.latest = latest
	return h
}
