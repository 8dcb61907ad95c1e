package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/moldplan/pkg/application/dto"
	"github.com/vsinha/moldplan/pkg/domain/entities"
	"github.com/vsinha/moldplan/pkg/infrastructure/events"
	"github.com/vsinha/moldplan/pkg/interfaces/http/response"
)

// PlanBody is the JSON body of POST /api/v1/plans. Omitted fields take the server defaults.
type PlanBody struct {
	MachineID        string   `json:"machine_id"`
	MachineIDs       []string `json:"machine_ids"`
	StartDate        string   `json:"start_date" binding:"required"` // YYYY-MM-DD
	HorizonDays      *int     `json:"horizon_days"`
	MinCoverageDays  *int     `json:"min_coverage_days"`
	MaxCoverageDays  *int     `json:"max_coverage_days"`
	ShiftMinutes     *int     `json:"shift_minutes"`
	TimeLimitSeconds *int     `json:"time_limit_seconds"`
}

// toRequest merges the body onto defaults
func (b PlanBody) toRequest(defaults dto.PlanRequest) (dto.PlanRequest, error) {
	req := defaults
	start, err := entities.ParseDate(b.StartDate)
	if err != nil {
		return req, err
	}
	req.StartDate = start
	req.MachineID = b.MachineID

	if b.HorizonDays != nil {
		req.HorizonDays = *b.HorizonDays
	}
	if b.MinCoverageDays != nil {
		req.MinCoverageDays = *b.MinCoverageDays
	}
	if b.MaxCoverageDays != nil {
		req.MaxCoverageDays = *b.MaxCoverageDays
	}
	if b.ShiftMinutes != nil {
		req.ShiftMinutes = *b.ShiftMinutes
	}
	if b.TimeLimitSeconds != nil {
		req.TimeLimit = time.Duration(*b.TimeLimitSeconds) * time.Second
	}
	return req, nil
}

// PlanHandler serves planning runs
type PlanHandler struct {
	planner    Planner
	eventStore events.EventStore
	defaults   dto.PlanRequest
	latest     LatestPlans
}

// NewPlanHandler creates a PlanHandler
func NewPlanHandler(planner Planner, eventStore events.EventStore, defaults dto.PlanRequest) *PlanHandler {
	return &PlanHandler{
		planner:    planner,
		eventStore: eventStore,
		defaults:   defaults,
	}
}

// CreatePlan runs a plan for one machine, or for each of machine_ids.
// POST /api/v1/plans
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var body PlanBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "invalid parameters")
		return
	}

	req, err := body.toRequest(h.defaults)
	if err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "start_date must be YYYY-MM-DD")
		return
	}

	if len(body.MachineIDs) > 0 {
		results, err := h.planner.PlanMachines(c.Request.Context(), body.MachineIDs, req)
		if err != nil {
			h.handlePlanError(c, err)
			return
		}
		response.OK(c, gin.H{"list": results})
		return
	}

	result, err := h.planner.Plan(c.Request.Context(), req)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}

	response.OK(c, result)
}

// ListRunEvents returns the lifecycle events recorded for a run.
// GET /api/v1/plans/:run_id/events
func (h *PlanHandler) ListRunEvents(c *gin.Context) {
	runID := c.Param("run_id")
	if h.eventStore == nil {
		response.NotFound(c, response.CodeNotFound, "run events are not recorded")
		return
	}

	stored, err := h.eventStore.ReadEvents(runID, 0)
	if err != nil {
		_ = c.Error(err)
		response.InternalError(c)
		return
	}
	if len(stored) == 0 {
		response.NotFound(c, response.CodeNotFound, "run not found")
		return
	}

	response.OK(c, gin.H{"list": stored})
}

// ListLatest returns the last scheduled plan of every machine.
// GET /api/v1/plans/latest
func (h *PlanHandler) ListLatest(c *gin.Context) {
	if h.latest == nil {
		response.NotFound(c, response.CodeNotFound, "scheduled replanning is disabled")
		return
	}
	response.OK(c, gin.H{"list": h.latest.Latest()})
}

func (h *PlanHandler) handlePlanError(c *gin.Context, err error) {
	if errors.Is(err, entities.ErrInvalidRequest) {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidRequest, "invalid plan request", err.Error())
		return
	}
	_ = c.Error(err)
	response.InternalError(c)
}
