package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/moldplan/pkg/application/dto"
	"github.com/vsinha/moldplan/pkg/domain/entities"
	"github.com/vsinha/moldplan/pkg/interfaces/http/response"
)

// CapacityHandler serves monthly capacity reports
type CapacityHandler struct {
	analyzer CapacityAnalyzer
}

// NewCapacityHandler creates a CapacityHandler
func NewCapacityHandler(analyzer CapacityAnalyzer) *CapacityHandler {
	return &CapacityHandler{analyzer: analyzer}
}

// Analyze builds the capacity report of a forecast month.
// POST /api/v1/capacity
func (h *CapacityHandler) Analyze(c *gin.Context) {
	var req dto.CapacityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Month == "" {
		response.BadRequest(c, response.CodeInvalidParams, "invalid parameters")
		return
	}

	report, err := h.analyzer.Analyze(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidRequest) {
			response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidRequest, "invalid capacity request", err.Error())
			return
		}
		_ = c.Error(err)
		response.InternalError(c)
		return
	}

	response.OK(c, report)
}
