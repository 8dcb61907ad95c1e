package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vsinha/moldplan/pkg/interfaces/http/handler"
	"github.com/vsinha/moldplan/pkg/interfaces/http/middleware"
)

// Setup builds the gin engine. An empty mode keeps gin's current mode.
func Setup(mode string, h *handler.Handler, logger *zap.Logger) *gin.Engine {
	if mode != "" {
		gin.SetMode(mode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		plans := v1.Group("/plans")
		{
			plans.POST("", h.Plan.CreatePlan)
			plans.GET("/latest", h.Plan.ListLatest)
			plans.GET("/:run_id/events", h.Plan.ListRunEvents)
		}

		v1.POST("/capacity", h.Capacity.Analyze)
	}

	return r
}
