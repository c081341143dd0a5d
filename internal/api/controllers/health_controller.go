package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deployhub/orchestrator/internal/orchestrator"
)

// HealthController exposes the liveness/reachability probe.
type HealthController struct {
	orch *orchestrator.Orchestrator
}

func NewHealthController(orch *orchestrator.Orchestrator) *HealthController {
	return &HealthController{orch: orch}
}

// Health handles GET /api/health (§6).
func (hc *HealthController) Health(c *gin.Context) {
	status := hc.orch.Health(c.Request.Context(), time.Now().UTC().Format(time.RFC3339))
	c.JSON(http.StatusOK, status)
}
