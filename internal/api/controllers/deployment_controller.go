package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/deployhub/orchestrator/internal/errors"
	"github.com/deployhub/orchestrator/internal/orchestrator"
)

// DeploymentController exposes the read-only audit journal (§C.1).
type DeploymentController struct {
	orch *orchestrator.Orchestrator
}

func NewDeploymentController(orch *orchestrator.Orchestrator) *DeploymentController {
	return &DeploymentController{orch: orch}
}

// ListDeployments handles GET /api/deployments.
func (dc *DeploymentController) ListDeployments(c *gin.Context) {
	records, err := dc.orch.ListDeployments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetDeployment handles GET /api/deployments/:id.
func (dc *DeploymentController) GetDeployment(c *gin.Context) {
	record, err := dc.orch.GetDeployment(c.Request.Context(), c.Param("id"))
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, record)
}
