package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deployhub/orchestrator/internal/orchestrator"
)

// ProjectController exposes project listing and teardown.
type ProjectController struct {
	orch *orchestrator.Orchestrator
}

func NewProjectController(orch *orchestrator.Orchestrator) *ProjectController {
	return &ProjectController{orch: orch}
}

// ListProjects handles GET /api/projects (§6).
func (pc *ProjectController) ListProjects(c *gin.Context) {
	projects, err := pc.orch.ListProjects(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, projects)
}

// DeleteProject handles DELETE /api/projects/:uuid (§6).
func (pc *ProjectController) DeleteProject(c *gin.Context) {
	uuid := c.Param("uuid")
	if uuid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing project uuid"})
		return
	}

	message, err := pc.orch.Teardown(c.Request.Context(), uuid)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}
