package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deployhub/orchestrator/internal/api/dto"
	"github.com/deployhub/orchestrator/internal/orchestrator"
	"github.com/deployhub/orchestrator/internal/pipeline"
)

// DeployController handles the single deployment entry point.
type DeployController struct {
	orch *orchestrator.Orchestrator
}

func NewDeployController(orch *orchestrator.Orchestrator) *DeployController {
	return &DeployController{orch: orch}
}

// Deploy handles POST /api/deploy/complete (§6).
func (dc *DeployController) Deploy(c *gin.Context) {
	var req dto.DeployRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	spec := toDeploymentSpec(req)

	resp, succeeded := dc.orch.Deploy(c.Request.Context(), spec)
	if succeeded {
		c.JSON(http.StatusOK, resp)
		return
	}
	c.JSON(http.StatusInternalServerError, resp)
}

func toDeploymentSpec(req dto.DeployRequest) pipeline.DeploymentSpec {
	generateDomain := true
	if req.GenerateDomain != nil {
		generateDomain = *req.GenerateDomain
	}

	buildPack := req.BuildPack
	if buildPack == "" {
		buildPack = "nixpacks"
	}
	gitBranch := req.GitBranch
	if gitBranch == "" {
		gitBranch = "main"
	}
	port := req.Port
	if port == "" {
		port = "3000"
	}

	databases := make([]pipeline.DatabaseSpec, 0, len(req.Databases))
	for _, d := range req.Databases {
		databases = append(databases, pipeline.DatabaseSpec{Name: d.Name, Type: d.Type})
	}

	envVars := make([]pipeline.EnvVarInput, 0, len(req.EnvironmentVariables))
	for _, e := range req.EnvironmentVariables {
		envVars = append(envVars, pipeline.EnvVarInput{Key: e.Key, Value: e.Value})
	}

	return pipeline.DeploymentSpec{
		ProjectName:          req.ProjectName,
		GitRepository:        req.GitRepository,
		GitBranch:            gitBranch,
		BuildPack:            buildPack,
		Port:                 port,
		GenerateDomain:       generateDomain,
		CustomDomain:         req.CustomDomain,
		Databases:            databases,
		EnvironmentVariables: envVars,
	}
}
