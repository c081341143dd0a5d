package routes

import (
	"github.com/gin-gonic/gin"
)

// setupV1Routes wires the deployment orchestrator's four endpoints (§6).
func setupV1Routes(api *gin.RouterGroup, ctrls Controllers) {
	api.GET("/health", ctrls.Health.Health)

	deploy := api.Group("/deploy")
	{
		deploy.POST("/complete", ctrls.Deploy.Deploy)
	}

	projects := api.Group("/projects")
	{
		projects.GET("", ctrls.Project.ListProjects)
		projects.DELETE("/:uuid", ctrls.Project.DeleteProject)
	}

	deployments := api.Group("/deployments")
	{
		deployments.GET("", ctrls.Deployment.ListDeployments)
		deployments.GET("/:id", ctrls.Deployment.GetDeployment)
	}
}
