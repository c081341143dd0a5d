package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deployhub/orchestrator/internal/api/controllers"
	"github.com/deployhub/orchestrator/internal/api/middleware"
)

// Controllers bundles the handlers SetupRouter wires into the API group.
type Controllers struct {
	Health     *controllers.HealthController
	Deploy     *controllers.DeployController
	Project    *controllers.ProjectController
	Deployment *controllers.DeploymentController
}

// SetupRouter initializes the Gin router with middleware and routes.
func SetupRouter(ctrls Controllers) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Logger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORS())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		setupV1Routes(api, ctrls)
	}

	return r
}
