// Package dto holds the HTTP-layer request/response shapes, kept separate
// from the domain types in internal/pipeline and internal/orchestrator so
// binding tags don't leak into the pipeline's own model.
package dto

// DatabaseRequest is one requested database in the deploy payload (§6).
type DatabaseRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required,oneof=postgresql mysql redis mongodb"`
}

// EnvVarRequest is one requested environment variable in the deploy payload.
type EnvVarRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

// DeployRequest is the full enumerated request schema for POST /api/deploy/complete (§6).
type DeployRequest struct {
	ProjectName          string            `json:"projectName" binding:"required,max=63"`
	GitRepository        string            `json:"gitRepository"`
	GitBranch            string            `json:"gitBranch"`
	BuildPack            string            `json:"buildPack" binding:"omitempty,oneof=nixpacks dockerfile static"`
	Port                 string            `json:"port"`
	GenerateDomain       *bool             `json:"generateDomain"`
	CustomDomain         string            `json:"customDomain"`
	Databases            []DatabaseRequest `json:"databases"`
	EnvironmentVariables []EnvVarRequest   `json:"environmentVariables"`
}
