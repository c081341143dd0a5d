package paas

import "github.com/deployhub/orchestrator/internal/resource"

// ProjectCreateResult is returned by CreateProject.
type ProjectCreateResult struct {
	ProjectUUID     string
	EnvironmentUUID string
}

// Environment is one named scope inside a project.
type Environment struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// ProjectDetails is returned by GetProjectDetails.
type ProjectDetails struct {
	UUID         string        `json:"uuid"`
	Name         string        `json:"name"`
	Environments []Environment `json:"environments"`
}

// ProjectSummary is one row of the GET /api/projects response.
type ProjectSummary struct {
	Name      string `json:"name"`
	UUID      string `json:"uuid"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// AppSpec describes the application creation request.
type AppSpec struct {
	Name          string
	GitRepository string
	GitBranch     string
	BuildPack     string
	Port          string
}

// AppCreateResult is returned by CreateApplication.
type AppCreateResult struct {
	AppUUID string
}

// AppStatus is the polled application state (§4.1.1).
type AppStatus struct {
	State  string `json:"state"`
	Status string `json:"status"`
}

// Terminal application states recognized by WAIT_READY (§4.3).
const (
	StateRunning  = "running"
	StateHealthy  = "healthy"
	StateBuilding = "building"
	StateStarting = "starting"
	StateDeploying = "deploying"
	StateExited   = "exited"
	StateFailed   = "failed"
	StateError    = "error"
	StateUnknown  = "unknown"
)

// IsReady reports whether a poll result should terminate WAIT_READY successfully.
func (s AppStatus) IsReady() bool {
	return s.State == StateRunning || s.State == StateHealthy
}

// IsTerminalFailure reports whether a poll result should terminate WAIT_READY
// with a hard failure.
func (s AppStatus) IsTerminalFailure() bool {
	return s.State == StateExited || s.State == StateFailed || s.State == StateError
}

// DBSpec describes one requested database.
type DBSpec struct {
	ProjectName string // used to derive the container hostname
	Name        string // logical name
	Kind        resource.DatabaseKind
}

// DBCreateResult is returned by CreateDatabase.
type DBCreateResult struct {
	DBUUID      string
	Credentials resource.Credentials
}

// EnvPushResult records per-entry push success, per §4.1.1's "partial
// success permitted" contract.
type EnvPushResult struct {
	Key     string
	Success bool
}

// ApplicationRef is a minimal application reference returned by ListApplications.
type ApplicationRef struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// DatabaseRef is a minimal database reference returned by ListDatabases.
type DatabaseRef struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}
