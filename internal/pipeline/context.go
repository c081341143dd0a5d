package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/deployhub/orchestrator/internal/resource"
)

// State is the pipeline's own terminal classification (§4.3).
type State string

const (
	StateInit      State = "INIT"
	StateRunning   State = "RUNNING"
	StateSucceeded State = "SUCCEEDED"
	StatePartial   State = "PARTIAL"
	StateFailed    State = "FAILED"
)

// DatabaseResult records one database's creation/start outcome for the
// response's results.databases list.
type DatabaseResult struct {
	Name    string `json:"name"`
	Success bool   `json:"success"`
}

// Results is the fixed record replacing the reference's heterogeneous
// "results: any" map (§9 redesign flag), serialized to the §6 JSON shape.
type Results struct {
	DNS         bool             `json:"dns"`
	Project     bool             `json:"project"`
	Databases   []DatabaseResult `json:"databases"`
	Application bool             `json:"application"`
	EnvVars     bool             `json:"envVars"`
	Start       bool             `json:"start"`
}

// DeploymentContext is the mutable per-run state threaded through every
// step (§3). It is created fresh for each request and discarded after the
// response is rendered; nothing here is shared between deployments.
type DeploymentContext struct {
	DeploymentID uuid.UUID
	Spec         DeploymentSpec
	FullDomain   string
	StepLog      []resource.StepLogEntry

	State State

	Project     *resource.Project
	Application *resource.Application
	Databases   []resource.Database
	Domain      *resource.DomainRecord

	// Flags recorded as each step completes; Results is assembled from
	// these once the pipeline reaches a terminal state.
	dnsCompleted         bool
	projectCompleted     bool
	applicationCompleted bool
	envVarsCompleted     bool
	startCompleted       bool
	waitReady            bool
	dbResults            []DatabaseResult

	hadSoftFailure bool
}

// NewContext creates a fresh DeploymentContext for one deployment request.
func NewContext(id uuid.UUID, spec DeploymentSpec, fullDomain string) *DeploymentContext {
	return &DeploymentContext{
		DeploymentID: id,
		Spec:         spec,
		FullDomain:   fullDomain,
		State:        StateInit,
		StepLog:      make([]resource.StepLogEntry, 0, 9),
	}
}

// appendStarting records the "starting" log entry for a step about to run.
// Only the driver ever appends to StepLog (§9 redesign flag: "Mutable
// shared log list").
func (c *DeploymentContext) appendStarting(step string) {
	c.StepLog = append(c.StepLog, resource.StepLogEntry{Step: step, Status: string(StatusStarting)})
}

// appendTerminal records a step's terminal log entry.
func (c *DeploymentContext) appendTerminal(step string, outcome StepOutcome) {
	c.StepLog = append(c.StepLog, resource.StepLogEntry{
		Step:    step,
		Status:  string(outcome.Status),
		Details: outcome.Details,
		Error:   outcome.Error,
	})
}

// Results assembles the final fixed results record from the flags each
// step recorded during the run.
func (c *DeploymentContext) Results() Results {
	return Results{
		DNS:         c.dnsCompleted,
		Project:     c.projectCompleted,
		Databases:   c.dbResults,
		Application: c.applicationCompleted && c.waitReady,
		EnvVars:     c.envVarsCompleted,
		Start:       c.startCompleted && c.waitReady,
	}
}

// elapsed is a small helper kept for step handlers that want to report how
// long a bounded wait took.
func elapsed(since time.Time) time.Duration {
	return time.Since(since)
}
