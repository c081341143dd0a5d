// Package pipeline implements the deployment state machine: nine named
// Steps executed in order against a DeploymentContext (§4.3). Each step
// mutates the context, records a structured log entry, and returns a
// StepOutcome the driver dispatches on — steps never throw to control flow
// (§9 redesign flag).
package pipeline

import (
	"time"

	"github.com/deployhub/orchestrator/internal/adapters/dns"
	"github.com/deployhub/orchestrator/internal/adapters/executor"
	"github.com/deployhub/orchestrator/internal/adapters/paas"
	"github.com/deployhub/orchestrator/internal/adapters/proxy"
)

// DatabaseSpec is one client-requested database (§3 Database entity, request shape).
type DatabaseSpec struct {
	Name string
	Type string // "postgresql" | "mysql" | "redis" | "mongodb"
}

// EnvVarInput is one client-provided environment variable.
type EnvVarInput struct {
	Key   string
	Value string
}

// DeploymentSpec is the immutable client-provided deployment request (§3).
type DeploymentSpec struct {
	ProjectName          string
	GitRepository        string
	GitBranch            string
	BuildPack            string
	Port                 string
	GenerateDomain        bool
	CustomDomain         string
	Databases            []DatabaseSpec
	EnvironmentVariables []EnvVarInput
}

// Adapters is the explicit set of backend clients the pipeline depends on.
// Passed into the pipeline constructor rather than reached for as ambient
// globals (§9 redesign flag: "Ambient global singletons for API clients").
type Adapters struct {
	PaaS     *paas.Client
	DNS      *dns.Client
	Proxy    *proxy.Writer
	Executor *executor.Executor
}

// Config tunes pipeline behavior that is environment-specific rather than
// spec-fixed.
type Config struct {
	ServerIP          string
	BaseDomain        string
	DefaultGitRepo    string
	DNSZone           string // zone used for A-record creation; defaults to BaseDomain

	WaitReadyInterval    time.Duration
	WaitReadyBudget      time.Duration
	WaitReadyPollTimeout time.Duration
}
