// Package orchestrator accepts a deployment spec, drives the pipeline to
// completion, and renders the final audit structure returned to the client
// (§4.4). It also owns the teardown (reverse-pipeline) entry point.
package orchestrator

import "encoding/json"

// CoolifyRefs mirrors the response's "coolify" block (§6) — named after
// the PaaS this adapter targets, kept verbatim from the spec's response
// shape regardless of the adapter's internal naming.
type CoolifyRefs struct {
	ProjectUUID     string `json:"projectUuid"`
	ApplicationUUID string `json:"applicationUuid"`
	DashboardURL    string `json:"dashboardUrl"`
}

// DatabaseSummary is one entry of the response's "databases" list.
type DatabaseSummary struct {
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	UUID        string            `json:"uuid"`
	Status      string            `json:"status"`
	Credentials map[string]string `json:"credentials"`
}

// Instructions is the fixed user-oriented guidance block (§4.4), returned
// verbatim regardless of partial outcomes (§7).
type Instructions struct {
	Access    string `json:"access"`
	Dashboard string `json:"dashboard"`
	DNS       string `json:"dns"`
}

// StepLogEntryView mirrors resource.StepLogEntry for the response body.
type StepLogEntryView struct {
	Step    string `json:"step"`
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DatabaseResultView mirrors pipeline.DatabaseResult for the response body.
type DatabaseResultView struct {
	Name    string `json:"name"`
	Success bool   `json:"success"`
}

// ResultsView mirrors pipeline.Results for the response body.
type ResultsView struct {
	DNS         bool                  `json:"dns"`
	Project     bool                  `json:"project"`
	Databases   []DatabaseResultView  `json:"databases"`
	Application bool                  `json:"application"`
	EnvVars     bool                  `json:"envVars"`
	Start       bool                  `json:"start"`
}

// DeployResponse is the success/partial response body, exact shape per §6.
type DeployResponse struct {
	Success       bool                `json:"success"`
	DeploymentID  string              `json:"deploymentId"`
	ProjectName   string              `json:"projectName"`
	Domain        string              `json:"domain"`
	URL           string              `json:"url"`
	Coolify       CoolifyRefs         `json:"coolify"`
	Databases     []DatabaseSummary   `json:"databases"`
	DeploymentLog []StepLogEntryView  `json:"deploymentLog"`
	Results       ResultsView         `json:"results"`
	DeployedAt    string              `json:"deployedAt"`
	Instructions  Instructions        `json:"instructions"`
}

// DeployFailureResponse is the HTTP 500 response body, exact shape per §6.
type DeployFailureResponse struct {
	Error         string             `json:"error"`
	DeploymentID  string             `json:"deploymentId"`
	Details       string             `json:"details"`
	DeploymentLog []StepLogEntryView `json:"deploymentLog"`
	Results       ResultsView        `json:"results"`
}

// ProjectListEntry is one row of GET /api/projects.
type ProjectListEntry struct {
	Name      string `json:"name"`
	UUID      string `json:"uuid"`
	FQDN      string `json:"fqdn"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// DeploymentRecordView is one row of the audit journal, exposed read-only
// via GET /api/deployments and GET /api/deployments/:id (§C.1).
type DeploymentRecordView struct {
	DeploymentID string          `json:"deploymentId"`
	ProjectName  string          `json:"projectName"`
	ProjectUUID  string          `json:"projectUuid,omitempty"`
	Outcome      string          `json:"outcome"`
	StepLog      json.RawMessage `json:"deploymentLog,omitempty"`
	Results      json.RawMessage `json:"results,omitempty"`
	CreatedAt    string          `json:"createdAt"`
}
