package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/deployhub/orchestrator/internal/audit"
	"github.com/deployhub/orchestrator/internal/pipeline"
	"github.com/deployhub/orchestrator/internal/resource"
)

func newID() uuid.UUID { return uuid.New() }

// deploymentWallClockBudget bounds the handler's total time for one
// request — sum of step timeouts plus the WAIT_READY budget, worst case
// ~12 minutes (§5 "Cancellation & timeouts").
const deploymentWallClockBudget = 12 * time.Minute

// Orchestrator is the top-level request handler gluing the pipeline,
// adapters, and audit journal together (§4.4).
type Orchestrator struct {
	pipeline   *pipeline.Pipeline
	adapters   *pipeline.Adapters
	auditRepo  *audit.Repository
	logger     *slog.Logger
	baseDomain string
}

// New builds an Orchestrator. auditRepo may be nil if audit persistence is
// not configured (the deployment still runs; only the recovery journal is
// skipped).
func New(p *pipeline.Pipeline, adapters *pipeline.Adapters, auditRepo *audit.Repository, logger *slog.Logger, baseDomain string) *Orchestrator {
	return &Orchestrator{pipeline: p, adapters: adapters, auditRepo: auditRepo, logger: logger, baseDomain: baseDomain}
}

// Deploy drives one deployment request to a terminal pipeline state and
// renders the response (§4.4, §6). The returned bool reports whether the
// deployment succeeded or partially succeeded (true) or hard-failed
// (false); callers use it to pick the HTTP status code.
func (o *Orchestrator) Deploy(ctx context.Context, spec pipeline.DeploymentSpec) (interface{}, bool) {
	ctx, cancel := context.WithTimeout(ctx, deploymentWallClockBudget)
	defer cancel()

	dctx := o.pipeline.Run(ctx, newID(), spec)

	o.persistJournal(ctx, dctx)

	if dctx.State == pipeline.StateFailed {
		return o.renderFailure(dctx), false
	}
	return o.renderSuccess(dctx), true
}

func (o *Orchestrator) persistJournal(ctx context.Context, dctx *pipeline.DeploymentContext) {
	if o.auditRepo == nil {
		return
	}

	stepLog, err := marshalStepLog(dctx.StepLog)
	if err != nil {
		o.logger.Warn("failed to marshal step log for audit journal", "error", err)
		return
	}
	results, err := marshalResults(dctx.Results())
	if err != nil {
		o.logger.Warn("failed to marshal results for audit journal", "error", err)
		return
	}

	projectUUID := ""
	if dctx.Project != nil {
		projectUUID = dctx.Project.UUID
	}

	outcome := "partial"
	switch dctx.State {
	case pipeline.StateSucceeded:
		outcome = "succeeded"
	case pipeline.StateFailed:
		outcome = "failed"
	}

	if err := o.auditRepo.Save(ctx, dctx.DeploymentID, dctx.Spec.ProjectName, projectUUID, outcome, stepLog, results); err != nil {
		o.logger.Warn("failed to persist audit journal record", "error", err, "deploymentId", dctx.DeploymentID)
	}
}

func (o *Orchestrator) renderSuccess(dctx *pipeline.DeploymentContext) *DeployResponse {
	appUUID := ""
	projectUUID := ""
	if dctx.Application != nil {
		appUUID = dctx.Application.UUID
	}
	if dctx.Project != nil {
		projectUUID = dctx.Project.UUID
	}

	return &DeployResponse{
		Success:      true,
		DeploymentID: dctx.DeploymentID.String(),
		ProjectName:  dctx.Spec.ProjectName,
		Domain:       dctx.FullDomain,
		URL:          "https://" + dctx.FullDomain,
		Coolify: CoolifyRefs{
			ProjectUUID:     projectUUID,
			ApplicationUUID: appUUID,
			DashboardURL:    dashboardURL(projectUUID),
		},
		Databases:     renderDatabases(dctx.Databases),
		DeploymentLog: renderLog(dctx.StepLog),
		Results:       renderResults(dctx.Results()),
		DeployedAt:    time.Now().UTC().Format(time.RFC3339),
		Instructions:  fixedInstructions(),
	}
}

func (o *Orchestrator) renderFailure(dctx *pipeline.DeploymentContext) *DeployFailureResponse {
	details := "deployment failed"
	if len(dctx.StepLog) > 0 {
		last := dctx.StepLog[len(dctx.StepLog)-1]
		if last.Error != "" {
			details = last.Error
		} else if last.Details != "" {
			details = last.Details
		}
	}

	return &DeployFailureResponse{
		Error:         "Deployment failed",
		DeploymentID:  dctx.DeploymentID.String(),
		Details:       details,
		DeploymentLog: renderLog(dctx.StepLog),
		Results:       renderResults(dctx.Results()),
	}
}

func fixedInstructions() Instructions {
	return Instructions{
		Access:    "Your application will be available at the URL above once DNS propagates and the build completes.",
		Dashboard: "Use the dashboard link to monitor build logs and resource usage.",
		DNS:       "DNS propagation can take a few minutes even when record creation succeeded immediately.",
	}
}

func dashboardURL(projectUUID string) string {
	if projectUUID == "" {
		return ""
	}
	return fmt.Sprintf("/projects/%s", projectUUID)
}

func renderDatabases(dbs []resource.Database) []DatabaseSummary {
	out := make([]DatabaseSummary, 0, len(dbs))
	for _, db := range dbs {
		out = append(out, DatabaseSummary{
			Name:   db.Name,
			Type:   string(db.Kind),
			UUID:   db.UUID,
			Status: "deployed",
			Credentials: map[string]string{
				"host":          db.Credentials.Host(),
				"port":          db.Credentials.Port(),
				"user":          db.Credentials.User(),
				"password":      db.Credentials.Password(),
				"database":      db.Credentials.Database(),
				"connectionUrl": db.Credentials.ConnectionURL(),
			},
		})
	}
	return out
}

func renderLog(log []resource.StepLogEntry) []StepLogEntryView {
	out := make([]StepLogEntryView, 0, len(log))
	for _, e := range log {
		out = append(out, StepLogEntryView{Step: e.Step, Status: e.Status, Details: e.Details, Error: e.Error})
	}
	return out
}

func renderResults(r pipeline.Results) ResultsView {
	dbs := make([]DatabaseResultView, 0, len(r.Databases))
	for _, d := range r.Databases {
		dbs = append(dbs, DatabaseResultView{Name: d.Name, Success: d.Success})
	}
	return ResultsView{
		DNS:         r.DNS,
		Project:     r.Project,
		Databases:   dbs,
		Application: r.Application,
		EnvVars:     r.EnvVars,
		Start:       r.Start,
	}
}
