package orchestrator

import (
	"context"
	"fmt"

	apperrors "github.com/deployhub/orchestrator/internal/errors"
)

// Teardown discovers a project's applications and databases, then drives
// the reverse pipeline to delete them and the project itself (§4.3, §4.4).
func (o *Orchestrator) Teardown(ctx context.Context, projectUUID string) (string, error) {
	apps, err := o.adapters.PaaS.ListApplications(ctx, projectUUID)
	if err != nil && !apperrors.IsKind(err, apperrors.KindNotFound) {
		return "", fmt.Errorf("failed to list applications for teardown: %w", err)
	}

	dbs, err := o.adapters.PaaS.ListDatabases(ctx, projectUUID)
	if err != nil && !apperrors.IsKind(err, apperrors.KindNotFound) {
		return "", fmt.Errorf("failed to list databases for teardown: %w", err)
	}

	appUUIDs := make([]string, 0, len(apps))
	for _, a := range apps {
		appUUIDs = append(appUUIDs, a.UUID)
	}
	dbUUIDs := make([]string, 0, len(dbs))
	for _, d := range dbs {
		dbUUIDs = append(dbUUIDs, d.UUID)
	}

	// Best-effort project name for reverse-proxy site cleanup and DNS
	// record cleanup, synthesized the same cosmetic way as ListProjects
	// (§9 open question 4) since the PaaS application listing doesn't echo
	// back the attached domain.
	projectName := ""
	fullDomain := ""
	if details, derr := o.adapters.PaaS.GetProjectDetails(ctx, projectUUID); derr == nil {
		projectName = details.Name
		fullDomain = details.Name + "." + o.baseDomain
	}

	result := o.pipeline.Teardown(ctx, projectUUID, fullDomain, projectName, appUUIDs, dbUUIDs)
	if result.Partial {
		o.logger.Warn("teardown completed with partial failures", "projectUuid", projectUUID, "errors", result.Errors)
		return "", apperrors.Newf(apperrors.CodeTeardownPartial, apperrors.KindTeardownPartial, "teardown of project %s completed with errors: %v", projectUUID, result.Errors)
	}

	return fmt.Sprintf("Project %s deleted successfully", projectUUID), nil
}

// ListProjects proxies to the PaaS adapter, synthesizing fqdn from the
// project name client-side regardless of actual DNS/domain binding state —
// preserved cosmetic behavior (§9 open question 4).
func (o *Orchestrator) ListProjects(ctx context.Context) ([]ProjectListEntry, error) {
	projects, err := o.adapters.PaaS.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ProjectListEntry, 0, len(projects))
	for _, p := range projects {
		out = append(out, ProjectListEntry{
			Name:      p.Name,
			UUID:      p.UUID,
			FQDN:      p.Name + "." + o.baseDomain,
			Status:    p.Status,
			CreatedAt: p.CreatedAt,
		})
	}
	return out, nil
}
