package pipeline

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/deployhub/orchestrator/internal/errors"
)

// TeardownResult summarizes one reverse-pipeline run (§4.3 "Reverse pipeline").
type TeardownResult struct {
	ProjectUUID       string
	ApplicationsDeleted []string
	DatabasesDeleted    []string
	ProjectDeleted      bool
	Partial             bool
	Errors              []string
}

// Teardown deletes every application, then every database, then the
// project itself, given a project's known applications/databases (the
// orchestrator discovers these from its audit journal or from
// GetProjectDetails before calling Teardown — the core pipeline does not
// maintain its own resource index across requests, per §4.3's idempotency
// contract). A 404 at any delete step is treated as success. dnsRecordName
// is the same label dnsStep used to create the A-record (dctx.Spec.ProjectName,
// not the project UUID) — reused here so the delete targets the record that
// was actually created.
func (p *Pipeline) Teardown(ctx context.Context, projectUUID, fullDomain, dnsRecordName string, applicationUUIDs, databaseUUIDs []string) *TeardownResult {
	result := &TeardownResult{ProjectUUID: projectUUID}

	if p.adapters.Proxy != nil && fullDomain != "" {
		if err := p.adapters.Proxy.Remove(ctx, fullDomain+".conf"); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("reverse-proxy site removal: %v", err))
		}
	}

	for i, appUUID := range applicationUUIDs {
		if err := p.adapters.PaaS.DeleteApplication(ctx, appUUID); err != nil {
			result.Partial = true
			result.Errors = append(result.Errors, fmt.Sprintf("application %s: %v", appUUID, err))
		} else {
			result.ApplicationsDeleted = append(result.ApplicationsDeleted, appUUID)
		}
		if i < len(applicationUUIDs)-1 {
			sleep(ctx, 2*time.Second)
		}
	}

	for i, dbUUID := range databaseUUIDs {
		if err := p.adapters.PaaS.DeleteDatabase(ctx, dbUUID); err != nil {
			result.Partial = true
			result.Errors = append(result.Errors, fmt.Sprintf("database %s: %v", dbUUID, err))
		} else {
			result.DatabasesDeleted = append(result.DatabasesDeleted, dbUUID)
		}
		if i < len(databaseUUIDs)-1 {
			sleep(ctx, 2*time.Second)
		}
	}

	result.ProjectDeleted = p.deleteProjectWithRetry(ctx, projectUUID, result)

	// DNS record cleanup is best-effort and non-fatal (§4.3.4).
	if p.adapters.DNS != nil && dnsRecordName != "" {
		zone := p.cfg.DNSZone
		if zone == "" {
			zone = p.cfg.BaseDomain
		}
		if err := p.adapters.DNS.DeleteRecord(ctx, zone, dnsRecordName, "A"); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("dns cleanup: %v", err))
		}
	}

	return result
}

// deleteProjectWithRetry retries project deletion up to 3 times with 3s
// spacing because the backend is eventually consistent on dependent
// resource cleanup (§4.3).
func (p *Pipeline) deleteProjectWithRetry(ctx context.Context, projectUUID string, result *TeardownResult) bool {
	const maxAttempts = 3
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := p.adapters.PaaS.DeleteProject(ctx, projectUUID)
		if err == nil {
			return true
		}
		lastErr = err
		if attempt < maxAttempts {
			sleep(ctx, 3*time.Second)
		}
	}

	result.Partial = true
	result.Errors = append(result.Errors, apperrors.Wrapf(lastErr, apperrors.CodeTeardownPartial, apperrors.KindTeardownPartial, "project %s delete failed after %d attempts", projectUUID, maxAttempts).Error())
	return false
}

func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}
