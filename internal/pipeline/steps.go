package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/deployhub/orchestrator/internal/errors"
	"github.com/deployhub/orchestrator/internal/adapters/paas"
	"github.com/deployhub/orchestrator/internal/resource"
)

// dnsStep creates the A-record for the auto-generated domain (§4.3 step 2).
// Skipped entirely when a customDomain is set — the caller never invokes
// this step in that case, per Scenario E.
func (p *Pipeline) dnsStep(ctx context.Context, dctx *DeploymentContext) StepOutcome {
	zone := p.cfg.DNSZone
	if zone == "" {
		zone = p.cfg.BaseDomain
	}

	err := p.adapters.DNS.UpsertARecord(ctx, zone, dctx.Spec.ProjectName, p.cfg.ServerIP, 300)
	if err != nil {
		return Warning("DNS record creation failed but continuing", err.Error())
	}

	dctx.Domain = &resource.DomainRecord{
		Subdomain: dctx.Spec.ProjectName,
		Zone:      zone,
		TargetIP:  p.cfg.ServerIP,
		TTL:       300,
	}
	dctx.dnsCompleted = true
	return Completed(fmt.Sprintf("created A-record %s.%s -> %s", dctx.Spec.ProjectName, zone, p.cfg.ServerIP))
}

// projectStep creates the project and discovers its default environment
// (§4.3 step 3). Hard precondition for every step below.
func (p *Pipeline) projectStep(ctx context.Context, dctx *DeploymentContext) StepOutcome {
	result, err := p.adapters.PaaS.CreateProject(ctx, dctx.Spec.ProjectName, "")
	if err != nil {
		return Failed("project creation failed", err.Error(), true)
	}

	envUUID := result.EnvironmentUUID
	if envUUID == "" {
		details, derr := p.adapters.PaaS.GetProjectDetails(ctx, result.ProjectUUID)
		if derr != nil || len(details.Environments) == 0 {
			msg := "no environment returned by backend"
			if derr != nil {
				msg = derr.Error()
			}
			return Failed("failed to discover project environment", msg, true)
		}
		envUUID = details.Environments[0].UUID
	}

	dctx.Project = &resource.Project{
		UUID:            result.ProjectUUID,
		EnvironmentUUID: envUUID,
		Name:            dctx.Spec.ProjectName,
	}
	dctx.projectCompleted = true
	return Completed(fmt.Sprintf("created project %s (env %s)", result.ProjectUUID, envUUID))
}

// databasesStep creates and starts each requested database in declaration
// order (§4.3 step 4, §5 "deliberately sequential to keep credential
// ordering and log readability"). Each database is independently soft — one
// failure does not abort the others.
func (p *Pipeline) databasesStep(ctx context.Context, dctx *DeploymentContext) StepOutcome {
	if len(dctx.Spec.Databases) == 0 {
		dctx.dbResults = []DatabaseResult{}
		return Completed("no databases requested")
	}

	failures := 0
	var failureDetail string
	for _, spec := range dctx.Spec.Databases {
		ok, detail := p.createAndStartDatabase(ctx, dctx, spec)
		dctx.dbResults = append(dctx.dbResults, DatabaseResult{Name: spec.Name, Success: ok})
		if !ok {
			failures++
			failureDetail += fmt.Sprintf("%s: %s; ", spec.Name, detail)
		}
	}

	if failures == len(dctx.Spec.Databases) {
		return Warning(fmt.Sprintf("all %d databases failed to provision", failures), failureDetail)
	}
	if failures > 0 {
		return Warning(fmt.Sprintf("%d of %d databases failed to provision", failures, len(dctx.Spec.Databases)), failureDetail)
	}
	return Completed(fmt.Sprintf("provisioned %d databases", len(dctx.Spec.Databases)))
}

func (p *Pipeline) createAndStartDatabase(ctx context.Context, dctx *DeploymentContext, spec DatabaseSpec) (bool, string) {
	result, err := p.adapters.PaaS.CreateDatabase(ctx, dctx.Project.UUID, paas.DBSpec{
		ProjectName: dctx.Spec.ProjectName,
		Name:        spec.Name,
		Kind:        resource.DatabaseKind(spec.Type),
	})
	if err != nil {
		return false, err.Error()
	}

	host := dctx.Spec.ProjectName + "-" + spec.Name
	db := resource.Database{
		Name:        spec.Name,
		Kind:        resource.DatabaseKind(spec.Type),
		UUID:        result.DBUUID,
		Credentials: result.Credentials,
		Host:        host,
	}
	dctx.Databases = append(dctx.Databases, db)

	// §9 redesign flag: sequential create -> sleep -> start, not a
	// timer callback; §4.1.1 both createDatabase and startDatabase are
	// issued (open question 1 — implemented as specified).
	select {
	case <-time.After(3 * time.Second):
	case <-ctx.Done():
		return false, ctx.Err().Error()
	}

	if err := p.adapters.PaaS.StartDatabase(ctx, result.DBUUID); err != nil {
		return false, err.Error()
	}
	return true, ""
}

// applicationStep creates the application, always from a git reference —
// the configured default repo is substituted when the client omits one
// (§4.3 step 5).
func (p *Pipeline) applicationStep(ctx context.Context, dctx *DeploymentContext) StepOutcome {
	gitRepo := dctx.Spec.GitRepository
	if gitRepo == "" {
		gitRepo = p.cfg.DefaultGitRepo
	}
	gitBranch := dctx.Spec.GitBranch
	if gitBranch == "" {
		gitBranch = "main"
	}
	buildPack := dctx.Spec.BuildPack
	if buildPack == "" {
		buildPack = "nixpacks"
	}
	port := dctx.Spec.Port
	if port == "" {
		port = "3000"
	}

	result, err := p.adapters.PaaS.CreateApplication(ctx, dctx.Project.UUID, dctx.Project.EnvironmentUUID, paas.AppSpec{
		Name:          dctx.Spec.ProjectName,
		GitRepository: gitRepo,
		GitBranch:     gitBranch,
		BuildPack:     buildPack,
		Port:          port,
	})
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindRepoUnreachable) {
			return Failed("application creation failed: repository unreachable", err.Error(), true)
		}
		return Failed("application creation failed", err.Error(), true)
	}

	dctx.Application = &resource.Application{
		UUID:      result.AppUUID,
		ProjectID: dctx.Project.UUID,
		GitRef:    gitBranch,
		Port:      port,
		FQDN:      dctx.FullDomain,
	}
	dctx.applicationCompleted = true
	return Completed(fmt.Sprintf("created application %s from %s@%s", result.AppUUID, gitRepo, gitBranch))
}

// domainAttachStep attaches fullDomain to the application (§4.3 step 6) and,
// when a reverse-proxy writer is configured, publishes the matching site
// file so the domain resolves through the local proxy rather than only the
// PaaS's own routing (§4.1.3). Soft failure throughout: the app keeps going
// without the domain bound, or with the PaaS-side attach but no local site
// file, if either half fails.
func (p *Pipeline) domainAttachStep(ctx context.Context, dctx *DeploymentContext) StepOutcome {
	if err := p.adapters.PaaS.SetApplicationDomain(ctx, dctx.Application.UUID, dctx.FullDomain); err != nil {
		return Warning("domain attach failed but continuing", err.Error())
	}

	if p.adapters.Proxy != nil {
		site := dctx.FullDomain + ".conf"
		cfg := renderSiteConfig(dctx.FullDomain, dctx.Application.Port)
		if err := p.adapters.Proxy.Publish(ctx, site, cfg); err != nil {
			return Warning(fmt.Sprintf("attached domain %s but reverse-proxy publish failed", dctx.FullDomain), err.Error())
		}
	}

	return Completed(fmt.Sprintf("attached domain %s", dctx.FullDomain))
}

// renderSiteConfig builds a minimal Caddyfile-style site block reverse
// proxying fullDomain to the application's local port.
func renderSiteConfig(fullDomain, port string) []byte {
	return []byte(fmt.Sprintf("%s {\n\treverse_proxy localhost:%s\n}\n", fullDomain, port))
}

// envVarsStep pushes (user env) ++ (synthesized credentials) to the
// application, in database-declaration order (§4.2, §4.3 step 7).
func (p *Pipeline) envVarsStep(ctx context.Context, dctx *DeploymentContext) StepOutcome {
	set := resource.EnvVarSet{}
	for _, e := range dctx.Spec.EnvironmentVariables {
		set.Entries = append(set.Entries, resource.EnvVarEntry{Key: e.Key, Value: e.Value})
	}
	for _, db := range dctx.Databases {
		set.Entries = append(set.Entries, db.ToEnvEntries()...)
	}

	flat := set.Flatten()
	if len(flat) == 0 {
		dctx.envVarsCompleted = true
		return Completed("0 variables processed")
	}

	results := p.adapters.PaaS.SetEnvVars(ctx, dctx.Application.UUID, flat)
	failures := 0
	for _, r := range results {
		if !r.Success {
			failures++
		}
	}

	if failures == 0 {
		dctx.envVarsCompleted = true
		return Completed(fmt.Sprintf("%d variables processed", len(flat)))
	}
	if failures == len(flat) {
		return Warning(fmt.Sprintf("all %d variables failed to push", failures), "see per-variable push results")
	}
	dctx.envVarsCompleted = true
	return Warning(fmt.Sprintf("%d of %d variables failed to push", failures, len(flat)), "see per-variable push results")
}

// startStep issues the application start call (§4.3 step 8).
func (p *Pipeline) startStep(ctx context.Context, dctx *DeploymentContext) StepOutcome {
	if err := p.adapters.PaaS.StartApplication(ctx, dctx.Application.UUID); err != nil {
		return Warning("start request failed but continuing to monitor", err.Error())
	}
	dctx.startCompleted = true
	return Completed("start requested")
}

// newDeploymentID generates the external correlation handle for one
// deployment request (§3).
func newDeploymentID() uuid.UUID {
	return uuid.New()
}
