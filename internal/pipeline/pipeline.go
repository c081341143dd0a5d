package pipeline

import (
	"context"

	"github.com/google/uuid"
)

// Pipeline drives a DeploymentContext through the fixed step sequence
// (§4.3). It depends on an explicit Adapters record rather than reaching
// for ambient globals (§9 redesign flag).
type Pipeline struct {
	adapters *Adapters
	cfg      Config
}

// New builds a Pipeline bound to adapters and cfg.
func New(adapters *Adapters, cfg Config) *Pipeline {
	return &Pipeline{adapters: adapters, cfg: cfg}
}

// Run executes the full step sequence for one deployment request and
// returns the resulting DeploymentContext in its terminal state
// (SUCCEEDED/PARTIAL/FAILED). Only this driver appends to StepLog (§9
// redesign flag: "Mutable shared log list").
func (p *Pipeline) Run(ctx context.Context, id uuid.UUID, spec DeploymentSpec) *DeploymentContext {
	fullDomain := ComputeFullDomain(spec, p.cfg.BaseDomain)
	dctx := NewContext(id, spec, fullDomain)
	dctx.State = StateRunning

	if !p.step(dctx, "VALIDATE", func() StepOutcome { return validate(spec) }) {
		return dctx
	}

	shouldDNS := spec.CustomDomain == "" && spec.GenerateDomain
	shouldDomainAttach := spec.CustomDomain != "" || spec.GenerateDomain

	if shouldDNS {
		p.step(dctx, "DNS", func() StepOutcome { return p.dnsStep(ctx, dctx) })
	}

	if !p.step(dctx, "PROJECT", func() StepOutcome { return p.projectStep(ctx, dctx) }) {
		return dctx
	}

	p.step(dctx, "DATABASES", func() StepOutcome { return p.databasesStep(ctx, dctx) })

	if !p.step(dctx, "APPLICATION", func() StepOutcome { return p.applicationStep(ctx, dctx) }) {
		return dctx
	}

	if shouldDomainAttach {
		p.step(dctx, "DOMAIN_ATTACH", func() StepOutcome { return p.domainAttachStep(ctx, dctx) })
	}

	p.step(dctx, "ENV_VARS", func() StepOutcome { return p.envVarsStep(ctx, dctx) })

	p.step(dctx, "START", func() StepOutcome { return p.startStep(ctx, dctx) })

	if !p.step(dctx, "WAIT_READY", func() StepOutcome { return p.waitReadyStep(ctx, dctx) }) {
		return dctx
	}

	p.finalize(dctx)
	return dctx
}

// step appends the starting/terminal log entries for one step, applies its
// outcome to the context's flags, and reports whether the driver should
// continue to the next step.
func (p *Pipeline) step(dctx *DeploymentContext, name string, fn func() StepOutcome) bool {
	dctx.appendStarting(name)
	outcome := fn()
	dctx.appendTerminal(name, outcome)

	switch {
	case outcome.Status == StatusCompleted:
		// Per-step completion flags are set by the step handlers
		// themselves (steps.go, waitready.go); Results() reads them.
	case outcome.Status == StatusFailed && outcome.Hard:
		dctx.State = StateFailed
		return false
	default:
		dctx.hadSoftFailure = true
	}
	return true
}

// finalize computes the terminal pipeline state once every step has run
// without a hard failure (§4.3 state transitions).
func (p *Pipeline) finalize(dctx *DeploymentContext) {
	if dctx.hadSoftFailure {
		dctx.State = StatePartial
		return
	}
	dctx.State = StateSucceeded
}
