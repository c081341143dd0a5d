package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
)

// waitReadyStep polls application status until it is ready, fails
// terminally, or the budget is exhausted (§4.3 step 9, "Deployment
// readiness wait"). It never mutates remote state — §8's "WAIT_READY must
// be pure-observation" round-trip law.
func (p *Pipeline) waitReadyStep(ctx context.Context, dctx *DeploymentContext) StepOutcome {
	interval := p.cfg.WaitReadyInterval
	budget := p.cfg.WaitReadyBudget
	pollTimeout := p.cfg.WaitReadyPollTimeout
	transientBudget := budget / 2

	backoff := retry.WithMaxDuration(budget, retry.NewConstant(interval))

	start := time.Now()
	var transientElapsed time.Duration
	var terminalErr error
	var lastErr error

	runErr := retry.Do(ctx, backoff, func(pollCtx context.Context) error {
		callCtx, cancel := context.WithTimeout(pollCtx, pollTimeout)
		defer cancel()

		status, err := p.adapters.PaaS.PollApplicationStatus(callCtx, dctx.Application.UUID)
		if err != nil {
			lastErr = err
			transientElapsed += interval
			if transientElapsed > transientBudget {
				// Repeated transient errors beyond half the budget are no
				// longer tolerated (§4.3) — stop polling.
				return err
			}
			return retry.RetryableError(err)
		}

		if status.IsReady() {
			return nil
		}
		if status.IsTerminalFailure() {
			terminalErr = fmt.Errorf("application entered state %q", status.State)
			return terminalErr
		}

		lastErr = fmt.Errorf("application not ready yet (state=%s)", status.State)
		return retry.RetryableError(lastErr)
	})

	switch {
	case runErr == nil:
		dctx.waitReady = true
		detail := fmt.Sprintf("application is ready after %s", time.Since(start).Round(time.Second))
		if p.adapters.Executor != nil && dctx.Application.Port != "" {
			healthURL := fmt.Sprintf("http://localhost:%s/", dctx.Application.Port)
			if err := p.adapters.Executor.HealthCheck(ctx, healthURL); err != nil {
				detail += fmt.Sprintf(" (local health check at %s not reachable: %v)", healthURL, err)
			} else {
				detail += fmt.Sprintf(", local health check at %s passed", healthURL)
			}
		}
		return Completed(detail)
	case terminalErr != nil:
		return Failed("application entered a terminal failure state", terminalErr.Error(), true)
	default:
		detail := "deployment may still be progressing"
		errMsg := "timeout waiting for application readiness"
		if lastErr != nil {
			errMsg = lastErr.Error()
		}
		if errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded) {
			errMsg = "timeout waiting for application readiness"
		}
		return TimedOut(detail, errMsg)
	}
}
