package pipeline

// Status is the terminal classification of one step execution (§4.3).
type Status string

const (
	StatusStarting  Status = "starting"
	StatusCompleted Status = "completed"
	StatusWarning   Status = "warning"
	StatusFailed    Status = "failed"
)

// StepOutcome is the discriminated result a step handler returns instead of
// throwing (§9: "Exception-for-control-flow inside the pipeline"). Hard is
// only meaningful when Status is StatusFailed: it tells the driver whether
// the pipeline must transition to FAILED (hard) or may continue toward
// PARTIAL (soft). Timeout is set only by WAIT_READY on budget exhaustion.
type StepOutcome struct {
	Status  Status
	Details string
	Error   string
	Hard    bool
	Timeout bool
}

// Completed builds a successful step outcome.
func Completed(details string) StepOutcome {
	return StepOutcome{Status: StatusCompleted, Details: details}
}

// Warning builds a soft-failure step outcome that never forces the
// pipeline to FAILED.
func Warning(details, errMsg string) StepOutcome {
	return StepOutcome{Status: StatusWarning, Details: details, Error: errMsg}
}

// Failed builds a failed step outcome. hard selects whether this step's
// failure must short-circuit the pipeline to FAILED.
func Failed(details, errMsg string, hard bool) StepOutcome {
	return StepOutcome{Status: StatusFailed, Details: details, Error: errMsg, Hard: hard}
}

// TimedOut builds the WAIT_READY budget-exhaustion outcome: status failed,
// but soft — the pipeline proceeds to PARTIAL because the app may still be
// converging (§4.3, §9 open question 3).
func TimedOut(details, errMsg string) StepOutcome {
	return StepOutcome{Status: StatusFailed, Details: details, Error: errMsg, Hard: false, Timeout: true}
}
