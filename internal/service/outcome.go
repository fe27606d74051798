package service

// Outcome is the result of one pipeline stage. Empty means the stage ran fine
// but found nothing, which callers must tell apart from a failure.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeEmpty   Outcome = "empty"
	OutcomeFailed  Outcome = "failed"
)
