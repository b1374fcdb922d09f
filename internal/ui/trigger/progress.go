// Package trigger prints the progress of a File History trigger run, either
// as text or as JSON lines.
package trigger

import "github.com/restic/fhbackup/internal/filehistory"

// ProgressPrinter reports the progress of a trigger run to the terminal.
type ProgressPrinter interface {
	filehistory.Reporter

	// Finish prints the outcome of the run. err is the error returned by
	// Trigger.Run, if any.
	Finish(report filehistory.Report, err error)
}

// quietSteps have no progress line of their own at the default verbosity.
var quietSteps = map[filehistory.Step]bool{
	filehistory.StepCreateConfigManager: true,
	filehistory.StepTargetProperties:    true,
}

// warningCause strips the step context from a warning, the kind is already
// implied by the message prefix.
func warningCause(err error) error {
	if stepErr, ok := err.(*filehistory.StepError); ok {
		return stepErr.Err
	}
	return err
}
