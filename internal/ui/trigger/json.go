package trigger

import (
	"fmt"

	"github.com/restic/fhbackup/internal/errors"
	"github.com/restic/fhbackup/internal/filehistory"
	"github.com/restic/fhbackup/internal/ui"
)

type jsonPrinter struct {
	terminal  ui.Terminal
	verbosity uint
}

// NewJSONProgress returns a ProgressPrinter printing one JSON object per line.
// Warnings and the summary are always printed, progress messages unless
// verbosity is 0.
func NewJSONProgress(terminal ui.Terminal, verbosity uint) ProgressPrinter {
	return &jsonPrinter{
		terminal:  terminal,
		verbosity: verbosity,
	}
}

func (t *jsonPrinter) print(status interface{}) {
	t.terminal.Print(ui.ToJSONString(status))
}

func (t *jsonPrinter) error(status interface{}) {
	t.terminal.Error(ui.ToJSONString(status))
}

func (t *jsonPrinter) StartStep(step filehistory.Step) {
	if t.verbosity < 1 || (quietSteps[step] && t.verbosity < 2) {
		return
	}
	t.print(stepUpdate{
		MessageType: "step",
		Step:        step.String(),
		Description: step.Description(),
	})
}

func (t *jsonPrinter) TargetProperty(p filehistory.TargetProperty, value string) {
	if t.verbosity < 1 {
		return
	}
	t.print(propertyUpdate{
		MessageType: "target_property",
		Property:    p.String(),
		Value:       value,
	})
}

func (t *jsonPrinter) Protection(p filehistory.Protection) {
	if t.verbosity < 1 {
		return
	}
	t.print(protectionUpdate{
		MessageType:    "protection",
		State:          p.State.String(),
		ProtectedUntil: p.ProtectedUntil,
	})
}

func (t *jsonPrinter) Warn(step filehistory.Step, err error) {
	t.error(warningUpdate{
		MessageType: "warning",
		Step:        step.String(),
		Error:       newErrorObject(warningCause(err)),
	})
}

func (t *jsonPrinter) Finish(report filehistory.Report, err error) {
	summary := summaryOutput{
		MessageType:   "summary",
		Success:       err == nil,
		TargetPath:    report.TargetPath,
		Warnings:      len(report.Warnings),
		DryRun:        report.DryRun,
		BackupStarted: report.BackupStarted,
	}
	if report.Status != nil {
		summary.BackupStatus = report.Status.String()
	}
	if report.Validation != nil {
		summary.Validation = report.Validation.String()
	}
	if report.Protection != nil {
		summary.ProtectionState = report.Protection.State.String()
	}

	if err != nil {
		summary.Error = newErrorObject(err)

		var stepErr *filehistory.StepError
		if errors.As(err, &stepErr) {
			summary.FailedStep = stepErr.Step.String()
			summary.Error.HResult = fmt.Sprintf("0x%08X", uint32(stepErr.HResult()))
		}
	}

	t.print(summary)
}

type errorObject struct {
	Message string `json:"message"`
	HResult string `json:"hresult,omitempty"`
}

func newErrorObject(err error) *errorObject {
	obj := &errorObject{Message: err.Error()}

	var comErr *filehistory.ComError
	if errors.As(err, &comErr) {
		obj.HResult = fmt.Sprintf("0x%08X", uint32(comErr.HResult))
	}
	return obj
}

type stepUpdate struct {
	MessageType string `json:"message_type"` // "step"
	Step        string `json:"step"`
	Description string `json:"description"`
}

type propertyUpdate struct {
	MessageType string `json:"message_type"` // "target_property"
	Property    string `json:"property"`
	Value       string `json:"value"`
}

type protectionUpdate struct {
	MessageType    string `json:"message_type"` // "protection"
	State          string `json:"state"`
	ProtectedUntil string `json:"protected_until"`
}

type warningUpdate struct {
	MessageType string       `json:"message_type"` // "warning"
	Step        string       `json:"step"`
	Error       *errorObject `json:"error"`
}

type summaryOutput struct {
	MessageType     string       `json:"message_type"` // "summary"
	Success         bool         `json:"success"`
	BackupStatus    string       `json:"backup_status,omitempty"`
	TargetPath      string       `json:"target_path,omitempty"`
	Validation      string       `json:"validation_result,omitempty"`
	ProtectionState string       `json:"protection_state,omitempty"`
	Warnings        int          `json:"warnings"`
	DryRun          bool         `json:"dry_run"`
	BackupStarted   bool         `json:"backup_started"`
	FailedStep      string       `json:"failed_step,omitempty"`
	Error           *errorObject `json:"error,omitempty"`
}
