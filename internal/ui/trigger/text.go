package trigger

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/restic/fhbackup/internal/filehistory"
	"github.com/restic/fhbackup/internal/ui"
	"github.com/restic/fhbackup/internal/ui/table"
)

type textPrinter struct {
	terminal  ui.Terminal
	verbosity uint
}

// NewTextProgress returns a ProgressPrinter printing human readable lines.
// Verbosity 0 prints warnings only, 1 prints the progress of every remote call
// and 2 adds the raw values returned by File History.
func NewTextProgress(terminal ui.Terminal, verbosity uint) ProgressPrinter {
	return &textPrinter{
		terminal:  terminal,
		verbosity: verbosity,
	}
}

func (t *textPrinter) P(msg string, args ...interface{}) {
	if t.verbosity >= 1 {
		t.terminal.Print(fmt.Sprintf(msg, args...))
	}
}

func (t *textPrinter) V(msg string, args ...interface{}) {
	if t.verbosity >= 2 {
		t.terminal.Print(fmt.Sprintf(msg, args...))
	}
}

func (t *textPrinter) StartStep(step filehistory.Step) {
	if quietSteps[step] {
		t.V("%s", step.Description())
		return
	}
	t.P("%s", step.Description())
}

func (t *textPrinter) TargetProperty(p filehistory.TargetProperty, value string) {
	t.P(" - %s : %s", p, ui.Quote(value))
}

func (t *textPrinter) Protection(p filehistory.Protection) {
	if t.verbosity >= 2 {
		t.V("ProtectionStatus: %s (%v)", ui.Quote(p.ProtectedUntil), p.State)
		return
	}
	t.P("ProtectionStatus: %s", ui.Quote(p.ProtectedUntil))
}

func (t *textPrinter) Warn(_ filehistory.Step, err error) {
	t.terminal.Error(fmt.Sprintf("Warning: %v", warningCause(err)))
}

func (t *textPrinter) Finish(report filehistory.Report, err error) {
	if err != nil {
		return
	}

	if t.verbosity >= 2 {
		t.printChecks(report)
	}
	switch {
	case report.DryRun:
		t.P("Dry run: %s is usable, File History service not contacted", ui.Quote(report.TargetPath))
	case report.BackupStarted:
		t.P("Backup to %s started", ui.Quote(report.TargetPath))
	}
}

type checkRow struct {
	Check, Result string
}

// printChecks prints the raw values File History returned for the checks
// which were performed.
func (t *textPrinter) printChecks(report filehistory.Report) {
	tab := table.New()
	tab.AddColumn("Check", "{{ .Check }}")
	tab.AddColumn("Result", "{{ .Result }}")

	if report.Status != nil {
		tab.AddRow(checkRow{"backup status", report.Status.String()})
	}
	if report.Validation != nil {
		tab.AddRow(checkRow{"validation result", report.Validation.String()})
	}
	if report.Protection != nil {
		tab.AddRow(checkRow{"protection state", report.Protection.State.String()})
	}

	var buf bytes.Buffer
	if err := tab.Write(&buf); err != nil {
		t.terminal.Error(fmt.Sprintf("unable to print checks: %v", err))
		return
	}
	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		t.terminal.Print(line)
	}
}
