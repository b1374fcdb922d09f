package main

import (
	"context"

	"github.com/restic/fhbackup/internal/debug"
	"github.com/restic/fhbackup/internal/feature"
	"github.com/restic/fhbackup/internal/filehistory"
	"github.com/restic/fhbackup/internal/ui"
	"github.com/restic/fhbackup/internal/ui/trigger"
	"github.com/spf13/pflag"
)

// initFileHistory initializes COM for the trigger, tests replace it.
var initFileHistory filehistory.InitFunc = filehistory.Initialize

// TriggerOptions bundles all options for the root command.
type TriggerOptions struct {
	DryRun bool
}

func (opts *TriggerOptions) AddFlags(f *pflag.FlagSet) {
	f.BoolVarP(&opts.DryRun, "dry-run", "n", false, "check configuration and target, but do not ask the File History service to start a backup")
}

func newTriggerProgress(gopts GlobalOptions, term ui.Terminal) trigger.ProgressPrinter {
	if gopts.JSON {
		return trigger.NewJSONProgress(term, gopts.verbosity)
	}
	return trigger.NewTextProgress(term, gopts.verbosity)
}

func runTrigger(ctx context.Context, opts TriggerOptions, gopts GlobalOptions, term ui.Terminal, args []string) error {
	if len(args) > 0 {
		debug.Log("ignoring arguments %v", args)
	}

	if !gopts.JSON && gopts.verbosity >= 1 && term.OutputIsTerminal() {
		term.Print("fhbackup " + version + "\n")
	}

	progress := newTriggerProgress(gopts, term)
	t := &filehistory.Trigger{
		Init:             initFileHistory,
		Reporter:         progress,
		DryRun:           opts.DryRun,
		NumericDriveType: feature.Flag.Enabled(feature.NumericDriveType),
	}

	report, err := t.Run(ctx)
	progress.Finish(report, err)
	return err
}
