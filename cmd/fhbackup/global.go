package main

import (
	"fmt"
	"io"
	"os"

	"github.com/restic/fhbackup/internal/errors"
	"github.com/restic/fhbackup/internal/ui"
	"github.com/restic/fhbackup/internal/ui/termstatus"
	"github.com/spf13/pflag"
)

var version = "0.1.0-dev (compiled manually)"

// GlobalOptions hold all global options for fhbackup.
type GlobalOptions struct {
	Quiet   bool
	Verbose bool
	JSON    bool

	stdout io.Writer
	stderr io.Writer

	// verbosity is set as follows:
	//  0 means: don't print any messages except warnings and errors, this is used when --quiet is specified
	//  1 is the default: print the progress of every step
	//  2 means: also print the raw values returned by File History, this is used when --verbose is specified
	verbosity uint
}

func (opts *GlobalOptions) AddFlags(f *pflag.FlagSet) {
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "do not output progress messages")
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "also print the raw values returned by File History")
	f.BoolVarP(&opts.JSON, "json", "", false, "set output mode to JSON")
}

func (opts *GlobalOptions) PreRun() error {
	// set verbosity, default is one
	opts.verbosity = 1
	if opts.Quiet && opts.Verbose {
		return errors.Fatal("--quiet and --verbose cannot be specified at the same time")
	}

	switch {
	case opts.Verbose:
		opts.verbosity = 2
	case opts.Quiet:
		opts.verbosity = 0
	}

	return nil
}

// terminal returns a terminal writing to the configured stdout and stderr.
func (opts *GlobalOptions) terminal() ui.Terminal {
	return termstatus.New(opts.stdout, opts.stderr)
}

var globalOptions = GlobalOptions{
	stdout: os.Stdout,
	stderr: os.Stderr,
}

// Warnf writes the message to the configured stderr stream.
func Warnf(format string, args ...interface{}) {
	_, err := fmt.Fprintf(globalOptions.stderr, format, args...)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "unable to write to stderr: %v\n", err)
	}
}
