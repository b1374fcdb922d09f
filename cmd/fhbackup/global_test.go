package main

import (
	"bytes"
	"testing"

	"github.com/restic/fhbackup/internal/errors"
	rtest "github.com/restic/fhbackup/internal/test"
)

func TestPreRunVerbosity(t *testing.T) {
	for _, test := range []struct {
		opts      GlobalOptions
		verbosity uint
	}{
		{GlobalOptions{}, 1},
		{GlobalOptions{Quiet: true}, 0},
		{GlobalOptions{Verbose: true}, 2},
	} {
		opts := test.opts
		rtest.OK(t, opts.PreRun())
		rtest.Equals(t, test.verbosity, opts.verbosity)
	}
}

func TestPreRunQuietVerbose(t *testing.T) {
	opts := GlobalOptions{Quiet: true, Verbose: true}
	err := opts.PreRun()
	rtest.Assert(t, errors.IsFatal(err), "expected fatal error, got %v", err)
}

// withCaptureOutput redirects the global stdout and stderr for the duration
// of the test. All other global options are restored as well.
func withCaptureOutput(t testing.TB) (stdout, stderr *bytes.Buffer) {
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}

	prev := globalOptions
	globalOptions.stdout, globalOptions.stderr = stdout, stderr
	t.Cleanup(func() {
		globalOptions = prev
	})

	return stdout, stderr
}

func TestWarnf(t *testing.T) {
	_, stderr := withCaptureOutput(t)
	Warnf("signal %v received, cleaning up\n", "interrupt")
	rtest.Equals(t, "signal interrupt received, cleaning up\n", stderr.String())
}
