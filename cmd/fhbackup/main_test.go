package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/restic/fhbackup/internal/errors"
	"github.com/restic/fhbackup/internal/feature"
	"github.com/restic/fhbackup/internal/filehistory"
	rtest "github.com/restic/fhbackup/internal/test"
)

func stepError(step filehistory.Step, kind error) error {
	return &filehistory.StepError{
		Step: step,
		Kind: kind,
		Err:  &filehistory.ComError{Op: "FhServiceOpenPipe", HResult: filehistory.E_SERVICE_DISABLED},
	}
}

func TestExitCode(t *testing.T) {
	rtest.Equals(t, 0, exitCode(nil))
	rtest.Equals(t, 1, exitCode(stepError(filehistory.StepOpenService, filehistory.ErrServiceConnect)))
	rtest.Equals(t, 1, exitCode(errors.Fatal("--quiet and --verbose cannot be specified at the same time")))
	rtest.Equals(t, 130, exitCode(context.Canceled))
	rtest.Equals(t, 130, exitCode(errors.Wrap(context.Canceled, "run")))
}

func TestExitCodeLegacy(t *testing.T) {
	feature.TestSetFlag(t, feature.Flag, feature.LegacyExitStatus, true)

	rtest.Equals(t, 0, exitCode(stepError(filehistory.StepOpenService, filehistory.ErrServiceConnect)))
	// usage errors and interrupts keep their exit status
	rtest.Equals(t, 1, exitCode(errors.Fatal("the feature command expects no arguments")))
	rtest.Equals(t, 130, exitCode(context.Canceled))
}

func TestExitMessage(t *testing.T) {
	rtest.Equals(t, "", exitMessage(nil, nil))
	rtest.Equals(t, "interrupted, no backup was requested", exitMessage(context.Canceled, nil))
	rtest.Equals(t, "Fatal: invalid flag", exitMessage(errors.Fatal("invalid flag"), nil))
	rtest.Equals(t, "File History configuration failed: contacting the File History service failed: "+
		"FhServiceOpenPipe failed: ERROR_SERVICE_DISABLED (hr=0x80070422)",
		exitMessage(stepError(filehistory.StepOpenService, filehistory.ErrServiceConnect), nil))

	logBuffer := bytes.NewBufferString("library message\n")
	msg := exitMessage(errors.New("unexpected"), logBuffer)
	rtest.Assert(t, bytes.Contains([]byte(msg), []byte("library message")), "log output missing from %q", msg)
}

func TestPrintExitError(t *testing.T) {
	_, stderr := withCaptureOutput(t)

	printExitError(1, "File History configuration failed: boom")
	rtest.Equals(t, "File History configuration failed: boom\n", stderr.String())

	stderr.Reset()
	globalOptions.JSON = true

	printExitError(130, "interrupted, no backup was requested")
	rtest.Equals(t, `{"message_type":"exit_error","code":130,"message":"interrupted, no backup was requested"}`+"\n", stderr.String())
}
