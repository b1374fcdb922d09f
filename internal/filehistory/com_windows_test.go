//go:build windows

package filehistory_test

import (
	"context"
	"testing"

	"github.com/restic/fhbackup/internal/debug"
	"github.com/restic/fhbackup/internal/errors"
	"github.com/restic/fhbackup/internal/filehistory"
	rtest "github.com/restic/fhbackup/internal/test"
)

func TestInitializeTwice(t *testing.T) {
	if !rtest.RunWindowsIntegrationTest {
		t.Skip("integration tests disabled")
	}

	sub, err := filehistory.Initialize()
	rtest.OK(t, err)
	defer sub.Shutdown()

	// a second initialization on the same thread returns S_FALSE
	nested, err := filehistory.Initialize()
	rtest.OK(t, err)
	nested.Shutdown()
}

func TestDryRunAgainstService(t *testing.T) {
	if !rtest.RunWindowsIntegrationTest {
		t.Skip("integration tests disabled")
	}
	debug.TestLogToTB(t)

	trigger := &filehistory.Trigger{
		Init:             filehistory.Initialize,
		DryRun:           true,
		NumericDriveType: true,
	}

	report, err := trigger.Run(context.Background())
	var serr *filehistory.StepError
	if errors.As(err, &serr) {
		// File History is not configured on most test machines
		t.Skipf("File History not usable: %v", err)
	}
	rtest.OK(t, err)

	rtest.Assert(t, report.Status != nil, "backup status was not read")
	rtest.Assert(t, report.TargetPath != "", "no target path reported")
	rtest.Assert(t, !report.BackupStarted, "dry run requested a backup")
}
