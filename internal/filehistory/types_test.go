package filehistory

import (
	"testing"

	rtest "github.com/restic/fhbackup/internal/test"
)

func TestBackupStatus(t *testing.T) {
	var tests = []struct {
		status BackupStatus
		name   string
		allow  bool
	}{
		{StatusDisabled, "FH_STATUS_DISABLED", false},
		{StatusDisabledByGP, "FH_STATUS_DISABLED_BY_GP", false},
		{StatusEnabled, "FH_STATUS_ENABLED", true},
		{StatusRehydrating, "FH_STATUS_REHYDRATING", true},
		{BackupStatus(0x2a), "FH_STATUS_UNKNOWN(0x2a)", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rtest.Equals(t, test.name, test.status.String())
			rtest.Equals(t, test.allow, test.status.AllowsBackup())
		})
	}
}

func TestValidationResult(t *testing.T) {
	var tests = []struct {
		result ValidationResult
		name   string
		usable bool
	}{
		{ValidationAccessDenied, "FH_ACCESS_DENIED", false},
		{ValidationInvalidDriveType, "FH_INVALID_DRIVE_TYPE", false},
		{ValidationReadOnlyPermission, "FH_READ_ONLY_PERMISSION", false},
		{ValidationCurrentDefault, "FH_CURRENT_DEFAULT", true},
		{ValidationNamespaceExists, "FH_NAMESPACE_EXISTS", true},
		{ValidationTargetPartOfLibrary, "FH_TARGET_PART_OF_LIBRARY", false},
		{ValidationValidTarget, "FH_VALID_TARGET", true},
		{ValidationResult(7), "FH_VALIDATION_UNKNOWN(0x7)", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rtest.Equals(t, test.name, test.result.String())
			rtest.Equals(t, test.usable, test.result.Usable())
		})
	}
}

func TestTargetPropertyNames(t *testing.T) {
	var names []string
	for _, p := range TargetProperties {
		names = append(names, p.String())
	}

	rtest.Equals(t, []string{"FH_TARGET_NAME", "FH_TARGET_URL", "FH_TARGET_DRIVE_TYPE"}, names)
	rtest.Equals(t, "FH_TARGET_PROPERTY(9)", TargetProperty(9).String())
}

func TestDriveType(t *testing.T) {
	rtest.Equals(t, "FH_DRIVE_UNKNOWN", DriveUnknown.String())
	rtest.Equals(t, "FH_DRIVE_REMOVABLE", DriveRemovable.String())
	rtest.Equals(t, "FH_DRIVE_FIXED", DriveFixed.String())
	rtest.Equals(t, "FH_DRIVE_REMOTE", DriveRemote.String())
	rtest.Equals(t, "FH_DRIVE(1)", DriveType(1).String())
}

func TestProtectionState(t *testing.T) {
	rtest.Equals(t, "FH_STATE_NO_ERROR", StateNoError.String())
	rtest.Equals(t, "FH_STATE_RUNNING", StateRunning.String())
	rtest.Equals(t, "FH_STATE_TARGET_ABSENT", StateTargetAbsent.String())
	rtest.Equals(t, "FH_STATE(0x42)", ProtectionState(0x42).String())
}
