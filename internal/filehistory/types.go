// Package filehistory triggers a backup of the Windows File History service.
// It talks to the configuration manager (IFhConfigMgr) to check that backups
// are enabled and the default target is usable, then asks the File History
// service to start a backup pass through its control pipe.
package filehistory

import "fmt"

// BackupStatus is the FH_BACKUP_STATUS value reported by the configuration
// manager.
type BackupStatus uint32

// BackupStatus values, cf. fhcfg.h.
const (
	StatusDisabled BackupStatus = iota
	StatusDisabledByGP
	StatusEnabled
	StatusRehydrating
)

var backupStatusNames = map[BackupStatus]string{
	StatusDisabled:     "FH_STATUS_DISABLED",
	StatusDisabledByGP: "FH_STATUS_DISABLED_BY_GP",
	StatusEnabled:      "FH_STATUS_ENABLED",
	StatusRehydrating:  "FH_STATUS_REHYDRATING",
}

func (s BackupStatus) String() string {
	if name, ok := backupStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("FH_STATUS_UNKNOWN(%#x)", uint32(s))
}

// AllowsBackup reports whether a backup may be started in this state.
func (s BackupStatus) AllowsBackup() bool {
	switch s {
	case StatusEnabled, StatusRehydrating:
		return true
	default:
		return false
	}
}

// ValidationResult is the FH_DEVICE_VALIDATION_RESULT value returned by
// ValidateTarget.
type ValidationResult uint32

// ValidationResult values, cf. fhcfg.h.
const (
	ValidationAccessDenied ValidationResult = iota
	ValidationInvalidDriveType
	ValidationReadOnlyPermission
	ValidationCurrentDefault
	ValidationNamespaceExists
	ValidationTargetPartOfLibrary
	ValidationValidTarget
)

var validationResultNames = map[ValidationResult]string{
	ValidationAccessDenied:        "FH_ACCESS_DENIED",
	ValidationInvalidDriveType:    "FH_INVALID_DRIVE_TYPE",
	ValidationReadOnlyPermission:  "FH_READ_ONLY_PERMISSION",
	ValidationCurrentDefault:      "FH_CURRENT_DEFAULT",
	ValidationNamespaceExists:     "FH_NAMESPACE_EXISTS",
	ValidationTargetPartOfLibrary: "FH_TARGET_PART_OF_LIBRARY",
	ValidationValidTarget:         "FH_VALID_TARGET",
}

func (r ValidationResult) String() string {
	if name, ok := validationResultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("FH_VALIDATION_UNKNOWN(%#x)", uint32(r))
}

// Usable reports whether the target can receive backups.
func (r ValidationResult) Usable() bool {
	switch r {
	case ValidationCurrentDefault, ValidationNamespaceExists, ValidationValidTarget:
		return true
	default:
		return false
	}
}

// TargetProperty is a FH_TARGET_PROPERTY_TYPE.
type TargetProperty uint32

// TargetProperty values, cf. fhcfg.h.
const (
	PropertyName TargetProperty = iota
	PropertyURL
	PropertyDriveType
)

// TargetProperties lists the properties printed for the default target, in
// order.
var TargetProperties = []TargetProperty{PropertyName, PropertyURL, PropertyDriveType}

func (p TargetProperty) String() string {
	switch p {
	case PropertyName:
		return "FH_TARGET_NAME"
	case PropertyURL:
		return "FH_TARGET_URL"
	case PropertyDriveType:
		return "FH_TARGET_DRIVE_TYPE"
	default:
		return fmt.Sprintf("FH_TARGET_PROPERTY(%d)", uint32(p))
	}
}

// DriveType is the FH_TARGET_DRIVE_TYPES value of the drive type property.
type DriveType uint64

// DriveType values, cf. fhcfg.h. The values follow GetDriveType.
const (
	DriveUnknown   DriveType = 0
	DriveRemovable DriveType = 2
	DriveFixed     DriveType = 3
	DriveRemote    DriveType = 4
)

func (d DriveType) String() string {
	switch d {
	case DriveUnknown:
		return "FH_DRIVE_UNKNOWN"
	case DriveRemovable:
		return "FH_DRIVE_REMOVABLE"
	case DriveFixed:
		return "FH_DRIVE_FIXED"
	case DriveRemote:
		return "FH_DRIVE_REMOTE"
	default:
		return fmt.Sprintf("FH_DRIVE(%d)", uint64(d))
	}
}

// ProtectionState is the protection state returned by QueryProtectionStatus.
type ProtectionState uint32

// ProtectionState values, cf. fhstatus.h.
const (
	StateNotTracked          ProtectionState = 0x00
	StateOff                 ProtectionState = 0x01
	StateDisabledByGP        ProtectionState = 0x02
	StateFatalConfigError    ProtectionState = 0x03
	StateMigrating           ProtectionState = 0x04
	StateRehydrating         ProtectionState = 0x05
	StateTargetFSLimitation  ProtectionState = 0x0D
	StateTargetAccessDenied  ProtectionState = 0x0E
	StateTargetVolumeDirty   ProtectionState = 0x0F
	StateTargetFullRetention ProtectionState = 0x10
	StateTargetFull          ProtectionState = 0x11
	StateStagingFull         ProtectionState = 0x12
	StateTargetLowSpace      ProtectionState = 0x13
	StateTargetAbsent        ProtectionState = 0x14
	StateTooMuchBehind       ProtectionState = 0x15
	StateNoError             ProtectionState = 0xFF
	StateRunning             ProtectionState = 0x100
	StateBackupNotSupported  ProtectionState = 0x810
)

var protectionStateNames = map[ProtectionState]string{
	StateNotTracked:          "FH_STATE_NOT_TRACKED",
	StateOff:                 "FH_STATE_OFF",
	StateDisabledByGP:        "FH_STATE_DISABLED_BY_GP",
	StateFatalConfigError:    "FH_STATE_FATAL_CONFIG_ERROR",
	StateMigrating:           "FH_STATE_MIGRATING",
	StateRehydrating:         "FH_STATE_REHYDRATING",
	StateTargetFSLimitation:  "FH_STATE_TARGET_FS_LIMITATION",
	StateTargetAccessDenied:  "FH_STATE_TARGET_ACCESS_DENIED",
	StateTargetVolumeDirty:   "FH_STATE_TARGET_VOLUME_DIRTY",
	StateTargetFullRetention: "FH_STATE_TARGET_FULL_RETENTION_MAX",
	StateTargetFull:          "FH_STATE_TARGET_FULL",
	StateStagingFull:         "FH_STATE_STAGING_FULL",
	StateTargetLowSpace:      "FH_STATE_TARGET_LOW_SPACE",
	StateTargetAbsent:        "FH_STATE_TARGET_ABSENT",
	StateTooMuchBehind:       "FH_STATE_TOO_MUCH_BEHIND",
	StateNoError:             "FH_STATE_NO_ERROR",
	StateRunning:             "FH_STATE_RUNNING",
	StateBackupNotSupported:  "FH_STATE_BACKUP_NOT_SUPPORTED",
}

func (s ProtectionState) String() string {
	if name, ok := protectionStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("FH_STATE(%#x)", uint32(s))
}

// Protection describes how long existing backup data is protected.
type Protection struct {
	State          ProtectionState
	ProtectedUntil string
}
