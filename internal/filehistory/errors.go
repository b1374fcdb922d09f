package filehistory

import (
	"fmt"

	"github.com/restic/fhbackup/internal/errors"
)

// Error kinds of a failed trigger run. A *StepError matches exactly one of
// them with errors.Is.
var (
	ErrSubsystemInit      = errors.New("COM initialization failed")
	ErrServiceUnavailable = errors.New("File History configuration manager unavailable")
	ErrConfigLoad         = errors.New("loading the File History configuration failed")
	ErrPolicyDisabled     = errors.New("File History is not enabled")
	ErrNoTargetConfigured = errors.New("no File History target configured")
	ErrNoTargetPath       = errors.New("no target path found")
	ErrTargetValidation   = errors.New("target is not valid for File History")
	ErrServiceConnect     = errors.New("contacting the File History service failed")
	ErrBackupStart        = errors.New("starting the backup failed")
	ErrProtectionQuery    = errors.New("querying the protection status failed")
)

// Step identifies one call of the trigger sequence.
type Step int

// Steps in the order they are executed.
const (
	StepInitialize Step = iota
	StepCreateConfigManager
	StepLoadConfiguration
	StepBackupStatus
	StepDefaultTarget
	StepTargetProperties
	StepValidateTarget
	StepProtectionStatus
	StepOpenService
	StepStartBackup
)

var stepNames = [...]string{
	StepInitialize:          "initialize",
	StepCreateConfigManager: "create-config-manager",
	StepLoadConfiguration:   "load-configuration",
	StepBackupStatus:        "backup-status",
	StepDefaultTarget:       "default-target",
	StepTargetProperties:    "target-properties",
	StepValidateTarget:      "validate-target",
	StepProtectionStatus:    "protection-status",
	StepOpenService:         "open-service",
	StepStartBackup:         "start-backup",
}

var stepDescriptions = [...]string{
	StepInitialize:          "Initializing COM...",
	StepCreateConfigManager: "Creating configuration manager",
	StepLoadConfiguration:   "Loading configuration",
	StepBackupStatus:        "Getting backup status",
	StepDefaultTarget:       "Getting current target",
	StepTargetProperties:    "Reading target properties",
	StepValidateTarget:      "Validating target",
	StepProtectionStatus:    "Looking up existing backups",
	StepOpenService:         "Contacting File History service (starting if necessary)",
	StepStartBackup:         "Manually starting backup",
}

// String returns the machine readable name of the step.
func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return fmt.Sprintf("step-%d", int(s))
	}
	return stepNames[s]
}

// Description returns the progress message printed when the step starts.
func (s Step) Description() string {
	if s < 0 || int(s) >= len(stepDescriptions) {
		return s.String()
	}
	return stepDescriptions[s]
}

// kind returns the error kind a failure of the step is reported as.
func (s Step) kind() error {
	switch s {
	case StepInitialize:
		return ErrSubsystemInit
	case StepCreateConfigManager:
		return ErrServiceUnavailable
	case StepLoadConfiguration:
		return ErrConfigLoad
	case StepBackupStatus:
		return ErrPolicyDisabled
	case StepDefaultTarget:
		return ErrNoTargetConfigured
	case StepTargetProperties:
		return ErrNoTargetPath
	case StepValidateTarget:
		return ErrTargetValidation
	case StepProtectionStatus:
		return ErrProtectionQuery
	case StepOpenService:
		return ErrServiceConnect
	case StepStartBackup:
		return ErrBackupStart
	default:
		panic(fmt.Sprintf("unknown step %d", int(s)))
	}
}

// StepError is returned when a step of the trigger sequence fails.
type StepError struct {
	Step Step
	Kind error
	Err  error
}

func newStepError(step Step, err error) *StepError {
	return &StepError{Step: step, Kind: step.kind(), Err: err}
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

// Unwrap returns both the kind and the cause, so that errors.Is matches the
// kind and errors.As finds a *ComError.
func (e *StepError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// HResult returns the HRESULT of the failed call. Failures which did not come
// from a COM call, e.g. an unacceptable backup status, report E_FAIL.
func (e *StepError) HResult() HRESULT {
	var comErr *ComError
	if errors.As(e.Err, &comErr) {
		return comErr.HResult
	}
	return E_FAIL
}
