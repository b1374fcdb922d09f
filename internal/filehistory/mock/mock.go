// Package mock provides function-field implementations of the filehistory
// collaborator interfaces for tests.
package mock

import (
	"github.com/restic/fhbackup/internal/errors"
	"github.com/restic/fhbackup/internal/filehistory"
)

var errNotImplemented = errors.New("not implemented")

// Log records the calls made to all mocks sharing it, in order.
type Log struct {
	Calls []string
}

func (l *Log) record(call string) {
	if l != nil {
		l.Calls = append(l.Calls, call)
	}
}

// Count returns how often call was recorded.
func (l *Log) Count(call string) int {
	n := 0
	for _, c := range l.Calls {
		if c == call {
			n++
		}
	}
	return n
}

// Subsystem implements filehistory.Subsystem.
type Subsystem struct {
	NewConfigManagerFn func() (filehistory.ConfigManager, error)
	OpenServiceFn      func(autoStart bool) (filehistory.ServiceChannel, error)
	ShutdownFn         func()

	Log *Log
}

var _ filehistory.Subsystem = &Subsystem{}

func (m *Subsystem) NewConfigManager() (filehistory.ConfigManager, error) {
	m.Log.record("NewConfigManager")
	if m.NewConfigManagerFn == nil {
		return nil, errNotImplemented
	}
	return m.NewConfigManagerFn()
}

func (m *Subsystem) OpenService(autoStart bool) (filehistory.ServiceChannel, error) {
	m.Log.record("OpenService")
	if m.OpenServiceFn == nil {
		return nil, errNotImplemented
	}
	return m.OpenServiceFn(autoStart)
}

func (m *Subsystem) Shutdown() {
	m.Log.record("Shutdown")
	if m.ShutdownFn != nil {
		m.ShutdownFn()
	}
}

// ConfigManager implements filehistory.ConfigManager.
type ConfigManager struct {
	LoadConfigurationFn     func() error
	GetBackupStatusFn       func() (filehistory.BackupStatus, error)
	GetDefaultTargetFn      func() (filehistory.Target, error)
	ValidateTargetFn        func(path string) (filehistory.ValidationResult, error)
	QueryProtectionStatusFn func() (filehistory.Protection, error)

	Log *Log
}

var _ filehistory.ConfigManager = &ConfigManager{}

func (m *ConfigManager) LoadConfiguration() error {
	m.Log.record("LoadConfiguration")
	if m.LoadConfigurationFn == nil {
		return errNotImplemented
	}
	return m.LoadConfigurationFn()
}

func (m *ConfigManager) GetBackupStatus() (filehistory.BackupStatus, error) {
	m.Log.record("GetBackupStatus")
	if m.GetBackupStatusFn == nil {
		return 0, errNotImplemented
	}
	return m.GetBackupStatusFn()
}

func (m *ConfigManager) GetDefaultTarget() (filehistory.Target, error) {
	m.Log.record("GetDefaultTarget")
	if m.GetDefaultTargetFn == nil {
		return nil, errNotImplemented
	}
	return m.GetDefaultTargetFn()
}

func (m *ConfigManager) ValidateTarget(path string) (filehistory.ValidationResult, error) {
	m.Log.record("ValidateTarget")
	if m.ValidateTargetFn == nil {
		return 0, errNotImplemented
	}
	return m.ValidateTargetFn(path)
}

func (m *ConfigManager) QueryProtectionStatus() (filehistory.Protection, error) {
	m.Log.record("QueryProtectionStatus")
	if m.QueryProtectionStatusFn == nil {
		return filehistory.Protection{}, errNotImplemented
	}
	return m.QueryProtectionStatusFn()
}

func (m *ConfigManager) Release() {
	m.Log.record("ReleaseConfigManager")
}

// Target implements filehistory.Target.
type Target struct {
	GetStringPropertyFn    func(p filehistory.TargetProperty) (string, error)
	GetNumericalPropertyFn func(p filehistory.TargetProperty) (uint64, error)

	Log *Log
}

var _ filehistory.Target = &Target{}

func (m *Target) GetStringProperty(p filehistory.TargetProperty) (string, error) {
	m.Log.record("GetStringProperty(" + p.String() + ")")
	if m.GetStringPropertyFn == nil {
		return "", errNotImplemented
	}
	return m.GetStringPropertyFn(p)
}

func (m *Target) GetNumericalProperty(p filehistory.TargetProperty) (uint64, error) {
	m.Log.record("GetNumericalProperty(" + p.String() + ")")
	if m.GetNumericalPropertyFn == nil {
		return 0, errNotImplemented
	}
	return m.GetNumericalPropertyFn(p)
}

func (m *Target) Release() {
	m.Log.record("ReleaseTarget")
}

// ServiceChannel implements filehistory.ServiceChannel.
type ServiceChannel struct {
	RequestBackupFn func(userInitiated bool) error
	CloseFn         func() error

	Log *Log
}

var _ filehistory.ServiceChannel = &ServiceChannel{}

func (m *ServiceChannel) RequestBackup(userInitiated bool) error {
	m.Log.record("RequestBackup")
	if m.RequestBackupFn == nil {
		return errNotImplemented
	}
	return m.RequestBackupFn(userInitiated)
}

func (m *ServiceChannel) Close() error {
	m.Log.record("Close")
	if m.CloseFn == nil {
		return nil
	}
	return m.CloseFn()
}

// Env is a complete set of collaborators sharing one Log.
type Env struct {
	Subsystem     *Subsystem
	ConfigManager *ConfigManager
	Target        *Target
	Channel       *ServiceChannel
	Log           *Log

	// Properties are the string properties returned by Target.
	Properties map[filehistory.TargetProperty]string
}

// NewEnv returns an Env in which every call succeeds: File History is
// enabled, the default target is the network share \\server\share and the
// service accepts the backup request.
func NewEnv() *Env {
	log := &Log{}
	env := &Env{
		Log: log,
		Properties: map[filehistory.TargetProperty]string{
			filehistory.PropertyName:      "share",
			filehistory.PropertyURL:       `\\server\share`,
			filehistory.PropertyDriveType: "FH_DRIVE_REMOTE",
		},
	}

	env.Target = &Target{
		Log: log,
		GetStringPropertyFn: func(p filehistory.TargetProperty) (string, error) {
			value, ok := env.Properties[p]
			if !ok {
				return "", errors.Errorf("property %v not set", p)
			}
			return value, nil
		},
	}

	env.ConfigManager = &ConfigManager{
		Log:                 log,
		LoadConfigurationFn: func() error { return nil },
		GetBackupStatusFn: func() (filehistory.BackupStatus, error) {
			return filehistory.StatusEnabled, nil
		},
		GetDefaultTargetFn: func() (filehistory.Target, error) {
			return env.Target, nil
		},
		ValidateTargetFn: func(string) (filehistory.ValidationResult, error) {
			return filehistory.ValidationCurrentDefault, nil
		},
		QueryProtectionStatusFn: func() (filehistory.Protection, error) {
			return filehistory.Protection{State: filehistory.StateNoError, ProtectedUntil: "2026-10-14 12:00"}, nil
		},
	}

	env.Channel = &ServiceChannel{
		Log:             log,
		RequestBackupFn: func(bool) error { return nil },
	}

	env.Subsystem = &Subsystem{
		Log: log,
		NewConfigManagerFn: func() (filehistory.ConfigManager, error) {
			return env.ConfigManager, nil
		},
		OpenServiceFn: func(bool) (filehistory.ServiceChannel, error) {
			return env.Channel, nil
		},
	}

	return env
}

// Init is a filehistory.InitFunc returning the Env's Subsystem.
func (env *Env) Init() (filehistory.Subsystem, error) {
	env.Log.record("Initialize")
	return env.Subsystem, nil
}
