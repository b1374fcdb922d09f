package filehistory

// Subsystem is the process-wide COM runtime. Shutdown must be called exactly
// once, from the goroutine that initialized it.
type Subsystem interface {
	// NewConfigManager instantiates the File History configuration manager.
	NewConfigManager() (ConfigManager, error)
	// OpenService opens the control pipe of the File History service,
	// starting the service first if autoStart is set.
	OpenService(autoStart bool) (ServiceChannel, error)
	Shutdown()
}

// InitFunc initializes the Subsystem.
type InitFunc func() (Subsystem, error)

// ConfigManager is the client side of IFhConfigMgr.
type ConfigManager interface {
	LoadConfiguration() error
	GetBackupStatus() (BackupStatus, error)
	GetDefaultTarget() (Target, error)
	ValidateTarget(path string) (ValidationResult, error)
	QueryProtectionStatus() (Protection, error)
	Release()
}

// Target is the client side of IFhTarget.
type Target interface {
	GetStringProperty(p TargetProperty) (string, error)
	GetNumericalProperty(p TargetProperty) (uint64, error)
	Release()
}

// ServiceChannel is an open control pipe to the File History service.
type ServiceChannel interface {
	// RequestBackup asks the service to start a backup pass now.
	RequestBackup(userInitiated bool) error
	Close() error
}
