package filehistory

import (
	"context"

	"github.com/restic/fhbackup/internal/debug"
	"github.com/restic/fhbackup/internal/errors"
)

// Reporter receives progress notifications while the trigger runs.
type Reporter interface {
	StartStep(step Step)
	TargetProperty(p TargetProperty, value string)
	Protection(p Protection)
	Warn(step Step, err error)
}

// NoopReporter discards all notifications.
type NoopReporter struct{}

var _ Reporter = NoopReporter{}

func (NoopReporter) StartStep(Step)                        {}
func (NoopReporter) TargetProperty(TargetProperty, string) {}
func (NoopReporter) Protection(Protection)                 {}
func (NoopReporter) Warn(Step, error)                      {}

// PropertyValue is a property of the default target which could be read.
type PropertyValue struct {
	Property TargetProperty
	Value    string
}

// Report summarizes a single trigger run. Fields for steps which were not
// reached are left empty.
type Report struct {
	// Status, Validation and Protection are nil until they were read.
	Status        *BackupStatus
	Properties    []PropertyValue
	TargetPath    string
	Validation    *ValidationResult
	Protection    *Protection
	Warnings      []error
	DryRun        bool
	BackupStarted bool
}

// Trigger starts a File History backup. A Trigger holds no state between
// runs, Run may be called repeatedly.
type Trigger struct {
	Init     InitFunc
	Reporter Reporter

	// DryRun stops after querying the protection status, the File History
	// service is not contacted.
	DryRun bool
	// NumericDriveType reads the drive type through GetNumericalProperty when
	// it is not available as a string property.
	NumericDriveType bool
}

func (t *Trigger) reporter() Reporter {
	if t.Reporter == nil {
		return NoopReporter{}
	}
	return t.Reporter
}

// begin checks for cancellation and announces step. The remote calls
// themselves block and cannot be interrupted.
func (t *Trigger) begin(ctx context.Context, step Step) error {
	if err := ctx.Err(); err != nil {
		debug.Log("aborting before %v: %v", step, err)
		return err
	}
	t.reporter().StartStep(step)
	return nil
}

// Run initializes COM, checks that File History is enabled and the default
// target is usable, then asks the File History service to start a backup.
// All handles are released before Run returns. Failed steps are reported as
// *StepError, a cancelled ctx as ctx.Err().
func (t *Trigger) Run(ctx context.Context) (Report, error) {
	report := Report{DryRun: t.DryRun}

	if err := t.begin(ctx, StepInitialize); err != nil {
		return report, err
	}

	sub, err := t.Init()
	if err != nil {
		return report, newStepError(StepInitialize, err)
	}
	defer func() {
		debug.Log("shutting down COM")
		sub.Shutdown()
	}()

	err = t.startBackup(ctx, sub, &report)
	return report, err
}

func (t *Trigger) startBackup(ctx context.Context, sub Subsystem, report *Report) error {
	rep := t.reporter()

	if err := t.begin(ctx, StepCreateConfigManager); err != nil {
		return err
	}
	mgr, err := sub.NewConfigManager()
	if err != nil {
		return newStepError(StepCreateConfigManager, err)
	}
	defer mgr.Release()

	if err := t.begin(ctx, StepLoadConfiguration); err != nil {
		return err
	}
	if err := mgr.LoadConfiguration(); err != nil {
		return newStepError(StepLoadConfiguration, err)
	}

	if err := t.begin(ctx, StepBackupStatus); err != nil {
		return err
	}
	status, err := mgr.GetBackupStatus()
	if err != nil {
		return newStepError(StepBackupStatus, err)
	}
	report.Status = &status
	debug.Log("backup status %v", status)
	if !status.AllowsBackup() {
		return newStepError(StepBackupStatus, errors.Errorf("status %v not any of %v, %v",
			status, StatusEnabled, StatusRehydrating))
	}

	if err := t.begin(ctx, StepDefaultTarget); err != nil {
		return err
	}
	target, err := mgr.GetDefaultTarget()
	if err != nil {
		return newStepError(StepDefaultTarget, err)
	}
	defer target.Release()

	if err := t.begin(ctx, StepTargetProperties); err != nil {
		return err
	}
	path, err := t.readTargetProperties(target, report)
	if err != nil {
		return newStepError(StepTargetProperties, err)
	}
	report.TargetPath = path

	if err := t.begin(ctx, StepValidateTarget); err != nil {
		return err
	}
	result, err := mgr.ValidateTarget(path)
	if err != nil {
		return newStepError(StepValidateTarget, err)
	}
	report.Validation = &result
	debug.Log("validation result for %v: %v", path, result)
	if !result.Usable() {
		return newStepError(StepValidateTarget, errors.Errorf("%s is not a valid target (validation result %v not any of %v, %v, %v)",
			path, result, ValidationCurrentDefault, ValidationNamespaceExists, ValidationValidTarget))
	}

	if err := t.begin(ctx, StepProtectionStatus); err != nil {
		return err
	}
	protection, err := mgr.QueryProtectionStatus()
	if err != nil {
		warning := newStepError(StepProtectionStatus, err)
		report.Warnings = append(report.Warnings, warning)
		rep.Warn(StepProtectionStatus, warning)
	} else {
		report.Protection = &protection
		rep.Protection(protection)
	}

	if t.DryRun {
		debug.Log("dry run, not contacting the File History service")
		return nil
	}

	if err := t.begin(ctx, StepOpenService); err != nil {
		return err
	}
	channel, err := sub.OpenService(true)
	if err != nil {
		return newStepError(StepOpenService, err)
	}
	defer func() {
		if err := channel.Close(); err != nil {
			debug.Log("closing the service pipe failed: %v", err)
		}
	}()

	if err := t.begin(ctx, StepStartBackup); err != nil {
		return err
	}
	if err := channel.RequestBackup(true); err != nil {
		return newStepError(StepStartBackup, err)
	}
	report.BackupStarted = true

	return nil
}

// readTargetProperties reads all TargetProperties on a best effort basis and
// returns the target URL. A missing or empty URL is an error.
func (t *Trigger) readTargetProperties(target Target, report *Report) (string, error) {
	var path string
	var urlErr error

	for _, p := range TargetProperties {
		value, err := t.readTargetProperty(target, p)
		if err != nil {
			debug.Log("reading %v failed: %v", p, err)
			if p == PropertyURL {
				urlErr = err
			}
			continue
		}

		report.Properties = append(report.Properties, PropertyValue{Property: p, Value: value})
		t.reporter().TargetProperty(p, value)

		if p == PropertyURL {
			path = value
		}
	}

	if path == "" {
		if urlErr != nil {
			return "", urlErr
		}
		return "", errors.Errorf("%v is empty", PropertyURL)
	}

	return path, nil
}

func (t *Trigger) readTargetProperty(target Target, p TargetProperty) (string, error) {
	value, err := target.GetStringProperty(p)
	if err == nil || p != PropertyDriveType || !t.NumericDriveType {
		return value, err
	}

	n, nerr := target.GetNumericalProperty(p)
	if nerr != nil {
		return "", errors.Join(err, nerr)
	}
	return DriveType(n).String(), nil
}
