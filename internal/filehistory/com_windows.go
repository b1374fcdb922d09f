//go:build windows
// +build windows

package filehistory

import (
	"runtime"
	"syscall"
	"unsafe"

	ole "github.com/go-ole/go-ole"
	"github.com/restic/fhbackup/internal/debug"
	"github.com/restic/fhbackup/internal/errors"
	"golang.org/x/sys/windows"
)

// CLSID_FhConfigMgr and IID_IFhConfigMgr identify the File History
// configuration manager, cf. fhcfg.h.
var (
	CLSID_FhConfigMgr = ole.NewGUID("{ED43BB3C-09E9-498a-9DF6-2177244C6DB4}")
	IID_IFhConfigMgr  = ole.NewGUID("{6A5FEA5B-BF8F-4EE5-B8C3-44D8A0D7331C}")
	IID_IFhTarget     = ole.NewGUID("{D87965FD-2BAD-4657-BD3B-9567EB300CED}")
)

var (
	fhsvcctlDll              = windows.NewLazySystemDLL("fhsvcctl.dll")
	procFhServiceOpenPipe    = fhsvcctlDll.NewProc("FhServiceOpenPipe")
	procFhServiceStartBackup = fhsvcctlDll.NewProc("FhServiceStartBackup")
	procFhServiceClosePipe   = fhsvcctlDll.NewProc("FhServiceClosePipe")
)

// apiBool converts a bool to the windows api BOOL type.
func apiBool(input bool) uintptr {
	if input {
		return 1
	}
	return 0
}

// oleErrorToComError converts errors returned by go-ole into a *ComError.
func oleErrorToComError(op string, err error) error {
	var oleErr *ole.OleError
	if errors.As(err, &oleErr) {
		return newComError(op, HRESULT(oleErr.Code()))
	}
	return errors.Wrap(err, op)
}

// checkResult logs the HRESULT returned by op and converts failures to a
// *ComError.
func checkResult(op string, result uintptr) error {
	hr := HRESULT(result)
	debug.Log("%s returned %s (0x%08X)", op, hr.Str(), uint32(hr))
	return newComErrorIfFailed(op, hr)
}

// comSubsystem is COM initialized on the current OS thread.
type comSubsystem struct{}

// Initialize locks the calling goroutine to its OS thread and initializes a
// single-threaded COM apartment on it. The returned Subsystem must be shut
// down from the same goroutine.
func Initialize() (Subsystem, error) {
	runtime.LockOSThread()

	if err := ole.CoInitialize(0); err != nil {
		// CoInitialize returns S_FALSE if COM is already initialized on this
		// thread, the call still needs a matching CoUninitialize
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || HRESULT(oleErr.Code()) != S_FALSE {
			runtime.UnlockOSThread()
			return nil, oleErrorToComError("CoInitialize", err)
		}
		debug.Log("COM already initialized on this thread")
	}

	return &comSubsystem{}, nil
}

func (s *comSubsystem) Shutdown() {
	ole.CoUninitialize()
	runtime.UnlockOSThread()
}

func (s *comSubsystem) NewConfigManager() (ConfigManager, error) {
	unknown, err := ole.CreateInstance(CLSID_FhConfigMgr, IID_IFhConfigMgr)
	if err != nil {
		return nil, oleErrorToComError("CoCreateInstance(CLSID_FhConfigMgr)", err)
	}
	if unknown == nil {
		return nil, newComError("CoCreateInstance(CLSID_FhConfigMgr)", E_POINTER)
	}

	return &comConfigManager{mgr: (*IFhConfigMgr)(unsafe.Pointer(unknown))}, nil
}

func (s *comSubsystem) OpenService(autoStart bool) (ServiceChannel, error) {
	if err := procFhServiceOpenPipe.Find(); err != nil {
		return nil, errors.Wrap(err, "fhsvcctl.dll")
	}

	var pipe windows.Handle
	result, _, _ := procFhServiceOpenPipe.Call(apiBool(autoStart), uintptr(unsafe.Pointer(&pipe)))
	if err := checkResult("FhServiceOpenPipe", result); err != nil {
		return nil, err
	}
	if pipe == 0 {
		return nil, newComError("FhServiceOpenPipe", E_POINTER)
	}

	return &servicePipe{pipe: pipe}, nil
}

// IFhConfigMgr File History api interface.
type IFhConfigMgr struct {
	ole.IUnknown
}

// IFhConfigMgrVTable is the vtable for IFhConfigMgr.
// nolint:structcheck
type IFhConfigMgrVTable struct {
	ole.IUnknownVtbl
	loadConfiguration                 uintptr
	createDefaultConfiguration        uintptr
	saveConfiguration                 uintptr
	addRemoveExcludeRule              uintptr
	getIncludeExcludeRules            uintptr
	getLocalPolicy                    uintptr
	setLocalPolicy                    uintptr
	getBackupStatus                   uintptr
	setBackupStatus                   uintptr
	getDefaultTarget                  uintptr
	validateTarget                    uintptr
	provisionAndSetNewTarget          uintptr
	changeDefaultTargetRecommendation uintptr
	queryProtectionStatus             uintptr
}

// getVTable returns the vtable for IFhConfigMgr.
func (mgr *IFhConfigMgr) getVTable() *IFhConfigMgrVTable {
	return (*IFhConfigMgrVTable)(unsafe.Pointer(mgr.RawVTable))
}

// LoadConfiguration calls the equivalent File History api.
func (mgr *IFhConfigMgr) LoadConfiguration() error {
	result, _, _ := syscall.SyscallN(mgr.getVTable().loadConfiguration,
		uintptr(unsafe.Pointer(mgr)))

	return checkResult("LoadConfiguration", result)
}

// GetBackupStatus calls the equivalent File History api.
func (mgr *IFhConfigMgr) GetBackupStatus() (BackupStatus, error) {
	var status uint32
	result, _, _ := syscall.SyscallN(mgr.getVTable().getBackupStatus,
		uintptr(unsafe.Pointer(mgr)), uintptr(unsafe.Pointer(&status)))

	return BackupStatus(status), checkResult("GetBackupStatus", result)
}

// GetDefaultTarget calls the equivalent File History api.
func (mgr *IFhConfigMgr) GetDefaultTarget() (*IFhTarget, error) {
	var target *IFhTarget
	result, _, _ := syscall.SyscallN(mgr.getVTable().getDefaultTarget,
		uintptr(unsafe.Pointer(mgr)), uintptr(unsafe.Pointer(&target)))

	if err := checkResult("GetDefaultTarget", result); err != nil {
		return nil, err
	}
	if target == nil {
		return nil, newComError("GetDefaultTarget", FHCFG_E_TARGET_NOT_CONFIGURED)
	}
	return target, nil
}

// ValidateTarget calls the equivalent File History api.
func (mgr *IFhConfigMgr) ValidateTarget(targetURL string) (ValidationResult, error) {
	bstr := ole.SysAllocString(targetURL)
	if bstr == nil {
		return 0, newComError("SysAllocString", E_OUTOFMEMORY)
	}
	defer func() {
		_ = ole.SysFreeString(bstr)
	}()

	var validation uint32
	result, _, _ := syscall.SyscallN(mgr.getVTable().validateTarget,
		uintptr(unsafe.Pointer(mgr)), uintptr(unsafe.Pointer(bstr)), uintptr(unsafe.Pointer(&validation)))

	return ValidationResult(validation), checkResult("ValidateTarget", result)
}

// QueryProtectionStatus calls the equivalent File History api.
func (mgr *IFhConfigMgr) QueryProtectionStatus() (Protection, error) {
	var state uint32
	var until *uint16
	result, _, _ := syscall.SyscallN(mgr.getVTable().queryProtectionStatus,
		uintptr(unsafe.Pointer(mgr)), uintptr(unsafe.Pointer(&state)), uintptr(unsafe.Pointer(&until)))

	if err := checkResult("QueryProtectionStatus", result); err != nil {
		return Protection{}, err
	}

	return Protection{
		State:          ProtectionState(state),
		ProtectedUntil: takeBSTR(until),
	}, nil
}

// IFhTarget File History api interface.
type IFhTarget struct {
	ole.IUnknown
}

// IFhTargetVTable is the vtable for IFhTarget.
// nolint:structcheck
type IFhTargetVTable struct {
	ole.IUnknownVtbl
	getStringProperty    uintptr
	getNumericalProperty uintptr
}

// getVTable returns the vtable for IFhTarget.
func (target *IFhTarget) getVTable() *IFhTargetVTable {
	return (*IFhTargetVTable)(unsafe.Pointer(target.RawVTable))
}

// GetStringProperty calls the equivalent File History api.
func (target *IFhTarget) GetStringProperty(p TargetProperty) (string, error) {
	var value *uint16
	result, _, _ := syscall.SyscallN(target.getVTable().getStringProperty,
		uintptr(unsafe.Pointer(target)), uintptr(p), uintptr(unsafe.Pointer(&value)))

	if err := checkResult("GetStringProperty("+p.String()+")", result); err != nil {
		return "", err
	}
	return takeBSTR(value), nil
}

// GetNumericalProperty calls the equivalent File History api.
func (target *IFhTarget) GetNumericalProperty(p TargetProperty) (uint64, error) {
	var value uint64
	result, _, _ := syscall.SyscallN(target.getVTable().getNumericalProperty,
		uintptr(unsafe.Pointer(target)), uintptr(p), uintptr(unsafe.Pointer(&value)))

	return value, checkResult("GetNumericalProperty("+p.String()+")", result)
}

// takeBSTR converts an out-parameter BSTR to a string and frees it.
func takeBSTR(bstr *uint16) string {
	if bstr == nil {
		return ""
	}
	s := ole.BstrToString(bstr)
	_ = ole.SysFreeString((*int16)(unsafe.Pointer(bstr)))
	return s
}

// comConfigManager adapts IFhConfigMgr to the ConfigManager interface.
type comConfigManager struct {
	mgr *IFhConfigMgr
}

func (c *comConfigManager) LoadConfiguration() error {
	return c.mgr.LoadConfiguration()
}

func (c *comConfigManager) GetBackupStatus() (BackupStatus, error) {
	return c.mgr.GetBackupStatus()
}

func (c *comConfigManager) GetDefaultTarget() (Target, error) {
	target, err := c.mgr.GetDefaultTarget()
	if err != nil {
		return nil, err
	}
	return &comTarget{target: target}, nil
}

func (c *comConfigManager) ValidateTarget(path string) (ValidationResult, error) {
	return c.mgr.ValidateTarget(path)
}

func (c *comConfigManager) QueryProtectionStatus() (Protection, error) {
	return c.mgr.QueryProtectionStatus()
}

func (c *comConfigManager) Release() {
	if c.mgr == nil {
		return
	}
	refs := c.mgr.Release()
	debug.Log("released IFhConfigMgr, %d references left", refs)
	c.mgr = nil
}

// comTarget adapts IFhTarget to the Target interface.
type comTarget struct {
	target *IFhTarget
}

func (c *comTarget) GetStringProperty(p TargetProperty) (string, error) {
	return c.target.GetStringProperty(p)
}

func (c *comTarget) GetNumericalProperty(p TargetProperty) (uint64, error) {
	return c.target.GetNumericalProperty(p)
}

func (c *comTarget) Release() {
	if c.target == nil {
		return
	}
	c.target.Release()
	c.target = nil
}

// servicePipe is a FH_SERVICE_PIPE_HANDLE opened by FhServiceOpenPipe.
type servicePipe struct {
	pipe windows.Handle
}

// RequestBackup calls FhServiceStartBackup. The BOOL parameter is passed as
// given, File History declares it as LowPriorityIo.
func (s *servicePipe) RequestBackup(userInitiated bool) error {
	if err := procFhServiceStartBackup.Find(); err != nil {
		return errors.Wrap(err, "fhsvcctl.dll")
	}

	result, _, _ := procFhServiceStartBackup.Call(uintptr(s.pipe), apiBool(userInitiated))
	return checkResult("FhServiceStartBackup", result)
}

func (s *servicePipe) Close() error {
	if s.pipe == 0 {
		return nil
	}
	if err := procFhServiceClosePipe.Find(); err != nil {
		return errors.Wrap(err, "fhsvcctl.dll")
	}

	result, _, _ := procFhServiceClosePipe.Call(uintptr(s.pipe))
	s.pipe = 0
	return checkResult("FhServiceClosePipe", result)
}
