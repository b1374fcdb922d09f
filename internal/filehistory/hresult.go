package filehistory

import "fmt"

// HRESULT is a custom type for the windows api HRESULT type.
type HRESULT uint32

// HRESULT constant values returned by COM, the configuration manager and the
// File History service.
//
//nolint:golint
const (
	S_OK                  HRESULT = 0x00000000
	S_FALSE               HRESULT = 0x00000001
	E_NOINTERFACE         HRESULT = 0x80004002
	E_POINTER             HRESULT = 0x80004003
	E_FAIL                HRESULT = 0x80004005
	E_ACCESSDENIED        HRESULT = 0x80070005
	E_OUTOFMEMORY         HRESULT = 0x8007000E
	E_INVALIDARG          HRESULT = 0x80070057
	E_NOTFOUND            HRESULT = 0x80070490
	E_SERVICE_DISABLED    HRESULT = 0x80070422
	E_PIPE_BUSY           HRESULT = 0x800700E7
	RPC_E_CHANGED_MODE    HRESULT = 0x80010106
	CO_E_NOTINITIALIZED   HRESULT = 0x800401F0
	REGDB_E_CLASSNOTREG   HRESULT = 0x80040154
	CLASS_E_NOAGGREGATION HRESULT = 0x80040110

	FHCFG_E_CORRUPT_CONFIG_FILE                  HRESULT = 0x80040300
	FHCFG_E_CONFIG_FILE_NOT_FOUND                HRESULT = 0x80040301
	FHCFG_E_CONFIG_ALREADY_EXISTS                HRESULT = 0x80040302
	FHCFG_E_NO_VALID_CONFIGURATION_LOADED        HRESULT = 0x80040303
	FHCFG_E_TARGET_NOT_CONNECTED                 HRESULT = 0x80040304
	FHCFG_E_CONFIGURATION_PREVIOUSLY_LOADED      HRESULT = 0x80040305
	FHCFG_E_TARGET_VERIFICATION_FAILED           HRESULT = 0x80040306
	FHCFG_E_TARGET_NOT_CONFIGURED                HRESULT = 0x80040307
	FHCFG_E_TARGET_NOT_ENOUGH_FREE_SPACE         HRESULT = 0x80040308
	FHCFG_E_TARGET_CANNOT_BE_USED                HRESULT = 0x80040309
	FHCFG_E_INVALID_REHYDRATION_STATE            HRESULT = 0x8004030A
	FHCFG_E_RECOMMENDATION_CHANGE_NOT_ALLOWED    HRESULT = 0x80040310
	FHCFG_E_TARGET_REHYDRATED_ELSEWHERE          HRESULT = 0x80040311
	FHCFG_E_LEGACY_TARGET_UNSUPPORTED            HRESULT = 0x80040312
	FHCFG_E_LEGACY_TARGET_VALIDATION_UNSUPPORTED HRESULT = 0x80040313
	FHCFG_E_LEGACY_BACKUP_USER_EXCLUDED          HRESULT = 0x80040314
	FHCFG_E_LEGACY_BACKUP_NOT_FOUND              HRESULT = 0x80040315

	FHSVC_E_BACKUP_BLOCKED     HRESULT = 0x80040600
	FHSVC_E_NOT_CONFIGURED     HRESULT = 0x80040601
	FHSVC_E_CONFIG_DISABLED    HRESULT = 0x80040602
	FHSVC_E_CONFIG_DISABLED_GP HRESULT = 0x80040603
	FHSVC_E_FATAL_CONFIG_ERROR HRESULT = 0x80040604
	FHSVC_E_CONFIG_REHYDRATING HRESULT = 0x80040605
)

// hresultToString maps a HRESULT value to a human readable string.
var hresultToString = map[HRESULT]string{
	S_OK:                  "S_OK",
	S_FALSE:               "S_FALSE",
	E_NOINTERFACE:         "E_NOINTERFACE",
	E_POINTER:             "E_POINTER",
	E_FAIL:                "E_FAIL",
	E_ACCESSDENIED:        "E_ACCESSDENIED",
	E_OUTOFMEMORY:         "E_OUTOFMEMORY",
	E_INVALIDARG:          "E_INVALIDARG",
	E_NOTFOUND:            "E_NOTFOUND",
	E_SERVICE_DISABLED:    "ERROR_SERVICE_DISABLED",
	E_PIPE_BUSY:           "ERROR_PIPE_BUSY",
	RPC_E_CHANGED_MODE:    "RPC_E_CHANGED_MODE",
	CO_E_NOTINITIALIZED:   "CO_E_NOTINITIALIZED",
	REGDB_E_CLASSNOTREG:   "REGDB_E_CLASSNOTREG",
	CLASS_E_NOAGGREGATION: "CLASS_E_NOAGGREGATION",

	FHCFG_E_CORRUPT_CONFIG_FILE:                  "FHCFG_E_CORRUPT_CONFIG_FILE",
	FHCFG_E_CONFIG_FILE_NOT_FOUND:                "FHCFG_E_CONFIG_FILE_NOT_FOUND",
	FHCFG_E_CONFIG_ALREADY_EXISTS:                "FHCFG_E_CONFIG_ALREADY_EXISTS",
	FHCFG_E_NO_VALID_CONFIGURATION_LOADED:        "FHCFG_E_NO_VALID_CONFIGURATION_LOADED",
	FHCFG_E_TARGET_NOT_CONNECTED:                 "FHCFG_E_TARGET_NOT_CONNECTED",
	FHCFG_E_CONFIGURATION_PREVIOUSLY_LOADED:      "FHCFG_E_CONFIGURATION_PREVIOUSLY_LOADED",
	FHCFG_E_TARGET_VERIFICATION_FAILED:           "FHCFG_E_TARGET_VERIFICATION_FAILED",
	FHCFG_E_TARGET_NOT_CONFIGURED:                "FHCFG_E_TARGET_NOT_CONFIGURED",
	FHCFG_E_TARGET_NOT_ENOUGH_FREE_SPACE:         "FHCFG_E_TARGET_NOT_ENOUGH_FREE_SPACE",
	FHCFG_E_TARGET_CANNOT_BE_USED:                "FHCFG_E_TARGET_CANNOT_BE_USED",
	FHCFG_E_INVALID_REHYDRATION_STATE:            "FHCFG_E_INVALID_REHYDRATION_STATE",
	FHCFG_E_RECOMMENDATION_CHANGE_NOT_ALLOWED:    "FHCFG_E_RECOMMENDATION_CHANGE_NOT_ALLOWED",
	FHCFG_E_TARGET_REHYDRATED_ELSEWHERE:          "FHCFG_E_TARGET_REHYDRATED_ELSEWHERE",
	FHCFG_E_LEGACY_TARGET_UNSUPPORTED:            "FHCFG_E_LEGACY_TARGET_UNSUPPORTED",
	FHCFG_E_LEGACY_TARGET_VALIDATION_UNSUPPORTED: "FHCFG_E_LEGACY_TARGET_VALIDATION_UNSUPPORTED",
	FHCFG_E_LEGACY_BACKUP_USER_EXCLUDED:          "FHCFG_E_LEGACY_BACKUP_USER_EXCLUDED",
	FHCFG_E_LEGACY_BACKUP_NOT_FOUND:              "FHCFG_E_LEGACY_BACKUP_NOT_FOUND",

	FHSVC_E_BACKUP_BLOCKED:     "FHSVC_E_BACKUP_BLOCKED",
	FHSVC_E_NOT_CONFIGURED:     "FHSVC_E_NOT_CONFIGURED",
	FHSVC_E_CONFIG_DISABLED:    "FHSVC_E_CONFIG_DISABLED",
	FHSVC_E_CONFIG_DISABLED_GP: "FHSVC_E_CONFIG_DISABLED_GP",
	FHSVC_E_FATAL_CONFIG_ERROR: "FHSVC_E_FATAL_CONFIG_ERROR",
	FHSVC_E_CONFIG_REHYDRATING: "FHSVC_E_CONFIG_REHYDRATING",
}

// Str converts a HRESULT to a human readable string.
func (h HRESULT) Str() string {
	if i, ok := hresultToString[h]; ok {
		return i
	}

	return "UNKNOWN"
}

// Failed is the equivalent of the FAILED() macro: the severity bit is set.
func (h HRESULT) Failed() bool {
	return int32(h) < 0
}

// ComError is returned when a COM method or a File History api function
// returns a failure HRESULT.
type ComError struct {
	Op      string
	HResult HRESULT
}

func newComError(op string, hresult HRESULT) error {
	return &ComError{Op: op, HResult: hresult}
}

// newComErrorIfFailed returns nil for success codes, including S_FALSE.
func newComErrorIfFailed(op string, hresult HRESULT) error {
	if hresult.Failed() {
		return newComError(op, hresult)
	}
	return nil
}

func (e *ComError) Error() string {
	return fmt.Sprintf("%s failed: %s (hr=0x%08X)", e.Op, e.HResult.Str(), uint32(e.HResult))
}
