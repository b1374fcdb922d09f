package filehistory

import (
	"testing"

	"github.com/restic/fhbackup/internal/errors"
	rtest "github.com/restic/fhbackup/internal/test"
)

func TestHRESULTFailed(t *testing.T) {
	rtest.Assert(t, !S_OK.Failed(), "S_OK must not be a failure")
	rtest.Assert(t, !S_FALSE.Failed(), "S_FALSE must not be a failure")
	rtest.Assert(t, E_FAIL.Failed(), "E_FAIL must be a failure")
	rtest.Assert(t, FHCFG_E_TARGET_NOT_CONFIGURED.Failed(), "FHCFG_E_TARGET_NOT_CONFIGURED must be a failure")
}

func TestHRESULTStr(t *testing.T) {
	rtest.Equals(t, "FHSVC_E_CONFIG_DISABLED", FHSVC_E_CONFIG_DISABLED.Str())
	rtest.Equals(t, "ERROR_SERVICE_DISABLED", E_SERVICE_DISABLED.Str())
	rtest.Equals(t, "UNKNOWN", HRESULT(0x80001234).Str())
}

func TestComError(t *testing.T) {
	err := newComErrorIfFailed("QueryProtectionStatus", HRESULT(0x80070002))
	rtest.Equals(t, "QueryProtectionStatus failed: UNKNOWN (hr=0x80070002)", err.Error())

	var comErr *ComError
	rtest.Assert(t, errors.As(err, &comErr), "expected a *ComError, got %T", err)
	rtest.Equals(t, HRESULT(0x80070002), comErr.HResult)

	rtest.OK(t, newComErrorIfFailed("LoadConfiguration", S_OK))
	rtest.OK(t, newComErrorIfFailed("LoadConfiguration", S_FALSE))
}
