//go:build !windows
// +build !windows

package filehistory

import "github.com/restic/fhbackup/internal/errors"

var errUnsupportedPlatform = errors.New("File History is only available on windows")

// Initialize is a dummy for non-windows platforms to let client code compile.
// It always fails.
func Initialize() (Subsystem, error) {
	return nil, errUnsupportedPlatform
}
