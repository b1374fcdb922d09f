package test

import (
	"fmt"
	"os"
)

var (
	// RunWindowsIntegrationTest enables tests that talk to the real File
	// History service. They change the state of the machine they run on.
	RunWindowsIntegrationTest = getBoolVar("FHBACKUP_TEST_INTEGRATION", false)
)

func getBoolVar(name string, defaultValue bool) bool {
	if e := os.Getenv(name); e != "" {
		switch e {
		case "1", "true":
			return true
		case "0", "false":
			return false
		default:
			fmt.Fprintf(os.Stderr, "invalid value for variable %q, using default\n", name)
		}
	}

	return defaultValue
}
