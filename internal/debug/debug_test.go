package debug

import (
	"testing"

	rtest "github.com/restic/fhbackup/internal/test"
)

func TestPadFile(t *testing.T) {
	for _, test := range []struct {
		in, want string
	}{
		{"all", "all"},
		{"trigger.go", "*/trigger.go:*"},
		{"filehistory/trigger.go", "filehistory/trigger.go:*"},
		{"trigger.go:42", "*/trigger.go:42"},
	} {
		rtest.Equals(t, test.want, padFile(test.in))
	}
}

func TestParseFilter(t *testing.T) {
	filter := parseFilter("trigger.go, -com_windows.go,+main.go", padFile)

	rtest.Equals(t, map[string]bool{
		"*/trigger.go:*":     true,
		"*/com_windows.go:*": false,
		"*/main.go:*":        true,
	}, filter)

	rtest.Equals(t, map[string]bool{}, parseFilter("", padFunc))
}

func TestCheckFilter(t *testing.T) {
	filter := parseFilter("trigger.go,-com_windows.go", padFile)

	rtest.Assert(t, checkFilter(filter, "filehistory/trigger.go:17"), "trigger.go should match")
	rtest.Assert(t, !checkFilter(filter, "filehistory/com_windows.go:99"), "com_windows.go is excluded")
	rtest.Assert(t, !checkFilter(filter, "fhbackup/main.go:3"), "main.go is not selected")

	all := parseFilter("all", padFunc)
	rtest.Assert(t, checkFilter(all, "anything"), "all should match everything")
}

type shortValue int

func (shortValue) Str() string { return "short" }

func TestLogShortener(t *testing.T) {
	TestLogToTB(t)

	args := []interface{}{shortValue(1), 2}
	Log("value %v %v", args...)
	rtest.Equals(t, "short", args[0])
}
