package errors_test

import (
	"testing"

	"github.com/restic/fhbackup/internal/errors"
)

func TestFatal(t *testing.T) {
	for _, v := range []struct {
		err      error
		expected bool
	}{
		{errors.Fatal("broken"), true},
		{errors.Fatalf("broken %d", 42), true},
		{errors.New("error"), false},
		{errors.Wrap(errors.Fatal("broken"), "outer"), true},
	} {
		if errors.IsFatal(v.err) != v.expected {
			t.Fatalf("IsFatal for %q, expected: %v, got: %v", v.err, v.expected, errors.IsFatal(v.err))
		}
	}
}

func TestFatalfKeepsLastError(t *testing.T) {
	first := errors.New("first")
	last := errors.New("last")
	fatal := errors.Fatalf("failed: %v, %v", first, last)

	if fatal.Error() != "Fatal: failed: first, last" {
		t.Errorf("unexpected error message: %v", fatal.Error())
	}
	if !errors.Is(fatal, last) {
		t.Error("fatal error should wrap the last error argument")
	}
	if errors.Is(fatal, first) {
		t.Error("fatal error should only wrap the last error argument")
	}
}
