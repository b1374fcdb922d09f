package debug

import (
	"log"
	"testing"
)

// TestLogToTB routes the debug log into the test log until the test ends.
// Nothing happens if the debug log was already configured via DEBUG_LOG.
func TestLogToTB(t testing.TB) {
	if opts.isEnabled {
		return
	}

	opts.logger = log.New(tbWriter{t}, "", 0)
	opts.isEnabled = true
	t.Cleanup(func() {
		opts.logger = nil
		opts.isEnabled = false
	})
}

type tbWriter struct {
	t testing.TB
}

func (w tbWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}
