package termstatus

import (
	"bytes"
	"testing"

	rtest "github.com/restic/fhbackup/internal/test"
)

func TestPrintAppendsNewline(t *testing.T) {
	var stdout, stderr bytes.Buffer
	term := New(&stdout, &stderr)

	term.Print("Loading configuration")
	term.Print("Getting backup status\n")
	term.Error("File History configuration failed: boom")

	rtest.Equals(t, "Loading configuration\nGetting backup status\n", stdout.String())
	rtest.Equals(t, "File History configuration failed: boom\n", stderr.String())
	rtest.Assert(t, !term.OutputIsTerminal(), "a buffer is not a terminal")
	rtest.Assert(t, term.OutputRaw() == &stdout, "unexpected raw writer")
}
