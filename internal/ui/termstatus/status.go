// Package termstatus writes progress messages to the standard streams.
package termstatus

import (
	"fmt"
	"io"
	"sync"

	"github.com/restic/fhbackup/internal/ui"
	"golang.org/x/term"
)

var _ ui.Terminal = &Terminal{}

// Terminal writes lines to stdout and errors to stderr. It is safe for
// concurrent use, the signal handler may print while a run is in progress.
type Terminal struct {
	m                sync.Mutex
	wr               io.Writer
	errWriter        io.Writer
	outputIsTerminal bool
}

type fder interface {
	Fd() uintptr
}

// New returns a new Terminal writing to wr and errWriter. The output counts as
// terminal only when wr is the open *os.File of a console.
func New(wr io.Writer, errWriter io.Writer) *Terminal {
	t := &Terminal{
		wr:        wr,
		errWriter: errWriter,
	}

	if d, ok := wr.(fder); ok && term.IsTerminal(int(d.Fd())) {
		t.outputIsTerminal = true
	}

	return t
}

// OutputIsTerminal returns whether the output is a terminal.
func (t *Terminal) OutputIsTerminal() bool {
	return t.outputIsTerminal
}

// OutputRaw returns the raw output writer.
func (t *Terminal) OutputRaw() io.Writer {
	return t.wr
}

func (t *Terminal) print(line string, isErr bool) {
	// make sure the line ends with a line break
	if len(line) == 0 || line[len(line)-1] != '\n' {
		line += "\n"
	}

	t.m.Lock()
	defer t.m.Unlock()

	dst := t.wr
	if isErr {
		dst = t.errWriter
	}

	if _, err := io.WriteString(dst, line); err != nil && !isErr {
		_, _ = fmt.Fprintf(t.errWriter, "write failed: %v\n", err)
	}
}

// Print writes a line to the terminal.
func (t *Terminal) Print(line string) {
	t.print(line, false)
}

// Error writes an error to the terminal.
func (t *Terminal) Error(line string) {
	t.print(line, true)
}
