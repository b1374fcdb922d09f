package ui

import "io"

// Terminal is used to write progress and error messages. See
// termstatus.Terminal for a concrete implementation.
type Terminal interface {
	// Print writes a line to the terminal. Appends a newline if not present.
	Print(line string)
	// Error writes an error to the terminal. Appends a newline if not present.
	Error(line string)
	// OutputIsTerminal returns true if the output is an interactive terminal.
	OutputIsTerminal() bool
	// OutputRaw returns the output writer. Should only be used if there is no
	// other option. Must not be used in combination with Print or Error.
	OutputRaw() io.Writer
}
