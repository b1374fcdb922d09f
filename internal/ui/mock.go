package ui

import (
	"bytes"
	"io"
)

// MockTerminal records all lines written to it.
type MockTerminal struct {
	Output []string
	Errors []string
	Raw    bytes.Buffer

	IsTerminal bool
}

var _ Terminal = &MockTerminal{}

func (m *MockTerminal) Print(line string) {
	m.Output = append(m.Output, line)
}

func (m *MockTerminal) Error(line string) {
	m.Errors = append(m.Errors, line)
}

func (m *MockTerminal) OutputIsTerminal() bool {
	return m.IsTerminal
}

func (m *MockTerminal) OutputRaw() io.Writer {
	return &m.Raw
}
