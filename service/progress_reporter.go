package service

import (
	"fmt"
	"io"
	"os"

	"github.com/dupescope/dupescope/domain"
)

// StderrProgressReporter writes status messages to a writer, typically stderr
type StderrProgressReporter struct {
	writer io.Writer
}

// NewStderrProgressReporter creates a reporter writing to the given writer.
// A nil writer falls back to stderr.
func NewStderrProgressReporter(writer io.Writer) *StderrProgressReporter {
	if writer == nil {
		writer = os.Stderr
	}
	return &StderrProgressReporter{writer: writer}
}

// Info prints an informational message
func (p *StderrProgressReporter) Info(message string) {
	fmt.Fprintln(p.writer, message)
}

// Warning prints a warning message
func (p *StderrProgressReporter) Warning(message string) {
	fmt.Fprintf(p.writer, "Warning: %s\n", message)
}

// NoOpProgressReporter is a progress reporter that does nothing
type NoOpProgressReporter struct{}

// NewNoOpProgressReporter creates a no-op progress reporter
func NewNoOpProgressReporter() *NoOpProgressReporter {
	return &NoOpProgressReporter{}
}

func (n *NoOpProgressReporter) Info(message string)    {}
func (n *NoOpProgressReporter) Warning(message string) {}

var _ domain.ProgressReporter = (*StderrProgressReporter)(nil)
var _ domain.ProgressReporter = (*NoOpProgressReporter)(nil)
