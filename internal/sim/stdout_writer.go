// Writer selection for STDOUT
package sim

import (
	"os"

	"golang.org/x/term"

	"vncrypt-sim/internal/mission"
)

// StdoutWriter writes entries and reports to STDOUT.
type StdoutWriter interface {
	EntryWriter
	ReportWriter
}

// NewStdoutWriter returns a colorized writer when STDOUT is a terminal and
// a JSON lines writer otherwise.
func NewStdoutWriter(m mission.Mission) StdoutWriter {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return NewColorStdoutWriter(m)
	}
	return NewJSONStdoutWriter()
}
