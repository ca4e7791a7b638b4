package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// JSONStdoutWriter prints log entries and reports as JSON lines to STDOUT.
type JSONStdoutWriter struct {
	out io.Writer
}

// NewJSONStdoutWriter creates a JSONStdoutWriter writing to os.Stdout.
func NewJSONStdoutWriter() *JSONStdoutWriter {
	return &JSONStdoutWriter{out: os.Stdout}
}

// WriteEntry outputs a log entry in JSON format.
func (w *JSONStdoutWriter) WriteEntry(e LogEntry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w.out, string(data))
	return err
}

// WriteEntries outputs multiple log entries in JSON format.
func (w *JSONStdoutWriter) WriteEntries(rows []LogEntry) error {
	for _, e := range rows {
		if err := w.WriteEntry(e); err != nil {
			return err
		}
	}
	return nil
}

// WriteReport outputs a run report in JSON format.
func (w *JSONStdoutWriter) WriteReport(r Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w.out, string(data))
	return err
}
