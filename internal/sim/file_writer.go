package sim

import (
	"encoding/json"
	"os"
)

// FileWriter writes log entries and reports to JSONL files.
type FileWriter struct {
	logFile    *os.File
	reportFile *os.File
	logEnc     *json.Encoder
	reportEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter. reportPath may be empty to skip reports.
func NewFileWriter(logPath, reportPath string) (*FileWriter, error) {
	lf, err := os.Create(logPath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{logFile: lf, logEnc: json.NewEncoder(lf)}
	if reportPath != "" {
		rf, err := os.Create(reportPath)
		if err != nil {
			lf.Close()
			return nil, err
		}
		fw.reportFile = rf
		fw.reportEnc = json.NewEncoder(rf)
	}
	return fw, nil
}

// WriteEntry logs a single entry.
func (f *FileWriter) WriteEntry(e LogEntry) error {
	return f.logEnc.Encode(e)
}

// WriteEntries logs multiple entries.
func (f *FileWriter) WriteEntries(rows []LogEntry) error {
	for _, e := range rows {
		if err := f.WriteEntry(e); err != nil {
			return err
		}
	}
	return nil
}

// WriteReport logs a report, if enabled.
func (f *FileWriter) WriteReport(r Report) error {
	if f.reportEnc == nil {
		return nil
	}
	return f.reportEnc.Encode(r)
}

// Close closes any underlying files.
func (f *FileWriter) Close() error {
	var err error
	if f.logFile != nil {
		if e := f.logFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.reportFile != nil {
		if e := f.reportFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
