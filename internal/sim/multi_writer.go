package sim

// MultiWriter fan-outs log entries and reports to multiple writers.
type MultiWriter struct {
	entryWriters  []EntryWriter
	reportWriters []ReportWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(ews []EntryWriter, rws []ReportWriter) *MultiWriter {
	return &MultiWriter{entryWriters: ews, reportWriters: rws}
}

// WriteEntry sends an entry to all writers.
func (mw *MultiWriter) WriteEntry(e LogEntry) error {
	for _, w := range mw.entryWriters {
		if err := w.WriteEntry(e); err != nil {
			return err
		}
	}
	return nil
}

// WriteEntries sends multiple entries to all writers, using batch if supported.
func (mw *MultiWriter) WriteEntries(rows []LogEntry) error {
	for _, w := range mw.entryWriters {
		if bw, ok := w.(batchEntryWriter); ok {
			if err := bw.WriteEntries(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteEntry(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteReport sends a report to all report writers.
func (mw *MultiWriter) WriteReport(r Report) error {
	for _, w := range mw.reportWriters {
		if err := w.WriteReport(r); err != nil {
			return err
		}
	}
	return nil
}
