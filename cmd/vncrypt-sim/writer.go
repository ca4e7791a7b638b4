package main

import (
	"errors"
	"io"
	"sync"

	"vncrypt-sim/internal/config"
	"vncrypt-sim/internal/mission"
	"vncrypt-sim/internal/sim"
)

type writerOptions struct {
	PrintOnly bool
	TUI       bool
	LogFile   string
}

// writers is the output stack of one simulate or replay invocation.
type writers struct {
	entries sim.EntryWriter
	reports sim.ReportWriter
	tui     *sim.TUIWriter
	closers []io.Closer

	closeOnce sync.Once
	closeErr  error
}

// SetAdminStatus forwards the admin UI state to writers that display it.
func (w *writers) SetAdminStatus(active bool) {
	if w.tui != nil {
		w.tui.SetAdminStatus(active)
	}
}

// Close releases files and stops the TUI, last opened first.
// Later calls return the first result.
func (w *writers) Close() error {
	w.closeOnce.Do(func() {
		var errs []error
		for i := len(w.closers) - 1; i >= 0; i-- {
			if err := w.closers[i].Close(); err != nil {
				errs = append(errs, err)
			}
		}
		w.closeErr = errors.Join(errs...)
	})
	return w.closeErr
}

// newWriters sets up entry and report writers based on flags and config.
// STDOUT (or the TUI) is always first; GreptimeDB is added when an endpoint
// is configured and print-only is off; a JSONL log is added for logFile.
func newWriters(cfg *config.SimulationConfig, m mission.Mission, opts writerOptions) (*writers, error) {
	w := &writers{}

	var base interface {
		sim.EntryWriter
		sim.ReportWriter
	}
	if opts.TUI {
		w.tui = sim.NewTUIWriter(m)
		w.closers = append(w.closers, w.tui)
		base = w.tui
	} else {
		base = sim.NewStdoutWriter(m)
	}
	ews := []sim.EntryWriter{base}
	rws := []sim.ReportWriter{base}

	if !opts.PrintOnly && cfg.Greptime.Endpoint != "" {
		gw, err := sim.NewGreptimeDBWriter(cfg.Greptime.Endpoint, cfg.Greptime.Database, cfg.Greptime.LogTable, cfg.Greptime.ResultTable)
		if err != nil {
			w.Close()
			return nil, err
		}
		ews = append(ews, gw)
		rws = append(rws, gw)
	}

	if opts.LogFile != "" {
		fw, err := sim.NewFileWriter(opts.LogFile, opts.LogFile+".reports")
		if err != nil {
			w.Close()
			return nil, err
		}
		w.closers = append(w.closers, fw)
		ews = append(ews, fw)
		rws = append(rws, fw)
	}

	if len(ews) == 1 {
		w.entries, w.reports = base, base
		return w, nil
	}
	mw := sim.NewMultiWriter(ews, rws)
	w.entries, w.reports = mw, mw
	return w, nil
}
