package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"vncrypt-sim/internal/admin"
	"vncrypt-sim/internal/logging"
	"vncrypt-sim/internal/metrics"
	"vncrypt-sim/internal/mission"
	"vncrypt-sim/internal/report"
	"vncrypt-sim/internal/sim"
)

var (
	simMission   string
	simAuto      bool
	simTUI       bool
	simPrintOnly bool
	simTick      time.Duration
	simLogFile   string
	simExportDir string
	simAdminAddr string
	simDefend    string
	simDebugLog  string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a mission",
	Long: `simulate loads a mission and runs its attack timeline on a one second clock.

With --auto the run starts immediately and the defenses given by --defend are
applied at their scheduled seconds. Without it, the run is driven from the TUI
(--tui) or the admin HTTP API.`,
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.StringVar(&simMission, "mission", "", "Mission key to run (see `vncrypt-sim missions`)")
	f.BoolVar(&simAuto, "auto", false, "Start the run immediately and exit when it ends")
	f.BoolVar(&simTUI, "tui", false, "Show the interactive terminal UI")
	f.BoolVar(&simPrintOnly, "print-only", false, "Print to STDOUT only, skip GreptimeDB export")
	f.DurationVar(&simTick, "tick", 0, "Override the tick interval (e.g. 100ms)")
	f.StringVar(&simLogFile, "log-file", "", "Path to export the mission log (JSONL)")
	f.StringVar(&simExportDir, "export-dir", "", "Directory for the JSON report export (defaults to export_dir)")
	f.StringVar(&simAdminAddr, "admin-addr", "", "Admin UI listen address (defaults to admin_addr, \"off\" disables)")
	f.StringVar(&simDefend, "defend", "", "Scripted defenses for --auto, e.g. block_ip@5,start_snort@12")
	f.StringVar(&simDebugLog, "debug-log", "", "Write logs to this file instead of STDERR")
	simulateCmd.MarkFlagRequired("mission")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var logOut io.Writer = os.Stderr
	if simDebugLog != "" {
		f, err := os.OpenFile(simDebugLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	} else if simTUI {
		logOut = io.Discard
	}
	logger := newLogger(cfg, logOut)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.NewContext(ctx, logger)

	tick, err := cfg.Tick()
	if err != nil {
		return err
	}
	if simTick > 0 {
		tick = simTick
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	m, err := catalog.Mission(simMission)
	if err != nil {
		return err
	}
	plan, err := parseDefensePlan(simDefend, m)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	sink, closeSink, err := newSink(cfg, store, logger)
	if err != nil {
		return err
	}
	defer closeSink()

	ws, err := newWriters(cfg, m, writerOptions{PrintOnly: simPrintOnly, TUI: simTUI, LogFile: simLogFile})
	if err != nil {
		return err
	}
	defer ws.Close()

	met := metrics.New()
	simulator, err := sim.NewSimulator(catalog, m.Key, sim.Options{
		Writer:       ws.entries,
		ReportWriter: ws.reports,
		Sink:         sink,
		Metrics:      met,
		TickInterval: tick,
	})
	if err != nil {
		return err
	}
	if ws.tui != nil {
		ws.tui.SetController(ctx, simulator)
	}

	addr := cfg.AdminAddr
	if simAdminAddr != "" {
		addr = simAdminAddr
	}
	if addr != "" && addr != "off" {
		srv := admin.NewServer(simulator, catalog, met, store)
		go func() {
			logger.Info("admin UI listening", "addr", addr)
			ws.SetAdminStatus(true)
			if err := srv.Start(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("admin server failed", "err", err)
			}
			ws.SetAdminStatus(false)
		}()
	}

	exportDir := cfg.ExportDir
	if simExportDir != "" {
		exportDir = simExportDir
	}

	logger.Info("mission loaded", "mission", m.Key, "title", m.Title, "tick", tick, "auto", simAuto)

	if !simAuto {
		go simulator.Run(ctx)
		<-ctx.Done()
		logger.Info("simulation stopped")
		ws.Close()
		return finish(ctx, simulator, exportDir, logger)
	}

	if err := simulator.Start(ctx); err != nil {
		return err
	}
	go autopilot(ctx, simulator, plan, tick)
	if _, err := simulator.Wait(ctx); err != nil {
		logger.Info("simulation interrupted")
		return nil
	}
	if simTUI {
		// keep the screen up until the user quits
		<-ctx.Done()
	}
	ws.Close()
	return finish(ctx, simulator, exportDir, logger)
}

// finish scores the last run, if it ended, and exports the report.
func finish(ctx context.Context, s *sim.Simulator, exportDir string, logger *slog.Logger) error {
	if s.State() != sim.StateEnded {
		return nil
	}
	rep, err := s.Report(context.WithoutCancel(ctx))
	if err != nil {
		if rep.SessionID == "" {
			return err
		}
		logger.Error("progress not recorded", "err", err)
	}
	if simTUI {
		if err := report.Render(os.Stdout, rep); err != nil {
			return err
		}
	}
	if exportDir == "" {
		return nil
	}
	path, err := report.Export(exportDir, rep)
	if err != nil {
		return fmt.Errorf("export report: %w", err)
	}
	logger.Info("report exported", "path", path)
	return nil
}

type plannedDefense struct {
	Tool mission.ToolID
	At   int
}

// parseDefensePlan parses "tool@second,..." and checks every tool against
// the mission's toolbox.
func parseDefensePlan(raw string, m mission.Mission) ([]plannedDefense, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var plan []plannedDefense
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		tool, at, ok := strings.Cut(part, "@")
		if !ok {
			return nil, fmt.Errorf("defense %q: want tool@second", part)
		}
		sec, err := strconv.Atoi(at)
		if err != nil || sec < 0 || sec >= sim.TimeLimit {
			return nil, fmt.Errorf("defense %q: second must be in [0,%d)", part, sim.TimeLimit)
		}
		id := mission.ToolID(tool)
		if !m.Allows(id) {
			return nil, fmt.Errorf("defense %q: %w", part, sim.ErrToolNotAllowed)
		}
		plan = append(plan, plannedDefense{Tool: id, At: sec})
	}
	sort.SliceStable(plan, func(i, j int) bool { return plan[i].At < plan[j].At })
	return plan, nil
}

// autopilot drives the clock itself so planned defenses land on their exact
// second, before the tick that would move past it.
func autopilot(ctx context.Context, s *sim.Simulator, plan []plannedDefense, interval time.Duration) {
	log := logging.FromContext(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	done := s.Done()
	next := 0
	for {
		for next < len(plan) && plan[next].At <= s.CurrentTime() {
			p := plan[next]
			if _, err := s.ApplyDefense(ctx, p.Tool); err != nil {
				if errors.Is(err, sim.ErrInvalidState) {
					break
				}
				log.Warn("planned defense failed", "tool", p.Tool, "err", err)
			}
			next++
		}
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Step(ctx); err != nil && !errors.Is(err, sim.ErrInvalidState) {
				log.Error("tick failed", "err", err)
			}
		}
	}
}
