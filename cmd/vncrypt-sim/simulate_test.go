package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"vncrypt-sim/internal/mission"
	"vncrypt-sim/internal/progress"
	"vncrypt-sim/internal/report"
	"vncrypt-sim/internal/sim"
)

func TestParseDefensePlan(t *testing.T) {
	m, err := mission.BuiltIn().Mission("malware_download")
	if err != nil {
		t.Fatalf("mission: %v", err)
	}

	plan, err := parseDefensePlan("start_snort@12, block_ip@3,enable_logging@3", m)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []plannedDefense{
		{Tool: mission.ToolBlockIP, At: 3},
		{Tool: mission.ToolEnableLogging, At: 3},
		{Tool: mission.ToolStartSnort, At: 12},
	}
	if len(plan) != len(want) {
		t.Fatalf("plan = %+v", plan)
	}
	for i := range want {
		if plan[i] != want[i] {
			t.Fatalf("plan[%d] = %+v, want %+v", i, plan[i], want[i])
		}
	}

	if plan, err := parseDefensePlan("  ", m); err != nil || plan != nil {
		t.Fatalf("empty plan: %v %v", plan, err)
	}

	tests := map[string]string{
		"missing second": "block_ip",
		"not a number":   "block_ip@soon",
		"negative":       "block_ip@-1",
		"past limit":     "block_ip@60",
		"not allowed":    "disable_clipboard@4",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := parseDefensePlan(in, m); err == nil {
				t.Fatalf("expected error for %q", in)
			}
		})
	}
	if _, err := parseDefensePlan("disable_clipboard@4", m); !errors.Is(err, sim.ErrToolNotAllowed) {
		t.Fatalf("expected ErrToolNotAllowed, got %v", err)
	}
}

func TestAutopilotAppliesPlanAndExports(t *testing.T) {
	catalog := mission.BuiltIn()
	store := progress.NewMemoryStore("tester", "Tester")
	s, err := sim.NewSimulator(catalog, "malware_download", sim.Options{Sink: store, TickInterval: time.Millisecond})
	if err != nil {
		t.Fatalf("simulator: %v", err)
	}
	m := s.Mission()
	plan, err := parseDefensePlan("block_ip@3", m)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	go autopilot(ctx, s, plan, time.Millisecond)
	res, err := s.Wait(ctx)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if res.Reason != sim.EndTimelineComplete {
		t.Fatalf("reason = %s, want %s", res.Reason, sim.EndTimelineComplete)
	}

	dir := t.TempDir()
	if err := finish(ctx, s, dir, slog.New(slog.DiscardHandler)); err != nil {
		t.Fatalf("finish: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, report.FileName("malware_download")))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var sum report.Summary
	if err := json.Unmarshal(data, &sum); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if sum.Mission != m.Title || sum.DetectionTime != 3 || !sum.Passed {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	rep, err := s.Report(ctx)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(rep.ToolsUsed) != 1 || rep.ToolsUsed[0] != mission.ToolBlockIP {
		t.Fatalf("tools = %v", rep.ToolsUsed)
	}

	p, err := store.Profile(ctx)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.Experience != rep.Score.ExperienceAwarded {
		t.Fatalf("xp = %d, want %d", p.Experience, rep.Score.ExperienceAwarded)
	}
}

func TestFinishSkipsUnendedRun(t *testing.T) {
	s, err := sim.NewSimulator(mission.BuiltIn(), "malware_download", sim.Options{})
	if err != nil {
		t.Fatalf("simulator: %v", err)
	}
	dir := t.TempDir()
	if err := finish(context.Background(), s, dir, slog.New(slog.DiscardHandler)); err != nil {
		t.Fatalf("finish: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("nothing should be exported for an idle run")
	}
}
