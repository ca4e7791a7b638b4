package sim

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"vncrypt-sim/internal/metrics"
	"vncrypt-sim/internal/mission"
	"vncrypt-sim/internal/progress"
)

var testNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func testCatalog(t *testing.T) *mission.Catalog {
	t.Helper()
	missions := []mission.Mission{
		{
			Key:             "clip",
			Title:           "Clipboard",
			AllowedTools:    []mission.ToolID{mission.ToolDisableClipboard, mission.ToolBlockIP, mission.ToolStartSnort},
			SuccessCriteria: mission.SuccessCriteria{DetectionTimeSeconds: 15, MaxDataLossFraction: 0.1},
		},
		{
			Key:             "long",
			Title:           "Long",
			AllowedTools:    []mission.ToolID{mission.ToolBlockIP},
			SuccessCriteria: mission.SuccessCriteria{DetectionTimeSeconds: 30},
		},
		{
			Key:             "empty",
			Title:           "Empty",
			AllowedTools:    []mission.ToolID{mission.ToolBlockIP},
			SuccessCriteria: mission.SuccessCriteria{DetectionTimeSeconds: 10},
		},
	}
	timelines := map[string][]mission.TimelineEvent{
		"clip": {
			{Timestamp: 0, Kind: mission.KindInfo, Message: "session established"},
			{Timestamp: 5, Kind: mission.KindSuspicious, Message: "clipboard sync"},
			{Timestamp: 12, Kind: mission.KindExfilAttempt, Message: "payload", Details: "confidential"},
			{Timestamp: 30, Kind: mission.KindMissionEnd, Message: "done"},
		},
		"long": {
			{Timestamp: 0, Kind: mission.KindInfo, Message: "session established"},
			{Timestamp: 70, Kind: mission.KindMissionEnd, Message: "never reached"},
		},
	}
	c, err := mission.NewCatalog(missions, timelines)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}

func newTestSim(t *testing.T, key string, opts Options) *Simulator {
	t.Helper()
	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	s, err := NewSimulator(testCatalog(t), key, opts)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	return s
}

func stepTo(t *testing.T, s *Simulator, target int) {
	t.Helper()
	for s.CurrentTime() < target {
		if err := s.Step(context.Background()); err != nil {
			t.Fatalf("step at t=%d: %v", s.CurrentTime(), err)
		}
	}
}

func stepUntilEnded(t *testing.T, s *Simulator) {
	t.Helper()
	for i := 0; s.State() == StateRunning; i++ {
		if i > TimeLimit {
			t.Fatalf("run did not end by the time limit")
		}
		if err := s.Step(context.Background()); err != nil {
			t.Fatalf("step: %v", err)
		}
	}
}

type fakeSink struct {
	mu      sync.Mutex
	calls   int
	deltas  []progress.Delta
	results []progress.RunResult
	err     error
}

func (f *fakeSink) Record(_ context.Context, d progress.Delta, r progress.RunResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.deltas = append(f.deltas, d)
	f.results = append(f.results, r)
	return f.err
}

type recordWriter struct {
	mu      sync.Mutex
	entries []LogEntry
	reports []Report
}

func (w *recordWriter) WriteEntry(e LogEntry) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries = append(w.entries, e)
	return nil
}

func (w *recordWriter) WriteReport(r Report) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reports = append(w.reports, r)
	return nil
}

type batchWriter struct {
	recordWriter
	batches [][]LogEntry
}

func (w *batchWriter) WriteEntries(rows []LogEntry) error {
	w.batches = append(w.batches, rows)
	return nil
}

func TestNewSimulatorUnknownMission(t *testing.T) {
	_, err := NewSimulator(testCatalog(t), "nope", Options{})
	if !errors.Is(err, mission.ErrMissionNotFound) {
		t.Fatalf("expected ErrMissionNotFound, got %v", err)
	}
}

func TestStartDefersTimeZeroEventsToFirstTick(t *testing.T) {
	s := newTestSim(t, "clip", Options{})
	ctx := context.Background()
	if s.State() != StateIdle {
		t.Fatalf("expected idle, got %s", s.State())
	}
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.State() != StateRunning {
		t.Fatalf("expected running, got %s", s.State())
	}
	if n := len(s.Entries(0)); n != 0 {
		t.Fatalf("expected no entries before the first tick, got %d", n)
	}

	_ = s.Pause(ctx)
	if err := s.EndMission(ctx); !errors.Is(err, ErrNoActivity) {
		t.Fatalf("ending at t=0 should be refused, got %v", err)
	}
	if s.State() != StatePaused {
		t.Fatalf("state changed: %s", s.State())
	}

	_ = s.Resume(ctx)
	if err := s.Step(ctx); err != nil {
		t.Fatalf("step: %v", err)
	}
	entries := s.Entries(0)
	if len(entries) != 1 || entries[0].Timestamp != 0 || entries[0].Message != "session established" {
		t.Fatalf("unexpected entries after first tick: %+v", entries)
	}
	if id := s.SessionID(); len(id) != 8 || entries[0].SessionID != id {
		t.Fatalf("unexpected session id %q (entry %q)", id, entries[0].SessionID)
	}
}

func TestStepDeliversDueEventsOnce(t *testing.T) {
	s := newTestSim(t, "clip", Options{})
	_ = s.Start(context.Background())
	stepTo(t, s, 4)
	if n := len(s.Entries(0)); n != 1 {
		t.Fatalf("expected 1 entry at t=4, got %d", n)
	}
	stepTo(t, s, 12)
	entries := s.Entries(0)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries at t=12, got %d", len(entries))
	}
	if entries[2].Kind != mission.KindExfilAttempt || entries[2].Details != "confidential" {
		t.Fatalf("unexpected entry: %+v", entries[2])
	}
	stepTo(t, s, 13)
	if n := len(s.Entries(0)); n != 3 {
		t.Fatalf("events redelivered: %d entries", n)
	}
}

func TestEarlyDefenseWorkedExample(t *testing.T) {
	sink := &fakeSink{}
	s := newTestSim(t, "clip", Options{Sink: sink})
	ctx := context.Background()
	_ = s.Start(ctx)
	stepTo(t, s, 10)

	out, err := s.ApplyDefense(ctx, mission.ToolDisableClipboard)
	if err != nil || out != DefenseActivated {
		t.Fatalf("apply defense: %v %v", out, err)
	}
	stepUntilEnded(t, s)

	res, ok := s.Result()
	if !ok {
		t.Fatalf("expected result")
	}
	if res.Reason != EndTimelineComplete || res.TotalElapsedSeconds != 30 {
		t.Fatalf("unexpected end: %+v", res)
	}
	if res.DetectionTimeSeconds != 10 || len(res.ToolsUsed) != 1 {
		t.Fatalf("unexpected detection/tools: %+v", res)
	}

	rep, err := s.Report(ctx)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if rep.Score.TotalScore != 68 || rep.Score.ExperienceAwarded != 136 || !rep.Score.Passed {
		t.Fatalf("unexpected score: %+v", rep.Score)
	}
	if rep.MissionTitle != "Clipboard" || !rep.GeneratedAt.Equal(testNow) {
		t.Fatalf("unexpected report header: %+v", rep)
	}
	if sink.calls != 1 || sink.deltas[0].ExperienceAwarded != 136 || sink.deltas[0].MissionKey != "clip" {
		t.Fatalf("unexpected sink calls: %+v", sink.deltas)
	}
	r := sink.results[0]
	if r.Score != 68 || r.DetectionTimeSeconds != 10 || r.DataLoss != 0 {
		t.Fatalf("unexpected run result: %+v", r)
	}
	if len(r.ToolsUsed) != 1 || r.ToolsUsed[0] != mission.ToolDisableClipboard {
		t.Fatalf("unexpected run result tools: %v", r.ToolsUsed)
	}

	entries := s.Entries(0)
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
	def := entries[2]
	if def.Kind != mission.KindDefenseApplied || def.Timestamp != 10 || def.Tool != mission.ToolDisableClipboard {
		t.Fatalf("unexpected defense entry: %+v", def)
	}
	if def.Message != "disable_clipboard activated by defender" {
		t.Fatalf("unexpected defense message: %q", def.Message)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Timestamp < entries[i-1].Timestamp {
			t.Fatalf("timestamps decrease at %d: %+v", i, entries)
		}
	}
}

func TestTimeLimitWithoutDefense(t *testing.T) {
	s := newTestSim(t, "long", Options{})
	ctx := context.Background()
	_ = s.Start(ctx)
	stepTo(t, s, 59)
	if s.State() != StateRunning {
		t.Fatalf("expected running at t=59, got %s", s.State())
	}
	if err := s.Step(ctx); err != nil {
		t.Fatalf("step: %v", err)
	}
	if s.State() != StateEnded {
		t.Fatalf("expected ended at t=60, got %s", s.State())
	}
	res, _ := s.Result()
	if res.Reason != EndTimeLimit || res.DetectionTimeSeconds != 60 || len(res.ToolsUsed) != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	rep, err := s.Report(ctx)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if rep.Score.TotalScore != 60 || rep.Score.ExperienceAwarded != 120 || rep.Score.Passed {
		t.Fatalf("unexpected score: %+v", rep.Score)
	}
	if n := len(s.Entries(0)); n != 1 {
		t.Fatalf("event beyond the limit was delivered: %d entries", n)
	}
}

func TestEmptyTimelineEndsOnFirstTick(t *testing.T) {
	s := newTestSim(t, "empty", Options{})
	ctx := context.Background()
	_ = s.Start(ctx)
	if s.State() != StateRunning {
		t.Fatalf("expected running after start, got %s", s.State())
	}
	if err := s.Step(ctx); err != nil {
		t.Fatalf("step: %v", err)
	}
	res, ok := s.Result()
	if !ok || res.Reason != EndTimelineComplete || res.TotalElapsedSeconds != 1 || res.DetectionTimeSeconds != 1 {
		t.Fatalf("unexpected result: %+v ok=%v", res, ok)
	}
}

func TestTimeLimitBoundary(t *testing.T) {
	tests := []struct {
		name        string
		last        int
		wantReason  EndReason
		wantElapsed int
		wantEntries int
	}{
		{"final event at 59", 59, EndTimelineComplete, 59, 2},
		{"final event at 60", 60, EndTimeLimit, 60, 2},
		{"final event at 61", 61, EndTimeLimit, 60, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := mission.NewCatalog(
				[]mission.Mission{{
					Key:             "edge",
					Title:           "Edge",
					AllowedTools:    []mission.ToolID{mission.ToolBlockIP},
					SuccessCriteria: mission.SuccessCriteria{DetectionTimeSeconds: 30},
				}},
				map[string][]mission.TimelineEvent{"edge": {
					{Timestamp: 0, Kind: mission.KindInfo, Message: "session established"},
					{Timestamp: tc.last, Kind: mission.KindMissionEnd, Message: "last"},
				}},
			)
			if err != nil {
				t.Fatalf("NewCatalog: %v", err)
			}
			s, err := NewSimulator(c, "edge", Options{})
			if err != nil {
				t.Fatalf("NewSimulator: %v", err)
			}
			_ = s.Start(context.Background())
			stepUntilEnded(t, s)

			res, _ := s.Result()
			if res.Reason != tc.wantReason || res.TotalElapsedSeconds != tc.wantElapsed {
				t.Fatalf("got %s at t=%d, want %s at t=%d", res.Reason, res.TotalElapsedSeconds, tc.wantReason, tc.wantElapsed)
			}
			entries := s.Entries(0)
			if len(entries) != tc.wantEntries {
				t.Fatalf("expected %d entries, got %d", tc.wantEntries, len(entries))
			}
			if tc.wantEntries == 2 && entries[1].Timestamp != tc.last {
				t.Fatalf("final event at t=%d, want %d", entries[1].Timestamp, tc.last)
			}
		})
	}
}

func TestApplyDefenseIdempotent(t *testing.T) {
	s := newTestSim(t, "clip", Options{})
	ctx := context.Background()
	_ = s.Start(ctx)
	stepTo(t, s, 3)
	if _, err := s.ApplyDefense(ctx, mission.ToolBlockIP); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	before := len(s.Entries(0))
	stepTo(t, s, 7)
	out, err := s.ApplyDefense(ctx, mission.ToolBlockIP)
	if err != nil || out != DefenseAlreadyActive {
		t.Fatalf("expected already active, got %v %v", out, err)
	}
	after := s.Entries(0)
	if len(after) != before+1 {
		t.Fatalf("repeat apply changed the log: %d -> %d", before, len(after))
	}
	snap := s.Snapshot()
	if len(snap.ActiveDefenses) != 1 {
		t.Fatalf("unexpected defenses: %v", snap.ActiveDefenses)
	}
}

func TestApplyDefenseRejected(t *testing.T) {
	s := newTestSim(t, "clip", Options{})
	ctx := context.Background()
	if _, err := s.ApplyDefense(ctx, mission.ToolBlockIP); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState while idle, got %v", err)
	}
	_ = s.Start(ctx)
	for _, tool := range []mission.ToolID{mission.ToolEnableLogging, "rm_rf"} {
		if _, err := s.ApplyDefense(ctx, tool); !errors.Is(err, ErrToolNotAllowed) {
			t.Fatalf("expected ErrToolNotAllowed for %s, got %v", tool, err)
		}
	}
	_ = s.Pause(ctx)
	if _, err := s.ApplyDefense(ctx, mission.ToolBlockIP); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState while paused, got %v", err)
	}
	if n := len(s.Entries(0)); n != 0 {
		t.Fatalf("rejected defenses were logged: %d entries", n)
	}
}

func TestStateMachine(t *testing.T) {
	s := newTestSim(t, "clip", Options{})
	ctx := context.Background()

	if err := s.Pause(ctx); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("pause while idle: %v", err)
	}
	if err := s.Step(ctx); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("step while idle: %v", err)
	}
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Start(ctx); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("start while running: %v", err)
	}
	if err := s.EndMission(ctx); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("end while running: %v", err)
	}
	stepTo(t, s, 6)
	if err := s.Pause(ctx); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if err := s.Step(ctx); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("step while paused: %v", err)
	}
	if s.CurrentTime() != 6 {
		t.Fatalf("clock moved while paused: %d", s.CurrentTime())
	}
	if err := s.Resume(ctx); err != nil {
		t.Fatalf("resume: %v", err)
	}
	stepTo(t, s, 8)
	_ = s.Pause(ctx)
	if err := s.EndMission(ctx); err != nil {
		t.Fatalf("end mission: %v", err)
	}
	res, _ := s.Result()
	if s.State() != StateEnded || res.Reason != EndManual || res.TotalElapsedSeconds != 8 {
		t.Fatalf("unexpected end: %s %+v", s.State(), res)
	}
	if err := s.Resume(ctx); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("resume while ended: %v", err)
	}
	select {
	case <-s.Done():
	default:
		t.Fatalf("done channel not closed")
	}
}

func TestEndMissionRequiresActivity(t *testing.T) {
	s := newTestSim(t, "empty", Options{})
	ctx := context.Background()
	_ = s.Start(ctx)
	_ = s.Pause(ctx)
	if err := s.EndMission(ctx); !errors.Is(err, ErrNoActivity) {
		t.Fatalf("expected ErrNoActivity, got %v", err)
	}
	if s.State() != StatePaused {
		t.Fatalf("state changed: %s", s.State())
	}
}

func TestReportOncePerRun(t *testing.T) {
	sink := &fakeSink{}
	w := &recordWriter{}
	s := newTestSim(t, "clip", Options{Sink: sink, ReportWriter: w})
	ctx := context.Background()

	if _, err := s.Report(ctx); !errors.Is(err, ErrNotEnded) {
		t.Fatalf("expected ErrNotEnded, got %v", err)
	}
	_ = s.Start(ctx)
	stepUntilEnded(t, s)

	first, err := s.Report(ctx)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	second, err := s.Report(ctx)
	if err != nil {
		t.Fatalf("second report: %v", err)
	}
	if first.SessionID != second.SessionID || first.Score != second.Score {
		t.Fatalf("reports differ: %+v vs %+v", first, second)
	}
	if sink.calls != 1 || len(w.reports) != 1 {
		t.Fatalf("expected one sink call and one written report, got %d and %d", sink.calls, len(w.reports))
	}
}

func TestReportSinkFailureNotRetried(t *testing.T) {
	sink := &fakeSink{err: errors.New("disk full")}
	m := metrics.New()
	s := newTestSim(t, "empty", Options{Sink: sink, Metrics: m})
	ctx := context.Background()
	_ = s.Start(ctx)
	_ = s.Step(ctx)

	rep, err := s.Report(ctx)
	if err == nil {
		t.Fatalf("expected sink error")
	}
	if rep.SessionID == "" {
		t.Fatalf("report missing on sink failure")
	}
	if _, err := s.Report(ctx); err != nil {
		t.Fatalf("second report: %v", err)
	}
	if sink.calls != 1 {
		t.Fatalf("sink called %d times", sink.calls)
	}
	if v := testutil.ToFloat64(m.SinkErrors); v != 1 {
		t.Fatalf("sink error counter = %v", v)
	}
}

func TestStartAfterEndReplays(t *testing.T) {
	sink := &fakeSink{}
	s := newTestSim(t, "clip", Options{Sink: sink})
	ctx := context.Background()
	_ = s.Start(ctx)
	stepTo(t, s, 6)
	_, _ = s.ApplyDefense(ctx, mission.ToolStartSnort)
	stepUntilEnded(t, s)
	if _, err := s.Report(ctx); err != nil {
		t.Fatalf("report: %v", err)
	}
	oldSession := s.SessionID()
	oldDone := s.Done()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if s.SessionID() == oldSession {
		t.Fatalf("session id reused")
	}
	if s.CurrentTime() != 0 || len(s.Entries(0)) != 0 {
		t.Fatalf("run not reset: t=%d entries=%d", s.CurrentTime(), len(s.Entries(0)))
	}
	if _, ok := s.Result(); ok {
		t.Fatalf("stale result after restart")
	}
	if len(s.Snapshot().ActiveDefenses) != 0 {
		t.Fatalf("defenses survived restart")
	}
	if s.Done() == oldDone {
		t.Fatalf("done channel not renewed")
	}

	stepUntilEnded(t, s)
	if _, err := s.Report(ctx); err != nil {
		t.Fatalf("report: %v", err)
	}
	if sink.calls != 2 {
		t.Fatalf("expected one sink call per run, got %d", sink.calls)
	}
}

func TestRestartRecordsUnreportedRun(t *testing.T) {
	sink := &fakeSink{}
	s := newTestSim(t, "empty", Options{Sink: sink})
	ctx := context.Background()

	_ = s.Start(ctx)
	stepUntilEnded(t, s)
	if err := s.Start(ctx); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if sink.calls != 1 {
		t.Fatalf("unreported run was not recorded on restart: %d calls", sink.calls)
	}

	stepUntilEnded(t, s)
	if _, err := s.Report(ctx); err != nil {
		t.Fatalf("report: %v", err)
	}
	if err := s.Start(ctx); err != nil {
		t.Fatalf("second restart: %v", err)
	}
	if sink.calls != 2 {
		t.Fatalf("expected one sink call per run, got %d", sink.calls)
	}
}

func TestWritersReceiveEntries(t *testing.T) {
	w := &recordWriter{}
	s := newTestSim(t, "clip", Options{Writer: w})
	ctx := context.Background()
	_ = s.Start(ctx)
	stepTo(t, s, 5)
	if len(w.entries) != 2 {
		t.Fatalf("expected 2 written entries, got %d", len(w.entries))
	}

	bw := &batchWriter{}
	s = newTestSim(t, "clip", Options{Writer: bw})
	_ = s.Start(ctx)
	stepTo(t, s, 5)
	if len(bw.batches) != 2 || len(bw.entries) != 0 {
		t.Fatalf("expected 2 batches and no single writes, got %d/%d", len(bw.batches), len(bw.entries))
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s := newTestSim(t, "clip", Options{})
	_ = s.Start(context.Background())
	stepTo(t, s, 1)
	snap := s.Snapshot()
	snap.Entries[0].Message = "changed"
	if s.Entries(0)[0].Message == "changed" {
		t.Fatalf("snapshot shares the log")
	}
	if snap.State != StateRunning || snap.MissionKey != "clip" || len(snap.AllowedTools) != 3 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestConcurrentDefenseAndStep(t *testing.T) {
	s := newTestSim(t, "long", Options{})
	ctx := context.Background()
	_ = s.Start(ctx)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 30; i++ {
			_ = s.Step(ctx)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 30; i++ {
			_, _ = s.ApplyDefense(ctx, mission.ToolBlockIP)
		}
	}()
	wg.Wait()

	entries := s.Entries(0)
	defenses := 0
	for i, e := range entries {
		if i > 0 && e.Timestamp < entries[i-1].Timestamp {
			t.Fatalf("timestamps decrease at %d", i)
		}
		if e.Kind == mission.KindDefenseApplied {
			defenses++
		}
	}
	if defenses != 1 {
		t.Fatalf("expected exactly one defense entry, got %d", defenses)
	}
}

func TestRunAndWait(t *testing.T) {
	m := metrics.New()
	s := newTestSim(t, "clip", Options{TickInterval: time.Millisecond, Metrics: m})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go s.Run(ctx)

	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	res, err := s.Wait(ctx)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if res.Reason != EndTimelineComplete || res.TotalElapsedSeconds != 30 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if v := testutil.ToFloat64(m.RunsStarted); v != 1 {
		t.Fatalf("runs started = %v", v)
	}
	if v := testutil.ToFloat64(m.EventsDelivered); v != 4 {
		t.Fatalf("events delivered = %v", v)
	}
}

func TestWaitHonoursContext(t *testing.T) {
	s := newTestSim(t, "clip", Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
