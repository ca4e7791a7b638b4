// Simulator replaying a mission timeline and recording defender actions
package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"vncrypt-sim/internal/logging"
	"vncrypt-sim/internal/metrics"
	"vncrypt-sim/internal/mission"
	"vncrypt-sim/internal/progress"
)

// TimeLimit is the simulated second at which every run ends.
const TimeLimit = 60

// RunState is the lifecycle state of the current run.
type RunState string

const (
	StateIdle    RunState = "idle"
	StateRunning RunState = "running"
	StatePaused  RunState = "paused"
	StateEnded   RunState = "ended"
)

// EndReason records why a run terminated.
type EndReason string

const (
	EndTimeLimit        EndReason = "time_limit"
	EndTimelineComplete EndReason = "timeline_complete"
	EndManual           EndReason = "manual"
)

// DefenseOutcome tells the caller what ApplyDefense did.
type DefenseOutcome int

const (
	DefenseActivated DefenseOutcome = iota
	DefenseAlreadyActive
)

func (o DefenseOutcome) String() string {
	if o == DefenseAlreadyActive {
		return "already active"
	}
	return "activated"
}

// EntryWriter receives log entries as they are appended.
type EntryWriter interface {
	WriteEntry(LogEntry) error
}

// Optional: writers may accept all entries of one step at once
type batchEntryWriter interface {
	WriteEntries([]LogEntry) error
}

// ReportWriter receives the scored report of a finished run.
type ReportWriter interface {
	WriteReport(Report) error
}

// Result is the frozen outcome of a run, captured at termination.
type Result struct {
	MissionKey           string           `json:"missionKey"`
	SessionID            string           `json:"sessionId"`
	Reason               EndReason        `json:"reason"`
	DetectionTimeSeconds int              `json:"detectionTimeSeconds"`
	ToolsUsed            []mission.ToolID `json:"toolsUsed"`
	TotalElapsedSeconds  int              `json:"totalElapsedSeconds"`
	StartedAt            time.Time        `json:"startedAt"`
	EndedAt              time.Time        `json:"endedAt"`
}

// Snapshot is a consistent copy of the simulator state for rendering.
type Snapshot struct {
	MissionKey     string           `json:"missionKey"`
	SessionID      string           `json:"sessionId"`
	State          RunState         `json:"state"`
	CurrentTime    int              `json:"currentTime"`
	Entries        []LogEntry       `json:"entries"`
	ActiveDefenses []mission.ToolID `json:"activeDefenses"`
	AllowedTools   []mission.ToolID `json:"allowedTools"`
	StartedAt      time.Time        `json:"startedAt"`
	Result         *Result          `json:"result,omitempty"`
}

// Options wires the collaborators of a Simulator. All fields are optional.
type Options struct {
	Writer       EntryWriter
	ReportWriter ReportWriter
	Sink         progress.Sink
	Metrics      *metrics.Metrics
	TickInterval time.Duration
	Now          func() time.Time
}

// Simulator runs one mission. Every state change happens under mu, so a
// tick and a defense application never interleave.
type Simulator struct {
	mission      mission.Mission
	timeline     []mission.TimelineEvent
	writer       EntryWriter
	reportWriter ReportWriter
	sink         progress.Sink
	metrics      *metrics.Metrics
	tickInterval time.Duration
	now          func() time.Time

	mu          sync.Mutex
	state       RunState
	currentTime int
	cursor      int
	sessionID   string
	startedAt   time.Time
	log         EventLog
	defenses    DefenseRegistry
	result      *Result
	report      *Report
	recorded    bool
	done        chan struct{}
}

// NewSimulator prepares an idle run of the mission named key.
// It fails with mission.ErrMissionNotFound if the catalog has no such mission.
func NewSimulator(catalog *mission.Catalog, key string, opts Options) (*Simulator, error) {
	m, err := catalog.Mission(key)
	if err != nil {
		return nil, err
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Simulator{
		mission:      m,
		timeline:     catalog.Timeline(key),
		writer:       opts.Writer,
		reportWriter: opts.ReportWriter,
		sink:         opts.Sink,
		metrics:      opts.Metrics,
		tickInterval: opts.TickInterval,
		now:          opts.Now,
		state:        StateIdle,
		done:         make(chan struct{}),
	}, nil
}

func newSessionID() string {
	return uuid.NewString()[:8]
}

// Mission returns the mission being simulated.
func (s *Simulator) Mission() mission.Mission { return s.mission }

// State returns the current run state.
func (s *Simulator) State() RunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentTime returns the simulated seconds elapsed in the current run.
func (s *Simulator) CurrentTime() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTime
}

// SessionID returns the id of the current run, empty before the first start.
func (s *Simulator) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// Done is closed when the current run ends. Each Start creates a new channel.
func (s *Simulator) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Entries returns log entries from index i on.
func (s *Simulator) Entries(i int) []LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Entries(i)
}

// Result returns the frozen result once the run has ended.
func (s *Simulator) Result() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// Snapshot returns a copy of the whole run state.
func (s *Simulator) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		MissionKey:     s.mission.Key,
		SessionID:      s.sessionID,
		State:          s.state,
		CurrentTime:    s.currentTime,
		Entries:        s.log.Entries(0),
		ActiveDefenses: s.defenses.Tools(),
		AllowedTools:   append([]mission.ToolID(nil), s.mission.AllowedTools...),
		StartedAt:      s.startedAt,
	}
	if s.result != nil {
		r := *s.result
		snap.Result = &r
	}
	return snap
}

// Start begins a run. A finished run is replayed from zero; if it was never
// reported it is scored and recorded first. Scripted events at second zero
// arrive with the first tick.
func (s *Simulator) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateIdle:
	case StateEnded:
		if s.report == nil {
			if _, err := s.reportLocked(context.WithoutCancel(ctx)); err != nil {
				logging.FromContext(ctx).Error("previous run not recorded", "session", s.sessionID, "err", err)
			}
		}
		s.resetLocked()
	default:
		return invalidState("start", s.state)
	}

	s.state = StateRunning
	s.sessionID = newSessionID()
	s.startedAt = s.now()
	s.metrics.RunStarted()
	logging.FromContext(ctx).Info("run started", "mission", s.mission.Key, "session", s.sessionID)
	return nil
}

func (s *Simulator) resetLocked() {
	s.currentTime = 0
	s.cursor = 0
	s.sessionID = ""
	s.startedAt = time.Time{}
	s.log.reset()
	s.defenses.reset()
	s.result = nil
	s.report = nil
	s.recorded = false
	s.done = make(chan struct{})
}

// Pause freezes the clock.
func (s *Simulator) Pause(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRunning {
		return invalidState("pause", s.state)
	}
	s.state = StatePaused
	logging.FromContext(ctx).Info("run paused", "session", s.sessionID, "t", s.currentTime)
	return nil
}

// Resume continues a paused run from the frozen clock value.
func (s *Simulator) Resume(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePaused {
		return invalidState("resume", s.state)
	}
	s.state = StateRunning
	logging.FromContext(ctx).Info("run resumed", "session", s.sessionID, "t", s.currentTime)
	return nil
}

// ApplyDefense activates tool at the current simulated second.
// Re-applying an active tool changes nothing and reports DefenseAlreadyActive.
func (s *Simulator) ApplyDefense(ctx context.Context, tool mission.ToolID) (DefenseOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return DefenseActivated, invalidState("apply defense", s.state)
	}
	if !s.mission.Allows(tool) {
		return DefenseActivated, fmt.Errorf("%w: %q in %s", ErrToolNotAllowed, tool, s.mission.Key)
	}
	if !s.defenses.Activate(tool) {
		return DefenseAlreadyActive, nil
	}

	e := s.entryLocked(s.currentTime, mission.KindDefenseApplied, fmt.Sprintf("%s activated by defender", tool), "")
	e.Tool = tool
	s.appendLocked(ctx, []LogEntry{e})
	s.metrics.DefenseApplied(string(tool))
	logging.FromContext(ctx).Info("defense applied", "session", s.sessionID, "tool", tool, "t", s.currentTime)
	return DefenseActivated, nil
}

// EndMission terminates a paused run that has at least one log entry.
func (s *Simulator) EndMission(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePaused {
		return invalidState("end mission", s.state)
	}
	if s.log.Len() == 0 {
		return ErrNoActivity
	}
	s.terminateLocked(ctx, EndManual)
	return nil
}

// Step advances the clock by one simulated second, appends every scripted
// event due at the new time, then applies the termination policy.
func (s *Simulator) Step(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRunning {
		return invalidState("tick", s.state)
	}

	s.currentTime++
	n := s.deliverDueLocked(ctx)
	s.metrics.Tick(n)

	if reason, ok := s.terminationLocked(); ok {
		s.terminateLocked(ctx, reason)
	}
	return nil
}

// deliverDueLocked appends timeline events up to the current time. The
// cursor only moves forward, so each event is delivered exactly once.
func (s *Simulator) deliverDueLocked(ctx context.Context) int {
	var batch []LogEntry
	for s.cursor < len(s.timeline) && s.timeline[s.cursor].Timestamp <= s.currentTime {
		ev := s.timeline[s.cursor]
		s.cursor++
		batch = append(batch, s.entryLocked(ev.Timestamp, ev.Kind, ev.Message, ev.Details))
	}
	if len(batch) > 0 {
		s.appendLocked(ctx, batch)
	}
	return len(batch)
}

func (s *Simulator) terminationLocked() (EndReason, bool) {
	if s.currentTime >= TimeLimit {
		return EndTimeLimit, true
	}
	if s.cursor == len(s.timeline) {
		return EndTimelineComplete, true
	}
	return "", false
}

func (s *Simulator) terminateLocked(ctx context.Context, reason EndReason) {
	s.state = StateEnded
	detection := s.currentTime
	if first, ok := s.log.First(mission.KindDefenseApplied); ok {
		detection = first.Timestamp
	}
	s.result = &Result{
		MissionKey:           s.mission.Key,
		SessionID:            s.sessionID,
		Reason:               reason,
		DetectionTimeSeconds: detection,
		ToolsUsed:            s.defenses.Tools(),
		TotalElapsedSeconds:  s.currentTime,
		StartedAt:            s.startedAt,
		EndedAt:              s.now(),
	}
	close(s.done)
	s.metrics.RunEnded(string(reason))
	logging.FromContext(ctx).Info("run ended",
		"mission", s.mission.Key, "session", s.sessionID, "reason", reason,
		"t", s.currentTime, "detection", detection, "tools", len(s.result.ToolsUsed))
}

func (s *Simulator) entryLocked(ts int, kind mission.Kind, msg, details string) LogEntry {
	return LogEntry{
		MissionKey: s.mission.Key,
		SessionID:  s.sessionID,
		Timestamp:  ts,
		Kind:       kind,
		Message:    msg,
		Details:    details,
		RecordedAt: s.now().UTC(),
	}
}

// appendLocked records entries in the log and forwards them to the writer.
// Writer failures are logged and never interrupt the run.
func (s *Simulator) appendLocked(ctx context.Context, batch []LogEntry) {
	log := logging.FromContext(ctx)
	for _, e := range batch {
		if err := s.log.Append(e); err != nil {
			log.Error("event log append rejected", "err", err)
		}
	}
	if s.writer == nil {
		return
	}
	if bw, ok := s.writer.(batchEntryWriter); ok {
		if err := bw.WriteEntries(batch); err != nil {
			log.Error("batch write failed", "err", err)
		}
		return
	}
	for _, e := range batch {
		if err := s.writer.WriteEntry(e); err != nil {
			log.Error("write failed", "t", e.Timestamp, "err", err)
		}
	}
}
