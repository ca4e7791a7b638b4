package sim

import (
	"fmt"
	"time"

	"vncrypt-sim/internal/mission"
)

// LogEntry is one line of a run's event log, either a delivered timeline
// event or a defender action.
type LogEntry struct {
	MissionKey string         `json:"missionKey"`
	SessionID  string         `json:"sessionId"`
	Timestamp  int            `json:"timestamp"`
	Kind       mission.Kind   `json:"type"`
	Message    string         `json:"message"`
	Details    string         `json:"details,omitempty"`
	Tool       mission.ToolID `json:"tool,omitempty"`
	RecordedAt time.Time      `json:"recordedAt"`
}

// EventLog is the append-only log of a single run. Timestamps never decrease.
// It is not safe for concurrent use; the Simulator guards it.
type EventLog struct {
	entries []LogEntry
}

// Append adds e to the log.
func (l *EventLog) Append(e LogEntry) error {
	if n := len(l.entries); n > 0 && e.Timestamp < l.entries[n-1].Timestamp {
		return fmt.Errorf("entry at t=%d after t=%d", e.Timestamp, l.entries[n-1].Timestamp)
	}
	l.entries = append(l.entries, e)
	return nil
}

// Len returns the number of entries.
func (l *EventLog) Len() int { return len(l.entries) }

// Entries returns a copy of the log from index i on.
func (l *EventLog) Entries(i int) []LogEntry {
	if i < 0 {
		i = 0
	}
	if i >= len(l.entries) {
		return nil
	}
	out := make([]LogEntry, len(l.entries)-i)
	copy(out, l.entries[i:])
	return out
}

// First returns the earliest entry of the given kind.
func (l *EventLog) First(kind mission.Kind) (LogEntry, bool) {
	for _, e := range l.entries {
		if e.Kind == kind {
			return e, true
		}
	}
	return LogEntry{}, false
}

func (l *EventLog) reset() { l.entries = nil }

// DefenseRegistry is the set of tools activated in the current run,
// kept in activation order.
type DefenseRegistry struct {
	active map[mission.ToolID]struct{}
	order  []mission.ToolID
}

// Activate inserts tool. It returns false if the tool was already active.
func (r *DefenseRegistry) Activate(tool mission.ToolID) bool {
	if r.active == nil {
		r.active = make(map[mission.ToolID]struct{})
	}
	if _, ok := r.active[tool]; ok {
		return false
	}
	r.active[tool] = struct{}{}
	r.order = append(r.order, tool)
	return true
}

// Active reports whether tool has been applied.
func (r *DefenseRegistry) Active(tool mission.ToolID) bool {
	_, ok := r.active[tool]
	return ok
}

// Tools lists active tools in activation order.
func (r *DefenseRegistry) Tools() []mission.ToolID {
	out := make([]mission.ToolID, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of active tools.
func (r *DefenseRegistry) Len() int { return len(r.order) }

func (r *DefenseRegistry) reset() {
	r.active = nil
	r.order = nil
}
