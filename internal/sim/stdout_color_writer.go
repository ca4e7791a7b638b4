// ColorStdoutWriter prints a human-friendly, colorized mission log to STDOUT.
package sim

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"text/tabwriter"

	"vncrypt-sim/internal/mission"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"
)

func kindColor(k mission.Kind) string {
	switch k {
	case mission.KindSuspicious:
		return colorYellow
	case mission.KindExfilAttempt:
		return colorRed
	case mission.KindDefenseApplied:
		return colorGreen
	case mission.KindMissionEnd:
		return colorMagenta
	default:
		return colorBlue
	}
}

// formatEntry renders one log line, optionally with ANSI colors.
func formatEntry(e LogEntry, color bool) string {
	if !color {
		line := fmt.Sprintf("[t=%02ds] %-15s %s", e.Timestamp, strings.ToUpper(string(e.Kind)), e.Message)
		if e.Details != "" {
			line += " (" + e.Details + ")"
		}
		return line
	}
	line := fmt.Sprintf("%s[t=%02ds]%s %s%-15s%s %s",
		colorGray, e.Timestamp, colorReset,
		kindColor(e.Kind), strings.ToUpper(string(e.Kind)), colorReset,
		e.Message)
	if e.Details != "" {
		line += fmt.Sprintf(" %s(%s)%s", colorCyan, e.Details, colorReset)
	}
	return line
}

// ColorStdoutWriter prints log entries using ANSI colors.
type ColorStdoutWriter struct {
	mission mission.Mission
	out     io.Writer
	once    sync.Once
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter(m mission.Mission) *ColorStdoutWriter {
	return &ColorStdoutWriter{mission: m, out: os.Stdout}
}

func (w *ColorStdoutWriter) printOverview() {
	m := w.mission
	if m.Key == "" {
		return
	}
	fmt.Fprintf(w.out, "%s%s%s\n", colorCyan, m.Title, colorReset)
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Difficulty:\t%s\n", m.Difficulty)
	fmt.Fprintf(tw, "Attack Type:\t%s\n", m.AttackType)
	fmt.Fprintf(tw, "Target System:\t%s\n", m.TargetSystem)
	fmt.Fprintf(tw, "Detection Goal:\t%.0fs\n", m.SuccessCriteria.DetectionTimeSeconds)
	fmt.Fprintf(tw, "Max Data Loss:\t%.0f%%\n", m.SuccessCriteria.MaxDataLossFraction*100)
	tw.Flush()

	fmt.Fprintln(w.out, "\nDefense Toolbox:")
	tw = tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	for i, id := range m.AllowedTools {
		t := mission.LookupTool(id)
		fmt.Fprintf(tw, "%s%d%s\t%s\t%s\n", colorGreen, i+1, colorReset, t.Label, t.Description)
	}
	tw.Flush()
	fmt.Fprintln(w.out)
}

// WriteEntry outputs a single log entry in colorized format.
func (w *ColorStdoutWriter) WriteEntry(e LogEntry) error {
	w.once.Do(w.printOverview)
	_, err := fmt.Fprintln(w.out, formatEntry(e, true))
	return err
}

// WriteEntries outputs multiple log entries.
func (w *ColorStdoutWriter) WriteEntries(rows []LogEntry) error {
	for _, e := range rows {
		_ = w.WriteEntry(e)
	}
	return nil
}

// WriteReport prints the score breakdown.
func (w *ColorStdoutWriter) WriteReport(r Report) error {
	w.once.Do(w.printOverview)
	status, statusColor := "FAILED", colorRed
	if r.Score.Passed {
		status, statusColor = "PASSED", colorGreen
	}
	fmt.Fprintf(w.out, "\n%sMISSION %s%s  session=%s reason=%s\n", statusColor, status, colorReset, r.SessionID, r.Reason)
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Detection Time:\t%ds (goal %.0fs)\n", r.DetectionTimeSeconds, r.Score.GoalSeconds)
	fmt.Fprintf(tw, "Tools Used:\t%d\n", len(r.ToolsUsed))
	fmt.Fprintf(tw, "Total Time:\t%ds\n", r.TotalElapsedSeconds)
	fmt.Fprintf(tw, "Base Score:\t%d pts\n", r.Score.BaseScore)
	fmt.Fprintf(tw, "Detection Bonus:\t+%d pts\n", int(r.Score.DetectionBonus))
	fmt.Fprintf(tw, "Efficiency Bonus:\t+%d pts\n", r.Score.EfficiencyBonus)
	fmt.Fprintf(tw, "%sTotal Score:%s\t%s%d%s\n", colorCyan, colorReset, colorCyan, r.Score.TotalScore, colorReset)
	fmt.Fprintf(tw, "XP Earned:\t+%d\n", r.Score.ExperienceAwarded)
	tw.Flush()
	return nil
}
