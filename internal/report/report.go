// Package report renders and exports scored mission runs.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"vncrypt-sim/internal/mission"
	"vncrypt-sim/internal/sim"
)

// Recommendations are printed with every report.
var Recommendations = []string{
	"Disable clipboard sharing for untrusted VNC sessions by default",
	"Implement IP allowlisting for VNC server connections",
	"Enable Snort IDS with custom VNC detection rules",
	"Configure automated alerts for suspicious clipboard activity",
	"Review and audit VNC session logs regularly",
}

// Summary is the exported JSON document.
type Summary struct {
	Mission       string `json:"mission"`
	Score         int    `json:"score"`
	XP            int    `json:"xp"`
	DetectionTime int    `json:"detectionTime"`
	Passed        bool   `json:"passed"`
}

// Summarize reduces a report to its exported form.
func Summarize(rep sim.Report) Summary {
	return Summary{
		Mission:       rep.MissionTitle,
		Score:         rep.Score.TotalScore,
		XP:            rep.Score.ExperienceAwarded,
		DetectionTime: rep.DetectionTimeSeconds,
		Passed:        rep.Score.Passed,
	}
}

// FileName returns the export file name for a mission key.
func FileName(missionKey string) string {
	return fmt.Sprintf("vncrypt-report-%s.json", missionKey)
}

// Export writes the summary of rep as indented JSON into dir and returns
// the file path.
func Export(dir string, rep sim.Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(Summarize(rep), "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName(rep.MissionKey))
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

const textTemplate = `{{ .MissionTitle }}
MISSION {{ if .Score.Passed }}PASSED{{ else }}FAILED{{ end }}
Detected in {{ .DetectionTimeSeconds }}s (goal: <={{ printf "%.0f" .Score.GoalSeconds }}s)

Score Breakdown
  Base Score         {{ .Score.BaseScore }} pts
  Detection Bonus   +{{ int .Score.DetectionBonus }} pts
  Efficiency Bonus  +{{ .Score.EfficiencyBonus }} pts
  Total Score        {{ .Score.TotalScore }}
  XP Earned         +{{ .Score.ExperienceAwarded }}

Statistics
  Detection Time     {{ .DetectionTimeSeconds }}s
  Tools Used         {{ len .ToolsUsed }}{{ if .ToolsUsed }} ({{ join .ToolsUsed }}){{ end }}
  Total Time         {{ .TotalElapsedSeconds }}s

Skill Assessment
  Detection Speed    {{ printf "%.0f" .Skills.DetectionSpeed }}
  Defense Accuracy   {{ printf "%.0f" .Skills.DefenseAccuracy }}
  Resource Usage     {{ printf "%.0f" .Skills.ResourceUsage }}
  Best Practice      {{ printf "%.0f" .Skills.BestPractice }}
  Threat Response    {{ printf "%.0f" .Skills.ThreatResponse }}

Best Practice Recommendations
{{ range $i, $r := recommendations }}  {{ inc $i }}. {{ $r }}
{{ end }}`

var tpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"int": func(f float64) int { return int(f) },
	"inc": func(i int) int { return i + 1 },
	"join": func(tools []mission.ToolID) string {
		parts := make([]string, len(tools))
		for i, t := range tools {
			parts[i] = string(t)
		}
		return strings.Join(parts, ", ")
	},
	"recommendations": func() []string { return Recommendations },
}).Parse(textTemplate))

// Render writes a human readable report.
func Render(w io.Writer, rep sim.Report) error {
	return tpl.Execute(w, rep)
}
