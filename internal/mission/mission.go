package mission

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Kind classifies a timeline or log entry.
type Kind string

const (
	KindInfo           Kind = "info"
	KindSuspicious     Kind = "suspicious"
	KindExfilAttempt   Kind = "exfil_attempt"
	KindMissionEnd     Kind = "mission_end"
	KindDefenseApplied Kind = "defense_applied"
)

// Scripted reports whether k may appear in an authored timeline.
// defense_applied entries only originate from the defender.
func (k Kind) Scripted() bool {
	switch k {
	case KindInfo, KindSuspicious, KindExfilAttempt, KindMissionEnd:
		return true
	}
	return false
}

// SuccessCriteria holds the goals a run is judged against.
type SuccessCriteria struct {
	DetectionTimeSeconds float64 `yaml:"detection_time_seconds" json:"detectionTimeSeconds"`
	MaxDataLossFraction  float64 `yaml:"max_data_loss_fraction" json:"maxDataLossFraction"`
}

// Mission is a catalog entry. Only Key, AllowedTools and SuccessCriteria
// drive the engine; the remaining fields are narrative.
type Mission struct {
	Key             string          `yaml:"key" json:"key"`
	Title           string          `yaml:"title" json:"title"`
	Difficulty      string          `yaml:"difficulty" json:"difficulty"`
	Description     string          `yaml:"description" json:"description"`
	AttackType      string          `yaml:"attack_type" json:"attackType"`
	TargetSystem    string          `yaml:"target_system" json:"targetSystem"`
	AllowedTools    []ToolID        `yaml:"allowed_tools" json:"allowedTools"`
	SuccessCriteria SuccessCriteria `yaml:"success_criteria" json:"successCriteria"`
	ThreatModel     string          `yaml:"threat_model" json:"threatModel"`
	Scope           string          `yaml:"scope" json:"scope"`
}

// Allows reports whether tool may be applied during this mission.
func (m Mission) Allows(tool ToolID) bool {
	return slices.Contains(m.AllowedTools, tool)
}

// TimelineEvent is one scripted occurrence at a simulated second.
type TimelineEvent struct {
	Timestamp int    `yaml:"timestamp" json:"timestamp"`
	Kind      Kind   `yaml:"type" json:"type"`
	Message   string `yaml:"message" json:"message"`
	Details   string `yaml:"details,omitempty" json:"details,omitempty"`
}

// File is the on-disk catalog layout.
type File struct {
	Missions  []Mission                  `yaml:"missions"`
	Timelines map[string][]TimelineEvent `yaml:"timelines"`
}

// Load reads a YAML catalog definition from disk.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c, err := NewCatalog(f.Missions, f.Timelines)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}
