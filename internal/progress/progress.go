// Package progress persists trainee experience and run results.
package progress

import (
	"context"
	"errors"
	"time"

	"vncrypt-sim/internal/mission"
)

// XPPerLevel is the experience needed to gain one level.
const XPPerLevel = 200

// Delta is the experience award for one finished run.
type Delta struct {
	ExperienceAwarded int    `json:"experienceAwarded"`
	MissionKey        string `json:"missionKey"`
}

// RunResult is the record appended for every reported run.
type RunResult struct {
	MissionKey           string           `json:"missionKey"`
	Score                int              `json:"score"`
	DetectionTimeSeconds int              `json:"detectionTimeSeconds"`
	DataLoss             float64          `json:"dataLoss"`
	ToolsUsed            []mission.ToolID `json:"toolsUsed"`
	Timestamp            time.Time        `json:"timestamp"`
}

// Profile is the accumulated state of one trainee.
type Profile struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Level             int      `json:"level"`
	Experience        int      `json:"xp"`
	CompletedMissions []string `json:"completedMissions"`
}

// XPToNextLevel returns the experience still needed for the next level.
func (p Profile) XPToNextLevel() int {
	return p.Level*XPPerLevel - p.Experience
}

// LevelProgress returns how far into the current level the profile is, in percent.
func (p Profile) LevelProgress() float64 {
	return float64(p.Experience%XPPerLevel) / XPPerLevel * 100
}

// LevelFor derives the level from total experience.
func LevelFor(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// Sink receives the outcome of a reported run.
// Implementations must serialize concurrent calls.
type Sink interface {
	Record(ctx context.Context, d Delta, r RunResult) error
}

// Store is a Sink that can also be read back.
type Store interface {
	Sink
	Profile(ctx context.Context) (Profile, error)
	Results(ctx context.Context) ([]RunResult, error)
	Close() error
}

// MultiSink fans a record out to several sinks.
// Every sink is attempted; errors are joined.
type MultiSink []Sink

// Record implements Sink.
func (m MultiSink) Record(ctx context.Context, d Delta, r RunResult) error {
	var errs []error
	for _, s := range m {
		if err := s.Record(ctx, d, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
