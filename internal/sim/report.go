package sim

import (
	"context"
	"fmt"
	"time"

	"vncrypt-sim/internal/logging"
	"vncrypt-sim/internal/mission"
	"vncrypt-sim/internal/progress"
	"vncrypt-sim/internal/scoring"
)

// Report is the scored outcome of one run. It never changes once built.
type Report struct {
	MissionKey           string            `json:"missionKey"`
	MissionTitle         string            `json:"missionTitle"`
	SessionID            string            `json:"sessionId"`
	Reason               EndReason         `json:"reason"`
	DetectionTimeSeconds int               `json:"detectionTimeSeconds"`
	ToolsUsed            []mission.ToolID  `json:"toolsUsed"`
	TotalElapsedSeconds  int               `json:"totalElapsedSeconds"`
	Score                scoring.Breakdown `json:"score"`
	Skills               scoring.Skills    `json:"skills"`
	GeneratedAt          time.Time         `json:"generatedAt"`
}

// BuildReport scores a frozen result against its mission.
func BuildReport(m mission.Mission, r Result, at time.Time) Report {
	goal := m.SuccessCriteria.DetectionTimeSeconds
	tools := len(r.ToolsUsed)
	return Report{
		MissionKey:           m.Key,
		MissionTitle:         m.Title,
		SessionID:            r.SessionID,
		Reason:               r.Reason,
		DetectionTimeSeconds: r.DetectionTimeSeconds,
		ToolsUsed:            append([]mission.ToolID(nil), r.ToolsUsed...),
		TotalElapsedSeconds:  r.TotalElapsedSeconds,
		Score:                scoring.Compute(r.DetectionTimeSeconds, goal, tools),
		Skills:               scoring.Assess(r.DetectionTimeSeconds, goal, tools),
		GeneratedAt:          at.UTC(),
	}
}

// RunResult converts the report into the record kept by progress stores.
// Data loss is not simulated and is always zero.
func (r Report) RunResult() progress.RunResult {
	return progress.RunResult{
		MissionKey:           r.MissionKey,
		Score:                r.Score.TotalScore,
		DetectionTimeSeconds: r.DetectionTimeSeconds,
		DataLoss:             0,
		ToolsUsed:            append([]mission.ToolID{}, r.ToolsUsed...),
		Timestamp:            r.GeneratedAt,
	}
}

// Delta returns the experience award for the progress sink.
func (r Report) Delta() progress.Delta {
	return progress.Delta{ExperienceAwarded: r.Score.ExperienceAwarded, MissionKey: r.MissionKey}
}

// Report scores the finished run. Scoring happens once per run; later calls
// return the same report. The progress sink is called at most once per run,
// even when that call fails.
func (s *Simulator) Report(ctx context.Context) (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reportLocked(ctx)
}

func (s *Simulator) reportLocked(ctx context.Context) (Report, error) {
	if s.state != StateEnded || s.result == nil {
		return Report{}, fmt.Errorf("report while %s: %w", s.state, ErrNotEnded)
	}
	if s.report != nil {
		return *s.report, nil
	}

	log := logging.FromContext(ctx)
	rep := BuildReport(s.mission, *s.result, s.now())
	s.report = &rep
	s.metrics.Scored(rep.Score.TotalScore)
	log.Info("run scored", "mission", rep.MissionKey, "session", rep.SessionID,
		"score", rep.Score.TotalScore, "xp", rep.Score.ExperienceAwarded, "passed", rep.Score.Passed)

	if s.reportWriter != nil {
		if err := s.reportWriter.WriteReport(rep); err != nil {
			log.Error("report write failed", "err", err)
		}
	}

	if s.sink == nil || s.recorded {
		return rep, nil
	}
	s.recorded = true
	if err := s.sink.Record(ctx, rep.Delta(), rep.RunResult()); err != nil {
		s.metrics.SinkFailed()
		return rep, fmt.Errorf("record progress: %w", err)
	}
	return rep, nil
}
