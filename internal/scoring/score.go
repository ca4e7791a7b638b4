// Package scoring turns a finished run into points and experience.
// Every function here is pure: the same inputs always give the same report.
package scoring

import "math"

const (
	BaseScore          = 50
	MaxDetectionBonus  = 30.0
	MaxEfficiencyBonus = 10
	ToolPenalty        = 2
	MaxScore           = 100
	XPPerPoint         = 2
)

// Breakdown is the itemised result of Compute.
type Breakdown struct {
	DetectionTimeSeconds int     `json:"detectionTimeSeconds"`
	GoalSeconds          float64 `json:"goalSeconds"`
	ToolsUsed            int     `json:"toolsUsed"`
	BaseScore            int     `json:"baseScore"`
	DetectionBonus       float64 `json:"detectionBonus"`
	EfficiencyBonus      int     `json:"efficiencyBonus"`
	TotalScore           int     `json:"totalScore"`
	ExperienceAwarded    int     `json:"experienceAwarded"`
	Passed               bool    `json:"passed"`
}

// Compute scores a run. The detection bonus shrinks linearly from 30 at
// second zero to 0 at the goal; every tool costs two efficiency points.
// Only the number of distinct tools counts, not which ones.
// A non-positive goal earns no detection bonus.
func Compute(detectionSeconds int, goalSeconds float64, toolsUsed int) Breakdown {
	b := Breakdown{
		DetectionTimeSeconds: detectionSeconds,
		GoalSeconds:          goalSeconds,
		ToolsUsed:            toolsUsed,
		BaseScore:            BaseScore,
	}
	if goalSeconds > 0 {
		b.DetectionBonus = math.Max(0, MaxDetectionBonus-float64(detectionSeconds)*MaxDetectionBonus/goalSeconds)
	}
	b.EfficiencyBonus = max(0, MaxEfficiencyBonus-ToolPenalty*toolsUsed)

	sum := float64(b.BaseScore) + b.DetectionBonus + float64(b.EfficiencyBonus)
	b.TotalScore = min(MaxScore, int(math.Floor(sum)))
	b.ExperienceAwarded = b.TotalScore * XPPerPoint
	b.Passed = float64(detectionSeconds) <= goalSeconds
	return b
}
