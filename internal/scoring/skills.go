package scoring

import "math"

// Skills are the five percentages shown on the skill assessment chart.
type Skills struct {
	DetectionSpeed  float64 `json:"detectionSpeed"`
	DefenseAccuracy float64 `json:"defenseAccuracy"`
	ResourceUsage   float64 `json:"resourceUsage"`
	BestPractice    float64 `json:"bestPractice"`
	ThreatResponse  float64 `json:"threatResponse"`
}

// Assess derives the skill chart from the same inputs as Compute.
func Assess(detectionSeconds int, goalSeconds float64, toolsUsed int) Skills {
	var speed float64
	if goalSeconds > 0 {
		speed = clamp((goalSeconds-float64(detectionSeconds))/goalSeconds*100, 0, 100)
	}
	tools := float64(toolsUsed)
	return Skills{
		DetectionSpeed:  speed,
		DefenseAccuracy: math.Max(60, 100-tools*8),
		ResourceUsage:   math.Max(50, 100-tools*10),
		BestPractice:    math.Min(100, 70+speed/5),
		ThreatResponse:  math.Min(100, speed+10),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
