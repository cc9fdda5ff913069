package risk

// Level is the coarse risk classification derived from a score.
type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
)

// Source names reported in Assessment.Sources.
const (
	SourceVirusTotal = "VirusTotal"
	SourceHIBP       = "Have I Been Pwned"
	SourceEmailRep   = "EmailRep.io"
)

// Assessment is the result of a scorer run.
type Assessment struct {
	Score       int      `json:"score"`
	Level       Level    `json:"level"`
	Summary     string   `json:"summary"`
	Explanation []string `json:"explanation"`
	Sources     []string `json:"sources"`
	Partial     bool     `json:"partial"`
}

// Thresholds are the inclusive upper bounds of the low and moderate bands.
type Thresholds struct {
	LowMax      int `json:"low_max"`      // Default: 20
	ModerateMax int `json:"moderate_max"` // Default: 60
	// High: 61-100
}

// DefaultThresholds returns the thresholds shared by both scorers.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LowMax:      20,
		ModerateMax: 60,
	}
}

// LevelFor maps a clamped score to its Level.
func (t Thresholds) LevelFor(score int) Level {
	switch {
	case score <= t.LowMax:
		return LevelLow
	case score <= t.ModerateMax:
		return LevelModerate
	default:
		return LevelHigh
	}
}

// summaries holds one canned sentence per level.
type summaries map[Level]string

func (s summaries) For(level Level) string {
	return s[level]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// capped returns count*weight bounded to [0, limit]. The bound is checked
// before multiplying so large counts saturate instead of overflowing.
func capped(count, weight, limit int) int {
	if count <= 0 {
		return 0
	}
	if count > limit/weight {
		return limit
	}
	return min(count*weight, limit)
}
