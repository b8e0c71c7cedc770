package matching

type Color string

const (
	ColorGreen  Color = "green"
	ColorOrange Color = "orange"
	ColorGray   Color = "gray"
)

// ExperienceTier maps years of experience to a 0-100 score: Floor at zero
// years, rising linearly to 100 at Threshold years and above.
type ExperienceTier struct {
	Threshold float64
	Floor     float64
}

func (t ExperienceTier) Score(years int) float64 {
	if years < 0 {
		years = 0
	}
	if t.Threshold <= 0 {
		return 100
	}
	ratio := float64(years) / t.Threshold
	if ratio > 1 {
		ratio = 1
	}
	return t.Floor + (100-t.Floor)*ratio
}

// Policy holds every tunable of the scoring engine. Weights are fractions of
// the final score and are expected to sum to 1.
type Policy struct {
	SkillsWeight     float64
	ExperienceWeight float64
	LocationWeight   float64

	// Points removed from the skills score for each missing required skill.
	MissingRequiredPenalty float64

	GreenThreshold  int
	OrangeThreshold int

	// Minimum score for a candidate to be notified about a new job.
	QualifyThreshold int

	Junior ExperienceTier
	Mid    ExperienceTier
	Senior ExperienceTier
}

var defaultTiers = struct{ junior, mid, senior ExperienceTier }{
	junior: ExperienceTier{Threshold: 1, Floor: 50},
	mid:    ExperienceTier{Threshold: 2, Floor: 0},
	senior: ExperienceTier{Threshold: 5, Floor: 0},
}

// MatchPolicy scores a single user against a job for display.
func MatchPolicy() Policy {
	return Policy{
		SkillsWeight:           0.7,
		ExperienceWeight:       0.3,
		MissingRequiredPenalty: 20,
		GreenThreshold:         75,
		OrangeThreshold:        45,
		QualifyThreshold:       60,
		Junior:                 defaultTiers.junior,
		Mid:                    defaultTiers.mid,
		Senior:                 defaultTiers.senior,
	}
}

// NotifyPolicy filters candidates when a job is published.
func NotifyPolicy() Policy {
	return Policy{
		SkillsWeight:     0.5,
		ExperienceWeight: 0.3,
		LocationWeight:   0.2,
		GreenThreshold:   75,
		OrangeThreshold:  45,
		QualifyThreshold: 60,
		Junior:           defaultTiers.junior,
		Mid:              defaultTiers.mid,
		Senior:           defaultTiers.senior,
	}
}

func (p Policy) ColorFor(score int) Color {
	switch {
	case score >= p.GreenThreshold:
		return ColorGreen
	case score >= p.OrangeThreshold:
		return ColorOrange
	default:
		return ColorGray
	}
}

func (p Policy) Qualifies(score int) bool {
	return score >= p.QualifyThreshold
}
