// Package roadmap computes the skills a user still needs for a target job.
package roadmap

import (
	"math"
	"time"

	"emploiplus/internal/domain/skill"
)

// Formation is a published training offering.
type Formation struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Provider    string `json:"provider,omitempty"`
	URL         string `json:"url,omitempty"`
}

// MaxSuggestions is the number of formations attached to a missing skill.
const MaxSuggestions = 3

type Step struct {
	Order       int         `json:"order"`
	Skill       string      `json:"skill"`
	Suggestions []Formation `json:"suggestions"`
}

type CareerRoadmap struct {
	TargetJobID          string    `json:"targetJobId"`
	TargetJobTitle       string    `json:"targetJobTitle"`
	AcquiredSkills       []string  `json:"acquiredSkills"`
	MissingSkills        []Step    `json:"missingSkills"`
	CompletionPercentage int       `json:"completionPercentage"`
	GeneratedAt          time.Time `json:"generatedAt"`
}

// Partition splits required into skills the user has and skills they lack,
// keeping the order of required.
func Partition(userSkills, required []string) (acquired, missing []string) {
	acquired = make([]string, 0, len(required))
	missing = make([]string, 0, len(required))
	for _, s := range required {
		if skill.HasSkill(userSkills, s) {
			acquired = append(acquired, s)
		} else {
			missing = append(missing, s)
		}
	}
	return acquired, missing
}

// Completion is round(100*acquired/total), 0 when nothing is required.
func Completion(acquired, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(acquired) / float64(total) * 100))
}
