package matching

import (
	"sort"

	"emploiplus/internal/domain/skill"
)

// MatchScore is the per-user, per-job result served to clients and cached.
type MatchScore struct {
	JobID     string    `json:"jobId"`
	UserID    string    `json:"userId"`
	Score     int       `json:"score"`
	Breakdown Breakdown `json:"breakdown"`
	Color     Color     `json:"color"`
}

func NewMatchScore(userID, jobID string, r Result) MatchScore {
	return MatchScore{
		JobID:     jobID,
		UserID:    userID,
		Score:     r.Score,
		Breakdown: r.Breakdown,
		Color:     r.Color,
	}
}

// Requirement is an explicit job_requirements row.
type Requirement struct {
	Skill      string
	IsRequired bool
}

// Classify merges skills extracted from the job text with explicit
// requirement rows. Extracted skills are optional by default; explicit rows
// decide the class of their skill, with required taking precedence.
func Classify(extracted []string, reqs []Requirement) (required, optional []string) {
	class := make(map[string]bool)
	for _, s := range skill.Dedupe(extracted) {
		class[s] = false
	}

	explicitRequired := make(map[string]struct{})
	for _, r := range reqs {
		name := skill.Normalize(r.Skill)
		if name == "" {
			continue
		}
		if r.IsRequired {
			explicitRequired[name] = struct{}{}
			class[name] = true
			continue
		}
		if _, ok := explicitRequired[name]; !ok {
			class[name] = false
		}
	}

	required = make([]string, 0)
	optional = make([]string, 0)
	for name, isReq := range class {
		if isReq {
			required = append(required, name)
		} else {
			optional = append(optional, name)
		}
	}
	sort.Strings(required)
	sort.Strings(optional)
	return required, optional
}
