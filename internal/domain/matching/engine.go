// Package matching scores how well a candidate fits a job posting.
package matching

import (
	"math"
	"sort"
	"strings"

	"emploiplus/internal/domain/skill"
)

type Input struct {
	UserSkills      []string
	ExperienceYears int
	UserLocation    string

	RequiredSkills []string
	OptionalSkills []string
	JobDescription string
	JobLocation    string
}

type Breakdown struct {
	HardSkillsScore       int      `json:"hardSkillsScore"`
	ExperienceScore       int      `json:"experienceScore"`
	LocationScore         int      `json:"locationScore"`
	MissingRequiredSkills []string `json:"missingRequiredSkills"`
	MatchedSkills         []string `json:"matchedSkills"`
}

type Result struct {
	Score     int       `json:"score"`
	Color     Color     `json:"color"`
	Breakdown Breakdown `json:"breakdown"`
}

// Evaluate computes the weighted score of in under p.
func Evaluate(in Input, p Policy) Result {
	required, optional := splitTracked(in.RequiredSkills, in.OptionalSkills)

	matched := make([]string, 0)
	missingRequired := make([]string, 0)
	for _, s := range required {
		if skill.HasSkill(in.UserSkills, s) {
			matched = append(matched, s)
		} else {
			missingRequired = append(missingRequired, s)
		}
	}
	for _, s := range optional {
		if skill.HasSkill(in.UserSkills, s) {
			matched = append(matched, s)
		}
	}
	sort.Strings(matched)
	sort.Strings(missingRequired)

	hard := 0.0
	if total := len(required) + len(optional); total > 0 {
		hard = float64(len(matched)) / float64(total) * 100
	}
	hard -= p.MissingRequiredPenalty * float64(len(missingRequired))
	if hard < 0 {
		hard = 0
	}

	exp := p.tierFor(in.JobDescription).Score(in.ExperienceYears)
	loc := LocationScore(in.UserLocation, in.JobLocation)

	total := hard*p.SkillsWeight + exp*p.ExperienceWeight + loc*p.LocationWeight
	score := clampInt(int(math.Round(total)), 0, 100)

	return Result{
		Score: score,
		Color: p.ColorFor(score),
		Breakdown: Breakdown{
			HardSkillsScore:       int(math.Round(hard)),
			ExperienceScore:       int(math.Round(exp)),
			LocationScore:         int(math.Round(loc)),
			MissingRequiredSkills: missingRequired,
			MatchedSkills:         matched,
		},
	}
}

func (p Policy) tierFor(description string) ExperienceTier {
	d := strings.ToLower(description)
	switch {
	case strings.Contains(d, "senior"):
		return p.Senior
	case strings.Contains(d, "junior"):
		return p.Junior
	default:
		return p.Mid
	}
}

var remoteMarkers = []string{"remote", "télétravail", "teletravail", "à distance"}

// LocationScore is 100 when the job can be done from where the candidate is:
// no job location, a remote job, or one location containing the other.
func LocationScore(userLocation, jobLocation string) float64 {
	job := strings.ToLower(strings.TrimSpace(jobLocation))
	if job == "" {
		return 100
	}
	for _, m := range remoteMarkers {
		if strings.Contains(job, m) {
			return 100
		}
	}
	user := strings.ToLower(strings.TrimSpace(userLocation))
	if user == "" {
		return 0
	}
	if strings.Contains(job, user) || strings.Contains(user, job) {
		return 100
	}
	return 0
}

// splitTracked normalises both lists into disjoint sorted sets; a skill listed
// as required is never also optional.
func splitTracked(required, optional []string) ([]string, []string) {
	req := skill.Dedupe(required)
	reqSet := make(map[string]struct{}, len(req))
	for _, s := range req {
		reqSet[s] = struct{}{}
	}

	opt := make([]string, 0, len(optional))
	for _, s := range skill.Dedupe(optional) {
		if _, ok := reqSet[s]; ok {
			continue
		}
		opt = append(opt, s)
	}

	sort.Strings(req)
	sort.Strings(opt)
	return req, opt
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
