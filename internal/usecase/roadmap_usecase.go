package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"emploiplus/internal/domain/roadmap"
	"emploiplus/internal/domain/skill"
	"emploiplus/internal/repository"

	"go.uber.org/zap"
)

type RoadmapUsecase interface {
	GenerateCareerRoadmap(ctx context.Context, userID, targetJobID string) (roadmap.CareerRoadmap, error)
}

type Roadmap struct {
	profiles   repository.ProfileRepository
	jobs       repository.JobRepository
	reqs       repository.JobRequirementRepository
	formations repository.FormationRepository
	now        func() time.Time
	logger     *zap.Logger
}

func NewRoadmapUsecase(
	profiles repository.ProfileRepository,
	jobs repository.JobRepository,
	reqs repository.JobRequirementRepository,
	formations repository.FormationRepository,
	logger *zap.Logger,
) *Roadmap {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roadmap{
		profiles:   profiles,
		jobs:       jobs,
		reqs:       reqs,
		formations: formations,
		now:        time.Now,
		logger:     logger,
	}
}

func (u *Roadmap) GenerateCareerRoadmap(ctx context.Context, userID, targetJobID string) (roadmap.CareerRoadmap, error) {
	userID = strings.TrimSpace(userID)
	targetJobID = strings.TrimSpace(targetJobID)
	if userID == "" || targetJobID == "" {
		return roadmap.CareerRoadmap{}, ErrInvalidInput
	}

	profile, err := loadProfile(ctx, u.profiles, userID)
	if err != nil {
		return roadmap.CareerRoadmap{}, err
	}
	j, err := loadJob(ctx, u.jobs, targetJobID)
	if err != nil {
		return roadmap.CareerRoadmap{}, err
	}

	required := skill.Extract(j.Text())
	for _, r := range loadRequirements(ctx, u.reqs, targetJobID, u.logger) {
		if r.IsRequired {
			required = append(required, r.Skill)
		}
	}
	required = skill.Dedupe(required)
	sort.Strings(required)

	acquired, missing := roadmap.Partition(profile.Skills, required)

	steps := make([]roadmap.Step, 0, len(missing))
	for i, s := range missing {
		steps = append(steps, roadmap.Step{
			Order:       i + 1,
			Skill:       s,
			Suggestions: u.suggest(ctx, s),
		})
	}

	return roadmap.CareerRoadmap{
		TargetJobID:          targetJobID,
		TargetJobTitle:       j.Title,
		AcquiredSkills:       acquired,
		MissingSkills:        steps,
		CompletionPercentage: roadmap.Completion(len(acquired), len(required)),
		GeneratedAt:          u.now().UTC(),
	}, nil
}

func (u *Roadmap) suggest(ctx context.Context, s string) []roadmap.Formation {
	if u.formations == nil {
		return []roadmap.Formation{}
	}
	found, err := u.formations.SearchPublished(ctx, s, roadmap.MaxSuggestions)
	if err != nil {
		u.logger.Warn("Formation lookup failed", zap.String("skill", s), zap.Error(err))
		return []roadmap.Formation{}
	}
	if len(found) > roadmap.MaxSuggestions {
		found = found[:roadmap.MaxSuggestions]
	}
	if found == nil {
		found = []roadmap.Formation{}
	}
	return found
}
