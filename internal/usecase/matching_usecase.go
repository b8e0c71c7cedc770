package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"emploiplus/internal/domain/job"
	"emploiplus/internal/domain/matching"
	"emploiplus/internal/domain/skill"
	"emploiplus/internal/domain/user"
	"emploiplus/internal/repository"

	"go.uber.org/zap"
)

type MatchingUsecase interface {
	CalculateMatchScore(ctx context.Context, userID, jobID string) (matching.MatchScore, error)
	ClearMatchingCacheForUser(ctx context.Context, userID string) (int, error)
	ExtractSkills(text string) []string
}

type Matching struct {
	profiles repository.ProfileRepository
	jobs     repository.JobRepository
	reqs     repository.JobRequirementRepository
	cache    MatchCache
	policy   matching.Policy
	logger   *zap.Logger
}

func NewMatchingUsecase(
	profiles repository.ProfileRepository,
	jobs repository.JobRepository,
	reqs repository.JobRequirementRepository,
	cache MatchCache,
	logger *zap.Logger,
) *Matching {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matching{
		profiles: profiles,
		jobs:     jobs,
		reqs:     reqs,
		cache:    cache,
		policy:   matching.MatchPolicy(),
		logger:   logger,
	}
}

// CalculateMatchScore returns the cached score for (userID, jobID) when one
// is still fresh, otherwise computes and caches it.
func (u *Matching) CalculateMatchScore(ctx context.Context, userID, jobID string) (matching.MatchScore, error) {
	userID = strings.TrimSpace(userID)
	jobID = strings.TrimSpace(jobID)
	if userID == "" || jobID == "" {
		return matching.MatchScore{}, ErrInvalidInput
	}

	if u.cache != nil {
		if cached, ok := u.cache.Get(ctx, userID, jobID); ok {
			return cached, nil
		}
	}

	profile, err := loadProfile(ctx, u.profiles, userID)
	if err != nil {
		return matching.MatchScore{}, err
	}
	j, err := loadJob(ctx, u.jobs, jobID)
	if err != nil {
		return matching.MatchScore{}, err
	}

	reqs := loadRequirements(ctx, u.reqs, jobID, u.logger)
	required, optional := matching.Classify(skill.Extract(j.Text()), reqs)

	result := matching.Evaluate(matching.Input{
		UserSkills:      profile.Skills,
		ExperienceYears: profile.ExperienceYears,
		UserLocation:    profile.Location,
		RequiredSkills:  required,
		OptionalSkills:  optional,
		JobDescription:  j.Description,
		JobLocation:     j.Location,
	}, u.policy)

	score := matching.NewMatchScore(userID, jobID, result)
	if u.cache != nil {
		u.cache.Set(ctx, score)
	}

	u.logger.Debug("Match computed",
		zap.String("user_id", userID),
		zap.String("job_id", jobID),
		zap.Int("score", score.Score),
	)
	return score, nil
}

func (u *Matching) ClearMatchingCacheForUser(ctx context.Context, userID string) (int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, ErrInvalidInput
	}
	if u.cache == nil {
		return 0, nil
	}
	n, err := u.cache.InvalidateUser(ctx, userID)
	if err != nil {
		return n, fmt.Errorf("%w: clear match cache: %v", ErrInternal, err)
	}
	u.logger.Info("Match cache cleared", zap.String("user_id", userID), zap.Int("cleared", n))
	return n, nil
}

func (u *Matching) ExtractSkills(text string) []string {
	return skill.Extract(text)
}

func loadProfile(ctx context.Context, repo repository.ProfileRepository, userID string) (user.Profile, error) {
	p, err := repo.FindProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return user.Profile{}, ErrUserNotFound
		}
		return user.Profile{}, fmt.Errorf("%w: load user: %v", ErrInternal, err)
	}
	return p, nil
}

func loadJob(ctx context.Context, repo repository.JobRepository, jobID string) (job.Job, error) {
	j, err := repo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, fmt.Errorf("%w: load job: %v", ErrInternal, err)
	}
	return j, nil
}

// loadRequirements treats a failed lookup as "no explicit requirements".
func loadRequirements(ctx context.Context, repo repository.JobRequirementRepository, jobID string, logger *zap.Logger) []matching.Requirement {
	if repo == nil {
		return nil
	}
	reqs, err := repo.FindByJobID(ctx, jobID)
	if err != nil {
		logger.Warn("Job requirements lookup failed", zap.String("job_id", jobID), zap.Error(err))
		return nil
	}
	return reqs
}
