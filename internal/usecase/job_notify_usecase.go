package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"emploiplus/internal/domain/job"
	"emploiplus/internal/domain/matching"
	"emploiplus/internal/domain/skill"
	"emploiplus/internal/domain/user"
	"emploiplus/internal/infrastructure/notification"
	"emploiplus/internal/repository"

	"go.uber.org/zap"
)

type NotifyStatus string

const (
	NotifyAcknowledged NotifyStatus = "acknowledged"
	NotifyProcessing   NotifyStatus = "processing"
	NotifyDuplicate    NotifyStatus = "duplicate"
)

type NotifyOutcome struct {
	Status             NotifyStatus
	Type               job.EventType
	JobID              string
	MatchingCandidates int
	CandidateIDs       []string
}

type TestOutcome struct {
	JobID              string
	MatchingCandidates int
	CandidateIDs       []string
	Notification       notification.SendResult
}

type JobNotifyUsecase interface {
	HandleEvent(ctx context.Context, payload job.WebhookPayload, raw []byte) (NotifyOutcome, error)
	RunTest(ctx context.Context) (TestOutcome, error)
}

type JobNotify struct {
	profiles repository.ProfileRepository
	logs     repository.WebhookLogRepository
	sender   notification.Sender
	dedup    EventDeduper
	runner   TaskRunner
	policy   matching.Policy
	logger   *zap.Logger
}

func NewJobNotifyUsecase(
	profiles repository.ProfileRepository,
	logs repository.WebhookLogRepository,
	sender notification.Sender,
	dedup EventDeduper,
	runner TaskRunner,
	logger *zap.Logger,
) *JobNotify {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sender == nil {
		sender = notification.NopSender{}
	}
	return &JobNotify{
		profiles: profiles,
		logs:     logs,
		sender:   sender,
		dedup:    dedup,
		runner:   runner,
		policy:   matching.NotifyPolicy(),
		logger:   logger,
	}
}

// IdempotencyKey identifies one delivery of a job row change.
func IdempotencyKey(jobID string, t job.EventType) string {
	return "job_notify:" + jobID + ":" + string(t)
}

// HandleEvent matches candidates for an inserted job synchronously and hands
// notification and archiving to the task runner. Other event types are
// acknowledged without side effects.
func (u *JobNotify) HandleEvent(ctx context.Context, payload job.WebhookPayload, raw []byte) (NotifyOutcome, error) {
	if payload.Record == nil {
		return NotifyOutcome{}, ErrMissingRecord
	}
	eventType := job.EventType(strings.ToUpper(strings.TrimSpace(string(payload.Type))))
	if eventType != job.EventInsert {
		u.logger.Info("Webhook acknowledged", zap.String("type", string(payload.Type)))
		return NotifyOutcome{Status: NotifyAcknowledged, Type: payload.Type}, nil
	}

	j := payload.Record.Job()
	if j.ID == "" {
		return NotifyOutcome{}, fmt.Errorf("%w: record id", ErrInvalidInput)
	}

	key := IdempotencyKey(j.ID, eventType)
	claimed := false
	if u.dedup != nil {
		first, err := u.dedup.Claim(ctx, key)
		if err != nil {
			u.logger.Warn("Webhook dedup unavailable", zap.String("job_id", j.ID), zap.Error(err))
		}
		if !first && err == nil {
			u.logger.Info("Webhook duplicate", zap.String("job_id", j.ID))
			return NotifyOutcome{Status: NotifyDuplicate, Type: eventType, JobID: j.ID}, nil
		}
		claimed = first && err == nil
	}

	ids, err := u.matchCandidates(ctx, *payload.Record)
	if err != nil {
		if claimed {
			if rerr := u.dedup.Release(ctx, key); rerr != nil {
				u.logger.Warn("Webhook dedup release failed", zap.String("job_id", j.ID), zap.Error(rerr))
			}
		}
		return NotifyOutcome{}, err
	}

	u.logger.Info("Webhook matched",
		zap.String("job_id", j.ID),
		zap.Int("matched", len(ids)),
	)

	u.submit("notify:"+j.ID, func(ctx context.Context) error {
		res, err := u.sender.NotifyJobOffers(ctx, j, ids)
		u.logger.Info("Job offers sent",
			zap.String("job_id", j.ID),
			zap.Int("sent", res.SentCount),
			zap.Int("failed", res.FailedCount),
		)
		return err
	})

	if u.logs != nil {
		archived := archivePayload(raw, payload)
		u.submit("archive:"+j.ID, func(ctx context.Context) error {
			return u.logs.Insert(ctx, repository.WebhookLog{
				EventType:    string(eventType),
				JobID:        j.ID,
				Payload:      archived,
				MatchedCount: len(ids),
			})
		})
	}

	return NotifyOutcome{
		Status:             NotifyProcessing,
		Type:               eventType,
		JobID:              j.ID,
		MatchingCandidates: len(ids),
		CandidateIDs:       ids,
	}, nil
}

// SampleRecord is the fixed job used by RunTest.
func SampleRecord() job.Record {
	return job.Record{
		ID:             job.ID(fmt.Sprintf("test-%d", time.Now().UnixNano())),
		Title:          "Développeur Full Stack React/Node.js",
		Description:    "Nous recherchons un développeur JavaScript avec React, Node.js et PostgreSQL. Travail d'équipe et communication.",
		Type:           "CDI",
		Location:       "Brazzaville",
		RequiredSkills: []string{"React", "Node.js", "JavaScript"},
	}
}

// RunTest runs the INSERT path on a sample job and waits for the dispatch.
// Nothing is archived and no idempotency key is claimed.
func (u *JobNotify) RunTest(ctx context.Context) (TestOutcome, error) {
	rec := SampleRecord()
	ids, err := u.matchCandidates(ctx, rec)
	if err != nil {
		return TestOutcome{}, err
	}

	res, err := u.sender.NotifyJobOffers(ctx, rec.Job(), ids)
	if err != nil {
		u.logger.Warn("Test notification failed", zap.String("job_id", string(rec.ID)), zap.Error(err))
	}

	return TestOutcome{
		JobID:              string(rec.ID),
		MatchingCandidates: len(ids),
		CandidateIDs:       ids,
		Notification:       res,
	}, nil
}

func (u *JobNotify) matchCandidates(ctx context.Context, rec job.Record) ([]string, error) {
	candidates, err := u.profiles.ListActiveCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list candidates: %v", ErrInternal, err)
	}

	j := rec.Job()
	required, optional := notifySkills(rec, j)

	ids := make([]string, 0)
	for _, c := range candidates {
		if u.qualifies(c, j, required, optional) {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

// notifySkills picks the skills a candidate is scored against. Explicit
// required skills are used alone; keywords found in the posting only count
// when the record names none.
func notifySkills(rec job.Record, j job.Job) (required, optional []string) {
	if required = skill.Dedupe(rec.RequiredSkills); len(required) > 0 {
		return required, nil
	}
	return nil, skill.Extract(j.Text())
}

func (u *JobNotify) qualifies(c user.Profile, j job.Job, required, optional []string) bool {
	r := matching.Evaluate(matching.Input{
		UserSkills:      c.Skills,
		ExperienceYears: c.ExperienceYears,
		UserLocation:    c.Location,
		RequiredSkills:  required,
		OptionalSkills:  optional,
		JobDescription:  j.Text(),
		JobLocation:     j.Location,
	}, u.policy)
	return u.policy.Qualifies(r.Score)
}

func (u *JobNotify) submit(name string, t func(ctx context.Context) error) {
	if u.runner == nil {
		u.logger.Warn("Background task dropped", zap.String("task", name), zap.String("reason", "no_runner"))
		return
	}
	if err := u.runner.Submit(name, t); err != nil {
		u.logger.Warn("Background task dropped", zap.String("task", name), zap.Error(err))
	}
}

func archivePayload(raw []byte, payload job.WebhookPayload) json.RawMessage {
	if json.Valid(raw) {
		return json.RawMessage(raw)
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return b
}
