package integration

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"emploiplus/internal/delivery/http/handler"
	"emploiplus/internal/delivery/http/middleware"
	"emploiplus/internal/domain/job"
	"emploiplus/internal/repository"
	"emploiplus/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func TestIntegration_MigrateIsRepeatable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool := connectTestDB(t, ctx)
	runMigrations(t, ctx, pool)
	runMigrations(t, ctx, pool)

	var n int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM schema_migrations WHERE version = 1`).Scan(&n); err != nil {
		t.Fatalf("read schema_migrations: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected V1 recorded once, got %d", n)
	}
}

func TestIntegration_ProfileAndMatchScore(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool := connectTestDB(t, ctx)
	runMigrations(t, ctx, pool)

	userID, jobID := newID("user"), newID("job")
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, userID)
		_, _ = pool.Exec(context.Background(), `DELETE FROM jobs WHERE id = $1`, jobID)
	})

	// Legacy row: only years_experience is set.
	mustExec(t, ctx, pool,
		`INSERT INTO users (id, email, role, skills, years_experience, location)
		 VALUES ($1, $2, 'candidate', $3::jsonb, 1, 'Brazzaville')`,
		userID, userID+"@example.test", `["Go", "Docker"]`)
	mustExec(t, ctx, pool,
		`INSERT INTO jobs (id, title, description, location) VALUES ($1, 'Backend developer', 'Go and Docker services', 'Brazzaville')`,
		jobID)

	profiles := repository.NewPostgresProfileRepository(pool)
	p, err := profiles.FindProfile(ctx, userID)
	if err != nil {
		t.Fatalf("find profile: %v", err)
	}
	if p.ExperienceYears != 1 {
		t.Fatalf("expected years_experience fallback 1, got %d", p.ExperienceYears)
	}
	if !reflect.DeepEqual(p.Skills, []string{"go", "docker"}) {
		t.Fatalf("unexpected skills decoded from jsonb: %v", p.Skills)
	}

	uc := usecase.NewMatchingUsecase(
		profiles,
		repository.NewPostgresJobRepository(pool),
		repository.NewPostgresJobRequirementRepository(pool),
		nil, nil,
	)
	res, err := uc.CalculateMatchScore(ctx, userID, jobID)
	if err != nil {
		t.Fatalf("match score: %v", err)
	}
	// mid tier: 1 of 2 years -> 50
	if res.Breakdown.ExperienceScore != 50 {
		t.Fatalf("expected experience 50, got %d", res.Breakdown.ExperienceScore)
	}
	if res.Breakdown.HardSkillsScore != 100 || res.Score != 85 {
		t.Fatalf("unexpected score %+v", res)
	}
}

func TestIntegration_UnknownIDsAreNotFound(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool := connectTestDB(t, ctx)
	runMigrations(t, ctx, pool)

	userID := newID("user")
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, userID)
	})
	mustExec(t, ctx, pool, `INSERT INTO users (id, email) VALUES ($1, $2)`, userID, userID+"@example.test")

	profiles := repository.NewPostgresProfileRepository(pool)
	jobs := repository.NewPostgresJobRepository(pool)

	if _, err := profiles.FindProfile(ctx, newID("missing")); !errors.Is(err, repository.ErrUserNotFound) {
		t.Fatalf("FindProfile: expected ErrUserNotFound, got %v", err)
	}
	if _, err := jobs.FindByID(ctx, newID("missing")); !errors.Is(err, repository.ErrJobNotFound) {
		t.Fatalf("FindByID: expected ErrJobNotFound, got %v", err)
	}

	uc := usecase.NewMatchingUsecase(profiles, jobs, repository.NewPostgresJobRequirementRepository(pool), nil, nil)
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	handler.NewMatchHandler(uc).RegisterRoutes(app.Group("/api"))

	cases := []struct {
		path    string
		message string
	}{
		{"/api/users/" + newID("missing") + "/jobs/" + newID("missing") + "/match", "User not found"},
		{"/api/users/" + userID + "/jobs/" + newID("missing") + "/match", "Job not found"},
	}
	for _, tc := range cases {
		status, body := doGet(t, app, tc.path)
		if status != fiber.StatusNotFound || body.Status != fiber.StatusNotFound || body.Message != tc.message {
			t.Fatalf("%s: got %d %+v", tc.path, status, body)
		}
	}
}

func TestIntegration_WebhookLogRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool := connectTestDB(t, ctx)
	runMigrations(t, ctx, pool)

	logID, jobID := newID("log"), newID("job")
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM webhook_logs WHERE id = $1`, logID)
	})

	payload := json.RawMessage(`{"type":"INSERT","record":{"id":"` + jobID + `","title":"Dev"}}`)
	err := repository.NewPostgresWebhookLogRepository(pool).Insert(ctx, repository.WebhookLog{
		ID:           logID,
		EventType:    string(job.EventInsert),
		JobID:        jobID,
		Payload:      payload,
		MatchedCount: 3,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	var eventType, gotJob, rawPayload string
	var matched int
	err = pool.QueryRow(ctx,
		`SELECT event_type, job_id, payload::text, matched_count FROM webhook_logs WHERE id = $1`, logID,
	).Scan(&eventType, &gotJob, &rawPayload, &matched)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if eventType != "INSERT" || gotJob != jobID || matched != 3 {
		t.Fatalf("unexpected row %s %s %d", eventType, gotJob, matched)
	}

	// jsonb normalises whitespace, so compare decoded values.
	var want, got map[string]any
	_ = json.Unmarshal(payload, &want)
	if err := json.Unmarshal([]byte(rawPayload), &got); err != nil {
		t.Fatalf("decode stored payload %q: %v", rawPayload, err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("payload changed: want %v, got %v", want, got)
	}
}
