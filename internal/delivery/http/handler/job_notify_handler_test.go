package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"emploiplus/internal/domain/job"
	"emploiplus/internal/domain/user"
	"emploiplus/internal/infrastructure/notification"
	"emploiplus/internal/usecase"
	"emploiplus/internal/worker"

	"github.com/gofiber/fiber/v3"
)

type stubCandidates struct {
	list  []user.Profile
	err   error
	calls atomic.Int32
}

func (s *stubCandidates) FindProfile(context.Context, string) (user.Profile, error) {
	return user.Profile{}, errors.New("not used")
}

func (s *stubCandidates) ListActiveCandidates(context.Context) ([]user.Profile, error) {
	s.calls.Add(1)
	return s.list, s.err
}

// blockingSender holds every send until release is closed.
type blockingSender struct {
	release chan struct{}
	done    chan []string
}

func (s *blockingSender) NotifyJobOffers(ctx context.Context, _ job.Job, ids []string) (notification.SendResult, error) {
	select {
	case <-s.release:
	case <-ctx.Done():
		return notification.SendResult{}, ctx.Err()
	}
	s.done <- ids
	return notification.SendResult{SentCount: len(ids)}, nil
}

func newNotifyApp(t *testing.T, candidates *stubCandidates, sender notification.Sender, secret string) (*fiber.App, *worker.Pool) {
	t.Helper()
	pool := worker.NewPool(worker.Options{Workers: 1, QueueSize: 4, TaskTimeout: 5 * time.Second})
	pool.Start()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = pool.Close(ctx)
	})

	uc := usecase.NewJobNotifyUsecase(candidates, nil, sender, nil, pool, nil)
	app := fiber.New()
	NewJobNotifyHandler(uc, secret, nil).RegisterRoutes(app.Group("/api"))
	return app, pool
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string, headers map[string]string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("decode %q: %v", raw, err)
		}
	}
	return resp.StatusCode, out
}

func TestJobNotify_UpdateIsAcknowledgedWithoutMatching(t *testing.T) {
	cands := &stubCandidates{}
	app, _ := newNotifyApp(t, cands, notification.NopSender{}, "")

	status, body := doJSON(t, app, "POST", "/api/jobs/notify", `{"type":"UPDATE","record":{"id":"j1","title":"Dev"}}`, nil)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["success"] != true || body["message"] != "Event acknowledged" || body["type"] != "UPDATE" {
		t.Fatalf("unexpected body %v", body)
	}
	if cands.calls.Load() != 0 {
		t.Fatalf("expected no candidate query, got %d", cands.calls.Load())
	}
}

func TestJobNotify_InsertRespondsBeforeSendCompletes(t *testing.T) {
	cands := &stubCandidates{list: []user.Profile{
		{ID: "c1", Skills: []string{"react"}, ExperienceYears: 2},
		{ID: "c2", Skills: []string{"excel"}, Location: "Lyon"},
	}}
	sender := &blockingSender{release: make(chan struct{}), done: make(chan []string, 1)}
	app, _ := newNotifyApp(t, cands, sender, "")

	status, body := doJSON(t, app, "POST", "/api/jobs/notify",
		`{"type":"INSERT","record":{"id":"j1","title":"Dev","required_skills":["React"]}}`, nil)
	if status != fiber.StatusAccepted {
		t.Fatalf("expected 202, got %d (%v)", status, body)
	}
	n, ok := body["matchingCandidates"].(float64)
	if !ok {
		t.Fatalf("expected numeric matchingCandidates, got %v", body["matchingCandidates"])
	}
	if n != 1 || body["jobId"] != "j1" || body["status"] != "processing" || body["success"] != true {
		t.Fatalf("unexpected body %v", body)
	}

	select {
	case <-sender.done:
		t.Fatalf("send completed before release")
	default:
	}

	close(sender.release)
	select {
	case ids := <-sender.done:
		if len(ids) != 1 || ids[0] != "c1" {
			t.Fatalf("unexpected notified ids %v", ids)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("notification never dispatched")
	}
}

func TestJobNotify_NumericRecordID(t *testing.T) {
	app, _ := newNotifyApp(t, &stubCandidates{}, notification.NopSender{}, "")

	status, body := doJSON(t, app, "POST", "/api/jobs/notify", `{"type":"INSERT","record":{"id":123,"title":"Dev"}}`, nil)
	if status != fiber.StatusAccepted || body["jobId"] != "123" || body["matchingCandidates"] != float64(0) {
		t.Fatalf("unexpected response %d %v", status, body)
	}
}

func TestJobNotify_MissingRecord(t *testing.T) {
	app, _ := newNotifyApp(t, &stubCandidates{}, notification.NopSender{}, "")

	status, body := doJSON(t, app, "POST", "/api/jobs/notify", `{"type":"INSERT"}`, nil)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if body["success"] != false || body["error"] != "Missing record in webhook payload" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestJobNotify_MalformedJSON(t *testing.T) {
	app, _ := newNotifyApp(t, &stubCandidates{}, notification.NopSender{}, "")

	status, body := doJSON(t, app, "POST", "/api/jobs/notify", `{"type":`, nil)
	if status != fiber.StatusBadRequest || body["error"] != "Invalid webhook payload" {
		t.Fatalf("unexpected response %d %v", status, body)
	}
}

func TestJobNotify_CandidateQueryFailureIs500(t *testing.T) {
	app, _ := newNotifyApp(t, &stubCandidates{err: errors.New("db down")}, notification.NopSender{}, "")

	status, body := doJSON(t, app, "POST", "/api/jobs/notify", `{"type":"INSERT","record":{"id":"j1","title":"Dev"}}`, nil)
	if status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if body["success"] != false || body["error"] != "Internal server error" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestJobNotify_SecretRequired(t *testing.T) {
	app, _ := newNotifyApp(t, &stubCandidates{}, notification.NopSender{}, "s3cret")
	payload := `{"type":"UPDATE","record":{"id":"j1"}}`

	if status, _ := doJSON(t, app, "POST", "/api/jobs/notify", payload, nil); status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	status, _ := doJSON(t, app, "POST", "/api/jobs/notify", payload, map[string]string{"X-Webhook-Secret": "s3cret"})
	if status != fiber.StatusOK {
		t.Fatalf("expected 200 with secret, got %d", status)
	}
}

func TestJobNotify_Status(t *testing.T) {
	app, _ := newNotifyApp(t, &stubCandidates{}, notification.NopSender{}, "")

	status, body := doJSON(t, app, "GET", "/api/jobs/notify/status", "", nil)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["service"] != "job-notification-webhook" || body["status"] != "active" || body["success"] != true {
		t.Fatalf("unexpected body %v", body)
	}
	if _, err := time.Parse(time.RFC3339, body["timestamp"].(string)); err != nil {
		t.Fatalf("bad timestamp: %v", err)
	}
}

type countingSender struct{}

func (countingSender) NotifyJobOffers(_ context.Context, _ job.Job, ids []string) (notification.SendResult, error) {
	return notification.SendResult{SentCount: len(ids)}, nil
}

func TestJobNotify_TestEndpointRunsSynchronously(t *testing.T) {
	cands := &stubCandidates{list: []user.Profile{
		{ID: "c1", Skills: []string{"react", "node.js", "javascript"}, ExperienceYears: 3, Location: "Brazzaville"},
	}}
	app, _ := newNotifyApp(t, cands, countingSender{}, "")

	status, body := doJSON(t, app, "POST", "/api/jobs/notify/test", "", nil)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", status, body)
	}
	if body["matchingCandidates"] != float64(1) {
		t.Fatalf("unexpected body %v", body)
	}
	notif, ok := body["notification"].(map[string]any)
	if !ok || notif["sentCount"] != float64(1) || notif["failedCount"] != float64(0) {
		t.Fatalf("unexpected notification %v", body["notification"])
	}
	if !strings.HasPrefix(body["jobId"].(string), "test-") {
		t.Fatalf("unexpected jobId %v", body["jobId"])
	}
}
