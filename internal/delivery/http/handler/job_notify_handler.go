package handler

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"emploiplus/internal/delivery/http/dto"
	"emploiplus/internal/delivery/http/response"
	"emploiplus/internal/domain/job"
	"emploiplus/internal/pkg/logger"
	"emploiplus/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

const notifyServiceName = "job-notification-webhook"

type JobNotifyHandler struct {
	uc     usecase.JobNotifyUsecase
	secret string
	now    func() time.Time
	logger *zap.Logger
}

func NewJobNotifyHandler(uc usecase.JobNotifyUsecase, secret string, l *zap.Logger) *JobNotifyHandler {
	return &JobNotifyHandler{uc: uc, secret: secret, now: time.Now, logger: logger.OrNop(l)}
}

func (h *JobNotifyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/jobs/notify", h.Notify)
	r.Get("/jobs/notify/status", h.Status)
	r.Post("/jobs/notify/test", h.Test)
}

func (h *JobNotifyHandler) authorized(c fiber.Ctx) bool {
	if h.secret == "" {
		return true
	}
	got := strings.TrimSpace(c.Get("X-Webhook-Secret"))
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) == 1
}

func (h *JobNotifyHandler) Notify(c fiber.Ctx) error {
	if !h.authorized(c) {
		return response.Fail(c, fiber.StatusUnauthorized, response.ErrUnauthorized)
	}

	// fasthttp reuses the body buffer once the handler returns.
	raw := append([]byte(nil), c.Body()...)

	var payload job.WebhookPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.logger.Warn("Webhook error", zap.Error(err))
		return response.Fail(c, fiber.StatusBadRequest, response.ErrInvalidPayload)
	}

	out, err := h.uc.HandleEvent(c.Context(), payload, raw)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingRecord):
			return response.Fail(c, fiber.StatusBadRequest, response.ErrMissingRecord)
		case errors.Is(err, usecase.ErrInvalidInput):
			return response.Fail(c, fiber.StatusBadRequest, response.ErrInvalidPayload)
		default:
			h.logger.Error("Webhook error", zap.Error(err))
			return response.Fail(c, fiber.StatusInternalServerError, response.ErrInternal)
		}
	}

	switch out.Status {
	case usecase.NotifyAcknowledged:
		return response.OK(c, fiber.StatusOK, dto.NotifyAckResponse{
			Success: true,
			Message: "Event acknowledged",
			Type:    string(out.Type),
		})
	case usecase.NotifyDuplicate:
		return response.OK(c, fiber.StatusOK, dto.NotifyDuplicateResponse{
			Success: true,
			Status:  string(usecase.NotifyDuplicate),
			JobID:   out.JobID,
		})
	default:
		return response.OK(c, fiber.StatusAccepted, dto.NotifyProcessingResponse{
			Success:            true,
			JobID:              out.JobID,
			MatchingCandidates: out.MatchingCandidates,
			Status:             string(usecase.NotifyProcessing),
		})
	}
}

func (h *JobNotifyHandler) Status(c fiber.Ctx) error {
	return response.OK(c, fiber.StatusOK, dto.NotifyStatusResponse{
		Success:   true,
		Service:   notifyServiceName,
		Status:    "active",
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}

func (h *JobNotifyHandler) Test(c fiber.Ctx) error {
	if !h.authorized(c) {
		return response.Fail(c, fiber.StatusUnauthorized, response.ErrUnauthorized)
	}

	out, err := h.uc.RunTest(c.Context())
	if err != nil {
		h.logger.Error("Webhook test error", zap.Error(err))
		return response.Fail(c, fiber.StatusInternalServerError, response.ErrInternal)
	}

	ids := out.CandidateIDs
	if ids == nil {
		ids = []string{}
	}
	return response.OK(c, fiber.StatusOK, dto.NotifyTestResponse{
		Success:            true,
		JobID:              out.JobID,
		MatchingCandidates: out.MatchingCandidates,
		CandidateIDs:       ids,
		Notification:       out.Notification,
	})
}
