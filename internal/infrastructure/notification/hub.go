package notification

import (
	"context"
	"time"

	"emploiplus/internal/domain/job"
	"emploiplus/internal/ws"

	"go.uber.org/zap"
)

type hubPublisher interface {
	SendTo(userID string, message []byte) bool
	Broadcast(message []byte) bool
}

// HubSender pushes offers to connected WebSocket clients. A candidate with no
// open connection counts as failed.
type HubSender struct {
	hub    hubPublisher
	now    func() time.Time
	logger *zap.Logger
}

func NewHubSender(hub hubPublisher, logger *zap.Logger) *HubSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HubSender{hub: hub, now: time.Now, logger: logger}
}

func (s *HubSender) NotifyJobOffers(_ context.Context, j job.Job, candidateIDs []string) (SendResult, error) {
	var res SendResult
	at := s.now()

	targeted, err := ws.NewJobOfferEvent(ws.EventJobOfferTarget, "", j.ID, j.Title, j.Location, j.Type, at).Marshal()
	if err != nil {
		return SendResult{FailedCount: len(candidateIDs)}, err
	}
	for _, id := range candidateIDs {
		if s.hub.SendTo(id, targeted) {
			res.SentCount++
		} else {
			res.FailedCount++
		}
	}

	broadcast, err := ws.NewJobOfferEvent(ws.EventJobOffer, "job_offers", j.ID, j.Title, j.Location, j.Type, at).Marshal()
	if err == nil && !s.hub.Broadcast(broadcast) {
		s.logger.Warn("WS notify dropped", zap.String("job_id", j.ID))
	}

	return res, nil
}
