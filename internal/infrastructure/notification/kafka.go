package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"emploiplus/internal/config"
	"emploiplus/internal/domain/job"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Offer is the message body published for each candidate and for the
// broadcast topic (CandidateID empty).
type Offer struct {
	Type        string `json:"type"`
	JobID       string `json:"jobId"`
	Title       string `json:"title"`
	Location    string `json:"location,omitempty"`
	JobType     string `json:"jobType,omitempty"`
	CandidateID string `json:"candidateId,omitempty"`
	Matched     int    `json:"matched,omitempty"`
	Timestamp   string `json:"timestamp"`
}

type KafkaSender struct {
	writer             messageWriter
	notificationsTopic string
	broadcastTopic     string
	now                func() time.Time
	logger             *zap.Logger
}

func NewKafkaSender(cfg config.KafkaConfig, logger *zap.Logger) (*KafkaSender, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
	return newKafkaSender(w, cfg, logger), nil
}

func newKafkaSender(w messageWriter, cfg config.KafkaConfig, logger *zap.Logger) *KafkaSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaSender{
		writer:             w,
		notificationsTopic: cfg.NotificationsTopic,
		broadcastTopic:     cfg.BroadcastTopic,
		now:                time.Now,
		logger:             logger,
	}
}

func (s *KafkaSender) NotifyJobOffers(ctx context.Context, j job.Job, candidateIDs []string) (SendResult, error) {
	ts := s.now().UTC().Format(time.RFC3339)

	msgs := make([]kafka.Message, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		body, err := json.Marshal(Offer{
			Type:        "job_offer",
			JobID:       j.ID,
			Title:       j.Title,
			Location:    j.Location,
			JobType:     j.Type,
			CandidateID: id,
			Timestamp:   ts,
		})
		if err != nil {
			return SendResult{FailedCount: len(candidateIDs)}, err
		}
		msgs = append(msgs, kafka.Message{Topic: s.notificationsTopic, Key: []byte(id), Value: body})
	}

	res := SendResult{SentCount: len(msgs)}
	var sendErr error
	if len(msgs) > 0 {
		if err := s.writer.WriteMessages(ctx, msgs...); err != nil {
			res = countWriteErrors(err, len(msgs))
			sendErr = fmt.Errorf("publish job offers: %w", err)
		}
	}

	if s.broadcastTopic != "" {
		body, _ := json.Marshal(Offer{
			Type:      "job_offer",
			JobID:     j.ID,
			Title:     j.Title,
			Location:  j.Location,
			JobType:   j.Type,
			Matched:   len(candidateIDs),
			Timestamp: ts,
		})
		if err := s.writer.WriteMessages(ctx, kafka.Message{Topic: s.broadcastTopic, Key: []byte(j.ID), Value: body}); err != nil {
			s.logger.Warn("Kafka broadcast failed", zap.String("job_id", j.ID), zap.Error(err))
		}
	}

	return res, sendErr
}

func (s *KafkaSender) Close() error {
	if s == nil || s.writer == nil {
		return nil
	}
	return s.writer.Close()
}

func countWriteErrors(err error, total int) SendResult {
	var werrs kafka.WriteErrors
	if errors.As(err, &werrs) && len(werrs) == total {
		failed := werrs.Count()
		return SendResult{SentCount: total - failed, FailedCount: failed}
	}
	return SendResult{FailedCount: total}
}
