package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"emploiplus/internal/database"

	"github.com/google/uuid"
)

type WebhookLog struct {
	ID           string
	EventType    string
	JobID        string
	Payload      json.RawMessage
	MatchedCount int
	CreatedAt    time.Time
}

type WebhookLogRepository interface {
	Insert(ctx context.Context, entry WebhookLog) error
}

type PostgresWebhookLogRepository struct {
	db database.DB
}

func NewPostgresWebhookLogRepository(db database.DB) *PostgresWebhookLogRepository {
	return &PostgresWebhookLogRepository{db: db}
}

func (r *PostgresWebhookLogRepository) Insert(ctx context.Context, entry WebhookLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	payload := entry.Payload
	if len(payload) == 0 {
		payload = json.RawMessage(`{}`)
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO webhook_logs (id, event_type, job_id, payload, matched_count, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.EventType, entry.JobID, string(payload), entry.MatchedCount, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert webhook log: %w", err)
	}
	return nil
}
