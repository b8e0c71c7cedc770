package ws

import (
	"encoding/json"
	"time"
)

const (
	EventJobOffer       = "job_offer"
	EventJobOfferTarget = "job_offer_match"
)

type JobOfferEvent struct {
	Type      string `json:"type"`
	Topic     string `json:"topic,omitempty"`
	JobID     string `json:"jobId"`
	Title     string `json:"title"`
	Location  string `json:"location,omitempty"`
	JobType   string `json:"jobType,omitempty"`
	Timestamp string `json:"timestamp"`
}

func NewJobOfferEvent(eventType, topic, jobID, title, location, jobType string, at time.Time) JobOfferEvent {
	return JobOfferEvent{
		Type:      eventType,
		Topic:     topic,
		JobID:     jobID,
		Title:     title,
		Location:  location,
		JobType:   jobType,
		Timestamp: at.UTC().Format(time.RFC3339),
	}
}

func (e JobOfferEvent) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
