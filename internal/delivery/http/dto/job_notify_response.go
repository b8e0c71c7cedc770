package dto

import "emploiplus/internal/infrastructure/notification"

type NotifyAckResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

type NotifyProcessingResponse struct {
	Success            bool   `json:"success"`
	JobID              string `json:"jobId"`
	MatchingCandidates int    `json:"matchingCandidates"`
	Status             string `json:"status"`
}

type NotifyDuplicateResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	JobID   string `json:"jobId"`
}

type NotifyStatusResponse struct {
	Success   bool   `json:"success"`
	Service   string `json:"service"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type NotifyTestResponse struct {
	Success            bool                    `json:"success"`
	JobID              string                  `json:"jobId"`
	MatchingCandidates int                     `json:"matchingCandidates"`
	CandidateIDs       []string                `json:"candidateIds"`
	Notification       notification.SendResult `json:"notification"`
}
