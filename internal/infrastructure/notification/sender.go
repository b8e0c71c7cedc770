// Package notification delivers job offers to matched candidates.
package notification

import (
	"context"
	"errors"

	"emploiplus/internal/domain/job"
)

type SendResult struct {
	SentCount   int `json:"sentCount"`
	FailedCount int `json:"failedCount"`
}

type Sender interface {
	NotifyJobOffers(ctx context.Context, j job.Job, candidateIDs []string) (SendResult, error)
}

// MultiSender fans out to every sender and sums their counts.
type MultiSender struct {
	senders []Sender
}

func NewMultiSender(senders ...Sender) *MultiSender {
	out := make([]Sender, 0, len(senders))
	for _, s := range senders {
		if s != nil {
			out = append(out, s)
		}
	}
	return &MultiSender{senders: out}
}

func (m *MultiSender) NotifyJobOffers(ctx context.Context, j job.Job, candidateIDs []string) (SendResult, error) {
	var total SendResult
	var errs []error
	for _, s := range m.senders {
		res, err := s.NotifyJobOffers(ctx, j, candidateIDs)
		total.SentCount += res.SentCount
		total.FailedCount += res.FailedCount
		if err != nil {
			errs = append(errs, err)
		}
	}
	return total, errors.Join(errs...)
}

func (m *MultiSender) Len() int {
	return len(m.senders)
}

// NopSender accepts nothing and reports nothing; used when no channel is configured.
type NopSender struct{}

func (NopSender) NotifyJobOffers(context.Context, job.Job, []string) (SendResult, error) {
	return SendResult{}, nil
}
