package job

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

type Job struct {
	ID          string
	CompanyID   string
	Title       string
	Description string
	Type        string
	Location    string
}

// Text is what the skill extractor reads for a job.
func (j Job) Text() string {
	return strings.TrimSpace(j.Title + " " + j.Description)
}

// ID accepts both JSON strings and numbers, since database webhooks emit the
// primary key in its native type.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("job id must be a string or a number")
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Record is the row image carried by a jobs-table webhook.
type Record struct {
	ID             ID       `json:"id"`
	CompanyID      ID       `json:"company_id,omitempty"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Type           string   `json:"type,omitempty"`
	Location       string   `json:"location,omitempty"`
	RequiredSkills []string `json:"required_skills,omitempty"`
}

func (r Record) Job() Job {
	return Job{
		ID:          string(r.ID),
		CompanyID:   string(r.CompanyID),
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		Type:        strings.TrimSpace(r.Type),
		Location:    strings.TrimSpace(r.Location),
	}
}

type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// WebhookPayload is the body posted by the database when a job row changes.
type WebhookPayload struct {
	Type      EventType       `json:"type"`
	Record    *Record         `json:"record"`
	OldRecord json.RawMessage `json:"old_record,omitempty"`
}
