package job

import (
	"encoding/json"
	"testing"
)

func TestWebhookPayload_IDForms(t *testing.T) {
	cases := []struct {
		body string
		want ID
	}{
		{body: `{"type":"INSERT","record":{"id":"j1","title":"Dev"}}`, want: "j1"},
		{body: `{"type":"INSERT","record":{"id":42,"title":"Dev"}}`, want: "42"},
		{body: `{"type":"INSERT","record":{"id":null,"title":"Dev"}}`, want: ""},
	}
	for _, tc := range cases {
		var p WebhookPayload
		if err := json.Unmarshal([]byte(tc.body), &p); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.body, err)
		}
		if p.Record == nil || p.Record.ID != tc.want {
			t.Fatalf("expected id %q, got %+v", tc.want, p.Record)
		}
	}
}

func TestWebhookPayload_MissingRecord(t *testing.T) {
	var p WebhookPayload
	if err := json.Unmarshal([]byte(`{"type":"INSERT"}`), &p); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Record != nil {
		t.Fatalf("expected nil record")
	}
}

func TestRecord_Job(t *testing.T) {
	r := Record{ID: "j1", Title: "  Dev ", Description: "React", RequiredSkills: []string{"React"}}
	j := r.Job()
	if j.ID != "j1" || j.Title != "Dev" {
		t.Fatalf("unexpected job %+v", j)
	}
	if j.Text() != "Dev React" {
		t.Fatalf("unexpected text %q", j.Text())
	}
}
