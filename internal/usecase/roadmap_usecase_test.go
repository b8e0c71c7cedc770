package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"emploiplus/internal/domain/job"
	"emploiplus/internal/domain/matching"
	"emploiplus/internal/domain/roadmap"
	"emploiplus/internal/domain/user"
)

func TestRoadmap_GenerateCareerRoadmap(t *testing.T) {
	profiles := &fakeProfiles{byID: map[string]user.Profile{
		"u1": {ID: "u1", Skills: []string{"React", "git"}},
	}}
	jobs := &fakeJobs{byID: map[string]job.Job{
		"j1": {ID: "j1", Title: "Fullstack Developer", Description: "React, Node.js and Docker"},
	}}
	reqs := &fakeReqs{byJob: map[string][]matching.Requirement{
		"j1": {{Skill: "Kubernetes", IsRequired: true}, {Skill: "Figma", IsRequired: false}},
	}}
	formations := &fakeFormations{items: []roadmap.Formation{
		{ID: "f1", Title: "A"}, {ID: "f2", Title: "B"}, {ID: "f3", Title: "C"}, {ID: "f4", Title: "D"},
	}}

	uc := NewRoadmapUsecase(profiles, jobs, reqs, formations, nil)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return at }

	got, err := uc.GenerateCareerRoadmap(context.Background(), "u1", "j1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// required: docker, kubernetes, node.js, react (figma is optional)
	if len(got.AcquiredSkills) != 1 || got.AcquiredSkills[0] != "react" {
		t.Fatalf("unexpected acquired %v", got.AcquiredSkills)
	}
	if len(got.MissingSkills) != 3 {
		t.Fatalf("expected 3 missing, got %+v", got.MissingSkills)
	}
	if got.MissingSkills[0].Order != 1 || got.MissingSkills[0].Skill != "docker" {
		t.Fatalf("unexpected first step %+v", got.MissingSkills[0])
	}
	for _, s := range got.MissingSkills {
		if len(s.Suggestions) != roadmap.MaxSuggestions {
			t.Fatalf("expected %d suggestions, got %d", roadmap.MaxSuggestions, len(s.Suggestions))
		}
	}
	if got.CompletionPercentage != 25 {
		t.Fatalf("expected 25%%, got %d", got.CompletionPercentage)
	}
	if got.TargetJobTitle != "Fullstack Developer" || !got.GeneratedAt.Equal(at) {
		t.Fatalf("unexpected header %+v", got)
	}
}

func TestRoadmap_ZeroRequiredSkills(t *testing.T) {
	profiles := &fakeProfiles{byID: map[string]user.Profile{"u1": {ID: "u1"}}}
	jobs := &fakeJobs{byID: map[string]job.Job{"j1": {ID: "j1", Title: "Receptionist"}}}

	uc := NewRoadmapUsecase(profiles, jobs, &fakeReqs{}, &fakeFormations{}, nil)
	got, err := uc.GenerateCareerRoadmap(context.Background(), "u1", "j1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.CompletionPercentage != 0 {
		t.Fatalf("expected 0%%, got %d", got.CompletionPercentage)
	}
	if got.MissingSkills == nil || got.AcquiredSkills == nil {
		t.Fatalf("expected empty slices, not nil")
	}
}

func TestRoadmap_FormationLookupFailureYieldsNoSuggestions(t *testing.T) {
	profiles := &fakeProfiles{byID: map[string]user.Profile{"u1": {ID: "u1"}}}
	jobs := &fakeJobs{byID: map[string]job.Job{"j1": {ID: "j1", Title: "Go developer", Description: "Golang and PostgreSQL"}}}
	formations := &fakeFormations{err: errors.New("timeout")}

	uc := NewRoadmapUsecase(profiles, jobs, &fakeReqs{err: errors.New("boom")}, formations, nil)
	got, err := uc.GenerateCareerRoadmap(context.Background(), "u1", "j1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got.MissingSkills) == 0 {
		t.Fatalf("expected missing skills")
	}
	for _, s := range got.MissingSkills {
		if s.Suggestions == nil || len(s.Suggestions) != 0 {
			t.Fatalf("expected empty suggestions, got %+v", s.Suggestions)
		}
	}
}

func TestRoadmap_NotFound(t *testing.T) {
	uc := NewRoadmapUsecase(&fakeProfiles{}, &fakeJobs{}, nil, nil, nil)
	if _, err := uc.GenerateCareerRoadmap(context.Background(), "u1", "j1"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
