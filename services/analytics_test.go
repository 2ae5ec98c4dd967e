package services

import (
	"testing"
	"time"

	"teamhub/model"
	"teamhub/store"
)

func TestBuildSummary(t *testing.T) {
	now := time.Date(2025, time.June, 30, 12, 0, 0, 0, time.UTC)
	done := func(id, assignee, phase string, at time.Time) model.Task {
		return model.Task{ID: id, AssignedTo: assignee, Phase: phase, Status: model.StatusCompleted, Progress: 100, UpdatedAt: at}
	}
	open := func(id, assignee, phase string, status model.TaskStatus) model.Task {
		return model.Task{ID: id, AssignedTo: assignee, Phase: phase, Status: status, UpdatedAt: now}
	}

	state := store.State{
		Users: []model.User{
			{ID: "arun-kumar", Name: "Arun Kumar"},
			{ID: "mohana-divya", Name: "Mohana Divya"},
		},
		Tasks: []model.Task{
			{ID: "phase-1", Title: "Phase 1: Research", Phase: "Phase 1", Status: model.StatusInProgress, SubTasks: []model.Task{
				done("s1", "arun-kumar", "Phase 1", now.Add(-time.Hour)),
				done("s2", "mohana-divya", "Phase 1", now.Add(-8*24*time.Hour)),
				open("s3", "arun-kumar", "Phase 1", model.StatusBlocked),
			}},
			open("phase-2", "arun-kumar", "Phase 2", model.StatusToDo),
		},
		ChatMessages: []model.ChatMessage{
			{UserID: "arun-kumar"}, {UserID: "arun-kumar"}, {UserID: "mohana-divya"}, {UserID: "ai-assistant"},
		},
	}

	s := BuildSummary(state, "arun-kumar", now)

	if s.TotalItems != 4 || s.CompletedItems != 2 || s.OverallProgress != 50 {
		t.Fatalf("totals = %d/%d/%d%%", s.CompletedItems, s.TotalItems, s.OverallProgress)
	}
	wantStatus := []StatusCount{{model.StatusToDo, 1}, {model.StatusBlocked, 1}, {model.StatusCompleted, 2}}
	if len(s.StatusCounts) != len(wantStatus) {
		t.Fatalf("status counts = %+v", s.StatusCounts)
	}
	for i, w := range wantStatus {
		if s.StatusCounts[i] != w {
			t.Fatalf("status counts[%d] = %+v, want %+v", i, s.StatusCounts[i], w)
		}
	}

	if m := s.Members[0]; m.Name != "Arun" || m.Completed != 1 || m.Total != 3 || m.Progress != 33 {
		t.Fatalf("arun progress = %+v", m)
	}
	if m := s.Members[1]; m.Completed != 1 || m.Total != 1 || m.Progress != 100 {
		t.Fatalf("mohana progress = %+v", m)
	}

	if p := s.Phases[0]; p.Completed != 2 || p.Total != 3 || p.Progress != 67 {
		t.Fatalf("phase 1 = %+v", p)
	}
	if p := s.Phases[1]; p.Completed != 0 || p.Total != 1 || p.Progress != 0 {
		t.Fatalf("phase 2 = %+v", p)
	}

	if len(s.Weekly) != 6 || s.Weekly[5].Week != "Week 6" || s.Weekly[5].Completed != 1 || s.Weekly[4].Completed != 1 {
		t.Fatalf("weekly = %+v", s.Weekly)
	}

	if s.Communication[0].Messages != 2 || s.Communication[1].Messages != 1 {
		t.Fatalf("communication = %+v", s.Communication)
	}

	if len(s.Pending) != 2 || s.Pending[0].ID != "s3" || s.Pending[1].ID != "phase-2" {
		t.Fatalf("pending = %+v", s.Pending)
	}
}

func TestBuildSummaryCapsPendingItems(t *testing.T) {
	var tasks []model.Task
	for i := 0; i < 8; i++ {
		tasks = append(tasks, model.Task{ID: string(rune('a' + i)), AssignedTo: "u", Status: model.StatusToDo})
	}
	s := BuildSummary(store.State{Tasks: tasks}, "u", time.Now())
	if len(s.Pending) != 5 || s.Pending[0].ID != "a" {
		t.Fatalf("pending = %+v", s.Pending)
	}
}

func TestBuildSummaryEmpty(t *testing.T) {
	s := BuildSummary(store.State{}, "", time.Now())
	if s.TotalItems != 0 || s.OverallProgress != 0 || len(s.Pending) != 0 || len(s.Weekly) != 6 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}
