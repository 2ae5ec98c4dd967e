package services

import (
	"testing"

	"teamhub/model"
)

func TestCanEditTask(t *testing.T) {
	task := model.Task{ID: "t1", AssignedTo: "arun-kumar"}
	unassigned := model.Task{ID: "t2"}

	tests := []struct {
		name      string
		principal model.User
		task      model.Task
		want      bool
	}{
		{"leader on any task", model.User{ID: "pranava-kumar", IsLeader: true}, task, true},
		{"leader on unassigned task", model.User{ID: "pranava-kumar", IsLeader: true}, unassigned, true},
		{"assignee", model.User{ID: "arun-kumar"}, task, true},
		{"other member", model.User{ID: "mohana-divya"}, task, false},
		{"empty id never matches unassigned", model.User{}, unassigned, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanEditTask(tt.principal, tt.task); got != tt.want {
				t.Fatalf("CanEditTask() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanDelete(t *testing.T) {
	if !CanDelete(model.User{ID: "lead", IsLeader: true}) {
		t.Fatal("leader should be allowed to delete")
	}
	if CanDelete(model.User{ID: "member"}) {
		t.Fatal("member should not be allowed to delete")
	}
}
