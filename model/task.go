package model

import (
	"time"
)

type TaskStatus string

const (
	StatusToDo        TaskStatus = "To Do"
	StatusInProgress  TaskStatus = "In Progress"
	StatusUnderReview TaskStatus = "Under Review"
	StatusBlocked     TaskStatus = "Blocked"
	StatusCompleted   TaskStatus = "Completed"
)

// Statuses lists every status in display order.
var Statuses = []TaskStatus{StatusToDo, StatusInProgress, StatusUnderReview, StatusBlocked, StatusCompleted}

func (s TaskStatus) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

type TaskPriority string

const (
	PriorityHigh   TaskPriority = "High"
	PriorityMedium TaskPriority = "Medium"
	PriorityLow    TaskPriority = "Low"
)

func (p TaskPriority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// TaskKind tells a leaf task from a container of subtasks.
type TaskKind int

const (
	KindLeaf TaskKind = iota
	KindContainer
)

type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	AssignedTo  string       `json:"assignedTo"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	Progress    int          `json:"progress"`
	Phase       string       `json:"phase"`
	SubPhase    string       `json:"subPhase,omitempty"`
	SubTasks    []Task       `json:"subTasks,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Kind reports KindContainer only for a non-empty SubTasks slice.
func (t Task) Kind() TaskKind {
	if len(t.SubTasks) > 0 {
		return KindContainer
	}
	return KindLeaf
}

// Clone returns a deep copy; SubTasks never share a backing array with t.
func (t Task) Clone() Task {
	if t.SubTasks != nil {
		subs := make([]Task, len(t.SubTasks))
		for i, st := range t.SubTasks {
			subs[i] = st.Clone()
		}
		t.SubTasks = subs
	}
	return t
}

// WorkItems returns the units counted by progress summaries: the subtasks of
// a container, or the task itself when it is a leaf.
func (t Task) WorkItems() []Task {
	if t.Kind() == KindContainer {
		return t.SubTasks
	}
	return []Task{t}
}

// TaskPatch carries the fields of a partial update. Nil means "leave as is".
type TaskPatch struct {
	Title       *string
	Description *string
	AssignedTo  *string
	Status      *TaskStatus
	Priority    *TaskPriority
	Progress    *int
	Phase       *string
	SubPhase    *string
}

func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.AssignedTo == nil && p.Status == nil &&
		p.Priority == nil && p.Progress == nil && p.Phase == nil && p.SubPhase == nil
}
