package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"teamhub/docstore"
	"teamhub/model"
	"teamhub/syncer"
)

// statusProgress is the progress a task jumps to when its status is set.
var statusProgress = map[model.TaskStatus]int{
	model.StatusToDo:        0,
	model.StatusInProgress:  50,
	model.StatusUnderReview: 80,
	model.StatusBlocked:     0,
	model.StatusCompleted:   100,
}

func ProgressForStatus(s model.TaskStatus) (int, bool) {
	p, ok := statusProgress[s]
	return p, ok
}

// StatusForProgress is the status implied by a progress value.
func StatusForProgress(p int) model.TaskStatus {
	switch {
	case p >= 100:
		return model.StatusCompleted
	case p > 0:
		return model.StatusInProgress
	}
	return model.StatusToDo
}

// TaskInput is the content of a new task. Subtasks may be supplied but must
// not carry subtasks of their own.
type TaskInput struct {
	Title       string
	Description string
	AssignedTo  string
	Status      model.TaskStatus
	Priority    model.TaskPriority
	Progress    int
	Phase       string
	SubPhase    string
	SubTasks    []TaskInput
}

func (in TaskInput) validate(depth int) error {
	if depth > 0 && len(in.SubTasks) > 0 {
		return ErrTaskTooDeep
	}
	if in.Status != "" && !in.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, in.Status)
	}
	if in.Priority != "" && !in.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, in.Priority)
	}
	if in.Progress < 0 || in.Progress > 100 {
		return ErrInvalidProgress
	}
	for _, st := range in.SubTasks {
		if err := st.validate(depth + 1); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) buildTask(in TaskInput) model.Task {
	now := s.Now()
	t := model.Task{
		ID:          s.NewID(),
		Title:       in.Title,
		Description: in.Description,
		AssignedTo:  in.AssignedTo,
		Status:      in.Status,
		Priority:    in.Priority,
		Progress:    in.Progress,
		Phase:       in.Phase,
		SubPhase:    in.SubPhase,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if t.Status == "" {
		t.Status = model.StatusToDo
	}
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}
	for _, st := range in.SubTasks {
		t.SubTasks = append(t.SubTasks, s.buildTask(st))
	}
	return t
}

// AddTask stores a new top-level task, leaf or container, and returns its id.
func (s *Service) AddTask(ctx context.Context, in TaskInput) (string, error) {
	if err := in.validate(0); err != nil {
		return "", err
	}
	t := s.buildTask(in)
	if err := s.remote.Set(ctx, docstore.CollectionTasks, t.ID, syncer.EncodeTask(t)); err != nil {
		return "", fmt.Errorf("add task: %w", err)
	}
	return t.ID, nil
}

func validatePatch(p model.TaskPatch) error {
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, *p.Status)
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, *p.Priority)
	}
	if p.Progress != nil && (*p.Progress < 0 || *p.Progress > 100) {
		return ErrInvalidProgress
	}
	return nil
}

func patchFields(p model.TaskPatch) map[string]interface{} {
	m := make(map[string]interface{})
	if p.Title != nil {
		m["title"] = *p.Title
	}
	if p.Description != nil {
		m["description"] = *p.Description
	}
	if p.AssignedTo != nil {
		m["assignedTo"] = *p.AssignedTo
	}
	if p.Status != nil {
		m["status"] = string(*p.Status)
	}
	if p.Priority != nil {
		m["priority"] = string(*p.Priority)
	}
	if p.Progress != nil {
		m["progress"] = int64(*p.Progress)
	}
	if p.Phase != nil {
		m["phase"] = *p.Phase
	}
	if p.SubPhase != nil {
		m["subPhase"] = *p.SubPhase
	}
	return m
}

// UpdateTask applies patch to the task or subtask with the given id. An id
// that resolves nowhere, or a principal who may not edit the resolved
// entity, makes the call a silent no-op.
func (s *Service) UpdateTask(ctx context.Context, principal model.User, id string, patch model.TaskPatch) error {
	if err := validatePatch(patch); err != nil {
		return err
	}
	ref, ok := s.dir.Snapshot().FindTask(id)
	if !ok {
		log.Printf("update task %s: not found, ignoring", id)
		return nil
	}
	if !CanEditTask(principal, ref.Task) {
		log.Printf("update task %s: %s may not edit, ignoring", id, principal.ID)
		return nil
	}
	fields := patchFields(patch)
	fields["updatedAt"] = s.Now()

	if !ref.Nested() {
		if err := s.remote.Update(ctx, docstore.CollectionTasks, id, fields); err != nil {
			if errors.Is(err, docstore.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("update task %s: %w", id, err)
		}
		return nil
	}

	return s.rewriteSubTasks(ctx, ref.ParentID, func(subs []interface{}) ([]interface{}, bool) {
		for i, raw := range subs {
			entry, ok := raw.(map[string]interface{})
			if !ok || entry["id"] != id {
				continue
			}
			assignee, _ := entry["assignedTo"].(string)
			if !CanEditTask(principal, model.Task{AssignedTo: assignee}) {
				return nil, false
			}
			merged := make(map[string]interface{}, len(entry)+len(fields))
			for k, v := range entry {
				merged[k] = v
			}
			for k, v := range fields {
				merged[k] = v
			}
			out := make([]interface{}, len(subs))
			copy(out, subs)
			out[i] = merged
			return out, true
		}
		return nil, false
	})
}

// SetTaskStatus sets the status and the progress that goes with it.
func (s *Service) SetTaskStatus(ctx context.Context, principal model.User, id string, status model.TaskStatus) error {
	progress, ok := ProgressForStatus(status)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.UpdateTask(ctx, principal, id, model.TaskPatch{Status: &status, Progress: &progress})
}

// SetTaskProgress sets progress and derives the status from it.
func (s *Service) SetTaskProgress(ctx context.Context, principal model.User, id string, progress int) error {
	if progress < 0 || progress > 100 {
		return ErrInvalidProgress
	}
	status := StatusForProgress(progress)
	return s.UpdateTask(ctx, principal, id, model.TaskPatch{Status: &status, Progress: &progress})
}

// DeleteTask is leader-only. Deleting a subtask rewrites its parent's
// subtask list without that entry.
func (s *Service) DeleteTask(ctx context.Context, principal model.User, id string) error {
	if !CanDelete(principal) {
		log.Printf("delete task %s: %s is not a leader, ignoring", id, principal.ID)
		return nil
	}
	ref, ok := s.dir.Snapshot().FindTask(id)
	if !ok {
		log.Printf("delete task %s: not found, ignoring", id)
		return nil
	}
	if !ref.Nested() {
		if err := s.remote.Delete(ctx, docstore.CollectionTasks, id); err != nil {
			return fmt.Errorf("delete task %s: %w", id, err)
		}
		return nil
	}
	return s.rewriteSubTasks(ctx, ref.ParentID, func(subs []interface{}) ([]interface{}, bool) {
		kept := make([]interface{}, 0, len(subs))
		found := false
		for _, raw := range subs {
			if entry, ok := raw.(map[string]interface{}); ok && entry["id"] == id {
				found = true
				continue
			}
			kept = append(kept, raw)
		}
		return kept, found
	})
}

// rewriteSubTasks reads the parent fresh from the remote store, lets edit
// change its stored subtask array and writes the array back with a new
// updatedAt. Entries edit does not touch are written back exactly as read.
// edit returns false to abandon the write.
func (s *Service) rewriteSubTasks(ctx context.Context, parentID string, edit func([]interface{}) ([]interface{}, bool)) error {
	rec, err := s.remote.Get(ctx, docstore.CollectionTasks, parentID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load parent task %s: %w", parentID, err)
	}
	subs, ok := rec.Data["subTasks"].([]interface{})
	if !ok {
		return nil
	}
	subs, changed := edit(subs)
	if !changed {
		return nil
	}
	fields := map[string]interface{}{
		"subTasks":  subs,
		"updatedAt": s.Now(),
	}
	if err := s.remote.Update(ctx, docstore.CollectionTasks, parentID, fields); err != nil {
		return fmt.Errorf("update subtasks of %s: %w", parentID, err)
	}
	return nil
}
