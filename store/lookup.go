package store

import "teamhub/model"

// TaskRef locates a task inside the cached tree. ParentID and Index are set
// only for subtasks.
type TaskRef struct {
	Task     model.Task
	Parent   *model.Task
	ParentID string
	Index    int
}

// Nested reports whether the reference points at a subtask.
func (r TaskRef) Nested() bool {
	return r.Parent != nil
}

// FindTask resolves id against top-level tasks first and only then against
// each top-level task's subtasks.
func (s State) FindTask(id string) (TaskRef, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return TaskRef{Task: t.Clone(), Index: -1}, true
		}
	}
	for _, t := range s.Tasks {
		for i, st := range t.SubTasks {
			if st.ID == id {
				parent := t.Clone()
				return TaskRef{Task: st.Clone(), Parent: &parent, ParentID: t.ID, Index: i}, true
			}
		}
	}
	return TaskRef{}, false
}

// FindUser resolves a login identifier by normalized name or slug.
func (s State) FindUser(identifier string) (model.User, bool) {
	for _, u := range s.Users {
		if u.Matches(identifier) {
			return u, true
		}
	}
	return model.User{}, false
}

func (s State) UserByID(id string) (model.User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

func (s State) FindDocument(id string) (model.Document, bool) {
	for _, d := range s.Documents {
		if d.ID == id {
			return d, true
		}
	}
	return model.Document{}, false
}

func (s State) FindAnnouncement(id string) (model.Announcement, bool) {
	for _, a := range s.Announcements {
		if a.ID == id {
			return a, true
		}
	}
	return model.Announcement{}, false
}

func (s State) FindPasswordReset(id string) (model.PasswordResetRequest, bool) {
	for _, r := range s.PasswordResets {
		if r.ID == id {
			return r, true
		}
	}
	return model.PasswordResetRequest{}, false
}

// PendingResetFor returns the pending reset request of a user, if any.
func (s State) PendingResetFor(userID string) (model.PasswordResetRequest, bool) {
	for _, r := range s.PasswordResets {
		if r.UserID == userID && r.Status == model.ResetPending {
			return r, true
		}
	}
	return model.PasswordResetRequest{}, false
}
