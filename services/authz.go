package services

import "teamhub/model"

// CanEditTask reports whether p may change t. Leaders may edit anything;
// members only what is assigned to them. The rule is the same for top-level
// tasks and subtasks.
func CanEditTask(p model.User, t model.Task) bool {
	if p.IsLeader {
		return true
	}
	return p.ID != "" && p.ID == t.AssignedTo
}

// CanDelete covers task and announcement deletion, the bulk chat clear and
// password reset triage.
func CanDelete(p model.User) bool {
	return p.IsLeader
}
