package dto

import "teamhub/model"

type CreateTaskRequest struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	AssignedTo  string              `json:"assignedTo"`
	Status      model.TaskStatus    `json:"status"`
	Priority    model.TaskPriority  `json:"priority"`
	Progress    int                 `json:"progress" binding:"min=0,max=100"`
	Phase       string              `json:"phase"`
	SubPhase    string              `json:"subPhase"`
	SubTasks    []CreateTaskRequest `json:"subTasks" binding:"dive"`
}

// UpdateTaskRequest leaves absent fields untouched.
type UpdateTaskRequest struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	AssignedTo  *string             `json:"assignedTo"`
	Status      *model.TaskStatus   `json:"status"`
	Priority    *model.TaskPriority `json:"priority"`
	Progress    *int                `json:"progress" binding:"omitempty,min=0,max=100"`
	Phase       *string             `json:"phase"`
	SubPhase    *string             `json:"subPhase"`
}

type SetStatusRequest struct {
	Status model.TaskStatus `json:"status" binding:"required"`
}

type SetProgressRequest struct {
	Progress *int `json:"progress" binding:"required,min=0,max=100"`
}

type ExplainTaskRequest struct {
	TaskID      string `json:"taskId"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
