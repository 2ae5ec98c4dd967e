package task

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamhub/controller/respond"
	"teamhub/dto"
	"teamhub/middleware"
	"teamhub/model"
	"teamhub/services"
)

func TaskController(router *gin.Engine, svc *services.Service) {
	routes := router.Group("/tasks", middleware.AccessTokenMiddleware(svc))
	{
		routes.GET("", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"tasks": svc.Directory().Snapshot().Tasks})
		})
		routes.POST("", middleware.LeaderMiddleware(), func(c *gin.Context) {
			CreateTask(c, svc)
		})
		routes.PATCH("/:id", func(c *gin.Context) {
			UpdateTask(c, svc)
		})
		routes.PATCH("/:id/status", func(c *gin.Context) {
			SetStatus(c, svc)
		})
		routes.PATCH("/:id/progress", func(c *gin.Context) {
			SetProgress(c, svc)
		})
		routes.DELETE("/:id", func(c *gin.Context) {
			DeleteTask(c, svc)
		})
	}
}

func toInput(req dto.CreateTaskRequest) services.TaskInput {
	in := services.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Status:      req.Status,
		Priority:    req.Priority,
		Progress:    req.Progress,
		Phase:       req.Phase,
		SubPhase:    req.SubPhase,
	}
	for _, st := range req.SubTasks {
		in.SubTasks = append(in.SubTasks, toInput(st))
	}
	return in
}

func CreateTask(c *gin.Context, svc *services.Service) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	id, err := svc.AddTask(c.Request.Context(), toInput(req))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Accepted(c, gin.H{"taskID": id})
}

func UpdateTask(c *gin.Context, svc *services.Service) {
	principal, _ := middleware.CurrentPrincipal(c)
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	patch := model.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Status:      req.Status,
		Priority:    req.Priority,
		Progress:    req.Progress,
		Phase:       req.Phase,
		SubPhase:    req.SubPhase,
	}
	if patch.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if err := svc.UpdateTask(c.Request.Context(), principal, c.Param("id"), patch); err != nil {
		respond.Error(c, err)
		return
	}
	respond.Accepted(c, gin.H{"taskID": c.Param("id")})
}

func SetStatus(c *gin.Context, svc *services.Service) {
	principal, _ := middleware.CurrentPrincipal(c)
	var req dto.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := svc.SetTaskStatus(c.Request.Context(), principal, c.Param("id"), req.Status); err != nil {
		respond.Error(c, err)
		return
	}
	respond.Accepted(c, gin.H{"taskID": c.Param("id")})
}

func SetProgress(c *gin.Context, svc *services.Service) {
	principal, _ := middleware.CurrentPrincipal(c)
	var req dto.SetProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := svc.SetTaskProgress(c.Request.Context(), principal, c.Param("id"), *req.Progress); err != nil {
		respond.Error(c, err)
		return
	}
	respond.Accepted(c, gin.H{"taskID": c.Param("id")})
}

func DeleteTask(c *gin.Context, svc *services.Service) {
	principal, _ := middleware.CurrentPrincipal(c)
	if err := svc.DeleteTask(c.Request.Context(), principal, c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}
	respond.Accepted(c, gin.H{"taskID": c.Param("id")})
}
