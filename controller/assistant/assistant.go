package assistant

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamhub/controller/respond"
	"teamhub/dto"
	"teamhub/middleware"
	"teamhub/services"
)

func AssistantController(router *gin.Engine, svc *services.Service, ai *services.Assistant) {
	routes := router.Group("/assistant", middleware.AccessTokenMiddleware(svc))
	{
		routes.POST("/explain", func(c *gin.Context) {
			Explain(c, ai)
		})
		routes.POST("/chat", func(c *gin.Context) {
			Chat(c, ai)
		})
		routes.GET("/insights", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"insights": ai.ProjectInsights(c.Request.Context())})
		})
	}
}

func Explain(c *gin.Context, ai *services.Assistant) {
	var req dto.ExplainTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.TaskID != "" {
		text, ok := ai.ExplainTaskByID(c.Request.Context(), req.TaskID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"explanation": text})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "taskId or title is required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"explanation": ai.ExplainTask(c.Request.Context(), req.Title, req.Description)})
}

func Chat(c *gin.Context, ai *services.Assistant) {
	var req dto.AssistantChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reply, err := ai.ChatReply(c.Request.Context(), req.Message, req.Context, req.Post)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
