package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamhub/controller/respond"
	"teamhub/dto"
	"teamhub/middleware"
	"teamhub/services"
)

func ChatController(router *gin.Engine, svc *services.Service) {
	routes := router.Group("/chat", middleware.AccessTokenMiddleware(svc))
	{
		routes.GET("", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"messages": svc.Directory().Snapshot().ChatMessages})
		})
		routes.POST("", func(c *gin.Context) {
			PostMessage(c, svc)
		})
		routes.DELETE("", func(c *gin.Context) {
			principal, _ := middleware.CurrentPrincipal(c)
			if err := svc.ClearChat(c.Request.Context(), principal); err != nil {
				respond.Error(c, err)
				return
			}
			respond.Accepted(c, nil)
		})
	}
}

func PostMessage(c *gin.Context, svc *services.Service) {
	principal, _ := middleware.CurrentPrincipal(c)
	var req dto.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := svc.AddChatMessage(c.Request.Context(), principal, req.Message)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Accepted(c, gin.H{"id": id})
}
