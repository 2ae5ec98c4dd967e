package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamhub/controller/respond"
	"teamhub/dto"
	"teamhub/middleware"
	"teamhub/services"
)

func PasswordResetController(router *gin.Engine, svc *services.Service) {
	router.POST("/auth/password-reset", func(c *gin.Context) {
		RequestPasswordReset(c, svc)
	})

	routes := router.Group("/admin/password-resets", middleware.AccessTokenMiddleware(svc), middleware.LeaderMiddleware())
	{
		routes.GET("", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"requests": svc.Directory().Snapshot().PasswordResets})
		})
		routes.POST("/:id/approve", func(c *gin.Context) {
			ResolvePasswordReset(c, svc, true)
		})
		routes.POST("/:id/reject", func(c *gin.Context) {
			ResolvePasswordReset(c, svc, false)
		})
	}
}

func RequestPasswordReset(c *gin.Context, svc *services.Service) {
	var request dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	queued, err := svc.RequestPasswordReset(c.Request.Context(), request.Identifier, request.NewPassword)
	if err != nil {
		respond.Error(c, err)
		return
	}
	if !queued {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown user or a request is already pending"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "Password reset request sent to the team leader"})
}

func ResolvePasswordReset(c *gin.Context, svc *services.Service, approve bool) {
	principal, _ := middleware.CurrentPrincipal(c)
	id := c.Param("id")

	var err error
	if approve {
		err = svc.ApprovePasswordReset(c.Request.Context(), principal, id)
	} else {
		err = svc.RejectPasswordReset(c.Request.Context(), principal, id)
	}
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Accepted(c, gin.H{"id": id})
}
