package announcement

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamhub/controller/respond"
	"teamhub/dto"
	"teamhub/middleware"
	"teamhub/services"
)

func AnnouncementController(router *gin.Engine, svc *services.Service) {
	routes := router.Group("/announcements", middleware.AccessTokenMiddleware(svc))
	{
		routes.GET("", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"announcements": svc.Directory().Snapshot().Announcements})
		})
		routes.POST("", middleware.LeaderMiddleware(), func(c *gin.Context) {
			CreateAnnouncement(c, svc)
		})
		routes.DELETE("/:id", func(c *gin.Context) {
			principal, _ := middleware.CurrentPrincipal(c)
			if err := svc.DeleteAnnouncement(c.Request.Context(), principal, c.Param("id")); err != nil {
				respond.Error(c, err)
				return
			}
			respond.Accepted(c, gin.H{"id": c.Param("id")})
		})
	}
}

func CreateAnnouncement(c *gin.Context, svc *services.Service) {
	principal, _ := middleware.CurrentPrincipal(c)
	var req dto.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := svc.AddAnnouncement(c.Request.Context(), principal, req.Title, req.Content)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Accepted(c, gin.H{"id": id})
}
