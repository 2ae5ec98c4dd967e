package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamhub/middleware"
	"teamhub/services"
)

// UserController serves the team page and the caller's own record.
func UserController(router *gin.Engine, svc *services.Service) {
	routes := router.Group("/users", middleware.AccessTokenMiddleware(svc))
	{
		routes.GET("", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"users": svc.Directory().Snapshot().Users})
		})
		routes.GET("/me", func(c *gin.Context) {
			principal, _ := middleware.CurrentPrincipal(c)
			c.JSON(http.StatusOK, gin.H{"user": principal})
		})
	}
}
