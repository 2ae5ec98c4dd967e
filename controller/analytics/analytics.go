package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamhub/middleware"
	"teamhub/services"
)

func AnalyticsController(router *gin.Engine, svc *services.Service) {
	router.GET("/analytics", middleware.AccessTokenMiddleware(svc), func(c *gin.Context) {
		principal, _ := middleware.CurrentPrincipal(c)
		summary := services.BuildSummary(svc.Directory().Snapshot(), principal.ID, svc.Now())
		c.JSON(http.StatusOK, summary)
	})
}
