package document

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamhub/controller/respond"
	"teamhub/middleware"
	"teamhub/services"
)

const maxUploadSize = 32 << 20

func DocumentController(router *gin.Engine, svc *services.Service) {
	routes := router.Group("/documents", middleware.AccessTokenMiddleware(svc))
	{
		routes.GET("", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"documents": svc.Directory().Snapshot().Documents})
		})
		routes.POST("", func(c *gin.Context) {
			UploadDocument(c, svc)
		})
		routes.DELETE("/:id", func(c *gin.Context) {
			principal, _ := middleware.CurrentPrincipal(c)
			if err := svc.DeleteDocument(c.Request.Context(), principal, c.Param("id")); err != nil {
				respond.Error(c, err)
				return
			}
			respond.Accepted(c, gin.H{"id": c.Param("id")})
		})
	}
}

// UploadDocument expects a multipart form with a "file" part and optional
// title, category and description fields.
func UploadDocument(c *gin.Context, svc *services.Service) {
	principal, _ := middleware.CurrentPrincipal(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()

	in := services.DocumentInput{
		Title:       c.PostForm("title"),
		Category:    c.PostForm("category"),
		Description: c.PostForm("description"),
		FileName:    header.Filename,
		FileType:    header.Header.Get("Content-Type"),
		Size:        header.Size,
	}
	id, err := svc.AddDocument(c.Request.Context(), principal, in, file)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Accepted(c, gin.H{"id": id})
}
