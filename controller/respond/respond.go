// Package respond holds the JSON replies shared by the controllers.
package respond

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"teamhub/services"
)

// Error answers 400 for invalid input and 500 for anything else.
func Error(c *gin.Context, err error) {
	if services.IsValidation(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// Accepted acknowledges a write. The change reaches readers through the
// sync layer.
func Accepted(c *gin.Context, body gin.H) {
	if body == nil {
		body = gin.H{}
	}
	body["message"] = "Accepted"
	c.JSON(http.StatusAccepted, body)
}
