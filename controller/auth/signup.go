package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamhub/controller/respond"
	"teamhub/dto"
	"teamhub/services"
)

func SignUpController(router *gin.Engine, svc *services.Service) {
	router.POST("/auth/signup", func(c *gin.Context) {
		Signup(c, svc)
	})
}

func Signup(c *gin.Context, svc *services.Service) {
	var request dto.SignupRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := svc.Register(c.Request.Context(), request.Name, request.Password)
	if err != nil {
		respond.Error(c, err)
		return
	}
	if !created {
		c.JSON(http.StatusConflict, gin.H{"error": "Name is already registered"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Registered successfully"})
}
