package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamhub/dto"
	"teamhub/services"
)

func SignInController(router *gin.Engine, svc *services.Service) {
	router.POST("/auth/signin", func(c *gin.Context) {
		Signin(c, svc)
	})
}

func Signin(c *gin.Context, svc *services.Service) {
	var request dto.SigninRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, ok := svc.Login(request.Identifier, request.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid name or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login Successfully",
		"session": session,
	})
}
