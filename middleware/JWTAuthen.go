package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"teamhub/model"
	"teamhub/services"
)

const principalKey = "principal"

// AccessTokenMiddleware restores the session from the bearer token and loads
// the principal's current record from the directory.
func AccessTokenMiddleware(svc *services.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Request.Header.Get("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims, err := svc.Sessions().Restore(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		// the token outlives edits to the user record, so look it up again
		user, ok := svc.Principal(claims.UserID)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
			return
		}
		c.Set("userId", user.ID)
		c.Set(principalKey, user)
		c.Next()
	}
}

// LeaderMiddleware must run after AccessTokenMiddleware.
func LeaderMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Principal not found"})
			return
		}
		if !services.CanDelete(user) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}

func CurrentPrincipal(c *gin.Context) (model.User, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return model.User{}, false
	}
	user, ok := v.(model.User)
	return user, ok
}
