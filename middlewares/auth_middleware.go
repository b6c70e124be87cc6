package middlewares

import (
	"net/http"
	"strings"

	"github.com/frans1979valk/vastelijn-portal/services"
	"github.com/frans1979valk/vastelijn-portal/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the bearer token to a user row. Any valid token
// holder passes; there is no role check on top of this.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, role, err := utils.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		user, err := services.FindUserByID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		c.Set("userID", user.ID)
		c.Set("role", role)
		c.Set("email", user.Email)

		c.Next()
	}
}
