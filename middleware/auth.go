package middleware

import (
	"net/http"
	"strings"

	"taskcal/services"

	"github.com/gin-gonic/gin"
)

// AccessToken validates the bearer access token and stores the owner id in
// the request context under "userId".
func AccessToken(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Request.Header.Get("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		userID, err := services.ParseAccessToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token is expired or invalid: " + err.Error()})
			return
		}

		c.Set("userId", userID)
		c.Next()
	}
}

// RefreshToken validates the bearer refresh token and stores "userId" and
// "tokenId" for the session handlers.
func RefreshToken(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Request.Header.Get("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Refresh token is missing"})
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		userID, tokenID, err := services.ParseRefreshToken(secret, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid refresh token: " + err.Error()})
			return
		}

		c.Set("userId", userID)
		c.Set("tokenId", tokenID)
		c.Set("refreshToken", parts[1])
		c.Next()
	}
}
