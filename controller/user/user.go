package user

import (
	"net/http"

	"taskcal/config"
	"taskcal/dto"
	"taskcal/middleware"
	"taskcal/model"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func UserController(router *gin.Engine, fs *firestore.Client, cfg *config.Config) {
	routes := router.Group("/user", middleware.AccessToken(cfg.JWTSecret))
	{
		routes.GET("/profile", func(c *gin.Context) {
			GetProfile(c, fs)
		})
		routes.PUT("/appearance", func(c *gin.Context) {
			UpdateAppearance(c, fs)
		})
	}
}

func GetProfile(c *gin.Context, fs *firestore.Client) {
	userID := c.MustGet("userId").(string)

	doc, err := fs.Collection("users").Doc(userID).Get(c.Request.Context())
	if err != nil {
		if status.Code(err) == codes.NotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User profile not found"})
		} else {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load profile"})
		}
		return
	}

	var profile model.User
	if err := doc.DataTo(&profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse user data"})
		return
	}
	profile.ID = doc.Ref.ID

	c.JSON(http.StatusOK, profile)
}

// UpdateAppearance persists the theme preference on the profile document so
// it follows the user across devices.
func UpdateAppearance(c *gin.Context, fs *firestore.Client) {
	userID := c.MustGet("userId").(string)

	var request dto.UpdateAppearanceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	_, err := fs.Collection("users").Doc(userID).Update(c.Request.Context(), []firestore.Update{
		{Path: "theme", Value: request.Theme},
		{Path: "palette", Value: request.Palette},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User profile not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to update appearance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appearance updated"})
}
