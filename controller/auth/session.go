package auth

import (
	"net/http"
	"time"

	"taskcal/config"
	"taskcal/dto"
	"taskcal/middleware"
	"taskcal/model"
	"taskcal/services"

	"cloud.google.com/go/firestore"
	fbauth "firebase.google.com/go/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func SessionController(router *gin.Engine, fs *firestore.Client, authClient *fbauth.Client, cfg *config.Config, notifier *services.Notifier, log *zap.Logger) {
	router.POST("/auth/session", func(c *gin.Context) {
		CreateSession(c, fs, authClient, cfg, notifier, log)
	})
	router.POST("/auth/refresh", middleware.RefreshToken(cfg.JWTRefreshSecret), func(c *gin.Context) {
		RefreshSession(c, fs, cfg)
	})
	router.POST("/auth/signout", middleware.RefreshToken(cfg.JWTRefreshSecret), func(c *gin.Context) {
		SignOut(c, fs)
	})
}

// CreateSession exchanges a Firebase ID token for service tokens, creating
// the user profile on first sign-in.
func CreateSession(c *gin.Context, fs *firestore.Client, authClient *fbauth.Client, cfg *config.Config, notifier *services.Notifier, log *zap.Logger) {
	var request dto.SessionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ctx := c.Request.Context()
	token, err := authClient.VerifyIDToken(ctx, request.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid ID token"})
		return
	}

	email, _ := token.Claims["email"].(string)
	displayName, _ := token.Claims["name"].(string)
	photoURL, _ := token.Claims["picture"].(string)

	created, err := services.EnsureUserProfile(ctx, fs, notifier, token.UID, email, displayName, photoURL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to prepare user profile"})
		return
	}
	if created {
		log.Info("user profile created", zap.String("owner", token.UID))
	}

	accessToken, err := services.CreateAccessToken(cfg.JWTSecret, token.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create access token"})
		return
	}

	tokenID := uuid.New().String()
	refreshToken, err := services.CreateRefreshToken(cfg.JWTRefreshSecret, token.UID, tokenID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create refresh token"})
		return
	}

	tokenHash, err := services.HashRefreshToken(refreshToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store refresh token"})
		return
	}

	record := model.RefreshTokenRecord{
		UserID:    token.UID,
		TokenHash: tokenHash,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(services.RefreshTokenTTL),
	}
	if _, err := fs.Collection("refresh_tokens").Doc(tokenID).Set(ctx, record); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to store refresh token"})
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       token.UID,
	})
}

// RefreshSession issues a new access token against a stored refresh token.
func RefreshSession(c *gin.Context, fs *firestore.Client, cfg *config.Config) {
	userID := c.MustGet("userId").(string)
	tokenID := c.MustGet("tokenId").(string)
	presented := c.MustGet("refreshToken").(string)

	ctx := c.Request.Context()
	doc, err := fs.Collection("refresh_tokens").Doc(tokenID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token is revoked"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load refresh token"})
		return
	}

	var record model.RefreshTokenRecord
	if err := doc.DataTo(&record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse refresh token record"})
		return
	}

	if record.UserID != userID || !services.CheckRefreshToken(record.TokenHash, presented) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token mismatch"})
		return
	}
	if time.Now().After(record.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token is expired"})
		return
	}

	accessToken, err := services.CreateAccessToken(cfg.JWTSecret, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create access token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

// SignOut revokes the presented refresh token.
func SignOut(c *gin.Context, fs *firestore.Client) {
	tokenID := c.MustGet("tokenId").(string)

	if _, err := fs.Collection("refresh_tokens").Doc(tokenID).Delete(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to revoke refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}
