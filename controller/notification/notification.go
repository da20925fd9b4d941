package notification

import (
	"net/http"
	"sort"

	"taskcal/config"
	"taskcal/middleware"
	"taskcal/model"
	"taskcal/services"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func NotificationController(router *gin.Engine, fs *firestore.Client, cfg *config.Config, notifier *services.Notifier) {
	routes := router.Group("/notifications", middleware.AccessToken(cfg.JWTSecret))
	{
		routes.GET("", func(c *gin.Context) {
			ListNotifications(c, fs)
		})
		routes.POST("/:id/read", func(c *gin.Context) {
			MarkRead(c, fs)
		})
		routes.POST("/read-all", func(c *gin.Context) {
			MarkAllRead(c, notifier)
		})
		routes.DELETE("/:id", func(c *gin.Context) {
			DeleteNotification(c, fs)
		})
		routes.DELETE("", func(c *gin.Context) {
			ClearAll(c, notifier)
		})
	}
}

// ListNotifications returns the owner's notifications, newest first, plus
// the derived unread count.
func ListNotifications(c *gin.Context, fs *firestore.Client) {
	userID := c.MustGet("userId").(string)

	notifications := []model.Notification{}
	iter := fs.Collection("notifications").Where("userId", "==", userID).Documents(c.Request.Context())
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to list notifications"})
			return
		}
		n, err := services.NormalizeNotification(doc.Ref.ID, doc.Data())
		if err != nil {
			continue
		}
		notifications = append(notifications, n)
	}

	// Sorted here instead of in the query to avoid a composite index.
	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unreadCount":   services.UnreadCount(notifications),
	})
}

func MarkRead(c *gin.Context, fs *firestore.Client) {
	userID := c.MustGet("userId").(string)
	notificationID := c.Param("id")

	ctx := c.Request.Context()
	doc, err := fs.Collection("notifications").Doc(notificationID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		} else {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load notification"})
		}
		return
	}
	n, err := services.NormalizeNotification(doc.Ref.ID, doc.Data())
	if err != nil || n.OwnerID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	_, err = fs.Collection("notifications").Doc(notificationID).Update(ctx, []firestore.Update{
		{Path: "read", Value: true},
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to mark notification read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked read"})
}

func MarkAllRead(c *gin.Context, notifier *services.Notifier) {
	userID := c.MustGet("userId").(string)

	if err := notifier.MarkAllRead(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to mark notifications read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked read"})
}

func DeleteNotification(c *gin.Context, fs *firestore.Client) {
	userID := c.MustGet("userId").(string)
	notificationID := c.Param("id")

	ctx := c.Request.Context()
	doc, err := fs.Collection("notifications").Doc(notificationID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		} else {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load notification"})
		}
		return
	}
	n, err := services.NormalizeNotification(doc.Ref.ID, doc.Data())
	if err != nil || n.OwnerID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	if _, err := fs.Collection("notifications").Doc(notificationID).Delete(ctx); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

func ClearAll(c *gin.Context, notifier *services.Notifier) {
	userID := c.MustGet("userId").(string)

	if err := notifier.ClearAll(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to clear notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications cleared"})
}
