package stream

import (
	"net/http"

	"taskcal/config"
	"taskcal/services"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin checking is handled by the CORS layer; the token is the gate.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamController exposes the realtime feed endpoint. Browsers cannot set
// headers on a WebSocket handshake, so the access token rides in the query.
func StreamController(router *gin.Engine, fs *firestore.Client, cfg *config.Config, log *zap.Logger) {
	feed := services.NewFeed(fs, log)

	router.GET("/stream", func(c *gin.Context) {
		token := c.Query("token")
		userID, err := services.ParseAccessToken(cfg.JWTSecret, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid access token"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		client := services.NewStreamClient(conn, feed, userID, log)
		go client.WritePump()
		client.ReadPump()
	})
}
