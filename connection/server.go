package connection

import (
	"context"

	"taskcal/config"
	authctl "taskcal/controller/auth"
	"taskcal/controller/note"
	"taskcal/controller/notification"
	"taskcal/controller/stream"
	"taskcal/controller/task"
	"taskcal/controller/user"
	"taskcal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StartServer wires the Firebase clients into the router and serves until the
// listener fails.
func StartServer(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()

	clients, err := Firebase(ctx, cfg)
	if err != nil {
		return err
	}
	defer clients.Firestore.Close()
	log.Info("Firestore connection established")

	router := gin.New()
	router.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Api is running!"})
	})

	notifier := services.NewNotifier(clients.Firestore, log)

	authctl.SessionController(router, clients.Firestore, clients.Auth, cfg, notifier, log)
	task.TaskController(router, clients.Firestore, cfg, notifier, log)
	note.NoteController(router, clients.Firestore, cfg, log)
	notification.NotificationController(router, clients.Firestore, cfg, notifier)
	user.UserController(router, clients.Firestore, cfg)
	stream.StreamController(router, clients.Firestore, cfg, log)

	return router.Run(":" + cfg.Port)
}
