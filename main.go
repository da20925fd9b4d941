package main

import (
	"log"

	"taskcal/config"
	"taskcal/connection"
	"taskcal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	if err := connection.StartServer(cfg, zl); err != nil {
		zl.Fatal("server exited", zap.Error(err))
	}
}
