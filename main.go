package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"tableserve/configs"
	"tableserve/repository"
	"tableserve/routes"
	"tableserve/services"
	"tableserve/ws"
)

func main() {
	cfg := configs.LoadConfig()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB
	if err := configs.ConnectionDB(cfg); err != nil {
		log.Fatal(err)
	}
	db := configs.DB()

	// migrate
	if err := configs.SetupDatabase(); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	// live order feed
	hub := ws.NewOrderHub(logger)
	go hub.Run()

	// hourly unverified-account sweep
	cleanup := services.NewCleanupService(repository.NewUserRepository(db), logger)
	cleanup.Start(context.Background())

	// HTTP
	r := gin.Default()
	routes.RegisterRoutes(r, db, cfg, hub)

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
