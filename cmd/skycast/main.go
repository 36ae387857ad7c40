package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/skycast/internal/api"
	"github.com/terraincognita07/skycast/internal/cli"
	"github.com/terraincognita07/skycast/internal/config"
	"github.com/terraincognita07/skycast/internal/db"
	"github.com/terraincognita07/skycast/internal/scheduler"
	"github.com/terraincognita07/skycast/internal/security"
	"github.com/terraincognita07/skycast/internal/services"
	"github.com/terraincognita07/skycast/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if len(os.Args) >= 3 && os.Args[1] == "reset-password" {
		if err := cli.RunResetPasswordCommand(cfg.DBPath, os.Args[2]); err != nil {
			log.Fatalf("reset password failed: %v", err)
		}
		return
	}

	secretKey := cfg.SecretKey
	if secretKey == "" {
		// Sessions do not survive a restart without a configured secret.
		generated, err := security.RandomString(48, "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")
		if err != nil {
			log.Fatalf("generate session secret failed: %v", err)
		}
		secretKey = generated
		log.Println("SECRET_KEY not set; using an ephemeral session secret")
	}

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	repositories := db.NewRepositories(database)

	httpClient := &http.Client{Timeout: cfg.FetchTimeout}
	weatherClient := weather.NewClient(httpClient, cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL, repositories.Snapshots)

	handler := api.NewHandler(repositories, secretKey, weatherClient, cfg.CookieSecure)

	app := fiber.New(fiber.Config{
		AppName:               "Skycast",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)

	retention := services.NewRetentionService(repositories.Snapshots, cfg.SnapshotRetention)
	pruner := scheduler.New(retention, cfg.SnapshotPruneInterval)
	if err := pruner.Start(); err != nil {
		log.Fatalf("scheduler start failed: %v", err)
	}
	defer pruner.Stop()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Skycast listening on http://0.0.0.0:%s (db: %s)", cfg.Port, cfg.DBPath)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
