package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	httpapi "github.com/bastanley1211/fertilitytracker/internal/api/http"
	"github.com/bastanley1211/fertilitytracker/internal/config"
	"github.com/bastanley1211/fertilitytracker/internal/cycle"
	"github.com/bastanley1211/fertilitytracker/internal/scheduler"
	"github.com/bastanley1211/fertilitytracker/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// In-memory record store fed from the persisted reading list.
	memStore := store.NewMemoryStore()
	repo := store.NewFileRepository(cfg.DataFile)

	// Core service: store, detector and predictor behind one lock.
	service := cycle.NewService(memStore, repo)
	if err := service.LoadFromRepository(); err != nil {
		log.Fatalf("failed to load persisted readings: %v", err)
	}

	// Scheduler that periodically flushes the store to disk.
	if cfg.Autosave {
		sched := scheduler.New(service, cfg.SaveInterval)
		if err := sched.Start(); err != nil {
			log.Fatalf("failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "cyclesense",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "cyclesense",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}

	// Final flush so nothing entered since the last autosave is lost.
	if err := service.Flush(); err != nil {
		log.Printf("error persisting readings on shutdown: %v", err)
	}
}
