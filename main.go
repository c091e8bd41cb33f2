package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fittrack/fittrack-be/internal/api"
	"github.com/fittrack/fittrack-be/internal/api/handlers"
	"github.com/fittrack/fittrack-be/internal/auth"
	"github.com/fittrack/fittrack-be/internal/config"
	"github.com/fittrack/fittrack-be/internal/database"
	"github.com/fittrack/fittrack-be/internal/logger"
	"github.com/fittrack/fittrack-be/internal/monitoring"
	"github.com/fittrack/fittrack-be/internal/services"
	"github.com/fittrack/fittrack-be/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration; a missing signing secret is fatal here, not
	// a per-request error.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply database migrations: %v", err)
	}

	// Set up the activity feed hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services; everything is wired explicitly, no package
	// globals.
	codec := auth.NewTokenCodec(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := services.NewUserService(db)
	eventService := services.NewEventService(db, hub)
	authService := services.NewAuthService(userService, codec, eventService)
	goalService := services.NewGoalService(db, eventService)

	guard := auth.NewGuard(codec, handlers.RespondError)

	// Set up and run the background due-goal reminder
	reminder, err := monitoring.NewReminder(goalService, eventService, cfg.ReminderSchedule, cfg.EventRetention)
	if err != nil {
		log.Fatalf("Failed to initialize reminder: %v", err)
	}
	go reminder.Run()

	// Set up router
	router := api.NewRouter(guard, hub, authService, userService, goalService, eventService, cfg.AllowedOrigin)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on port %d\n", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	reminder.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
