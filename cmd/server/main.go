package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dstone/movie-club-server/internal/api"
	"github.com/dstone/movie-club-server/internal/catalog"
	"github.com/dstone/movie-club-server/internal/config"
	"github.com/dstone/movie-club-server/internal/repository/postgres"
	"github.com/dstone/movie-club-server/internal/service"
	"github.com/dstone/movie-club-server/internal/websocket"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real deployments set environment variables
	// directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("WARN [main] could not read .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Initialize WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize movie catalog client
	catalogClient := catalog.NewTMDBClient(cfg.TMDBBaseURL, cfg.TMDBAPIKey, cfg.CreditFetchInterval)

	// Initialize services
	services := service.NewServices(repos, catalogClient, cfg)

	// Initialize router
	router := api.NewRouter(services, hub)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	hub.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
