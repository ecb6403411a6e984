package api

import (
	"net/http"

	"github.com/dstone/movie-club-server/internal/api/handlers"
	"github.com/dstone/movie-club-server/internal/api/middleware"
	"github.com/dstone/movie-club-server/internal/service"
	"github.com/dstone/movie-club-server/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, hub *websocket.Hub) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	movieHandler := handlers.NewMovieHandler(services.Watchlist)
	pickHandler := handlers.NewPickHandler(services.Pick, services.Auth, hub)
	seasonHandler := handlers.NewSeasonHandler(services.Season, hub)
	statsHandler := handlers.NewStatsHandler(services.Stats)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			// Movie routes
			r.Route("/movies", func(r chi.Router) {
				r.Get("/current", movieHandler.Current)
				r.Get("/hall-of-fame", movieHandler.HallOfFame)
				r.Post("/{id}/rate", movieHandler.Rate)
			})

			// Pick routes
			r.Route("/picks", func(r chi.Router) {
				r.Post("/", pickHandler.Submit)
				r.Delete("/", pickHandler.Withdraw)
				r.Get("/status", pickHandler.Status)
				r.Get("/mine", pickHandler.List)
			})

			// Stats routes
			r.Get("/stats/group", statsHandler.Group)

			// Admin routes
			r.Route("/admin/season", func(r chi.Router) {
				r.Use(middleware.RequireAdmin(services.Auth))
				r.Post("/reset", seasonHandler.Reset)
				r.Post("/reveal", seasonHandler.Reveal)
				r.Get("/status", seasonHandler.Status)
			})
		})

		// WebSocket endpoint
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
