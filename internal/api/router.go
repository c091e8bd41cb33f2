package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/fittrack/fittrack-be/internal/api/handlers"
	"github.com/fittrack/fittrack-be/internal/auth"
	"github.com/fittrack/fittrack-be/internal/services"
	"github.com/fittrack/fittrack-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router. The guard is
// applied only to the protected group; auth endpoints stay public.
func NewRouter(
	guard *auth.Guard,
	hub *websocket.Hub,
	authService services.AuthServiceProvider,
	userService services.UserServiceProvider,
	goalService services.GoalServiceProvider,
	eventService services.EventServiceProvider,
	allowedOrigin string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	goalHandler := handlers.NewGoalHandler(goalService)
	activityHandler := handlers.NewActivityHandler(eventService)
	wsHandler := handlers.NewWebSocketHandler(hub)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Everything below requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(guard.Middleware)

			r.Route("/goals", func(r chi.Router) {
				r.Get("/", goalHandler.GetAll)
				r.Post("/", goalHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Put("/", goalHandler.Update)
					r.Delete("/", goalHandler.Delete)
				})
			})

			r.Route("/users/me", func(r chi.Router) {
				r.Get("/", userHandler.GetMe)
				r.Put("/", userHandler.UpdateMe)
				r.Put("/password", userHandler.ChangePassword)
			})

			r.Get("/activity", activityHandler.GetRecent)
			r.Get("/ws", wsHandler.Serve)
		})
	})

	return r
}
