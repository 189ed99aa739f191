package api

import (
	"net/http"

	"github.com/dmadera/habit-tracker-backend/internal/api/handlers"
	"github.com/dmadera/habit-tracker-backend/internal/api/middleware"
	"github.com/dmadera/habit-tracker-backend/internal/service"
	"github.com/dmadera/habit-tracker-backend/internal/websocket"
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
	habitHandler := handlers.NewHabitHandler(services.Habit, hub)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
			})
		})

		// Protected habit routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			r.Route("/habits", func(r chi.Router) {
				r.Get("/", habitHandler.List)
				r.Post("/", habitHandler.Create)
				r.Put("/{id}", habitHandler.Update)
				r.Delete("/{id}", habitHandler.Delete)
				r.Put("/{id}/mark", habitHandler.ToggleCompletion)
				r.Get("/{id}/progress", habitHandler.Progress)
			})
		})

		// WebSocket endpoint
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
