package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "merlin/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"merlin/backend/internal/interfaces"
)

// NewRouter creates and configures a new chi router with all the application's routes.
func NewRouter(authHandler *AuthHandler, chatHandler *ChatHandler, users interfaces.UserService, allowedOrigin string) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	r.Use(middleware.RequestID) // Injects a unique request ID into the context.
	r.Use(middleware.RealIP)    // Sets the remote address to the real IP from proxy headers.
	r.Use(middleware.Logger)    // Logs the start and end of each request with useful info.
	r.Use(middleware.Recoverer) // Recovers from panics and returns a 500 error.

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{allowedOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Serves the auto-generated Swagger UI for API documentation.
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// A simple health check endpoint for container orchestration probes.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(15 * time.Second))

			r.Post("/login", authHandler.Login)
			r.Get("/check-login", authHandler.CheckLogin)
		})

		// Authenticated routes.
		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(users))

			// Fast CRUD routes get a request timeout so client connections
			// never hang indefinitely.
			r.Group(func(r chi.Router) {
				r.Use(middleware.Timeout(15 * time.Second))

				r.Post("/logout", authHandler.Logout)
				r.Put("/users/location", authHandler.UpdateLocation)

				r.Post("/chats", chatHandler.CreateChat)
				r.Get("/chats", chatHandler.ListChats)
				r.Get("/chats/{chatID}", chatHandler.GetChat)
				r.Put("/chats/{chatID}", chatHandler.RenameChat)
				r.Delete("/chats/{chatID}", chatHandler.DeleteChat)
				r.Post("/chats/{chatID}/remove-pdf", chatHandler.RemoveDocument)
			})

			// Message turns wait on the completion API and uploads run text
			// extraction; both get a generous timeout of their own.
			r.Group(func(r chi.Router) {
				r.Use(middleware.Timeout(3 * time.Minute))

				r.Post("/chats/{chatID}/messages", chatHandler.SendMessage)
				r.Post("/chats/{chatID}/upload-pdfs", chatHandler.UploadDocuments)
			})
		})
	})

	return r
}
