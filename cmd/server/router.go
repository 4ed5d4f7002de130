package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/account-api/internal/api"
	apiMiddleware "github.com/phrazzld/account-api/internal/api/middleware"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenService)
	r.Use(authMiddleware.Authenticate)

	authHandler := api.NewAuthHandler(app.tokenService, app.config.Auth.CookieDomain)
	userHandler := api.NewUserHandler(app.userStore)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", slog.String("error", err.Error()))
		}
	})

	r.Post("/login", api.ErrorMiddleware(authHandler.Login))

	r.Route("/users", func(r chi.Router) {
		r.Get("/", api.ErrorMiddleware(userHandler.List))
		r.Post("/", api.ErrorMiddleware(userHandler.Create))
		r.Get("/{id}", api.ErrorMiddleware(userHandler.Get))
		r.Put("/{id}", api.ErrorMiddleware(userHandler.Update))
		r.Delete("/{id}", api.ErrorMiddleware(userHandler.Delete))

		// Without an id these answer "id can not be empty".
		r.Put("/", api.ErrorMiddleware(userHandler.Update))
		r.Delete("/", api.ErrorMiddleware(userHandler.Delete))
	})

	return r
}
