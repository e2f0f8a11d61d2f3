package admin

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/ashique01/dhaka2070/internal/auth"
)

// Routes returns a chi router with the admin endpoints mounted.
// Register and login are public; everything else requires a bearer token.
func Routes(store Store, issuer *auth.TokenIssuer, logLevel *slog.LevelVar, logger *slog.Logger) chi.Router {
	h := NewHandler(store, issuer, logLevel, logger)

	r := chi.NewRouter()
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(issuer, logger))
		r.Get("/dashboard", h.HandleDashboard)
		r.Post("/loglevel", h.HandleSetLogLevel)
	})

	return r
}
