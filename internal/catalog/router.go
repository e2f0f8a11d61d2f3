package catalog

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
)

// Routes returns a chi router with the zone catalog endpoints mounted.
func Routes(store Store, uploader Uploader, logger *slog.Logger) chi.Router {
	h := NewHandler(store, uploader, logger)

	r := chi.NewRouter()
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.HandleGet)
	r.Patch("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
