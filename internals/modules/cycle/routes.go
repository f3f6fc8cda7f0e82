package cycle

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes serves the trigger at the mount point. mws guard GET and POST only;
// preflight requests carry no credentials.
func Routes(h *Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Options("/", h.Preflight)

	r.Group(func(r chi.Router) {
		r.Use(mws...)
		r.Get("/", h.CheckMonitors)
		r.Post("/", h.CheckMonitors)
	})

	return r
}
