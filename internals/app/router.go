package app

import (
	"net/http"

	middle "github.com/chaudl113/uptime-web-api/internals/middleware"
	"github.com/chaudl113/uptime-web-api/internals/modules/cycle"
	"github.com/chaudl113/uptime-web-api/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func RegisterRoutes(c *Container) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middle.Logger(c.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:     []string{"Content-Type", "Authorization", "X-Client-Info", "Apikey"},
		OptionsPassthrough: true,
		MaxAge:             300,
	}))

	r.Get("/healthz", health(c))

	checkRoutes := cycle.Routes(c.cycleHandler, c.triggerMiddlewares()...)

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Mount("/check-monitors", checkRoutes)
	})

	// path used by the previous deployment's cron trigger
	r.Route("/functions/v1", func(fn chi.Router) {
		fn.Mount("/check-monitors", checkRoutes)
	})

	return r
}

func health(c *Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := c.Ping(r.Context()); err != nil {
			c.Logger.Error().Err(err).Msg("health check failed")
			utils.WriteError(w, http.StatusServiceUnavailable, "data store unavailable")
			return
		}
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
