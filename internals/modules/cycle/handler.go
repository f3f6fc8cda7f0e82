package cycle

import (
	"context"
	"net/http"
	"time"

	middle "github.com/chaudl113/uptime-web-api/internals/middleware"
	"github.com/chaudl113/uptime-web-api/pkg/apperror"
	"github.com/chaudl113/uptime-web-api/pkg/utils"
	"github.com/rs/zerolog"
)

type Handler struct {
	runner Runner
	now    func() time.Time
	logger *zerolog.Logger
}

func NewHandler(runner Runner, logger *zerolog.Logger) *Handler {
	return &Handler{
		runner: runner,
		now:    time.Now,
		logger: logger,
	}
}

// CheckMonitors runs one cycle. The cycle outlives a disconnecting client.
func (h *Handler) CheckMonitors(w http.ResponseWriter, r *http.Request) {
	ctx := context.WithoutCancel(r.Context())

	log := h.logger.With().Logger()
	if caller, ok := middle.CallerFromContext(r.Context()); ok {
		log = log.With().Str("caller", caller).Logger()
	}

	summary, err := h.runner.RunCycle(ctx, h.now().UTC())
	if err != nil {
		if apperror.IsKind(err, apperror.Conflict) {
			log.Warn().Msg("check cycle refused, another one is running")
		} else {
			log.Error().Err(err).Msg("check cycle failed")
		}
		utils.FromAppError(w, err)
		return
	}

	log.Info().
		Int("checked", summary.Checked).
		Int("skipped", summary.Skipped).
		Msg("check cycle triggered over http")
	utils.WriteJSON(w, http.StatusOK, summary)
}

// Preflight answers CORS preflight requests; the cors middleware sets the headers.
func (h *Handler) Preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
