package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chaudl113/uptime-web-api/pkg/apperror"
	"github.com/rs/zerolog/log"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("error in encoding response and sending it to client")
	}
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Error: message})
}

// FromAppError writes err with the status its kind maps to.
func FromAppError(w http.ResponseWriter, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteError(w, apperror.HTTPStatus(appErr), appErr.ClientMessage())
}
