package middle

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/chaudl113/uptime-web-api/internals/security"
	"github.com/chaudl113/uptime-web-api/pkg/utils"
	"github.com/rs/zerolog"
)

type callerCtxKeyType struct{}

var callerCtxKey = callerCtxKeyType{}

type TokenValidator interface {
	ValidateAccessToken(accessToken string) (*security.TriggerClaims, error)
}

type AuthMiddleware struct {
	tokenSvc TokenValidator
	logger   *zerolog.Logger
}

func NewAuthMiddleware(tokenSvc TokenValidator, logger *zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc: tokenSvc,
		logger:   logger,
	}
}

// Handle rejects requests without a valid trigger token.
func (a *AuthMiddleware) Handle(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		token, err := extractBearerToken(r)
		if err != nil {
			utils.WriteError(w, http.StatusUnauthorized, err.Error())
			return
		}

		claims, err := a.tokenSvc.ValidateAccessToken(token)
		if err != nil {
			a.logger.Debug().Err(err).Msg("trigger token rejected")
			utils.FromAppError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), callerCtxKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	}

	return http.HandlerFunc(fn)
}

func extractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")

	if authHeader == "" {
		return "", errors.New("missing Authorization header")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.New("invalid Authorization header")
	}

	return parts[1], nil
}

// CallerFromContext returns the token subject stored by AuthMiddleware.
func CallerFromContext(ctx context.Context) (string, bool) {
	caller, ok := ctx.Value(callerCtxKey).(string)
	return caller, ok
}
