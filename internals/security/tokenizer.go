package security

import (
	"errors"
	"strings"
	"time"

	"github.com/chaudl113/uptime-web-api/config"
	"github.com/chaudl113/uptime-web-api/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
)

type TokenService struct {
	secret    string
	expiryMin int
}

func NewTokenService(authCfg *config.AuthConfig) (*TokenService, error) {
	if authCfg.Secret == "" {
		return nil, errors.New("auth secret is empty")
	}
	return &TokenService{
		secret:    authCfg.Secret,
		expiryMin: authCfg.ExpiryMin,
	}, nil
}

// GenerateAccessToken mints a trigger token for subject. Validation refuses
// tokens without a subject, so none are minted.
func (ts *TokenService) GenerateAccessToken(subject string) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", apperror.New(apperror.InvalidInput, "service.token.generate_access_token", "token subject is required", nil)
	}

	now := time.Now()
	expiryTime := now.Add(time.Duration(ts.expiryMin) * time.Minute)

	claims := TriggerClaims{
		Scope: ScopeCheckMonitors,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiryTime),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(ts.secret))
	if err != nil {
		return "", err
	}

	return signedToken, nil
}

func (ts *TokenService) ValidateAccessToken(accessToken string) (*TriggerClaims, error) {
	const op string = "service.token.validate_access_token"

	claims := &TriggerClaims{}

	token, err := jwt.ParseWithClaims(
		accessToken,
		claims,
		func(t *jwt.Token) (any, error) {
			return []byte(ts.secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, &apperror.Error{
			Kind:    apperror.Unauthorised,
			Op:      op,
			Message: "invalid token",
			Err:     err,
		}
	}

	if claims.Scope != ScopeCheckMonitors || claims.Subject == "" {
		return nil, &apperror.Error{
			Kind:    apperror.Unauthorised,
			Op:      op,
			Message: "token is not allowed to trigger checks",
		}
	}

	return claims, nil
}
