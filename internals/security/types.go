package security

import "github.com/golang-jwt/jwt/v5"

// ScopeCheckMonitors allows running check cycles through the HTTP trigger.
const ScopeCheckMonitors = "monitors:check"

// TriggerClaims identify the caller of the trigger endpoint, usually a cron
// job or another service. Subject names the caller.
type TriggerClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}
