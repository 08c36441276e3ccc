package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/authcore/auth-service/internal/api/metrics"
	"github.com/authcore/auth-service/internal/core/token"
)

// Context keys set by Authenticate and read by handlers and RequireRole.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// Authenticate extracts and verifies the bearer token, then injects the
// principal into the request context. Every failure kind — missing header,
// wrong scheme, malformed, tampered, expired — surfaces as the same 401 body;
// the internal reason only reaches logs and metrics.
func Authenticate(tokens *token.Service, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return reject(c, log, "missing")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return reject(c, log, "bad_scheme")
			}

			principal, err := tokens.Verify(parts[1])
			if err != nil {
				return reject(c, log, rejectionReason(err))
			}

			c.Set(CtxUserID, principal.ID)
			c.Set(CtxRole, principal.Role)

			return next(c)
		}
	}
}

func reject(c echo.Context, log zerolog.Logger, reason string) error {
	metrics.TokenRejectedTotal.WithLabelValues(reason).Inc()
	log.Debug().
		Str("reason", reason).
		Str("path", c.Path()).
		Msg("bearer token rejected")
	return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, token.ErrExpired):
		return "expired"
	case errors.Is(err, token.ErrBadSignature):
		return "bad_signature"
	default:
		return "malformed"
	}
}
