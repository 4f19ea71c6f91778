package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	httpHandlers "github.com/taskshare/core/internal/adapters/http"
	"github.com/taskshare/core/internal/infrastructure/config"
	"github.com/taskshare/core/internal/infrastructure/logger"
	"github.com/taskshare/core/internal/ports"
)

// sessionCookieName carries the session token for browser clients; API
// clients use the Authorization header instead.
const sessionCookieName = "session"

// identityMiddleware resolves the acting user for every request and stores
// it in the context under httpHandlers.ActorContextKey. A valid session
// token wins; an invalid one is rejected outright. With no token at all the
// request either degrades to the configured anonymous identity (development
// only, gated by auth.allow_anonymous) or fails with 401.
func identityMiddleware(authService ports.AuthService, authCfg config.AuthConfig, log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := extractToken(c)

			if tokenString == "" {
				if !authCfg.AllowAnonymous {
					return echo.NewHTTPError(http.StatusUnauthorized, "Missing session token")
				}
				c.Set(httpHandlers.ActorContextKey, authCfg.AnonymousID())
				return next(c)
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				log.LogSecurityEvent("invalid_token", "", c.RealIP(), map[string]interface{}{
					"error": err.Error(),
				})
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid session token")
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid session token")
			}

			c.Set(httpHandlers.ActorContextKey, userID)
			return next(c)
		}
	}
}

// extractToken pulls the session token from the Authorization header or,
// failing that, the session cookie.
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token != authHeader {
			return token
		}
		return ""
	}

	cookie, err := c.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
