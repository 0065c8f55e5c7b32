package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// SessionCookieName is the anonymous storefront session cookie.
	SessionCookieName = "mf_session"

	// SessionCookieMaxAge matches the state store's session retention.
	SessionCookieMaxAge = 30 * 24 * time.Hour

	// sessionContextKey is the echo context key holding the session ID.
	sessionContextKey = "storefront_session_id"
)

// Session returns a middleware that ensures every request carries a
// session ID: an existing valid cookie is reused, anything else gets a
// fresh UUID set on the response. The storefront has no accounts; the
// session cookie is the only identity.
func Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := ""
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				if _, err := uuid.Parse(cookie.Value); err == nil {
					sessionID = cookie.Value
				}
			}

			if sessionID == "" {
				sessionID = uuid.New().String()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookieName,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   int(SessionCookieMaxAge.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(sessionContextKey, sessionID)
			return next(c)
		}
	}
}

// GetSessionID returns the request's session ID, or empty when the
// session middleware did not run.
func GetSessionID(c echo.Context) string {
	if id, ok := c.Get(sessionContextKey).(string); ok {
		return id
	}
	return ""
}
