package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/model"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/session"
)

const sessionCtxKey = "session"

// RequireSession resolves the session cookie and stores the session in the echo context.
func (h *Handler) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(h.sessions.CookieName())
		if err != nil || cookie.Value == "" {
			return h.unauthenticated(c)
		}
		sess, err := h.sessions.Resolve(c.Request().Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				c.SetCookie(h.sessions.ExpiredCookie())
				return h.unauthenticated(c)
			}
			return h.httpError(err)
		}
		c.Set(sessionCtxKey, sess)
		return next(c)
	}
}

// RequireRole rejects sessions of any other role with 403; it must run after RequireSession.
func (h *Handler) RequireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := currentSession(c)
			if !ok {
				return h.unauthenticated(c)
			}
			if sess.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}
			return next(c)
		}
	}
}

// unauthenticated sends browsers to the login page and API clients a 401.
func (h *Handler) unauthenticated(c echo.Context) error {
	if strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMETextHTML) {
		return c.Redirect(http.StatusSeeOther, h.loginPath)
	}
	return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
}

func currentSession(c echo.Context) (session.Session, bool) {
	sess, ok := c.Get(sessionCtxKey).(session.Session)
	return sess, ok
}
