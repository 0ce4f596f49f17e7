package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" form:"password" validate:"required,min=6,maxbytes=72"`
	Email    string `json:"email" form:"email" validate:"omitempty,email,max=255"`
}

type profileRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email,max=255"`
	Password string `json:"password" form:"password" validate:"omitempty,min=6,maxbytes=72"`
}

// Register godoc
// @Summary create a patron account
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body registerRequest true "account"
// @Success 201 {object} model.User
// @Failure 400,409 {object} messageResponse
// @Router /api/v1/auth/register [post]
func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	user, err := h.svc.Register(c.Request().Context(), req.Username, req.Password, req.Email)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary sign in and receive the session cookie
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body loginRequest true "credentials"
// @Success 200 {object} model.User
// @Failure 400,401 {object} messageResponse
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	user, err := h.svc.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return h.httpError(err)
	}
	_, token, err := h.sessions.Create(ctx, user)
	if err != nil {
		return h.httpError(err)
	}
	c.SetCookie(h.sessions.Cookie(token))
	h.log.Info("login", zap.Int("user", user.ID), zap.String("role", string(user.Role)))
	return c.JSON(http.StatusOK, user)
}

// Logout godoc
// @Summary drop the current session
// @Tags auth
// @Produce json
// @Success 200 {object} messageResponse
// @Router /api/v1/auth/logout [post]
func (h *Handler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	if cookie, err := c.Cookie(h.sessions.CookieName()); err == nil && cookie.Value != "" {
		if sess, err := h.sessions.Resolve(ctx, cookie.Value); err == nil {
			if err := h.sessions.Destroy(ctx, sess.ID); err != nil {
				return h.httpError(err)
			}
		}
	}
	c.SetCookie(h.sessions.ExpiredCookie())
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

// Me godoc
// @Summary current account
// @Tags auth
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} messageResponse
// @Router /api/v1/me [get]
func (h *Handler) Me(c echo.Context) error {
	sess, _ := currentSession(c)
	user, err := h.svc.GetUser(c.Request().Context(), sess.UserID)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe godoc
// @Summary change own email or password
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body profileRequest true "profile"
// @Success 200 {object} model.User
// @Failure 400,401 {object} messageResponse
// @Router /api/v1/me [put]
func (h *Handler) UpdateMe(c echo.Context) error {
	var req profileRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	sess, _ := currentSession(c)
	user, err := h.svc.UpdateProfile(c.Request().Context(), sess.UserID, req.Email, req.Password)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}
