package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type userRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" form:"email" validate:"omitempty,email,max=255"`
}

// ListUsers godoc
// @Summary accounts with statistics
// @Tags users
// @Produce json
// @Param page query int false "page"
// @Success 200 {object} model.UserPage
// @Failure 400,401,403 {object} messageResponse
// @Router /api/v1/admin/users [get]
func (h *Handler) ListUsers(c echo.Context) error {
	page, err := pageParam(c)
	if err != nil {
		return err
	}
	res, err := h.svc.UserPage(c.Request().Context(), page)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// UpdateUser godoc
// @Summary edit username and email
// @Tags users
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "user id"
// @Param request body userRequest true "user"
// @Success 200 {object} model.User
// @Failure 400,404,409 {object} messageResponse
// @Router /api/v1/admin/users/{id} [post]
func (h *Handler) UpdateUser(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req userRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	user, err := h.svc.UpdateUser(c.Request().Context(), id, req.Username, req.Email)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// ResetPassword godoc
// @Summary reset a password to the default
// @Tags users
// @Produce json
// @Param id path int true "user id"
// @Success 200 {object} messageResponse
// @Failure 400,404 {object} messageResponse
// @Router /api/v1/admin/users/{id}/reset-password [post]
func (h *Handler) ResetPassword(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.svc.ResetPassword(c.Request().Context(), id); err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password reset"})
}
