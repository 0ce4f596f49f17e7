package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Search godoc
// @Summary borrowable books and the patron's loan counters
// @Tags search
// @Produce json
// @Param keyword query string false "title, author or isbn"
// @Param page query int false "page"
// @Success 200 {object} model.SearchPage
// @Failure 400,401 {object} messageResponse
// @Router /api/v1/search [get]
func (h *Handler) Search(c echo.Context) error {
	page, err := pageParam(c)
	if err != nil {
		return err
	}
	sess, _ := currentSession(c)
	res, err := h.svc.Search(c.Request().Context(), sess.UserID, c.QueryParam("keyword"), page)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// Seats godoc
// @Summary free reading-room seats
// @Tags search
// @Produce json
// @Success 200 {array} model.Seat
// @Router /api/v1/seats [get]
func (h *Handler) Seats(c echo.Context) error {
	seats, err := h.svc.FreeSeats(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, seats)
}

// Dashboard godoc
// @Summary landing counters, popular books and the patron's latest loans
// @Tags search
// @Produce json
// @Success 200 {object} model.Dashboard
// @Router /api/v1/dashboard [get]
func (h *Handler) Dashboard(c echo.Context) error {
	sess, _ := currentSession(c)
	dash, err := h.svc.Dashboard(c.Request().Context(), sess.UserID, sess.Role)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, dash)
}
