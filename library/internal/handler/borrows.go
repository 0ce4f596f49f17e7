package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/model"
)

type borrowActionRequest struct {
	Action string `json:"action" form:"action" validate:"required,oneof=borrow"`
	BookID int    `json:"book_id" form:"book_id" validate:"required,min=1"`
	SeatID int    `json:"seat_id" form:"seat_id" validate:"omitempty,min=1"`
}

type borrowResponse struct {
	Message string             `json:"message"`
	Result  model.BorrowResult `json:"result"`
}

type recordResponse struct {
	Message string             `json:"message"`
	Record  model.BorrowRecord `json:"record"`
}

// SearchAction godoc
// @Summary borrow a book, optionally reserving a reading-room seat
// @Tags search
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body borrowActionRequest true "action=borrow"
// @Success 201 {object} borrowResponse
// @Failure 400,404,409 {object} messageResponse
// @Router /api/v1/search [post]
func (h *Handler) SearchAction(c echo.Context) error {
	var req borrowActionRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	sess, _ := currentSession(c)
	borrow := model.BorrowRequest{UserID: sess.UserID, BookID: req.BookID}
	if req.SeatID > 0 {
		borrow.SeatID = &req.SeatID
	}

	res, err := h.svc.Borrow(c.Request().Context(), borrow)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, borrowResponse{
		Message: "borrowed " + res.Title,
		Result:  res,
	})
}

// Loans godoc
// @Summary borrow records of the current patron
// @Tags search
// @Produce json
// @Param status query string false "active or returned"
// @Param page query int false "page"
// @Success 200 {object} model.ListBorrows
// @Failure 400,401 {object} messageResponse
// @Router /api/v1/loans [get]
func (h *Handler) Loans(c echo.Context) error {
	page, err := pageParam(c)
	if err != nil {
		return err
	}
	status, err := statusParam(c)
	if err != nil {
		return err
	}
	sess, _ := currentSession(c)
	res, err := h.svc.Loans(c.Request().Context(), sess.UserID, status, page)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// ListBorrows godoc
// @Summary borrow records with statistics
// @Tags borrows
// @Produce json
// @Param keyword query string false "username, title or author"
// @Param status query string false "active or returned"
// @Param user query string false "username"
// @Param page query int false "page"
// @Success 200 {object} model.BorrowPage
// @Failure 400,401,403 {object} messageResponse
// @Router /api/v1/admin/borrows [get]
func (h *Handler) ListBorrows(c echo.Context) error {
	page, err := pageParam(c)
	if err != nil {
		return err
	}
	status, err := statusParam(c)
	if err != nil {
		return err
	}
	res, err := h.svc.BorrowPage(c.Request().Context(), model.BorrowFilter{
		Keyword: c.QueryParam("keyword"),
		Status:  status,
		User:    c.QueryParam("user"),
		Page:    page,
	})
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// ReturnBorrow godoc
// @Summary close an active loan
// @Tags borrows
// @Produce json
// @Param id path int true "borrow record id"
// @Success 200 {object} recordResponse
// @Failure 400,409 {object} messageResponse
// @Router /api/v1/admin/borrows/{id}/return [post]
func (h *Handler) ReturnBorrow(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	rec, err := h.svc.Return(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, recordResponse{Message: "book returned", Record: rec})
}

// RenewBorrow godoc
// @Summary extend the due date of an active loan once
// @Tags borrows
// @Produce json
// @Param id path int true "borrow record id"
// @Success 200 {object} recordResponse
// @Failure 400,409 {object} messageResponse
// @Router /api/v1/admin/borrows/{id}/renew [post]
func (h *Handler) RenewBorrow(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	rec, err := h.svc.Renew(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, recordResponse{Message: "loan renewed", Record: rec})
}
