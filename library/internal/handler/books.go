package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/model"
)

type bookRequest struct {
	Title    string `json:"title" form:"title" validate:"required,max=255"`
	Author   string `json:"author" form:"author" validate:"required,max=255"`
	ISBN     string `json:"isbn" form:"isbn" validate:"required,max=32"`
	Category string `json:"category" form:"category" validate:"required,max=64"`
	Total    int    `json:"total" form:"total" validate:"min=1"`
}

func (r bookRequest) input() model.BookInput {
	return model.BookInput{
		Title:    r.Title,
		Author:   r.Author,
		ISBN:     r.ISBN,
		Category: r.Category,
		Total:    r.Total,
	}
}

// ListBooks godoc
// @Summary catalog with statistics
// @Tags books
// @Produce json
// @Param keyword query string false "title, author or isbn"
// @Param author query string false "author"
// @Param category query string false "category"
// @Param isbn query string false "isbn"
// @Param page query int false "page"
// @Success 200 {object} model.BookPage
// @Failure 400,401,403 {object} messageResponse
// @Router /api/v1/admin/books [get]
func (h *Handler) ListBooks(c echo.Context) error {
	page, err := pageParam(c)
	if err != nil {
		return err
	}
	res, err := h.svc.BookPage(c.Request().Context(), model.BookFilter{
		Keyword:  c.QueryParam("keyword"),
		Author:   c.QueryParam("author"),
		Category: c.QueryParam("category"),
		ISBN:     c.QueryParam("isbn"),
		Page:     page,
	})
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// CreateBook godoc
// @Summary add a book; available starts at total
// @Tags books
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body bookRequest true "book"
// @Success 201 {object} model.Book
// @Failure 400,409 {object} messageResponse
// @Router /api/v1/admin/books [post]
func (h *Handler) CreateBook(c echo.Context) error {
	var req bookRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	book, err := h.svc.CreateBook(c.Request().Context(), req.input())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, book)
}

// GetBook godoc
// @Summary one book
// @Tags books
// @Produce json
// @Param id path int true "book id"
// @Success 200 {object} model.Book
// @Failure 400,404 {object} messageResponse
// @Router /api/v1/admin/books/{id} [get]
func (h *Handler) GetBook(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	book, err := h.svc.GetBook(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

// UpdateBook godoc
// @Summary edit a book; available follows total
// @Tags books
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "book id"
// @Param request body bookRequest true "book"
// @Success 200 {object} model.Book
// @Failure 400,404,409 {object} messageResponse
// @Router /api/v1/admin/books/{id} [post]
func (h *Handler) UpdateBook(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req bookRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	book, err := h.svc.UpdateBook(c.Request().Context(), id, req.input())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

// DeleteBook godoc
// @Summary delete a book without active loans
// @Tags books
// @Produce json
// @Param id path int true "book id"
// @Success 200 {object} messageResponse
// @Failure 400,404,409 {object} messageResponse
// @Router /api/v1/admin/books/{id} [delete]
func (h *Handler) DeleteBook(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteBook(c.Request().Context(), id); err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "book deleted"})
}
