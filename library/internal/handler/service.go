package handler

import (
	"context"
	"net/http"

	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/model"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/service"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/session"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LibraryService interface {
	Register(ctx context.Context, username, password, email string) (model.User, error)
	Authenticate(ctx context.Context, username, password string) (model.User, error)
	GetUser(ctx context.Context, id int) (model.User, error)
	UpdateProfile(ctx context.Context, id int, email, password string) (model.User, error)

	CreateBook(ctx context.Context, in model.BookInput) (model.Book, error)
	GetBook(ctx context.Context, id int) (model.Book, error)
	UpdateBook(ctx context.Context, id int, in model.BookInput) (model.Book, error)
	DeleteBook(ctx context.Context, id int) error
	BookPage(ctx context.Context, filter model.BookFilter) (model.BookPage, error)

	Borrow(ctx context.Context, req model.BorrowRequest) (model.BorrowResult, error)
	Return(ctx context.Context, id int) (model.BorrowRecord, error)
	Renew(ctx context.Context, id int) (model.BorrowRecord, error)
	BorrowPage(ctx context.Context, filter model.BorrowFilter) (model.BorrowPage, error)
	Loans(ctx context.Context, userID int, status model.BorrowStatus, page int) (model.ListBorrows, error)

	Search(ctx context.Context, userID int, keyword string, page int) (model.SearchPage, error)
	FreeSeats(ctx context.Context) ([]model.Seat, error)
	Dashboard(ctx context.Context, userID int, role model.Role) (model.Dashboard, error)

	UserPage(ctx context.Context, page int) (model.UserPage, error)
	UpdateUser(ctx context.Context, id int, username, email string) (model.User, error)
	ResetPassword(ctx context.Context, id int) error
}

type SessionStore interface {
	Create(ctx context.Context, user model.User) (session.Session, string, error)
	Resolve(ctx context.Context, token string) (session.Session, error)
	Destroy(ctx context.Context, id string) error
	CookieName() string
	Cookie(token string) *http.Cookie
	ExpiredCookie() *http.Cookie
}

var (
	_ LibraryService = (*service.Service)(nil)
	_ SessionStore   = (*session.Store)(nil)
)
