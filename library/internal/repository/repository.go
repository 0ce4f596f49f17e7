package repository

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

type Repository interface {
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUser(ctx context.Context, id int) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, error)
	UpdateUser(ctx context.Context, id int, username, email string) (model.User, error)
	UpdateProfile(ctx context.Context, id int, email, passwordHash string) (model.User, error)
	SetPassword(ctx context.Context, id int, passwordHash string) error
	ListUsers(ctx context.Context, page, size int) (model.ListUsers, error)
	UserStats(ctx context.Context) (model.UserStats, error)

	CreateBook(ctx context.Context, in model.BookInput) (model.Book, error)
	GetBook(ctx context.Context, id int) (model.Book, error)
	UpdateBook(ctx context.Context, id int, in model.BookInput) (model.Book, error)
	DeleteBook(ctx context.Context, id int) error
	ISBNExists(ctx context.Context, isbn string, excludeID int) (bool, error)
	ListBooks(ctx context.Context, filter model.BookFilter) (model.ListBooks, error)
	Categories(ctx context.Context) ([]string, error)
	CatalogStats(ctx context.Context) (model.CatalogStats, error)

	Borrow(ctx context.Context, req model.BorrowRequest, maxActive, periodDays int) (model.BorrowResult, error)
	Return(ctx context.Context, id int) (model.BorrowRecord, error)
	Renew(ctx context.Context, id int, periodDays int) (model.BorrowRecord, error)
	ListBorrows(ctx context.Context, filter model.BorrowFilter) (model.ListBorrows, error)
	BorrowStats(ctx context.Context) (model.BorrowStats, error)
	PatronStats(ctx context.Context, userID int) (model.PatronStats, error)
	PopularBooks(ctx context.Context, limit int) ([]model.PopularBook, error)

	ListFreeSeats(ctx context.Context) ([]model.Seat, error)
}

type repository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	usersTableName   = `users`
	booksTableName   = `books`
	borrowsTableName = `borrow_records`
	seatsTableName   = `seats`
)

const (
	usernameUniqueConstraint = "users_username_key"
	isbnUniqueConstraint     = "books_isbn_key"
	activeLoanUniqueIndex    = "borrow_records_one_active_idx"
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

func (r *repository) count(ctx context.Context, q sq.SelectBuilder) (int, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return 0, err
	}
	var total int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("count", zap.String("q", query), zap.Any("args", args), zap.Error(err))
		return 0, errors.Wrap(err, "count")
	}
	return total, nil
}

func collectOne[T any](rows pgx.Rows, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
}

func collectAll[T any](rows pgx.Rows, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, errors.Wrap(err, "pgx.CollectRows")
	}
	return items, nil
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
