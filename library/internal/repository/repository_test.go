package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/errs"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/model"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/migrations"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/pkg/postgres"
)

const (
	maxActive  = 5
	periodDays = 30
)

// newTestRepository connects to LIBRARY_TEST_DATABASE_URL and empties every table.
// `make test-integration` starts a disposable PostgreSQL and sets the variable.
func newTestRepository(t *testing.T) (*repository, *pgxpool.Pool) {
	t.Helper()
	dsn := os.Getenv("LIBRARY_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("LIBRARY_TEST_DATABASE_URL is not set")
	}
	ctx := context.Background()
	pool, err := postgres.Open(ctx, dsn, 20, migrations.MigrationFiles)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE borrow_records, books, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `UPDATE seats SET status = 'free'`)
	require.NoError(t, err)

	repo, err := NewRepository(pool, zap.NewNop())
	require.NoError(t, err)
	return repo, pool
}

func createUser(t *testing.T, repo *repository, name string) model.User {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), model.User{
		Username: name,
		Password: "hash",
		Email:    name + "@example.com",
		Role:     model.RoleUser,
	})
	require.NoError(t, err)
	return u
}

func createBook(t *testing.T, repo *repository, isbn string, total int) model.Book {
	t.Helper()
	b, err := repo.CreateBook(context.Background(), model.BookInput{
		Title:    "Title " + isbn,
		Author:   "Author " + isbn,
		ISBN:     isbn,
		Category: "fiction",
		Total:    total,
	})
	require.NoError(t, err)
	return b
}

func activeLoans(t *testing.T, pool *pgxpool.Pool, bookID int) int {
	t.Helper()
	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM borrow_records WHERE book_id = $1 AND status = 'active'`, bookID).Scan(&n)
	require.NoError(t, err)
	return n
}

// requireConsistent checks available = total - active loans.
func requireConsistent(t *testing.T, repo *repository, pool *pgxpool.Pool, bookID int) model.Book {
	t.Helper()
	b, err := repo.GetBook(context.Background(), bookID)
	require.NoError(t, err)
	require.GreaterOrEqual(t, b.Available, 0)
	require.LessOrEqual(t, b.Available, b.Total)
	require.Equal(t, b.Total-activeLoans(t, pool, bookID), b.Available)
	return b
}

func TestRepository_BorrowAndReturnScenario(t *testing.T) {
	repo, pool := newTestRepository(t)
	ctx := context.Background()

	x := createUser(t, repo, "patron-x")
	a := createBook(t, repo, "978-A", 3)

	res, err := repo.Borrow(ctx, model.BorrowRequest{UserID: x.ID, BookID: a.ID}, maxActive, periodDays)
	require.NoError(t, err)
	require.Equal(t, a.Title, res.Title)
	require.Equal(t, model.StatusActive, res.Record.Status)
	require.False(t, res.Record.Renewed)
	require.Equal(t, 2, requireConsistent(t, repo, pool, a.ID).Available)

	today := time.Now()
	require.Equal(t,
		today.AddDate(0, 0, periodDays).Format(time.DateOnly),
		res.Record.DueDate.Format(time.DateOnly),
	)

	_, err = repo.Borrow(ctx, model.BorrowRequest{UserID: x.ID, BookID: a.ID}, maxActive, periodDays)
	require.ErrorIs(t, err, errs.ErrAlreadyBorrowed)
	require.Equal(t, 2, requireConsistent(t, repo, pool, a.ID).Available)

	rec, err := repo.Return(ctx, res.Record.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusReturned, rec.Status)
	require.NotNil(t, rec.ReturnDate)
	require.Equal(t, 3, requireConsistent(t, repo, pool, a.ID).Available)

	_, err = repo.Return(ctx, res.Record.ID)
	require.ErrorIs(t, err, errs.ErrNotActive)
	require.Equal(t, 3, requireConsistent(t, repo, pool, a.ID).Available)

	_, err = repo.Return(ctx, 100500)
	require.ErrorIs(t, err, errs.ErrNotActive)
}

func TestRepository_BorrowNoStock(t *testing.T) {
	repo, pool := newTestRepository(t)
	ctx := context.Background()

	x := createUser(t, repo, "patron-x")
	y := createUser(t, repo, "patron-y")
	b := createBook(t, repo, "978-B", 1)

	_, err := repo.Borrow(ctx, model.BorrowRequest{UserID: y.ID, BookID: b.ID}, maxActive, periodDays)
	require.NoError(t, err)

	_, err = repo.Borrow(ctx, model.BorrowRequest{UserID: x.ID, BookID: b.ID}, maxActive, periodDays)
	require.ErrorIs(t, err, errs.ErrNoStock)

	list, err := repo.ListBorrows(ctx, model.BorrowFilter{UserID: x.ID, Page: 1, Size: 10})
	require.NoError(t, err)
	require.Zero(t, list.TotalElements)
	require.Equal(t, 0, requireConsistent(t, repo, pool, b.ID).Available)

	_, err = repo.Borrow(ctx, model.BorrowRequest{UserID: x.ID, BookID: 100500}, maxActive, periodDays)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRepository_ConcurrentBorrowLastCopy(t *testing.T) {
	repo, pool := newTestRepository(t)
	ctx := context.Background()

	const patrons = 10
	book := createBook(t, repo, "978-LAST", 1)
	users := make([]model.User, patrons)
	for i := range users {
		users[i] = createUser(t, repo, fmt.Sprintf("patron-%d", i))
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		noStock  int
		unexpect []error
	)
	for _, u := range users {
		wg.Add(1)
		go func(u model.User) {
			defer wg.Done()
			_, err := repo.Borrow(ctx, model.BorrowRequest{UserID: u.ID, BookID: book.ID}, maxActive, periodDays)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, errs.ErrNoStock):
				noStock++
			default:
				unexpect = append(unexpect, err)
			}
		}(u)
	}
	wg.Wait()

	require.Empty(t, unexpect)
	require.Equal(t, 1, ok)
	require.Equal(t, patrons-1, noStock)
	require.Equal(t, 0, requireConsistent(t, repo, pool, book.ID).Available)
}

func TestRepository_ConcurrentLoanCap(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	u := createUser(t, repo, "patron-cap")
	for i := 0; i < maxActive-1; i++ {
		b := createBook(t, repo, fmt.Sprintf("978-CAP-%d", i), 2)
		_, err := repo.Borrow(ctx, model.BorrowRequest{UserID: u.ID, BookID: b.ID}, maxActive, periodDays)
		require.NoError(t, err)
	}

	const attempts = 4
	books := make([]model.Book, attempts)
	for i := range books {
		books[i] = createBook(t, repo, fmt.Sprintf("978-EXTRA-%d", i), 2)
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		ok    int
		limit int
	)
	for _, b := range books {
		wg.Add(1)
		go func(b model.Book) {
			defer wg.Done()
			_, err := repo.Borrow(ctx, model.BorrowRequest{UserID: u.ID, BookID: b.ID}, maxActive, periodDays)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, errs.ErrLoanLimit) {
				limit++
			}
		}(b)
	}
	wg.Wait()

	require.Equal(t, 1, ok)
	require.Equal(t, attempts-1, limit)

	stats, err := repo.PatronStats(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, maxActive, stats.ActiveLoans)
	require.Equal(t, maxActive, stats.TotalLoans)
}

func TestRepository_Renew(t *testing.T) {
	repo, pool := newTestRepository(t)
	ctx := context.Background()

	u := createUser(t, repo, "patron-renew")
	b := createBook(t, repo, "978-RENEW", 2)
	res, err := repo.Borrow(ctx, model.BorrowRequest{UserID: u.ID, BookID: b.ID}, maxActive, periodDays)
	require.NoError(t, err)

	rec, err := repo.Renew(ctx, res.Record.ID, periodDays)
	require.NoError(t, err)
	require.True(t, rec.Renewed)
	require.Equal(t,
		res.Record.DueDate.AddDate(0, 0, periodDays).Format(time.DateOnly),
		rec.DueDate.Format(time.DateOnly),
	)

	_, err = repo.Renew(ctx, res.Record.ID, periodDays)
	require.ErrorIs(t, err, errs.ErrAlreadyRenewed)

	other := createUser(t, repo, "patron-late")
	late, err := repo.Borrow(ctx, model.BorrowRequest{UserID: other.ID, BookID: b.ID}, maxActive, periodDays)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `UPDATE borrow_records SET due_date = current_date - 1 WHERE id = $1`, late.Record.ID)
	require.NoError(t, err)
	_, err = repo.Renew(ctx, late.Record.ID, periodDays)
	require.ErrorIs(t, err, errs.ErrRenewOverdue)

	list, err := repo.ListBorrows(ctx, model.BorrowFilter{UserID: other.ID, Page: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	require.True(t, list.Items[0].Overdue)
	require.Equal(t, "patron-late", list.Items[0].Username)

	_, err = repo.Return(ctx, rec.ID)
	require.NoError(t, err)
	_, err = repo.Renew(ctx, rec.ID, periodDays)
	require.ErrorIs(t, err, errs.ErrNotActive)
}

func TestRepository_DeleteBookGuard(t *testing.T) {
	repo, pool := newTestRepository(t)
	ctx := context.Background()

	u := createUser(t, repo, "patron-del")
	b := createBook(t, repo, "978-DEL", 1)
	res, err := repo.Borrow(ctx, model.BorrowRequest{UserID: u.ID, BookID: b.ID}, maxActive, periodDays)
	require.NoError(t, err)

	require.ErrorIs(t, repo.DeleteBook(ctx, b.ID), errs.ErrBookHasActiveLoans)
	_, err = repo.GetBook(ctx, b.ID)
	require.NoError(t, err)

	_, err = repo.Return(ctx, res.Record.ID)
	require.NoError(t, err)
	stats, err := repo.PatronStats(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, 1, stats.TotalLoans)
	require.NoError(t, repo.DeleteBook(ctx, b.ID))

	_, err = repo.GetBook(ctx, b.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)

	// returned history is removed together with the book
	var history int
	err = pool.QueryRow(ctx, `SELECT count(*) FROM borrow_records WHERE book_id = $1`, b.ID).Scan(&history)
	require.NoError(t, err)
	require.Zero(t, history)
	stats, err = repo.PatronStats(ctx, u.ID)
	require.NoError(t, err)
	require.Zero(t, stats.TotalLoans)
	require.ErrorIs(t, repo.DeleteBook(ctx, b.ID), errs.ErrNotFound)
}

func TestRepository_UpdateBook(t *testing.T) {
	repo, pool := newTestRepository(t)
	ctx := context.Background()

	u := createUser(t, repo, "patron-upd")
	v := createUser(t, repo, "patron-upd2")
	b := createBook(t, repo, "978-UPD", 3)
	createBook(t, repo, "978-TAKEN", 1)
	for _, p := range []model.User{u, v} {
		_, err := repo.Borrow(ctx, model.BorrowRequest{UserID: p.ID, BookID: b.ID}, maxActive, periodDays)
		require.NoError(t, err)
	}

	in := model.BookInput{Title: "New", Author: "Someone", ISBN: "978-UPD", Category: "science", Total: 1}
	_, err := repo.UpdateBook(ctx, b.ID, in)
	require.ErrorIs(t, err, errs.ErrTotalBelowOnLoan)

	in.Total = 5
	updated, err := repo.UpdateBook(ctx, b.ID, in)
	require.NoError(t, err)
	require.Equal(t, 5, updated.Total)
	require.Equal(t, 3, updated.Available)
	require.Equal(t, "New", updated.Title)
	requireConsistent(t, repo, pool, b.ID)

	in.Total = 2
	updated, err = repo.UpdateBook(ctx, b.ID, in)
	require.NoError(t, err)
	require.Equal(t, 0, updated.Available)

	in.ISBN = "978-TAKEN"
	_, err = repo.UpdateBook(ctx, b.ID, in)
	require.ErrorIs(t, err, errs.ErrDuplicateISBN)

	_, err = repo.UpdateBook(ctx, 100500, in)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRepository_BorrowWithSeat(t *testing.T) {
	repo, pool := newTestRepository(t)
	ctx := context.Background()

	seats, err := repo.ListFreeSeats(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, seats)
	seat := seats[0]

	u := createUser(t, repo, "patron-seat")
	v := createUser(t, repo, "patron-seat2")
	b := createBook(t, repo, "978-SEAT", 2)

	_, err = repo.Borrow(ctx, model.BorrowRequest{UserID: u.ID, BookID: b.ID, SeatID: &seat.ID}, maxActive, periodDays)
	require.NoError(t, err)

	_, err = repo.Borrow(ctx, model.BorrowRequest{UserID: v.ID, BookID: b.ID, SeatID: &seat.ID}, maxActive, periodDays)
	require.ErrorIs(t, err, errs.ErrSeatUnavailable)
	require.Equal(t, 1, requireConsistent(t, repo, pool, b.ID).Available)

	free, err := repo.ListFreeSeats(ctx)
	require.NoError(t, err)
	require.Len(t, free, len(seats)-1)
}

func TestRepository_Duplicates(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	createUser(t, repo, "dup")
	_, err := repo.CreateUser(ctx, model.User{Username: "dup", Password: "x", Role: model.RoleUser})
	require.ErrorIs(t, err, errs.ErrDuplicateUsername)

	createBook(t, repo, "978-DUP", 1)
	_, err = repo.CreateBook(ctx, model.BookInput{Title: "t", Author: "a", ISBN: "978-DUP", Category: "c", Total: 1})
	require.ErrorIs(t, err, errs.ErrDuplicateISBN)

	exists, err := repo.ISBNExists(ctx, "978-DUP", 0)
	require.NoError(t, err)
	require.True(t, exists)
}

func TestRepository_ListBooks(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		createBook(t, repo, fmt.Sprintf("978-L%02d", i), 1)
	}
	_, err := repo.CreateBook(ctx, model.BookInput{Title: "Go in Practice", Author: "Butcher", ISBN: "978-GO", Category: "programming", Total: 2})
	require.NoError(t, err)

	page, err := repo.ListBooks(ctx, model.BookFilter{Page: 2, Size: 10})
	require.NoError(t, err)
	require.Equal(t, 13, page.TotalElements)
	require.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 3)
	require.Greater(t, page.Items[0].ID, page.Items[1].ID)

	found, err := repo.ListBooks(ctx, model.BookFilter{Keyword: "go in", Category: "programming", Page: 1, Size: 10})
	require.NoError(t, err)
	require.Equal(t, 1, found.TotalElements)
	require.Equal(t, "978-GO", found.Items[0].ISBN)

	cats, err := repo.Categories(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"fiction", "programming"}, cats)

	stats, err := repo.CatalogStats(ctx)
	require.NoError(t, err)
	require.Equal(t, model.CatalogStats{TotalBooks: 13, TotalStock: 14, AvailableStock: 14, Categories: 2}, stats)
}
