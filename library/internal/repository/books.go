package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/errs"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/model"
)

var bookColumns = []string{"id", "title", "author", "isbn", "category", "total", "available", "created_at"}

func returningBook() string {
	return "RETURNING " + joinColumns(bookColumns)
}

func (r *repository) CreateBook(ctx context.Context, in model.BookInput) (model.Book, error) {
	query, args, err := qb.Insert(booksTableName).
		Columns("title", "author", "isbn", "category", "total", "available").
		Values(in.Title, in.Author, in.ISBN, in.Category, in.Total, in.Total).
		Suffix(returningBook()).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	book, err := collectOne[model.Book](r.db.Query(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err, isbnUniqueConstraint) {
			return model.Book{}, errs.ErrDuplicateISBN
		}
		r.log.Error("CreateBook", zap.String("q", query), zap.Any("args", args), zap.Error(err))
		return model.Book{}, errors.Wrap(err, "create book")
	}
	return book, nil
}

func (r *repository) GetBook(ctx context.Context, id int) (model.Book, error) {
	query, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	book, err := collectOne[model.Book](r.db.Query(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, errors.Wrap(err, "get book")
	}
	return book, nil
}

// UpdateBook moves available by the same delta as total in one statement.
// The row is left untouched when the new total is below the copies on loan.
func (r *repository) UpdateBook(ctx context.Context, id int, in model.BookInput) (model.Book, error) {
	query := fmt.Sprintf(`
UPDATE %s
   SET title = @title, author = @author, isbn = @isbn, category = @category,
       available = available + (@total - total), total = @total
 WHERE id = @id AND total - available <= @total
%s`, booksTableName, returningBook())
	args := pgx.NamedArgs{
		"id":       id,
		"title":    in.Title,
		"author":   in.Author,
		"isbn":     in.ISBN,
		"category": in.Category,
		"total":    in.Total,
	}

	book, err := collectOne[model.Book](r.db.Query(ctx, query, args))
	switch {
	case err == nil:
		return book, nil
	case isUniqueViolation(err, isbnUniqueConstraint):
		return model.Book{}, errs.ErrDuplicateISBN
	case errors.Is(err, pgx.ErrNoRows):
		if _, err := r.GetBook(ctx, id); err != nil {
			return model.Book{}, err
		}
		return model.Book{}, errs.ErrTotalBelowOnLoan
	default:
		r.log.Error("UpdateBook", zap.Int("id", id), zap.Error(err))
		return model.Book{}, errors.Wrap(err, "update book")
	}
}

// DeleteBook locks the book row so no loan can start between the check and the delete.
func (r *repository) DeleteBook(ctx context.Context, id int) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var locked int
		err := tx.QueryRow(ctx, `SELECT id FROM books WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return errs.ErrNotFound
			}
			return errors.Wrap(err, "lock book")
		}

		var active int
		err = tx.QueryRow(ctx,
			`SELECT count(*) FROM borrow_records WHERE book_id = $1 AND status = $2`,
			id, model.StatusActive,
		).Scan(&active)
		if err != nil {
			return errors.Wrap(err, "count active loans")
		}
		if active > 0 {
			return errs.ErrBookHasActiveLoans
		}

		if _, err := tx.Exec(ctx, `DELETE FROM books WHERE id = $1`, id); err != nil {
			return errors.Wrap(err, "delete book")
		}
		return nil
	})
}

func (r *repository) ISBNExists(ctx context.Context, isbn string, excludeID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM books WHERE isbn = $1 AND id <> $2)`,
		isbn, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "isbn exists")
	}
	return exists, nil
}

func bookConditions(f model.BookFilter) sq.And {
	cond := sq.And{}
	if f.Keyword != "" {
		like := "%" + f.Keyword + "%"
		cond = append(cond, sq.Or{
			sq.ILike{"title": like},
			sq.ILike{"author": like},
			sq.ILike{"isbn": like},
		})
	}
	if f.Author != "" {
		cond = append(cond, sq.ILike{"author": "%" + f.Author + "%"})
	}
	if f.Category != "" {
		cond = append(cond, sq.Eq{"category": f.Category})
	}
	if f.ISBN != "" {
		cond = append(cond, sq.ILike{"isbn": "%" + f.ISBN + "%"})
	}
	if f.OnlyAvailable {
		cond = append(cond, sq.Gt{"available": 0})
	}
	return cond
}

func (r *repository) ListBooks(ctx context.Context, f model.BookFilter) (model.ListBooks, error) {
	cond := bookConditions(f)

	total, err := r.count(ctx, qb.Select("count(*)").From(booksTableName).Where(cond))
	if err != nil {
		return model.ListBooks{}, err
	}

	query, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		Where(cond).
		OrderBy("id DESC").
		Limit(uint64(f.Size)).
		Offset(model.Offset(f.Page, f.Size)).
		ToSql()
	if err != nil {
		return model.ListBooks{}, err
	}
	r.log.Debug("ListBooks", zap.String("query", query), zap.Any("args", args))

	books, err := collectAll[model.Book](r.db.Query(ctx, query, args...))
	if err != nil {
		return model.ListBooks{}, err
	}

	return model.ListBooks{
		Paging: model.NewPaging(f.Page, f.Size, total),
		Items:  books,
	}, nil
}

func (r *repository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT category FROM books ORDER BY category`)
	if err != nil {
		return nil, errors.Wrap(err, "categories")
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (r *repository) CatalogStats(ctx context.Context) (model.CatalogStats, error) {
	const q = `
SELECT count(*), coalesce(sum(total), 0), coalesce(sum(available), 0), count(DISTINCT category)
  FROM books`
	var s model.CatalogStats
	if err := r.db.QueryRow(ctx, q).Scan(&s.TotalBooks, &s.TotalStock, &s.AvailableStock, &s.Categories); err != nil {
		return model.CatalogStats{}, errors.Wrap(err, "catalog stats")
	}
	return s, nil
}
