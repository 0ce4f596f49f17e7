package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/errs"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/model"
)

var borrowColumns = []string{"id", "user_id", "book_id", "seat_id", "borrow_date", "due_date", "return_date", "status", "renewed"}

// Borrow runs every precondition and mutation of a loan in one transaction.
// The patron row is locked first so concurrent borrows by one patron see each other's loans,
// then the book row so concurrent borrowers of one book see each other's decrements.
func (r *repository) Borrow(ctx context.Context, req model.BorrowRequest, maxActive, periodDays int) (model.BorrowResult, error) {
	var res model.BorrowResult
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var userID int
		err := tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, req.UserID).Scan(&userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return errs.ErrNotFound
			}
			return errors.Wrap(err, "lock user")
		}

		err = tx.QueryRow(ctx, `SELECT title FROM books WHERE id = $1 FOR UPDATE`, req.BookID).Scan(&res.Title)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return errs.ErrNotFound
			}
			return errors.Wrap(err, "lock book")
		}

		var sameBook, active int
		err = tx.QueryRow(ctx, `
SELECT count(*) FILTER (WHERE book_id = $2), count(*)
  FROM borrow_records
 WHERE user_id = $1 AND status = $3`,
			req.UserID, req.BookID, model.StatusActive,
		).Scan(&sameBook, &active)
		if err != nil {
			return errors.Wrap(err, "count active loans")
		}
		if sameBook > 0 {
			return errs.ErrAlreadyBorrowed
		}
		if active >= maxActive {
			return errs.ErrLoanLimit
		}

		tag, err := tx.Exec(ctx, `UPDATE books SET available = available - 1 WHERE id = $1 AND available > 0`, req.BookID)
		if err != nil {
			return errors.Wrap(err, "decrement available")
		}
		if tag.RowsAffected() == 0 {
			return errs.ErrNoStock
		}

		if req.SeatID != nil {
			tag, err = tx.Exec(ctx,
				`UPDATE seats SET status = $2 WHERE id = $1 AND status = $3`,
				*req.SeatID, model.SeatReserved, model.SeatFree,
			)
			if err != nil {
				return errors.Wrap(err, "reserve seat")
			}
			if tag.RowsAffected() == 0 {
				return errs.ErrSeatUnavailable
			}
		}

		query, args, err := qb.Insert(borrowsTableName).
			Columns("user_id", "book_id", "seat_id", "due_date").
			Values(req.UserID, req.BookID, req.SeatID, sq.Expr("current_date + ?::int", periodDays)).
			Suffix("RETURNING " + joinColumns(borrowColumns)).
			ToSql()
		if err != nil {
			return err
		}
		res.Record, err = collectOne[model.BorrowRecord](tx.Query(ctx, query, args...))
		if err != nil {
			if isUniqueViolation(err, activeLoanUniqueIndex) {
				return errs.ErrAlreadyBorrowed
			}
			return errors.Wrap(err, "insert borrow record")
		}
		return nil
	})
	if err != nil {
		return model.BorrowResult{}, err
	}
	return res, nil
}

// Return closes an active loan and gives the copy back; available never exceeds total.
func (r *repository) Return(ctx context.Context, id int) (model.BorrowRecord, error) {
	var rec model.BorrowRecord
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		query, args, err := qb.Update(borrowsTableName).
			Set("status", model.StatusReturned).
			Set("return_date", sq.Expr("now()")).
			Where(sq.Eq{"id": id, "status": model.StatusActive}).
			Suffix("RETURNING " + joinColumns(borrowColumns)).
			ToSql()
		if err != nil {
			return err
		}
		rec, err = collectOne[model.BorrowRecord](tx.Query(ctx, query, args...))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return errs.ErrNotActive
			}
			return errors.Wrap(err, "close loan")
		}

		_, err = tx.Exec(ctx,
			`UPDATE books SET available = available + 1 WHERE id = $1 AND available < total`,
			rec.BookID,
		)
		return errors.Wrap(err, "increment available")
	})
	if err != nil {
		return model.BorrowRecord{}, err
	}
	return rec, nil
}

// Renew extends the due date of an active, not overdue loan exactly once.
func (r *repository) Renew(ctx context.Context, id int, periodDays int) (model.BorrowRecord, error) {
	var rec model.BorrowRecord
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var (
			status  model.BorrowStatus
			renewed bool
			overdue bool
		)
		err := tx.QueryRow(ctx,
			`SELECT status, renewed, due_date < current_date FROM borrow_records WHERE id = $1 FOR UPDATE`,
			id,
		).Scan(&status, &renewed, &overdue)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return errs.ErrNotActive
		case err != nil:
			return errors.Wrap(err, "lock borrow record")
		case status != model.StatusActive:
			return errs.ErrNotActive
		case overdue:
			return errs.ErrRenewOverdue
		case renewed:
			return errs.ErrAlreadyRenewed
		}

		query, args, err := qb.Update(borrowsTableName).
			Set("due_date", sq.Expr("due_date + ?::int", periodDays)).
			Set("renewed", true).
			Where(sq.Eq{"id": id}).
			Suffix("RETURNING " + joinColumns(borrowColumns)).
			ToSql()
		if err != nil {
			return err
		}
		rec, err = collectOne[model.BorrowRecord](tx.Query(ctx, query, args...))
		return errors.Wrap(err, "extend due date")
	})
	if err != nil {
		return model.BorrowRecord{}, err
	}
	return rec, nil
}

func borrowConditions(f model.BorrowFilter) sq.And {
	cond := sq.And{}
	if f.Keyword != "" {
		like := "%" + f.Keyword + "%"
		cond = append(cond, sq.Or{
			sq.ILike{"u.username": like},
			sq.ILike{"b.title": like},
			sq.ILike{"b.author": like},
		})
	}
	if f.Status != "" {
		cond = append(cond, sq.Eq{"br.status": f.Status})
	}
	if f.User != "" {
		cond = append(cond, sq.ILike{"u.username": "%" + f.User + "%"})
	}
	if f.UserID != 0 {
		cond = append(cond, sq.Eq{"br.user_id": f.UserID})
	}
	return cond
}

func borrowsJoin(b sq.SelectBuilder) sq.SelectBuilder {
	return b.From(borrowsTableName + " br").
		Join(usersTableName + " u ON u.id = br.user_id").
		Join(booksTableName + " b ON b.id = br.book_id")
}

func (r *repository) ListBorrows(ctx context.Context, f model.BorrowFilter) (model.ListBorrows, error) {
	cond := borrowConditions(f)

	total, err := r.count(ctx, borrowsJoin(qb.Select("count(*)")).Where(cond))
	if err != nil {
		return model.ListBorrows{}, err
	}

	query, args, err := borrowsJoin(qb.Select(
		"br.id", "br.user_id", "br.book_id", "br.seat_id", "br.borrow_date", "br.due_date",
		"br.return_date", "br.status", "br.renewed",
		"u.username", "b.title", "b.author", "b.isbn",
		"(br.status = 'active' AND br.due_date < current_date) AS overdue",
	)).
		Where(cond).
		OrderBy("br.borrow_date DESC", "br.id DESC").
		Limit(uint64(f.Size)).
		Offset(model.Offset(f.Page, f.Size)).
		ToSql()
	if err != nil {
		return model.ListBorrows{}, err
	}
	r.log.Debug("ListBorrows", zap.String("query", query), zap.Any("args", args))

	items, err := collectAll[model.BorrowDetails](r.db.Query(ctx, query, args...))
	if err != nil {
		return model.ListBorrows{}, err
	}

	return model.ListBorrows{
		Paging: model.NewPaging(f.Page, f.Size, total),
		Items:  items,
	}, nil
}

func (r *repository) BorrowStats(ctx context.Context) (model.BorrowStats, error) {
	const q = `
SELECT count(*),
       count(*) FILTER (WHERE status = 'active'),
       count(*) FILTER (WHERE status = 'returned' AND return_date >= current_date),
       count(*) FILTER (WHERE status = 'active' AND due_date < current_date)
  FROM borrow_records`
	var s model.BorrowStats
	if err := r.db.QueryRow(ctx, q).Scan(&s.TotalBorrows, &s.ActiveBorrows, &s.TodayReturns, &s.OverdueBorrows); err != nil {
		return model.BorrowStats{}, errors.Wrap(err, "borrow stats")
	}
	return s, nil
}

// PatronStats fills every counter except RemainingLoans, which depends on the configured cap.
func (r *repository) PatronStats(ctx context.Context, userID int) (model.PatronStats, error) {
	const q = `
SELECT count(*) FILTER (WHERE status = 'active'),
       count(*),
       (SELECT count(*) FROM books WHERE available > 0)
  FROM borrow_records
 WHERE user_id = $1`
	var s model.PatronStats
	if err := r.db.QueryRow(ctx, q, userID).Scan(&s.ActiveLoans, &s.TotalLoans, &s.AvailableTitles); err != nil {
		return model.PatronStats{}, errors.Wrap(err, "patron stats")
	}
	return s, nil
}

func (r *repository) PopularBooks(ctx context.Context, limit int) ([]model.PopularBook, error) {
	query, args, err := qb.Select("b.id", "b.title", "b.author", "count(br.id) AS borrow_count").
		From(booksTableName + " b").
		Join(borrowsTableName + " br ON br.book_id = b.id").
		GroupBy("b.id").
		OrderBy("borrow_count DESC", "b.id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	return collectAll[model.PopularBook](r.db.Query(ctx, query, args...))
}
