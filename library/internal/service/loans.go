package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/model"
)

func (s *Service) Borrow(ctx context.Context, req model.BorrowRequest) (model.BorrowResult, error) {
	res, err := s.repo.Borrow(ctx, req, s.cfg.MaxActiveLoans, s.cfg.LoanPeriodDays)
	if err != nil {
		return model.BorrowResult{}, err
	}
	s.log.Info("book borrowed",
		zap.Int("record", res.Record.ID),
		zap.Int("user", req.UserID),
		zap.Int("book", req.BookID),
	)
	s.publish(model.EventBorrow, res.Record)
	return res, nil
}

func (s *Service) Return(ctx context.Context, id int) (model.BorrowRecord, error) {
	rec, err := s.repo.Return(ctx, id)
	if err != nil {
		return model.BorrowRecord{}, err
	}
	s.publish(model.EventReturn, rec)
	return rec, nil
}

func (s *Service) Renew(ctx context.Context, id int) (model.BorrowRecord, error) {
	rec, err := s.repo.Renew(ctx, id, s.cfg.LoanPeriodDays)
	if err != nil {
		return model.BorrowRecord{}, err
	}
	s.publish(model.EventRenew, rec)
	return rec, nil
}

// BorrowPage lists borrow records for librarians together with their statistics.
func (s *Service) BorrowPage(ctx context.Context, filter model.BorrowFilter) (model.BorrowPage, error) {
	filter.Page = firstPage(filter.Page)
	filter.Size = s.cfg.BorrowPageSize

	var page model.BorrowPage
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		page.ListBorrows, err = s.repo.ListBorrows(ctx, filter)
		return err
	})
	g.Go(func() (err error) {
		page.Stats, err = s.repo.BorrowStats(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.BorrowPage{}, err
	}
	return page, nil
}

// Loans lists the borrow records of one patron.
func (s *Service) Loans(ctx context.Context, userID int, status model.BorrowStatus, page int) (model.ListBorrows, error) {
	return s.repo.ListBorrows(ctx, model.BorrowFilter{
		UserID: userID,
		Status: status,
		Page:   firstPage(page),
		Size:   s.cfg.BorrowPageSize,
	})
}
