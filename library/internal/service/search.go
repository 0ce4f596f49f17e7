package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/model"
)

// Search lists borrowable books and the patron's loan counters.
func (s *Service) Search(ctx context.Context, userID int, keyword string, page int) (model.SearchPage, error) {
	filter := model.BookFilter{
		Keyword:       keyword,
		OnlyAvailable: true,
		Page:          firstPage(page),
		Size:          s.cfg.SearchPageSize,
	}

	var res model.SearchPage
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		res.ListBooks, err = s.repo.ListBooks(ctx, filter)
		return err
	})
	g.Go(func() (err error) {
		res.Stats, err = s.PatronStats(ctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.SearchPage{}, err
	}
	return res, nil
}

func (s *Service) PatronStats(ctx context.Context, userID int) (model.PatronStats, error) {
	stats, err := s.repo.PatronStats(ctx, userID)
	if err != nil {
		return model.PatronStats{}, err
	}
	stats.RemainingLoans = max(s.cfg.MaxActiveLoans-stats.ActiveLoans, 0)
	return stats, nil
}

func (s *Service) FreeSeats(ctx context.Context) ([]model.Seat, error) {
	return s.repo.ListFreeSeats(ctx)
}

// Dashboard returns the landing counters; patrons also get their latest loans.
func (s *Service) Dashboard(ctx context.Context, userID int, role model.Role) (model.Dashboard, error) {
	var (
		dash    model.Dashboard
		catalog model.CatalogStats
		borrows model.BorrowStats
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		catalog, err = s.repo.CatalogStats(ctx)
		return err
	})
	g.Go(func() (err error) {
		borrows, err = s.repo.BorrowStats(ctx)
		return err
	})
	g.Go(func() (err error) {
		dash.PopularBooks, err = s.repo.PopularBooks(ctx, popularBooksLimit)
		return err
	})
	if role != model.RoleAdmin {
		g.Go(func() error {
			recent, err := s.repo.ListBorrows(ctx, model.BorrowFilter{UserID: userID, Page: 1, Size: recentBorrowsLimit})
			dash.RecentBorrows = recent.Items
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return model.Dashboard{}, err
	}

	dash.TotalBooks = catalog.TotalStock
	dash.AvailableBooks = catalog.AvailableStock
	dash.ActiveBorrows = borrows.ActiveBorrows
	return dash, nil
}
