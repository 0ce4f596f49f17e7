package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/errs"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/model"
)

func (s *Service) CreateBook(ctx context.Context, in model.BookInput) (model.Book, error) {
	exists, err := s.repo.ISBNExists(ctx, in.ISBN, 0)
	if err != nil {
		return model.Book{}, err
	}
	if exists {
		return model.Book{}, errs.ErrDuplicateISBN
	}
	return s.repo.CreateBook(ctx, in)
}

func (s *Service) GetBook(ctx context.Context, id int) (model.Book, error) {
	return s.repo.GetBook(ctx, id)
}

func (s *Service) UpdateBook(ctx context.Context, id int, in model.BookInput) (model.Book, error) {
	exists, err := s.repo.ISBNExists(ctx, in.ISBN, id)
	if err != nil {
		return model.Book{}, err
	}
	if exists {
		return model.Book{}, errs.ErrDuplicateISBN
	}
	return s.repo.UpdateBook(ctx, id, in)
}

func (s *Service) DeleteBook(ctx context.Context, id int) error {
	return s.repo.DeleteBook(ctx, id)
}

// BookPage lists the catalog for librarians together with its statistics.
func (s *Service) BookPage(ctx context.Context, filter model.BookFilter) (model.BookPage, error) {
	filter.Page = firstPage(filter.Page)
	filter.Size = s.cfg.CatalogPageSize
	filter.OnlyAvailable = false

	var page model.BookPage
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		page.ListBooks, err = s.repo.ListBooks(ctx, filter)
		return err
	})
	g.Go(func() (err error) {
		page.Stats, err = s.repo.CatalogStats(ctx)
		return err
	})
	g.Go(func() (err error) {
		page.Categories, err = s.repo.Categories(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.BookPage{}, err
	}
	return page, nil
}
