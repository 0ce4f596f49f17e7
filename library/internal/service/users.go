package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/model"
)

func (s *Service) UserPage(ctx context.Context, page int) (model.UserPage, error) {
	page = firstPage(page)

	var res model.UserPage
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		res.ListUsers, err = s.repo.ListUsers(ctx, page, s.cfg.UserPageSize)
		return err
	})
	g.Go(func() (err error) {
		res.Stats, err = s.repo.UserStats(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.UserPage{}, err
	}
	return res, nil
}

func (s *Service) UpdateUser(ctx context.Context, id int, username, email string) (model.User, error) {
	return s.repo.UpdateUser(ctx, id, username, email)
}

// ResetPassword sets the password of a user back to the configured default.
func (s *Service) ResetPassword(ctx context.Context, id int) error {
	hash, err := HashPassword(s.cfg.DefaultPassword)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	if err := s.repo.SetPassword(ctx, id, hash); err != nil {
		return err
	}
	s.log.Info("password reset", zap.Int("user", id))
	return nil
}
