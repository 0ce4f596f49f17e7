package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/errs"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/model"
)

func (s *Service) Register(ctx context.Context, username, password, email string) (model.User, error) {
	return s.createUser(ctx, username, password, email, model.RoleUser)
}

func (s *Service) createUser(ctx context.Context, username, password, email string, role model.Role) (model.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return model.User{}, errors.Wrap(err, "hash password")
	}
	return s.repo.CreateUser(ctx, model.User{
		Username: username,
		Password: hash,
		Email:    email,
		Role:     role,
	})
}

// Authenticate does not tell an unknown username from a wrong password.
func (s *Service) Authenticate(ctx context.Context, username, password string) (model.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.User{}, errs.ErrInvalidCredentials
		}
		return model.User{}, err
	}
	if err := ComparePassword(user.Password, password); err != nil {
		return model.User{}, errs.ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id int) (model.User, error) {
	return s.repo.GetUser(ctx, id)
}

// UpdateProfile changes the email and, when password is not empty, the password.
func (s *Service) UpdateProfile(ctx context.Context, id int, email, password string) (model.User, error) {
	var hash string
	if password != "" {
		var err error
		if hash, err = HashPassword(password); err != nil {
			return model.User{}, errors.Wrap(err, "hash password")
		}
	}
	return s.repo.UpdateProfile(ctx, id, email, hash)
}

// EnsureAdmin creates the configured admin account when it does not exist yet.
func (s *Service) EnsureAdmin(ctx context.Context) error {
	if s.cfg.AdminUsername == "" {
		return nil
	}
	_, err := s.repo.GetUserByUsername(ctx, s.cfg.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return err
	}
	if s.cfg.AdminPassword == "" {
		return errors.New("admin password is empty")
	}

	admin, err := s.createUser(ctx, s.cfg.AdminUsername, s.cfg.AdminPassword, s.cfg.AdminEmail, model.RoleAdmin)
	if err != nil {
		if errors.Is(err, errs.ErrDuplicateUsername) {
			return nil
		}
		return err
	}
	s.log.Info("admin account created", zap.String("username", admin.Username), zap.Int("id", admin.ID))
	return nil
}
