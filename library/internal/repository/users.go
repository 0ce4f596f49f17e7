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

var userColumns = []string{"id", "username", "password", "email", "role", "created_at"}

func (r *repository) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	query, args, err := qb.Insert(usersTableName).
		Columns("username", "password", "email", "role").
		Values(user.Username, user.Password, user.Email, user.Role).
		Suffix("RETURNING " + joinColumns(userColumns)).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	created, err := collectOne[model.User](r.db.Query(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err, usernameUniqueConstraint) {
			return model.User{}, errs.ErrDuplicateUsername
		}
		r.log.Error("CreateUser", zap.String("username", user.Username), zap.Error(err))
		return model.User{}, errors.Wrap(err, "create user")
	}
	return created, nil
}

func (r *repository) getUser(ctx context.Context, where sq.Eq) (model.User, error) {
	query, args, err := qb.Select(userColumns...).
		From(usersTableName).
		Where(where).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	user, err := collectOne[model.User](r.db.Query(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, errs.ErrNotFound
		}
		return model.User{}, errors.Wrap(err, "get user")
	}
	return user, nil
}

func (r *repository) GetUser(ctx context.Context, id int) (model.User, error) {
	return r.getUser(ctx, sq.Eq{"id": id})
}

func (r *repository) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	return r.getUser(ctx, sq.Eq{"username": username})
}

func (r *repository) updateUser(ctx context.Context, id int, b sq.UpdateBuilder) (model.User, error) {
	query, args, err := b.Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(userColumns)).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	user, err := collectOne[model.User](r.db.Query(ctx, query, args...))
	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, pgx.ErrNoRows):
		return model.User{}, errs.ErrNotFound
	case isUniqueViolation(err, usernameUniqueConstraint):
		return model.User{}, errs.ErrDuplicateUsername
	default:
		r.log.Error("updateUser", zap.Int("id", id), zap.Error(err))
		return model.User{}, errors.Wrap(err, "update user")
	}
}

func (r *repository) UpdateUser(ctx context.Context, id int, username, email string) (model.User, error) {
	return r.updateUser(ctx, id, qb.Update(usersTableName).
		Set("username", username).
		Set("email", email))
}

// UpdateProfile keeps the current password when passwordHash is empty.
func (r *repository) UpdateProfile(ctx context.Context, id int, email, passwordHash string) (model.User, error) {
	b := qb.Update(usersTableName).Set("email", email)
	if passwordHash != "" {
		b = b.Set("password", passwordHash)
	}
	return r.updateUser(ctx, id, b)
}

func (r *repository) SetPassword(ctx context.Context, id int, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET password = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return errors.Wrap(err, "set password")
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *repository) ListUsers(ctx context.Context, page, size int) (model.ListUsers, error) {
	total, err := r.count(ctx, qb.Select("count(*)").From(usersTableName))
	if err != nil {
		return model.ListUsers{}, err
	}

	query, args, err := qb.Select(userColumns...).
		From(usersTableName).
		OrderBy("id DESC").
		Limit(uint64(size)).
		Offset(model.Offset(page, size)).
		ToSql()
	if err != nil {
		return model.ListUsers{}, err
	}

	users, err := collectAll[model.User](r.db.Query(ctx, query, args...))
	if err != nil {
		return model.ListUsers{}, err
	}

	return model.ListUsers{
		Paging: model.NewPaging(page, size, total),
		Items:  users,
	}, nil
}

func (r *repository) UserStats(ctx context.Context) (model.UserStats, error) {
	const q = `
SELECT count(*),
       count(*) FILTER (WHERE role = 'admin'),
       (SELECT count(DISTINCT user_id) FROM borrow_records WHERE status = 'active')
  FROM users`
	var s model.UserStats
	if err := r.db.QueryRow(ctx, q).Scan(&s.TotalUsers, &s.Admins, &s.ActiveUsers); err != nil {
		return model.UserStats{}, errors.Wrap(err, "user stats")
	}
	return s, nil
}
