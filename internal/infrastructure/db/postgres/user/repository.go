package user

import (
	"context"
	"fmt"
	"time"

	"user-admin-dashboard/internal/domain/user"
	"user-admin-dashboard/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchUsers(ctx context.Context) (user.Users, error) {
	rows, err := r.db.Query(ctx, SelectUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var us Users
	for rows.Next() {
		u := new(User)

		if err = rows.Scan(
			&u.ID,
			&u.Name,
			&u.Firm,
			&u.City,
			&u.District,
			&u.DOB,
			&u.AppInstallDate,
			&u.Email,
			&u.Phone,
			&u.HasFullAccess,
			&u.Status,

			&u.CreatedAt,
			&u.LastLoginAt,
		); err != nil {
			return nil, err
		}

		us = append(us, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(us), nil
}

func (r *Repository) DeleteUser(ctx context.Context, id user.ID) error {
	tag, err := r.db.Exec(ctx, DeleteUserByID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, user.ErrNotFound)
	}

	return nil
}

func (r *Repository) UpsertUser(ctx context.Context, u user.User) error {
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.Exec(ctx, UpsertUser,
		u.ID, u.Name, u.Firm, u.City, u.District, u.DOB, u.AppInstallDate, u.Email, u.Phone,
		u.Groups.HasFullAccess, string(user.ParseStatus(string(u.Status))), createdAt, lastLoginArg(u),
	)
	return err
}
