package otp

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"user-admin-dashboard/internal/domain/otp"
	"user-admin-dashboard/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) otp.Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateRequest(ctx context.Context, req otp.Request) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(ctx, InsertRequest,
		req.ID.String(), req.UserPhone, req.AdminPhone, req.OTP, req.ExpiresAt, req.CreatedAt,
	)
	if postgres.IsPgUniqueViolation(err) {
		return ErrDuplicateRequest
	}
	return err
}

func (r *Repository) ConsumeRequest(ctx context.Context, userPhone, adminPhone, code string) (*otp.Request, error) {
	return r.scanOne(r.db.QueryRow(ctx, ConsumeRequest, userPhone, adminPhone, code))
}

func (r *Repository) FetchLatestByAdmin(ctx context.Context, adminPhone string) (*otp.Request, error) {
	return r.scanOne(r.db.QueryRow(ctx, SelectLatestByAdmin, adminPhone))
}

func (r *Repository) scanOne(row pgx.Row) (*otp.Request, error) {
	var (
		id  string
		req otp.Request
	)
	err := row.Scan(&id, &req.UserPhone, &req.AdminPhone, &req.OTP, &req.ExpiresAt, &req.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	req.ID, _ = uuid.Parse(id)

	return &req, nil
}
