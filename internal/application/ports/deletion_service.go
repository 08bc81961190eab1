package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"user-admin-dashboard/internal/application/authflow"
	"user-admin-dashboard/internal/domain/otp"
	domain "user-admin-dashboard/internal/domain/user"
)

type Grant struct {
	Token     string
	ExpiresAt time.Time
}

type DeletionService interface {
	Begin(ctx context.Context, target domain.ID, adminPhone, recaptchaToken string) (uuid.UUID, authflow.Snapshot, error)
	Resend(ctx context.Context, attemptID uuid.UUID, adminPhone, recaptchaToken string) (authflow.Snapshot, error)
	Verify(ctx context.Context, attemptID uuid.UUID, code string) (Grant, error)
	Cancel(attemptID uuid.UUID) error
	ConfirmDelete(ctx context.Context, grantToken string, target domain.ID) error
	LatestCode(ctx context.Context, adminPhone string) (*otp.Request, error)
}
