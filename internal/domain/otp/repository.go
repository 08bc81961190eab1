package otp

import (
	"context"
)

type Repository interface {
	CreateRequest(ctx context.Context, r Request) error
	// ConsumeRequest atomically removes and returns the newest record matching
	// all three fields. It returns nil, nil when nothing matches.
	ConsumeRequest(ctx context.Context, userPhone, adminPhone, code string) (*Request, error)
	// FetchLatestByAdmin returns nil, nil when the admin has no stored record.
	FetchLatestByAdmin(ctx context.Context, adminPhone string) (*Request, error)
}
