package otp

import (
	"time"

	"github.com/google/uuid"
)

// Request is a persisted self-issued code awaiting verification.
type Request struct {
	ID         uuid.UUID
	UserPhone  string
	AdminPhone string
	OTP        string
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

func (r Request) Expired(now time.Time) bool { return now.After(r.ExpiresAt) }
