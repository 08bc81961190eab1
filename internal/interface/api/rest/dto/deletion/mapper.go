package deletion

import (
	"time"

	"github.com/google/uuid"

	"user-admin-dashboard/internal/application/authflow"
	"user-admin-dashboard/internal/application/ports"
	"user-admin-dashboard/internal/domain/otp"
)

const TokenTypeBearer = "Bearer"

func ToAttempt(id uuid.UUID, userID string, s authflow.Snapshot) Attempt {
	a := Attempt{
		AttemptID:  id.String(),
		UserID:     userID,
		State:      s.State.String(),
		TestPhone:  s.TestPhone,
		LocalCheck: s.Degraded,
	}
	if !s.ExpiresAt.IsZero() {
		exp := s.ExpiresAt.UTC()
		a.ExpiresAt = &exp
	}
	return a
}

func ToGrant(g ports.Grant) Grant {
	return Grant{
		GrantToken: g.Token,
		TokenType:  TokenTypeBearer,
		ExpiresAt:  g.ExpiresAt.UTC(),
	}
}

func ToDevCode(r otp.Request) DevCode {
	return DevCode{
		AdminPhone: r.AdminPhone,
		UserID:     r.UserPhone,
		Code:       r.OTP,
		ExpiresAt:  r.ExpiresAt.In(time.UTC),
	}
}
