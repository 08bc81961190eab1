package ports

import (
	"time"

	"user-admin-dashboard/internal/infrastructure/jwt"
)

type Grants interface {
	IssueGrant(attemptID, targetUserID, adminPhone string) (string, time.Time, error)
	ValidateGrant(token string) (*jwt.GrantClaims, error)
}
