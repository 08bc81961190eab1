package ports

import (
	"context"

	domain "user-admin-dashboard/internal/domain/user"
)

// Actor identifies who authorized a mutation.
type Actor struct {
	AdminPhone string
	AttemptID  string
}

type DirectoryService interface {
	// List never fails; backend errors yield an empty result.
	List(ctx context.Context) domain.Users
	Delete(ctx context.Context, id domain.ID, by Actor) error
}
