package user

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	// FetchUsers returns every user ordered by CreatedAt, newest first.
	FetchUsers(ctx context.Context) (Users, error)
	// DeleteUser returns ErrNotFound when no record has the given id.
	DeleteUser(ctx context.Context, id ID) error
	UpsertUser(ctx context.Context, u User) error
}
