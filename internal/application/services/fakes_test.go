package services_test

import (
	"context"
	"errors"
	"sync"

	"user-admin-dashboard/internal/application/ports"
	domain "user-admin-dashboard/internal/domain/user"
	"user-admin-dashboard/internal/infrastructure/mq"
)

type FakeUserRepo struct {
	FetchUsersFunc func(ctx context.Context) (domain.Users, error)
	DeleteUserFunc func(ctx context.Context, id domain.ID) error
	UpsertUserFunc func(ctx context.Context, u domain.User) error
}

func (f *FakeUserRepo) FetchUsers(ctx context.Context) (domain.Users, error) {
	if f.FetchUsersFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchUsersFunc(ctx)
}

func (f *FakeUserRepo) DeleteUser(ctx context.Context, id domain.ID) error {
	if f.DeleteUserFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteUserFunc(ctx, id)
}

func (f *FakeUserRepo) UpsertUser(ctx context.Context, u domain.User) error {
	if f.UpsertUserFunc == nil {
		return errors.New("not used")
	}
	return f.UpsertUserFunc(ctx, u)
}

type FakePublisher struct {
	mu     sync.Mutex
	Events []mq.Event
}

func (f *FakePublisher) Publish(e mq.Event) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Events = append(f.Events, e)
	return true
}

type FakeDirectory struct {
	ListFunc   func(ctx context.Context) domain.Users
	DeleteFunc func(ctx context.Context, id domain.ID, by ports.Actor) error
}

func (f *FakeDirectory) List(ctx context.Context) domain.Users {
	if f.ListFunc == nil {
		return domain.Users{}
	}
	return f.ListFunc(ctx)
}

func (f *FakeDirectory) Delete(ctx context.Context, id domain.ID, by ports.Actor) error {
	if f.DeleteFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteFunc(ctx, id, by)
}
