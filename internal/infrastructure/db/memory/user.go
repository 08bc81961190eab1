// Package memory holds map-backed repositories for local runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"user-admin-dashboard/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[user.ID]user.User
}

func NewUserRepository(seed ...user.User) *UserRepository {
	r := &UserRepository{users: make(map[user.ID]user.User, len(seed))}
	for _, u := range seed {
		r.users[u.ID] = u
	}
	return r
}

func (r *UserRepository) FetchUsers(_ context.Context) (user.Users, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	us := make(user.Users, 0, len(r.users))
	for _, u := range r.users {
		u := u
		us = append(us, &u)
	}
	sort.SliceStable(us, func(i, j int) bool {
		if us[i].CreatedAt.Equal(us[j].CreatedAt) {
			return us[i].ID < us[j].ID
		}
		return us[i].CreatedAt.After(us[j].CreatedAt)
	})

	return us, nil
}

func (r *UserRepository) DeleteUser(_ context.Context, id user.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return user.ErrNotFound
	}
	delete(r.users, id)

	return nil
}

func (r *UserRepository) UpsertUser(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[u.ID] = u

	return nil
}
