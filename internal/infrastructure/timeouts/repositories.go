package timeouts

import (
	"context"

	"user-admin-dashboard/internal/domain/otp"
	"user-admin-dashboard/internal/domain/user"
)

type boundedUsers struct {
	next   user.Repository
	policy Policy
}

// Users bounds listing by policy.List and mutations by policy.Mutation.
func Users(next user.Repository, policy Policy) user.Repository {
	return &boundedUsers{next: next, policy: policy.orDefault()}
}

func (b *boundedUsers) FetchUsers(ctx context.Context) (user.Users, error) {
	return Do(ctx, b.policy.List, b.next.FetchUsers)
}

func (b *boundedUsers) DeleteUser(ctx context.Context, id user.ID) error {
	return Run(ctx, b.policy.Mutation, func(ctx context.Context) error {
		return b.next.DeleteUser(ctx, id)
	})
}

func (b *boundedUsers) UpsertUser(ctx context.Context, u user.User) error {
	return Run(ctx, b.policy.Mutation, func(ctx context.Context) error {
		return b.next.UpsertUser(ctx, u)
	})
}

type boundedRequests struct {
	next   otp.Repository
	policy Policy
}

// Requests bounds every otp_requests call by policy.OTP.
func Requests(next otp.Repository, policy Policy) otp.Repository {
	return &boundedRequests{next: next, policy: policy.orDefault()}
}

func (b *boundedRequests) CreateRequest(ctx context.Context, r otp.Request) error {
	return Run(ctx, b.policy.OTP, func(ctx context.Context) error {
		return b.next.CreateRequest(ctx, r)
	})
}

func (b *boundedRequests) ConsumeRequest(ctx context.Context, userPhone, adminPhone, code string) (*otp.Request, error) {
	return Do(ctx, b.policy.OTP, func(ctx context.Context) (*otp.Request, error) {
		return b.next.ConsumeRequest(ctx, userPhone, adminPhone, code)
	})
}

func (b *boundedRequests) FetchLatestByAdmin(ctx context.Context, adminPhone string) (*otp.Request, error) {
	return Do(ctx, b.policy.OTP, func(ctx context.Context) (*otp.Request, error) {
		return b.next.FetchLatestByAdmin(ctx, adminPhone)
	})
}
