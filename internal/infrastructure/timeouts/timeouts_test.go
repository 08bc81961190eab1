package timeouts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-admin-dashboard/internal/domain/user"
)

func TestDo_ReturnsResult(t *testing.T) {
	v, err := Do(context.Background(), time.Second, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestDo_PassesErrorThrough(t *testing.T) {
	boom := errors.New("boom")
	_, err := Do(context.Background(), time.Second, func(ctx context.Context) (int, error) {
		return 0, boom
	})
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestDo_TimesOutWhenCallIgnoresContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	start := time.Now()
	_, err := Do(context.Background(), 20*time.Millisecond, func(ctx context.Context) (int, error) {
		<-release
		return 1, nil
	})
	require.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), time.Second)
}

func TestDo_WrapsDeadlineFromCall(t *testing.T) {
	_, err := Do(context.Background(), 10*time.Millisecond, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	require.ErrorIs(t, err, ErrTimeout)
}

func TestRun_ParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, time.Second, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimeout)
}

type slowUsers struct {
	delay time.Duration
}

func (s slowUsers) FetchUsers(ctx context.Context) (user.Users, error) {
	select {
	case <-time.After(s.delay):
		return user.Users{{ID: "+911111111111"}}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s slowUsers) DeleteUser(ctx context.Context, id user.ID) error {
	_, err := s.FetchUsers(ctx)
	return err
}

func (s slowUsers) UpsertUser(ctx context.Context, u user.User) error {
	_, err := s.FetchUsers(ctx)
	return err
}

func TestUsers_AppliesPolicy(t *testing.T) {
	repo := Users(slowUsers{delay: 50 * time.Millisecond}, Policy{
		List:     time.Second,
		Mutation: 5 * time.Millisecond,
	})

	us, err := repo.FetchUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, us, 1)

	err = repo.DeleteUser(context.Background(), "+911111111111")
	require.ErrorIs(t, err, ErrTimeout)
}

func TestPolicy_ZeroValueIsBounded(t *testing.T) {
	p := Policy{}.orDefault()
	assert.Equal(t, DefaultPolicy(), p)
}
