package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"user-admin-dashboard/internal/application/authflow"
	"user-admin-dashboard/internal/application/ports"
	"user-admin-dashboard/internal/application/services"
	domain "user-admin-dashboard/internal/domain/user"
	"user-admin-dashboard/internal/infrastructure/db/memory"
	"user-admin-dashboard/internal/infrastructure/jwt"
	"user-admin-dashboard/internal/infrastructure/metrics"
	"user-admin-dashboard/internal/infrastructure/notification"
)

const (
	testPhone  = "+919021947718"
	realPhone  = "+919876543210"
	targetUser = "+911111111111"
)

func newDeletionEnv(t *testing.T, cfg services.DeletionConfig, directory ports.DirectoryService) (*services.DeletionService, *memory.UserRepository, *memory.OTPRepository, *jwt.Service, func(string) float64) {
	t.Helper()

	users := memory.NewUserRepository(
		domain.User{ID: targetUser, CreatedAt: time.Now()},
		domain.User{ID: "+912222222222", CreatedAt: time.Now()},
	)
	requests := memory.NewOTPRepository()
	counter := metrics.NewUnregisteredCounter()
	logger := zap.NewNop()

	if directory == nil {
		directory = services.NewDirectoryService(users, nil, counter, logger)
	}
	strategy := authflow.WithTestPhones(
		authflow.NewSelfIssued(requests, notification.NewLoggerNotifier(logger), 0, logger), 0,
	)
	grants := jwt.New("secret", time.Minute)
	svc := services.NewDeletionService(strategy, directory, grants, requests, cfg, counter, logger)

	count := func(label string) float64 { return testutil.ToFloat64(counter.WithLabelValues(label)) }
	return svc, users, requests, grants, count
}

func TestDeletion_TestPhoneEndToEnd(t *testing.T) {
	svc, users, requests, _, count := newDeletionEnv(t, services.DeletionConfig{}, nil)
	ctx := context.Background()

	id, snap, err := svc.Begin(ctx, targetUser, "+91 90219 47718", "")
	require.NoError(t, err)
	assert.Equal(t, authflow.CodeIssued, snap.State)
	assert.True(t, snap.TestPhone)
	assert.Equal(t, 0, requests.Len(), "test phones never touch the store")

	grant, err := svc.Verify(ctx, id, authflow.TestPhoneCode)
	require.NoError(t, err)
	require.NotEmpty(t, grant.Token)

	require.NoError(t, svc.ConfirmDelete(ctx, grant.Token, targetUser))

	all, err := users.FetchUsers(ctx)
	require.NoError(t, err)
	for _, u := range all {
		assert.NotEqual(t, targetUser, u.ID)
	}
	assert.Equal(t, 0, svc.Pending())
	assert.Equal(t, 1.0, count(metrics.OTPIssued))
	assert.Equal(t, 1.0, count(metrics.OTPAccepted))

	// grant is single use
	require.ErrorIs(t, svc.ConfirmDelete(ctx, grant.Token, targetUser), services.ErrInvalidGrant)
}

func TestDeletion_SelfIssuedCode(t *testing.T) {
	svc, _, requests, _, count := newDeletionEnv(t, services.DeletionConfig{DevLookup: true}, nil)
	ctx := context.Background()

	id, snap, err := svc.Begin(ctx, targetUser, realPhone, "")
	require.NoError(t, err)
	assert.False(t, snap.TestPhone)
	assert.Equal(t, 1, requests.Len())

	rec, err := svc.LatestCode(ctx, realPhone)
	require.NoError(t, err)

	_, err = svc.Verify(ctx, id, "000000")
	require.ErrorIs(t, err, authflow.ErrInvalidCode)
	assert.Equal(t, 1.0, count(metrics.OTPRejected))

	// failed flow needs a fresh code
	_, err = svc.Verify(ctx, id, rec.OTP)
	var ve *authflow.ValidationError
	require.ErrorAs(t, err, &ve)

	_, err = svc.Resend(ctx, id, realPhone, "")
	require.NoError(t, err)
	rec, err = svc.LatestCode(ctx, realPhone)
	require.NoError(t, err)

	grant, err := svc.Verify(ctx, id, rec.OTP)
	require.NoError(t, err)
	assert.NotEmpty(t, grant.Token)
	assert.Equal(t, 2.0, count(metrics.OTPIssued))
}

func TestDeletion_BeginValidation(t *testing.T) {
	svc, _, requests, _, _ := newDeletionEnv(t, services.DeletionConfig{}, nil)

	_, _, err := svc.Begin(context.Background(), targetUser, "  ", "")

	var ve *authflow.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 0, requests.Len())
	assert.Equal(t, 0, svc.Pending())
}

func TestDeletion_UnknownAttempt(t *testing.T) {
	svc, _, _, _, _ := newDeletionEnv(t, services.DeletionConfig{}, nil)
	ctx := context.Background()
	id := uuid.New()

	_, err := svc.Resend(ctx, id, realPhone, "")
	require.ErrorIs(t, err, services.ErrAttemptNotFound)
	_, err = svc.Verify(ctx, id, "123456")
	require.ErrorIs(t, err, services.ErrAttemptNotFound)
	require.ErrorIs(t, svc.Cancel(id), services.ErrAttemptNotFound)
}

func TestDeletion_CancelDiscardsAttempt(t *testing.T) {
	svc, _, _, _, _ := newDeletionEnv(t, services.DeletionConfig{}, nil)
	ctx := context.Background()

	id, _, err := svc.Begin(ctx, targetUser, testPhone, "")
	require.NoError(t, err)
	grant, err := svc.Verify(ctx, id, authflow.TestPhoneCode)
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(id))
	assert.Equal(t, 0, svc.Pending())
	require.ErrorIs(t, svc.ConfirmDelete(ctx, grant.Token, targetUser), services.ErrInvalidGrant)
}

func TestDeletion_ConfirmDeleteRejectsBadGrants(t *testing.T) {
	svc, _, _, grants, _ := newDeletionEnv(t, services.DeletionConfig{}, nil)
	ctx := context.Background()

	id, _, err := svc.Begin(ctx, targetUser, testPhone, "")
	require.NoError(t, err)

	// attempt not yet authorized
	early, _, err := grants.IssueGrant(id.String(), targetUser, testPhone)
	require.NoError(t, err)
	require.ErrorIs(t, svc.ConfirmDelete(ctx, early, targetUser), services.ErrInvalidGrant)

	grant, err := svc.Verify(ctx, id, authflow.TestPhoneCode)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		target string
	}{
		{name: "garbage", token: "not-a-jwt", target: targetUser},
		{name: "other target", token: grant.Token, target: "+912222222222"},
		{name: "foreign secret", token: func() string {
			tok, _, _ := jwt.New("other", time.Minute).IssueGrant(id.String(), targetUser, testPhone)
			return tok
		}(), target: targetUser},
		{name: "unknown attempt", token: func() string {
			tok, _, _ := grants.IssueGrant(uuid.NewString(), targetUser, testPhone)
			return tok
		}(), target: targetUser},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, svc.ConfirmDelete(ctx, tt.token, tt.target), services.ErrInvalidGrant)
		})
	}

	assert.Equal(t, 1, svc.Pending())
	require.NoError(t, svc.ConfirmDelete(ctx, grant.Token, targetUser))
}

func TestDeletion_FailedDeleteIsRetryable(t *testing.T) {
	calls := 0
	directory := &FakeDirectory{DeleteFunc: func(_ context.Context, id domain.ID, by ports.Actor) error {
		calls++
		assert.Equal(t, targetUser, id)
		assert.Equal(t, testPhone, by.AdminPhone)
		if calls == 1 {
			return services.ErrDeletionFailed
		}
		return nil
	}}
	svc, _, _, _, _ := newDeletionEnv(t, services.DeletionConfig{}, directory)
	ctx := context.Background()

	id, _, err := svc.Begin(ctx, targetUser, testPhone, "")
	require.NoError(t, err)
	grant, err := svc.Verify(ctx, id, authflow.TestPhoneCode)
	require.NoError(t, err)

	require.ErrorIs(t, svc.ConfirmDelete(ctx, grant.Token, targetUser), services.ErrDeletionFailed)
	assert.Equal(t, 1, svc.Pending())

	require.NoError(t, svc.ConfirmDelete(ctx, grant.Token, targetUser))
	assert.Equal(t, 0, svc.Pending())
	assert.Equal(t, 2, calls)
}

func TestDeletion_AlreadyDeletedConsumesAttempt(t *testing.T) {
	directory := &FakeDirectory{DeleteFunc: func(context.Context, domain.ID, ports.Actor) error {
		return services.ErrUserNotFound
	}}
	svc, _, _, _, _ := newDeletionEnv(t, services.DeletionConfig{}, directory)
	ctx := context.Background()

	id, _, err := svc.Begin(ctx, targetUser, testPhone, "")
	require.NoError(t, err)
	grant, err := svc.Verify(ctx, id, authflow.TestPhoneCode)
	require.NoError(t, err)

	require.ErrorIs(t, svc.ConfirmDelete(ctx, grant.Token, targetUser), services.ErrUserNotFound)
	assert.Equal(t, 0, svc.Pending())
}

func TestDeletion_LatestCode(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		svc, _, _, _, _ := newDeletionEnv(t, services.DeletionConfig{}, nil)
		_, err := svc.LatestCode(context.Background(), realPhone)
		require.ErrorIs(t, err, services.ErrDevLookupDisabled)
	})

	t.Run("no code", func(t *testing.T) {
		svc, _, _, _, _ := newDeletionEnv(t, services.DeletionConfig{DevLookup: true}, nil)
		_, err := svc.LatestCode(context.Background(), realPhone)
		require.ErrorIs(t, err, services.ErrNoCode)
	})

	t.Run("empty phone", func(t *testing.T) {
		svc, _, _, _, _ := newDeletionEnv(t, services.DeletionConfig{DevLookup: true}, nil)
		_, err := svc.LatestCode(context.Background(), " ")
		var ve *authflow.ValidationError
		require.ErrorAs(t, err, &ve)
	})
}

func TestDeletion_DeliveryFailureNotRegistered(t *testing.T) {
	counter := metrics.NewUnregisteredCounter()
	strategy := &failingStrategy{err: authflow.ErrQuotaExceeded}
	svc := services.NewDeletionService(strategy, &FakeDirectory{}, jwt.New("s", 0), nil, services.DeletionConfig{}, counter, zap.NewNop())

	_, _, err := svc.Begin(context.Background(), targetUser, realPhone, "")

	var de *authflow.CodeDeliveryError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "SMS quota exceeded. Please try again later", de.Error())
	assert.Equal(t, 0, svc.Pending())
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.WithLabelValues(metrics.OTPRateLimited)))
}

type failingStrategy struct{ err error }

func (s *failingStrategy) Issue(context.Context, authflow.IssueRequest) (*authflow.Ticket, error) {
	return nil, s.err
}

func (s *failingStrategy) Verify(context.Context, *authflow.Ticket, string) (authflow.Outcome, error) {
	return authflow.Rejected, errors.New("not issued")
}
