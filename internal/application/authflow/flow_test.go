package authflow_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"user-admin-dashboard/internal/application/authflow"
)

const (
	adminPhone = "+919876543210"
	targetUser = "+911111111111"
)

func mustNotCall(t *testing.T) *FakeStrategy {
	return &FakeStrategy{
		IssueFunc: func(context.Context, authflow.IssueRequest) (*authflow.Ticket, error) {
			t.Fatal("unexpected Issue call")
			return nil, nil
		},
		VerifyFunc: func(context.Context, *authflow.Ticket, string) (authflow.Outcome, error) {
			t.Fatal("unexpected Verify call")
			return authflow.OutcomeNone, nil
		},
	}
}

func TestFlow_TestPhoneIsAuthorizedWithFixedCode(t *testing.T) {
	f := authflow.New(authflow.WithTestPhones(mustNotCall(t), 0), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, f.RequestCode(ctx, "+91 90219 47718", targetUser, ""))
	snap := f.Snapshot()
	assert.Equal(t, authflow.CodeIssued, snap.State)
	assert.True(t, snap.TestPhone)
	assert.Equal(t, "+919021947718", snap.AdminPhone)

	outcome, err := f.SubmitCode(ctx, authflow.TestPhoneCode)
	require.NoError(t, err)
	assert.Equal(t, authflow.Accepted, outcome)
	assert.Equal(t, authflow.Authorized, f.State())
}

func TestFlow_TestPhoneRejectsOtherCodes(t *testing.T) {
	f := authflow.New(authflow.WithTestPhones(mustNotCall(t), 0), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, f.RequestCode(ctx, "+919307229712", targetUser, ""))
	_, err := f.SubmitCode(ctx, "123456")
	require.ErrorIs(t, err, authflow.ErrInvalidCode)
	assert.Equal(t, authflow.Failed, f.State())

	// failed is re-enterable
	require.NoError(t, f.RequestCode(ctx, "+919307229712", targetUser, ""))
	assert.Equal(t, authflow.CodeIssued, f.State())
}

func TestFlow_RequestCodeValidation(t *testing.T) {
	tests := []struct {
		name   string
		phone  string
		target string
		field  string
	}{
		{name: "empty phone", phone: "", target: targetUser, field: "admin_phone"},
		{name: "blank phone", phone: "   \t", target: targetUser, field: "admin_phone"},
		{name: "empty target", phone: adminPhone, target: " ", field: "user_id"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := authflow.New(mustNotCall(t), zap.NewNop())

			err := f.RequestCode(context.Background(), tt.phone, tt.target, "")

			var ve *authflow.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, authflow.Idle, f.State())
		})
	}
}

func TestFlow_SubmitCodeValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("no code requested", func(t *testing.T) {
		f := authflow.New(mustNotCall(t), zap.NewNop())
		_, err := f.SubmitCode(ctx, "123456")
		var ve *authflow.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, authflow.Idle, f.State())
	})

	t.Run("empty code", func(t *testing.T) {
		f := authflow.New(authflow.WithTestPhones(mustNotCall(t), 0), zap.NewNop())
		require.NoError(t, f.RequestCode(ctx, "+919307473197", targetUser, ""))

		_, err := f.SubmitCode(ctx, "  ")
		var ve *authflow.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, authflow.CodeIssued, f.State())
	})

	t.Run("already authorized", func(t *testing.T) {
		f := authflow.New(authflow.WithTestPhones(mustNotCall(t), 0), zap.NewNop())
		require.NoError(t, f.RequestCode(ctx, "+919307473197", targetUser, ""))
		_, err := f.SubmitCode(ctx, authflow.TestPhoneCode)
		require.NoError(t, err)

		_, err = f.SubmitCode(ctx, authflow.TestPhoneCode)
		var ve *authflow.ValidationError
		require.ErrorAs(t, err, &ve)

		err = f.RequestCode(ctx, "+919307473197", targetUser, "")
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, authflow.Authorized, f.State())
	})
}

func TestFlow_DeliveryFailures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{name: "rate limited", err: authflow.ErrRateLimited, wantMsg: "Too many requests. Please try again later"},
		{name: "quota", err: authflow.ErrQuotaExceeded, wantMsg: "SMS quota exceeded. Please try again later"},
		{name: "invalid phone collapses", err: errors.New("INVALID_PHONE_NUMBER"), wantMsg: "failed to send OTP"},
		{name: "network collapses", err: errors.New("dial tcp: i/o timeout"), wantMsg: "failed to send OTP"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := authflow.New(&FakeStrategy{
				IssueFunc: func(context.Context, authflow.IssueRequest) (*authflow.Ticket, error) {
					return nil, tt.err
				},
			}, zap.NewNop())

			err := f.RequestCode(context.Background(), adminPhone, targetUser, "")

			var de *authflow.CodeDeliveryError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.wantMsg, de.Error())
			assert.Equal(t, authflow.Failed, f.State())
		})
	}
}

func TestFlow_VerifyErrorCollapsesToRejected(t *testing.T) {
	sess := &FakeSession{
		ConfirmCodeFunc: func(context.Context, string) error { return errors.New("provider down") },
	}
	f := authflow.New(issuing(sess), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, f.RequestCode(ctx, adminPhone, targetUser, "token"))
	outcome, err := f.SubmitCode(ctx, "123456")
	require.ErrorIs(t, err, authflow.ErrInvalidCode)
	assert.Equal(t, authflow.Rejected, outcome)
	assert.Equal(t, authflow.Failed, f.State())
	assert.Equal(t, 1, sess.Released())
}

func TestFlow_ResendReplacesTicket(t *testing.T) {
	var sessions []*FakeSession
	strategy := authflow.NewProvider(&FakeVerifier{
		AcquireFunc: func(context.Context) (authflow.VerifierSession, error) {
			s := &FakeSession{ConfirmCodeFunc: func(context.Context, string) error { return nil }}
			sessions = append(sessions, s)
			return s, nil
		},
	}, 0)
	f := authflow.New(strategy, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, f.RequestCode(ctx, adminPhone, targetUser, "token"))
	require.NoError(t, f.RequestCode(ctx, adminPhone, targetUser, "token"))
	require.Len(t, sessions, 2)
	assert.Equal(t, 1, sessions[0].Released())
	assert.Equal(t, 0, sessions[1].Released())

	f.Close()
	assert.Equal(t, authflow.Idle, f.State())
	assert.Equal(t, 1, sessions[1].Released())
}

func TestFlow_ConcurrentCallIsBusy(t *testing.T) {
	entered := make(chan struct{})
	unblock := make(chan struct{})
	f := authflow.New(&FakeStrategy{
		IssueFunc: func(_ context.Context, req authflow.IssueRequest) (*authflow.Ticket, error) {
			close(entered)
			<-unblock
			return &authflow.Ticket{AdminPhone: req.AdminPhone, TargetUserID: req.TargetUserID}, nil
		},
	}, zap.NewNop())

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		firstErr = f.RequestCode(context.Background(), adminPhone, targetUser, "")
	}()

	<-entered
	assert.Equal(t, authflow.CodeRequested, f.State())
	require.ErrorIs(t, f.RequestCode(context.Background(), adminPhone, targetUser, ""), authflow.ErrBusy)
	_, err := f.SubmitCode(context.Background(), "123456")
	require.ErrorIs(t, err, authflow.ErrBusy)

	close(unblock)
	wg.Wait()
	require.NoError(t, firstErr)
	assert.Equal(t, authflow.CodeIssued, f.State())
}

func TestFlow_CloseDuringIssueDropsResult(t *testing.T) {
	sess := &FakeSession{}
	entered := make(chan struct{})
	unblock := make(chan struct{})
	sess.SendCodeFunc = func(context.Context, string, string) error {
		close(entered)
		<-unblock
		return nil
	}
	f := authflow.New(issuing(sess), zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- f.RequestCode(context.Background(), adminPhone, targetUser, "token") }()

	<-entered
	f.Close()
	close(unblock)

	select {
	case err := <-done:
		require.ErrorIs(t, err, authflow.ErrClosed)
	case <-time.After(time.Second):
		t.Fatal("RequestCode did not return")
	}
	assert.Equal(t, authflow.Idle, f.State())
	assert.Equal(t, 1, sess.Released())
}

func TestFlow_CloseFromAnyState(t *testing.T) {
	f := authflow.New(authflow.WithTestPhones(mustNotCall(t), 0), zap.NewNop())
	ctx := context.Background()

	f.Close()
	assert.Equal(t, authflow.Idle, f.State())

	require.NoError(t, f.RequestCode(ctx, "+919021947718", targetUser, ""))
	f.Close()
	assert.Equal(t, authflow.Idle, f.State())
	assert.Equal(t, authflow.Snapshot{State: authflow.Idle}, f.Snapshot())

	require.NoError(t, f.RequestCode(ctx, "+919021947718", targetUser, ""))
	_, err := f.SubmitCode(ctx, authflow.TestPhoneCode)
	require.NoError(t, err)
	f.Close()
	assert.Equal(t, authflow.Idle, f.State())
}
