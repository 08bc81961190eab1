package authflow_test

import (
	"context"
	"sync"

	"user-admin-dashboard/internal/application/authflow"
	"user-admin-dashboard/internal/domain/otp"
)

type FakeStrategy struct {
	IssueFunc  func(ctx context.Context, req authflow.IssueRequest) (*authflow.Ticket, error)
	VerifyFunc func(ctx context.Context, t *authflow.Ticket, code string) (authflow.Outcome, error)
}

func (f *FakeStrategy) Issue(ctx context.Context, req authflow.IssueRequest) (*authflow.Ticket, error) {
	return f.IssueFunc(ctx, req)
}

func (f *FakeStrategy) Verify(ctx context.Context, t *authflow.Ticket, code string) (authflow.Outcome, error) {
	return f.VerifyFunc(ctx, t, code)
}

type FakeNotifier struct {
	mu       sync.Mutex
	Messages []authflow.Message
	SendErr  error
}

func (f *FakeNotifier) Send(_ context.Context, m authflow.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SendErr != nil {
		return f.SendErr
	}
	f.Messages = append(f.Messages, m)
	return nil
}

type FakeOTPRepo struct {
	CreateRequestFunc      func(ctx context.Context, r otp.Request) error
	ConsumeRequestFunc     func(ctx context.Context, userPhone, adminPhone, code string) (*otp.Request, error)
	FetchLatestByAdminFunc func(ctx context.Context, adminPhone string) (*otp.Request, error)
}

func (f *FakeOTPRepo) CreateRequest(ctx context.Context, r otp.Request) error {
	return f.CreateRequestFunc(ctx, r)
}

func (f *FakeOTPRepo) ConsumeRequest(ctx context.Context, userPhone, adminPhone, code string) (*otp.Request, error) {
	return f.ConsumeRequestFunc(ctx, userPhone, adminPhone, code)
}

func (f *FakeOTPRepo) FetchLatestByAdmin(ctx context.Context, adminPhone string) (*otp.Request, error) {
	return f.FetchLatestByAdminFunc(ctx, adminPhone)
}

type FakeSession struct {
	SendCodeFunc    func(ctx context.Context, phone, recaptchaToken string) error
	ConfirmCodeFunc func(ctx context.Context, code string) error

	mu       sync.Mutex
	released int
}

func (f *FakeSession) SendCode(ctx context.Context, phone, recaptchaToken string) error {
	if f.SendCodeFunc == nil {
		return nil
	}
	return f.SendCodeFunc(ctx, phone, recaptchaToken)
}

func (f *FakeSession) ConfirmCode(ctx context.Context, code string) error {
	return f.ConfirmCodeFunc(ctx, code)
}

func (f *FakeSession) Handle() string { return "session-info" }

func (f *FakeSession) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released++
}

func (f *FakeSession) Released() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.released
}

type FakeVerifier struct {
	AcquireFunc func(ctx context.Context) (authflow.VerifierSession, error)
}

func (f *FakeVerifier) Acquire(ctx context.Context) (authflow.VerifierSession, error) {
	return f.AcquireFunc(ctx)
}

type FakeLimiter struct {
	AllowFunc func(ctx context.Context, key string) (bool, error)
}

func (f *FakeLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return f.AllowFunc(ctx, key)
}

// issuing returns a strategy that issues tickets through a FakeSession so
// releases can be counted.
func issuing(sess *FakeSession) authflow.Strategy {
	return authflow.NewProvider(&FakeVerifier{
		AcquireFunc: func(context.Context) (authflow.VerifierSession, error) { return sess, nil },
	}, 0)
}
