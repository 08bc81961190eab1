// Package phoneauth talks to Firebase phone authentication through the
// Identity Toolkit API.
package phoneauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"user-admin-dashboard/internal/application/authflow"
	"user-admin-dashboard/internal/infrastructure/timeouts"
)

// ErrNoSessionInfo means the provider accepted the send but returned no
// session to confirm against.
var ErrNoSessionInfo = errors.New("phone auth provider returned no session info")

// Client owns the Identity Toolkit service. Sessions are handed out per
// attempt and must be released; Close releases whatever is left.
type Client struct {
	svc     *identitytoolkit.Service
	timeout time.Duration
	logger  *zap.Logger

	mu       sync.Mutex
	closed   bool
	sessions map[*session]struct{}
}

func New(ctx context.Context, logger *zap.Logger, apiKey string, timeout time.Duration, opts ...option.ClientOption) (*Client, error) {
	if timeout <= 0 {
		timeout = timeouts.DefaultOTP
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)

	svc, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("identity toolkit: %w", err)
	}

	logger.Info("phone auth provider initialized")

	return &Client{
		svc:      svc,
		timeout:  timeout,
		logger:   logger,
		sessions: make(map[*session]struct{}),
	}, nil
}

func (c *Client) Acquire(_ context.Context) (authflow.VerifierSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, authflow.ErrVerifierShutdown
	}
	s := &session{client: c}
	c.sessions[s] = struct{}{}

	return s, nil
}

// Active reports how many sessions are still held.
func (c *Client) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	if n := len(c.sessions); n > 0 {
		c.logger.Info("releasing open phone auth sessions", zap.Int("count", n))
	}
	c.sessions = make(map[*session]struct{})

	return nil
}

func (c *Client) release(s *session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, s)
}

type session struct {
	client *Client

	mu          sync.Mutex
	sessionInfo string
}

func (s *session) Handle() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionInfo
}

func (s *session) SendCode(ctx context.Context, phone, recaptchaToken string) error {
	resp, err := timeouts.Do(ctx, s.client.timeout, func(ctx context.Context) (*identitytoolkit.IdentitytoolkitRelyingpartySendVerificationCodeResponse, error) {
		return s.client.svc.Relyingparty.SendVerificationCode(&identitytoolkit.IdentitytoolkitRelyingpartySendVerificationCodeRequest{
			PhoneNumber:    phone,
			RecaptchaToken: recaptchaToken,
		}).Context(ctx).Do()
	})
	if err != nil {
		return sendError(err)
	}

	if resp == nil || resp.SessionInfo == "" {
		return ErrNoSessionInfo
	}

	s.mu.Lock()
	s.sessionInfo = resp.SessionInfo
	s.mu.Unlock()

	return nil
}

func (s *session) ConfirmCode(ctx context.Context, code string) error {
	info := s.Handle()
	if info == "" {
		return authflow.ErrCodeMismatch
	}

	err := timeouts.Run(ctx, s.client.timeout, func(ctx context.Context) error {
		_, err := s.client.svc.Relyingparty.VerifyPhoneNumber(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPhoneNumberRequest{
			SessionInfo: info,
			Code:        code,
		}).Context(ctx).Do()
		return err
	})
	if err != nil {
		return verifyError(err)
	}

	return nil
}

func (s *session) Release() { s.client.release(s) }

func providerMessage(err error) string {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr.Message
	}
	return ""
}

func sendError(err error) error {
	msg := providerMessage(err)
	switch {
	case strings.HasPrefix(msg, "TOO_MANY_ATTEMPTS_TRY_LATER"):
		return fmt.Errorf("%s: %w", msg, authflow.ErrRateLimited)
	case strings.HasPrefix(msg, "QUOTA_EXCEEDED"):
		return fmt.Errorf("%s: %w", msg, authflow.ErrQuotaExceeded)
	}
	return fmt.Errorf("send verification code: %w", err)
}

func verifyError(err error) error {
	msg := providerMessage(err)
	switch {
	case strings.HasPrefix(msg, "INVALID_CODE"), strings.HasPrefix(msg, "INVALID_SESSION_INFO"):
		return fmt.Errorf("%s: %w", msg, authflow.ErrCodeMismatch)
	case strings.HasPrefix(msg, "SESSION_EXPIRED"), strings.HasPrefix(msg, "CODE_EXPIRED"):
		return fmt.Errorf("%s: %w", msg, authflow.ErrCodeExpired)
	}
	return fmt.Errorf("verify phone number: %w", err)
}
