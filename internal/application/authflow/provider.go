package authflow

import (
	"context"
	"errors"
	"time"
)

// VerifierSession is one provider-side verification: send, then confirm.
type VerifierSession interface {
	// SendCode returns ErrRateLimited or ErrQuotaExceeded (possibly wrapped)
	// when the provider throttles the request.
	SendCode(ctx context.Context, phone, recaptchaToken string) error
	// ConfirmCode returns ErrCodeMismatch or ErrCodeExpired for a bad code.
	ConfirmCode(ctx context.Context, code string) error
	Handle() string
	Release()
}

// PhoneVerifier hands out sessions until it is closed.
type PhoneVerifier interface {
	Acquire(ctx context.Context) (VerifierSession, error)
}

// Provider delegates issue and verify to an external phone verification
// service.
type Provider struct {
	verifier PhoneVerifier
	expiry   time.Duration
	now      func() time.Time
}

func NewProvider(verifier PhoneVerifier, expiry time.Duration) *Provider {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Provider{verifier: verifier, expiry: expiry, now: time.Now}
}

func (p *Provider) Issue(ctx context.Context, req IssueRequest) (*Ticket, error) {
	sess, err := p.verifier.Acquire(ctx)
	if err != nil {
		return nil, &CodeDeliveryError{Err: err}
	}
	if err = sess.SendCode(ctx, req.AdminPhone, req.RecaptchaToken); err != nil {
		sess.Release()
		return nil, &CodeDeliveryError{Err: err}
	}

	now := p.now()
	return &Ticket{
		Handle:       sess.Handle(),
		AdminPhone:   req.AdminPhone,
		TargetUserID: req.TargetUserID,
		IssuedAt:     now,
		ExpiresAt:    now.Add(p.expiry),
		session:      sess,
		release:      sess.Release,
	}, nil
}

func (p *Provider) Verify(ctx context.Context, t *Ticket, code string) (Outcome, error) {
	if t.session == nil {
		return Rejected, nil
	}

	err := t.session.ConfirmCode(ctx, code)
	switch {
	case err == nil:
		return Accepted, nil
	case errors.Is(err, ErrCodeExpired):
		return Expired, nil
	case errors.Is(err, ErrCodeMismatch):
		return Rejected, nil
	}

	return Rejected, err
}
