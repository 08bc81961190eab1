package authflow

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Flow is one deletion authorization attempt. Calls on a Flow never overlap:
// a call made while another is running fails with ErrBusy.
type Flow struct {
	strategy Strategy
	logger   *zap.Logger

	inFlight atomic.Bool

	mu     sync.Mutex
	state  State
	ticket *Ticket
	// gen changes on Close so that a call finishing afterwards drops its result.
	gen uint64
}

type Snapshot struct {
	State        State
	AdminPhone   string
	TargetUserID string
	IssuedAt     time.Time
	ExpiresAt    time.Time
	TestPhone    bool
	Degraded     bool
}

func New(strategy Strategy, logger *zap.Logger) *Flow {
	return &Flow{
		strategy: strategy,
		logger:   logger,
		state:    Idle,
	}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := Snapshot{State: f.state}
	if t := f.ticket; t != nil {
		s.AdminPhone = t.AdminPhone
		s.TargetUserID = t.TargetUserID
		s.IssuedAt = t.IssuedAt
		s.ExpiresAt = t.ExpiresAt
		s.TestPhone = t.TestPhone
		s.Degraded = t.Degraded()
	}
	return s
}

// RequestCode issues a new code to adminPhone for deleting targetUserID.
// Allowed from Idle, CodeIssued (resend) and Failed; a new code replaces the
// previous one.
func (f *Flow) RequestCode(ctx context.Context, adminPhone, targetUserID, recaptchaToken string) error {
	if !f.inFlight.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer f.inFlight.Store(false)

	phone := NormalizePhone(adminPhone)
	if phone == "" {
		return &ValidationError{Field: "admin_phone", Msg: "admin phone number is required"}
	}
	target := strings.TrimSpace(targetUserID)
	if target == "" {
		return &ValidationError{Field: "user_id", Msg: "target user is required"}
	}

	f.mu.Lock()
	switch f.state {
	case Idle, CodeIssued, Failed:
	default:
		st := f.state
		f.mu.Unlock()
		return &ValidationError{Field: "state", Msg: "cannot request a code while " + st.String()}
	}
	f.state = CodeRequested
	gen := f.gen
	f.mu.Unlock()

	t, err := f.strategy.Issue(ctx, IssueRequest{
		AdminPhone:     phone,
		TargetUserID:   target,
		RecaptchaToken: recaptchaToken,
	})

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.gen != gen {
		t.Release()
		return ErrClosed
	}
	if err != nil {
		f.logger.Warn("otp issue failed",
			zap.String("admin_phone", phone),
			zap.String("user_id", target),
			zap.Error(err),
		)
		f.dropTicket()
		f.state = Failed
		return deliveryError(err)
	}

	f.dropTicket()
	f.ticket = t
	f.state = CodeIssued

	return nil
}

// SubmitCode checks code against the issued ticket. Wrong and expired codes
// both move the flow to Failed with ErrInvalidCode; the returned Outcome
// tells them apart.
func (f *Flow) SubmitCode(ctx context.Context, code string) (Outcome, error) {
	if !f.inFlight.CompareAndSwap(false, true) {
		return OutcomeNone, ErrBusy
	}
	defer f.inFlight.Store(false)

	code = strings.TrimSpace(code)
	if code == "" {
		return OutcomeNone, &ValidationError{Field: "code", Msg: "code is required"}
	}

	f.mu.Lock()
	if f.state != CodeIssued {
		st := f.state
		f.mu.Unlock()
		return OutcomeNone, &ValidationError{Field: "state", Msg: "no code pending verification (" + st.String() + ")"}
	}
	f.state = Verifying
	t := f.ticket
	gen := f.gen
	f.mu.Unlock()

	outcome, err := f.strategy.Verify(ctx, t, code)
	if err != nil {
		f.logger.Warn("otp verification error",
			zap.String("admin_phone", t.AdminPhone),
			zap.String("user_id", t.TargetUserID),
			zap.Error(err),
		)
		outcome = Rejected
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.gen != gen {
		return outcome, ErrClosed
	}

	// one submission per ticket
	t.Release()

	if outcome == Accepted {
		f.state = Authorized
		return outcome, nil
	}
	f.state = Failed

	return outcome, ErrInvalidCode
}

// Close resets the flow to Idle from any state and frees per-attempt
// resources. Stored self-issued codes are left to expire.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.gen++
	f.dropTicket()
	f.state = Idle
}

func (f *Flow) dropTicket() {
	if f.ticket != nil {
		f.ticket.Release()
		f.ticket = nil
	}
}
