package authflow

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"user-admin-dashboard/internal/domain/otp"
)

const (
	DefaultExpiry = 10 * time.Minute

	codeMin  = 100000
	codeSpan = 900000
)

const KindDeletionOTP = "deletion_otp"

type Message struct {
	Kind        string
	Destination string
	Body        string
}

// Notifier delivers a self-issued code to the admin.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// SelfIssued generates codes locally, stores them in otp_requests and
// consumes the stored record on verification.
type SelfIssued struct {
	requests otp.Repository
	notifier Notifier
	expiry   time.Duration
	logger   *zap.Logger

	now     func() time.Time
	newCode func() (string, error)
}

func NewSelfIssued(requests otp.Repository, notifier Notifier, expiry time.Duration, logger *zap.Logger) *SelfIssued {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &SelfIssued{
		requests: requests,
		notifier: notifier,
		expiry:   expiry,
		logger:   logger,
		now:      time.Now,
		newCode:  generateCode,
	}
}

// WithClock replaces the time source.
func (s *SelfIssued) WithClock(now func() time.Time) *SelfIssued {
	s.now = now
	return s
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", codeMin+n.Int64()), nil
}

func (s *SelfIssued) Issue(ctx context.Context, req IssueRequest) (*Ticket, error) {
	code, err := s.newCode()
	if err != nil {
		return nil, &CodeDeliveryError{Err: err}
	}

	now := s.now()
	rec := otp.Request{
		ID:         uuid.New(),
		UserPhone:  req.TargetUserID,
		AdminPhone: req.AdminPhone,
		OTP:        code,
		ExpiresAt:  now.Add(s.expiry),
		CreatedAt:  now,
	}
	t := &Ticket{
		Handle:       rec.ID.String(),
		AdminPhone:   req.AdminPhone,
		TargetUserID: req.TargetUserID,
		IssuedAt:     now,
		ExpiresAt:    rec.ExpiresAt,
	}

	if err = s.requests.CreateRequest(ctx, rec); err != nil {
		s.logger.Warn("otp storage unavailable, verifying in memory",
			zap.String("admin_phone", req.AdminPhone),
			zap.String("user_id", req.TargetUserID),
			zap.Error(err),
		)
		t.localCode = code
	}

	if err = s.notifier.Send(ctx, Message{
		Kind:        KindDeletionOTP,
		Destination: req.AdminPhone,
		Body:        fmt.Sprintf("Your OTP to delete user %s is %s. It is valid for %s.", req.TargetUserID, code, s.expiry),
	}); err != nil {
		return nil, &CodeDeliveryError{Err: err}
	}

	return t, nil
}

func (s *SelfIssued) Verify(ctx context.Context, t *Ticket, code string) (Outcome, error) {
	if t.localCode != "" {
		return verifyLocal(t, code, s.now()), nil
	}

	rec, err := s.requests.ConsumeRequest(ctx, t.TargetUserID, t.AdminPhone, code)
	if err != nil {
		return Rejected, fmt.Errorf("consume otp request: %w", err)
	}
	// a record from an earlier issue for the same pair was replaced by this
	// ticket and no longer authorizes anything
	if rec == nil || rec.ID.String() != t.Handle {
		return Rejected, nil
	}
	if rec.Expired(s.now()) {
		return Expired, nil
	}

	return Accepted, nil
}

func verifyLocal(t *Ticket, code string, now time.Time) Outcome {
	if t.consumed || subtle.ConstantTimeCompare([]byte(t.localCode), []byte(code)) != 1 {
		return Rejected
	}
	if now.After(t.ExpiresAt) {
		return Expired
	}
	t.consumed = true
	return Accepted
}
