package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"user-admin-dashboard/internal/application/authflow"
	"user-admin-dashboard/internal/application/ports"
	"user-admin-dashboard/internal/domain/otp"
	domain "user-admin-dashboard/internal/domain/user"
	"user-admin-dashboard/internal/infrastructure/metrics"
)

const DefaultAttemptMaxAge = 15 * time.Minute

var (
	ErrAttemptNotFound   = errors.New("deletion attempt not found")
	ErrInvalidGrant      = errors.New("invalid or expired deletion grant")
	ErrDevLookupDisabled = errors.New("otp lookup is disabled")
	ErrNoCode            = errors.New("no otp found for this admin phone")
)

type DeletionConfig struct {
	// DevLookup exposes stored self-issued codes through LatestCode.
	DevLookup bool
	MaxAge    time.Duration
}

type attempt struct {
	flow       *authflow.Flow
	target     domain.ID
	createdAt  time.Time
	confirming bool
}

// DeletionService keeps one authorization flow per attempt id and turns an
// authorized flow into a single-use deletion grant.
type DeletionService struct {
	strategy  authflow.Strategy
	directory ports.DirectoryService
	grants    ports.Grants
	requests  otp.Repository
	cfg       DeletionConfig
	mCounter  *prometheus.CounterVec
	logger    *zap.Logger
	now       func() time.Time

	mu       sync.Mutex
	attempts map[uuid.UUID]*attempt
}

func NewDeletionService(
	strategy authflow.Strategy,
	directory ports.DirectoryService,
	grants ports.Grants,
	requests otp.Repository,
	cfg DeletionConfig,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) *DeletionService {
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = DefaultAttemptMaxAge
	}
	return &DeletionService{
		strategy:  strategy,
		directory: directory,
		grants:    grants,
		requests:  requests,
		cfg:       cfg,
		mCounter:  mCounter,
		logger:    logger,
		now:       time.Now,
		attempts:  make(map[uuid.UUID]*attempt),
	}
}

func (s *DeletionService) Begin(ctx context.Context, target domain.ID, adminPhone, recaptchaToken string) (uuid.UUID, authflow.Snapshot, error) {
	s.prune()

	f := authflow.New(s.strategy, s.logger)
	if err := f.RequestCode(ctx, adminPhone, target, recaptchaToken); err != nil {
		s.countIssueError(err)
		f.Close()
		return uuid.Nil, authflow.Snapshot{}, err
	}
	s.mCounter.WithLabelValues(metrics.OTPIssued).Inc()

	id := uuid.New()
	s.mu.Lock()
	s.attempts[id] = &attempt{flow: f, target: target, createdAt: s.now()}
	s.mu.Unlock()

	snap := f.Snapshot()
	s.logger.Info("deletion attempt started",
		zap.String("attempt_id", id.String()),
		zap.String("user_id", target),
		zap.String("admin_phone", snap.AdminPhone),
		zap.Bool("test_phone", snap.TestPhone),
	)

	return id, snap, nil
}

func (s *DeletionService) Resend(ctx context.Context, attemptID uuid.UUID, adminPhone, recaptchaToken string) (authflow.Snapshot, error) {
	a, err := s.get(attemptID)
	if err != nil {
		return authflow.Snapshot{}, err
	}

	if err = a.flow.RequestCode(ctx, adminPhone, a.target, recaptchaToken); err != nil {
		s.countIssueError(err)
		return a.flow.Snapshot(), err
	}
	s.mCounter.WithLabelValues(metrics.OTPIssued).Inc()

	return a.flow.Snapshot(), nil
}

func (s *DeletionService) Verify(ctx context.Context, attemptID uuid.UUID, code string) (ports.Grant, error) {
	a, err := s.get(attemptID)
	if err != nil {
		return ports.Grant{}, err
	}

	outcome, err := a.flow.SubmitCode(ctx, code)
	switch outcome {
	case authflow.Accepted:
		s.mCounter.WithLabelValues(metrics.OTPAccepted).Inc()
	case authflow.Rejected:
		s.mCounter.WithLabelValues(metrics.OTPRejected).Inc()
	case authflow.Expired:
		s.mCounter.WithLabelValues(metrics.OTPExpired).Inc()
	}
	if err != nil {
		if outcome != authflow.OutcomeNone {
			s.logger.Info("otp rejected",
				zap.String("attempt_id", attemptID.String()),
				zap.String("outcome", outcome.String()),
			)
		}
		return ports.Grant{}, err
	}

	snap := a.flow.Snapshot()
	token, exp, err := s.grants.IssueGrant(attemptID.String(), a.target, snap.AdminPhone)
	if err != nil {
		return ports.Grant{}, err
	}

	return ports.Grant{Token: token, ExpiresAt: exp}, nil
}

func (s *DeletionService) Cancel(attemptID uuid.UUID) error {
	s.mu.Lock()
	a, ok := s.attempts[attemptID]
	delete(s.attempts, attemptID)
	s.mu.Unlock()

	if !ok {
		return ErrAttemptNotFound
	}
	a.flow.Close()

	return nil
}

func (s *DeletionService) ConfirmDelete(ctx context.Context, grantToken string, target domain.ID) error {
	claims, err := s.grants.ValidateGrant(grantToken)
	if err != nil || claims.TargetUserID != target {
		return ErrInvalidGrant
	}
	attemptID, err := uuid.Parse(claims.AttemptID)
	if err != nil {
		return ErrInvalidGrant
	}

	s.mu.Lock()
	a, ok := s.attempts[attemptID]
	if !ok {
		s.mu.Unlock()
		return ErrInvalidGrant
	}
	if a.confirming {
		s.mu.Unlock()
		return authflow.ErrBusy
	}
	snap := a.flow.Snapshot()
	if snap.State != authflow.Authorized || a.target != target {
		s.mu.Unlock()
		return ErrInvalidGrant
	}
	a.confirming = true
	s.mu.Unlock()

	err = s.directory.Delete(ctx, target, ports.Actor{AdminPhone: snap.AdminPhone, AttemptID: attemptID.String()})

	s.mu.Lock()
	defer s.mu.Unlock()
	a.confirming = false
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return err
	}
	delete(s.attempts, attemptID)
	a.flow.Close()

	return err
}

// LatestCode returns the newest stored self-issued code for adminPhone.
func (s *DeletionService) LatestCode(ctx context.Context, adminPhone string) (*otp.Request, error) {
	if !s.cfg.DevLookup || s.requests == nil {
		return nil, ErrDevLookupDisabled
	}
	phone := authflow.NormalizePhone(adminPhone)
	if phone == "" {
		return nil, &authflow.ValidationError{Field: "admin_phone", Msg: "admin phone number is required"}
	}

	rec, err := s.requests.FetchLatestByAdmin(ctx, phone)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNoCode
	}

	return rec, nil
}

// Pending reports how many attempts are registered.
func (s *DeletionService) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.attempts)
}

func (s *DeletionService) get(id uuid.UUID) (*attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.attempts[id]
	if !ok {
		return nil, ErrAttemptNotFound
	}
	return a, nil
}

func (s *DeletionService) prune() {
	cutoff := s.now().Add(-s.cfg.MaxAge)

	s.mu.Lock()
	var stale []*attempt
	for id, a := range s.attempts {
		if a.createdAt.Before(cutoff) && !a.confirming {
			stale = append(stale, a)
			delete(s.attempts, id)
		}
	}
	s.mu.Unlock()

	for _, a := range stale {
		a.flow.Close()
	}
	if len(stale) > 0 {
		s.logger.Debug("pruned stale deletion attempts", zap.Int("count", len(stale)))
	}
}

func (s *DeletionService) countIssueError(err error) {
	var de *authflow.CodeDeliveryError
	if !errors.As(err, &de) {
		return
	}
	if de.Throttled() {
		s.mCounter.WithLabelValues(metrics.OTPRateLimited).Inc()
		return
	}
	s.mCounter.WithLabelValues(metrics.OTPDeliveryFailed).Inc()
}
