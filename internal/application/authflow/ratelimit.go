package authflow

import (
	"context"

	"go.uber.org/zap"
)

// Limiter counts code requests per key.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type rateLimited struct {
	next    Strategy
	limiter Limiter
	logger  *zap.Logger
}

// WithRateLimit refuses Issue once the limiter says no. Limiter errors let
// the request through.
func WithRateLimit(next Strategy, limiter Limiter, logger *zap.Logger) Strategy {
	if limiter == nil {
		return next
	}
	return &rateLimited{next: next, limiter: limiter, logger: logger}
}

func (s *rateLimited) Issue(ctx context.Context, req IssueRequest) (*Ticket, error) {
	ok, err := s.limiter.Allow(ctx, "otp:"+req.AdminPhone)
	if err != nil {
		s.logger.Warn("otp rate limiter unavailable", zap.Error(err))
		return s.next.Issue(ctx, req)
	}
	if !ok {
		return nil, &CodeDeliveryError{Err: ErrRateLimited}
	}
	return s.next.Issue(ctx, req)
}

func (s *rateLimited) Verify(ctx context.Context, t *Ticket, code string) (Outcome, error) {
	return s.next.Verify(ctx, t, code)
}
