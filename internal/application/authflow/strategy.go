package authflow

import (
	"context"
	"sync"
	"time"
)

type IssueRequest struct {
	AdminPhone     string
	TargetUserID   string
	RecaptchaToken string
}

// Strategy issues codes and checks submissions. Implementations are picked
// once at construction and never switched on a live flow.
type Strategy interface {
	Issue(ctx context.Context, req IssueRequest) (*Ticket, error)
	// Verify reports the outcome of one submission. A non-nil error means
	// the check itself could not run; callers treat it as Rejected.
	Verify(ctx context.Context, t *Ticket, code string) (Outcome, error)
}

// Ticket is one issued code.
type Ticket struct {
	// Handle is the provider session id or the stored record id.
	Handle       string
	AdminPhone   string
	TargetUserID string
	IssuedAt     time.Time
	ExpiresAt    time.Time
	TestPhone    bool

	// localCode is set when the code is verified in memory: test phones and
	// self-issued codes that could not be stored.
	localCode string
	consumed  bool
	session   VerifierSession

	releaseOnce sync.Once
	release     func()
}

// Degraded reports whether a self-issued code is checked in memory because
// storage failed at issue time.
func (t *Ticket) Degraded() bool { return t.localCode != "" && !t.TestPhone }

// Release frees per-attempt resources. Safe to call more than once.
func (t *Ticket) Release() {
	if t == nil {
		return
	}
	t.releaseOnce.Do(func() {
		if t.release != nil {
			t.release()
		}
	})
}
