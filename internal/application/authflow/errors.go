package authflow

import (
	"errors"
)

var (
	// ErrInvalidCode is returned for every rejected code, wrong or expired.
	ErrInvalidCode = errors.New("invalid OTP")
	ErrBusy        = errors.New("another request for this attempt is in progress")
	ErrClosed      = errors.New("authorization attempt closed")

	ErrRateLimited      = errors.New("too many requests")
	ErrQuotaExceeded    = errors.New("sms quota exceeded")
	ErrCodeMismatch     = errors.New("verification code mismatch")
	ErrCodeExpired      = errors.New("verification code expired")
	ErrVerifierShutdown = errors.New("phone verifier is shut down")
)

const (
	msgDeliveryFailed = "failed to send OTP"
	msgRateLimited    = "Too many requests. Please try again later"
	msgQuotaExceeded  = "SMS quota exceeded. Please try again later"
)

type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

// CodeDeliveryError reports a failed send. Only rate limit and quota causes
// are exposed to callers, everything else reads as a generic failure.
type CodeDeliveryError struct {
	Err error
}

func (e *CodeDeliveryError) Error() string {
	switch {
	case errors.Is(e.Err, ErrRateLimited):
		return msgRateLimited
	case errors.Is(e.Err, ErrQuotaExceeded):
		return msgQuotaExceeded
	}
	return msgDeliveryFailed
}

func (e *CodeDeliveryError) Unwrap() error { return e.Err }

// Throttled reports whether the send was refused by a rate limit or quota.
func (e *CodeDeliveryError) Throttled() bool {
	return errors.Is(e.Err, ErrRateLimited) || errors.Is(e.Err, ErrQuotaExceeded)
}

func deliveryError(err error) error {
	var de *CodeDeliveryError
	if errors.As(err, &de) {
		return err
	}
	return &CodeDeliveryError{Err: err}
}
