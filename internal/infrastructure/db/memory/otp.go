package memory

import (
	"context"
	"sync"

	"user-admin-dashboard/internal/domain/otp"
)

type OTPRepository struct {
	mu       sync.Mutex
	requests []otp.Request
}

func NewOTPRepository() *OTPRepository {
	return &OTPRepository{}
}

func (r *OTPRepository) CreateRequest(_ context.Context, req otp.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests = append(r.requests, req)

	return nil
}

func (r *OTPRepository) ConsumeRequest(_ context.Context, userPhone, adminPhone, code string) (*otp.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.requests) - 1; i >= 0; i-- {
		req := r.requests[i]
		if req.UserPhone == userPhone && req.AdminPhone == adminPhone && req.OTP == code {
			r.requests = append(r.requests[:i], r.requests[i+1:]...)
			return &req, nil
		}
	}

	return nil, nil
}

func (r *OTPRepository) FetchLatestByAdmin(_ context.Context, adminPhone string) (*otp.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.requests) - 1; i >= 0; i-- {
		if r.requests[i].AdminPhone == adminPhone {
			req := r.requests[i]
			return &req, nil
		}
	}

	return nil, nil
}

// Len reports how many records are stored.
func (r *OTPRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}
