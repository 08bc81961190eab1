// Package timeouts bounds every call that leaves the process.
//
// All store calls go through the decorators in this package so the wait
// ceilings live in one Policy instead of being repeated at each call site.
// A call that outlives its ceiling fails with ErrTimeout; nothing is retried.
package timeouts

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrTimeout = errors.New("backend call timed out")

const (
	DefaultList     = 10 * time.Second
	DefaultMutation = 5 * time.Second
	DefaultOTP      = 5 * time.Second
)

type Policy struct {
	List     time.Duration
	Mutation time.Duration
	OTP      time.Duration
}

func DefaultPolicy() Policy {
	return Policy{List: DefaultList, Mutation: DefaultMutation, OTP: DefaultOTP}
}

// orDefault fills unset ceilings so a zero Policy is still bounded.
func (p Policy) orDefault() Policy {
	if p.List <= 0 {
		p.List = DefaultList
	}
	if p.Mutation <= 0 {
		p.Mutation = DefaultMutation
	}
	if p.OTP <= 0 {
		p.OTP = DefaultOTP
	}
	return p
}

// Do runs fn with a context that expires after d. It returns as soon as the
// deadline passes even if fn does not watch its context.
func Do[T any](ctx context.Context, d time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		ch <- result{v: v, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil && errors.Is(r.err, context.DeadlineExceeded) {
			return r.v, fmt.Errorf("%w: %v", ErrTimeout, r.err)
		}
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, ErrTimeout
		}
		return zero, ctx.Err()
	}
}

// Run is Do for calls without a result.
func Run(ctx context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	_, err := Do(ctx, d, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
