// Package lockout throttles repeated login failures. After a configured
// number of failures for the same username and client IP within a window,
// further attempts are rejected before the backend verifier is consulted.
package lockout

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	dErrors "authgw/pkg/domain-errors"
	"authgw/pkg/requestcontext"
)

// Record tracks the failure state for one username+IP pair.
type Record struct {
	Failures    int       `json:"failures"`
	WindowStart time.Time `json:"window_start"`
	LockedUntil time.Time `json:"locked_until"`
}

// LockedAt reports whether the record is hard-locked at the given time.
func (r *Record) LockedAt(now time.Time) bool {
	return r != nil && now.Before(r.LockedUntil)
}

// Store persists lockout records. Implementations treat a missing key as a
// nil record, not an error.
type Store interface {
	Get(ctx context.Context, key string) (*Record, error)
	Put(ctx context.Context, key string, rec *Record, ttl time.Duration) error
	Clear(ctx context.Context, key string) error
}

// Policy is the lockout configuration.
type Policy struct {
	MaxFailures int
	Window      time.Duration
	Duration    time.Duration
}

// Service applies the lockout policy over a Store.
type Service struct {
	store  Store
	policy Policy
	logger *slog.Logger
}

// New creates a lockout service.
func New(store Store, policy Policy, logger *slog.Logger) *Service {
	return &Service{store: store, policy: policy, logger: logger}
}

func key(username, ip string) string {
	return strings.ToLower(username) + "|" + ip
}

// Check rejects the attempt with a CodeRateLimited error when the pair is
// currently locked. Store failures come back as CodeInternal so the caller
// can decide to fail open.
func (s *Service) Check(ctx context.Context, username, ip string) error {
	rec, err := s.store.Get(ctx, key(username, ip))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "read lockout record")
	}

	now := requestcontext.Now(ctx)
	if rec.LockedAt(now) {
		retryAfter := int(rec.LockedUntil.Sub(now).Seconds())
		s.logger.WarnContext(ctx, "login attempt while locked out",
			"username", username,
			"retry_after_seconds", retryAfter,
		)
		return dErrors.Newf(dErrors.CodeRateLimited, "too many failed login attempts, retry in %ds", retryAfter)
	}
	return nil
}

// RecordFailure bumps the failure counter and hard-locks the pair once the
// policy threshold is reached within the window.
func (s *Service) RecordFailure(ctx context.Context, username, ip string) error {
	k := key(username, ip)
	rec, err := s.store.Get(ctx, k)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "read lockout record")
	}

	now := requestcontext.Now(ctx)
	if rec == nil || now.Sub(rec.WindowStart) > s.policy.Window {
		rec = &Record{WindowStart: now}
	}
	rec.Failures++

	if rec.Failures >= s.policy.MaxFailures {
		rec.LockedUntil = now.Add(s.policy.Duration)
		s.logger.WarnContext(ctx, "login lockout triggered",
			"username", username,
			"failures", rec.Failures,
			"locked_until", rec.LockedUntil,
		)
	}

	ttl := s.policy.Window
	if s.policy.Duration > ttl {
		ttl = s.policy.Duration
	}
	if err := s.store.Put(ctx, k, rec, ttl); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("persist lockout record for %s", username))
	}
	return nil
}

// Clear drops the failure state after a successful login.
func (s *Service) Clear(ctx context.Context, username, ip string) error {
	if err := s.store.Clear(ctx, key(username, ip)); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "clear lockout record")
	}
	return nil
}
