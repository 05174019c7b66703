// Package auth orchestrates the login flow: lockout check, backend
// verification, token issuance and the audit trail.
package auth

import (
	"context"
	"log/slog"
	"time"

	"authgw/internal/audit"
	jwttoken "authgw/internal/jwt_token"
	"authgw/internal/platform/metrics"
	"authgw/internal/txlog"
	"authgw/internal/verifier"
	dErrors "authgw/pkg/domain-errors"
	"authgw/pkg/requestcontext"
)

// TokenIssuer mints tokens for verified identities.
type TokenIssuer interface {
	Issue(username string) (jwttoken.Token, error)
}

// Lockout throttles repeated failures per username and client IP.
type Lockout interface {
	Check(ctx context.Context, username, ip string) error
	RecordFailure(ctx context.Context, username, ip string) error
	Clear(ctx context.Context, username, ip string) error
}

// AuditPublisher records login outcomes on the audit trail.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event)
}

// Service is the login orchestrator.
type Service struct {
	logger   *slog.Logger
	verifier verifier.Verifier
	issuer   TokenIssuer
	lockout  Lockout
	audit    AuditPublisher
	metrics  *metrics.Metrics
	tx       *txlog.Interceptor
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithLockout enables failure throttling.
func WithLockout(l Lockout) Option {
	return func(s *Service) { s.lockout = l }
}

// WithAudit enables the audit trail.
func WithAudit(a AuditPublisher) Option {
	return func(s *Service) { s.audit = a }
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithInterceptor enables transaction logging around the login flow.
func WithInterceptor(tx *txlog.Interceptor) Option {
	return func(s *Service) { s.tx = tx }
}

// NewService creates the orchestrator. Verifier and issuer are required;
// everything else is optional.
func NewService(logger *slog.Logger, v verifier.Verifier, issuer TokenIssuer, opts ...Option) *Service {
	s := &Service{
		logger:   logger,
		verifier: v,
		issuer:   issuer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login verifies the credentials and issues a token. The whole flow runs
// under one transaction log span; the verification step gets a nested span
// sharing the same transaction id.
func (s *Service) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	return txlog.Do(ctx, s.tx, "AuthService.login", creds, func(ctx context.Context) (*LoginResult, error) {
		return s.login(ctx, creds)
	})
}

func (s *Service) login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	start := time.Now()
	ip := requestcontext.ClientIP(ctx)

	if s.lockout != nil {
		if err := s.lockout.Check(ctx, creds.Username, ip); err != nil {
			if dErrors.Is(err, dErrors.CodeRateLimited) {
				s.metrics.IncrementLogin("locked_out")
				s.emitAudit(ctx, creds.Username, audit.OutcomeLockedOut, "lockout active")
				return nil, err
			}
			// Lockout storage trouble fails open: verification still runs.
			s.logger.WarnContext(ctx, "lockout check unavailable", "error", err)
		}
	}

	result, err := txlog.Do(ctx, s.tx, "Verifier.verify", creds, func(ctx context.Context) (verifier.Result, error) {
		return s.verifier.Verify(ctx, creds.Username, creds.Password)
	})
	if err != nil {
		s.metrics.IncrementLogin("rejected")
		s.emitAudit(ctx, creds.Username, audit.OutcomeRejected, err.Error())
		s.recordFailure(ctx, creds.Username, ip)
		return nil, err
	}

	if !result.Verified() {
		s.metrics.IncrementLogin("rejected")
		s.recordFailure(ctx, creds.Username, ip)
		if result.StatusCode >= 500 {
			s.emitAudit(ctx, creds.Username, audit.OutcomeError, "verifier degraded")
			return nil, dErrors.Newf(dErrors.CodeInternal, "backend verification failed: code %d", result.StatusCode)
		}
		s.emitAudit(ctx, creds.Username, audit.OutcomeRejected, "user not found")
		return nil, dErrors.Newf(dErrors.CodeUnauthorized, "backend verification failed: code %d", result.StatusCode)
	}

	token, err := s.issuer.Issue(creds.Username)
	if err != nil {
		s.metrics.IncrementLogin("error")
		s.emitAudit(ctx, creds.Username, audit.OutcomeError, "token issuance failed")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "issue token")
	}

	if s.lockout != nil {
		if err := s.lockout.Clear(ctx, creds.Username, ip); err != nil {
			s.logger.WarnContext(ctx, "clear lockout state", "error", err)
		}
	}

	s.metrics.IncrementLogin("success")
	s.metrics.ObserveLoginLatency(time.Since(start))
	s.emitAudit(ctx, creds.Username, audit.OutcomeSuccess, "")

	return &LoginResult{Token: token, Profile: result}, nil
}

func (s *Service) recordFailure(ctx context.Context, username, ip string) {
	if s.lockout == nil {
		return
	}
	if err := s.lockout.RecordFailure(ctx, username, ip); err != nil {
		s.logger.WarnContext(ctx, "record lockout failure", "error", err)
	}
}

func (s *Service) emitAudit(ctx context.Context, username, outcome, reason string) {
	if s.audit == nil {
		return
	}
	s.audit.Emit(ctx, audit.Event{
		Username: username,
		Action:   "login",
		Outcome:  outcome,
		Reason:   reason,
	})
}
