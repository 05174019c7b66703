package verifier

import (
	"context"
	"time"

	"authgw/internal/platform/metrics"
)

// Selector answers Verify through one of two variants, chosen per call by a
// configuration switch. Reading the switch on every call means a
// configuration reload takes effect without rewiring.
type Selector struct {
	useMock func() bool
	mock    Verifier
	real    Verifier
	metrics *metrics.Metrics
}

// NewSelector wires the two variants behind the switch. metrics may be nil.
func NewSelector(useMock func() bool, mock, real Verifier, m *metrics.Metrics) *Selector {
	return &Selector{useMock: useMock, mock: mock, real: real, metrics: m}
}

func (s *Selector) Verify(ctx context.Context, username, password string) (Result, error) {
	v, variant := s.real, "real"
	if s.useMock() {
		v, variant = s.mock, "mock"
	}

	start := time.Now()
	res, err := v.Verify(ctx, username, password)
	s.metrics.ObserveVerifierLatency(variant, time.Since(start))
	return res, err
}
