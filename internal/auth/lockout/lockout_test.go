package lockout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	dErrors "authgw/pkg/domain-errors"
	"authgw/pkg/requestcontext"
)

func testPolicy() Policy {
	return Policy{MaxFailures: 3, Window: 5 * time.Minute, Duration: 15 * time.Minute}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ctxAt(t time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), t)
}

func TestCheckAllowsUnknownPair(t *testing.T) {
	svc := New(NewMemoryStore(), testPolicy(), discardLogger())

	err := svc.Check(context.Background(), "juan.perez", "10.0.0.1")
	require.NoError(t, err)
}

func TestLockoutAfterMaxFailures(t *testing.T) {
	svc := New(NewMemoryStore(), testPolicy(), discardLogger())
	now := time.Now()
	ctx := ctxAt(now)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Check(ctx, "juan.perez", "10.0.0.1"))
		require.NoError(t, svc.RecordFailure(ctx, "juan.perez", "10.0.0.1"))
	}

	err := svc.Check(ctx, "juan.perez", "10.0.0.1")
	require.Error(t, err)
	require.True(t, dErrors.Is(err, dErrors.CodeRateLimited))
}

func TestLockoutExpires(t *testing.T) {
	svc := New(NewMemoryStore(), testPolicy(), discardLogger())
	now := time.Now()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.RecordFailure(ctxAt(now), "juan.perez", "10.0.0.1"))
	}
	require.Error(t, svc.Check(ctxAt(now), "juan.perez", "10.0.0.1"))

	later := now.Add(16 * time.Minute)
	require.NoError(t, svc.Check(ctxAt(later), "juan.perez", "10.0.0.1"))
}

func TestWindowResetsCounter(t *testing.T) {
	svc := New(NewMemoryStore(), testPolicy(), discardLogger())
	now := time.Now()

	require.NoError(t, svc.RecordFailure(ctxAt(now), "juan.perez", "10.0.0.1"))
	require.NoError(t, svc.RecordFailure(ctxAt(now), "juan.perez", "10.0.0.1"))

	// Third failure lands outside the window, so it starts a fresh count.
	later := now.Add(6 * time.Minute)
	require.NoError(t, svc.RecordFailure(ctxAt(later), "juan.perez", "10.0.0.1"))
	require.NoError(t, svc.Check(ctxAt(later), "juan.perez", "10.0.0.1"))
}

func TestDifferentIPsTrackedSeparately(t *testing.T) {
	svc := New(NewMemoryStore(), testPolicy(), discardLogger())
	ctx := ctxAt(time.Now())

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.RecordFailure(ctx, "juan.perez", "10.0.0.1"))
	}

	require.Error(t, svc.Check(ctx, "juan.perez", "10.0.0.1"))
	require.NoError(t, svc.Check(ctx, "juan.perez", "10.0.0.2"))
}

func TestUsernameCaseInsensitive(t *testing.T) {
	svc := New(NewMemoryStore(), testPolicy(), discardLogger())
	ctx := ctxAt(time.Now())

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.RecordFailure(ctx, "Juan.Perez", "10.0.0.1"))
	}
	require.Error(t, svc.Check(ctx, "juan.perez", "10.0.0.1"))
}

func TestClearResetsState(t *testing.T) {
	svc := New(NewMemoryStore(), testPolicy(), discardLogger())
	ctx := ctxAt(time.Now())

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.RecordFailure(ctx, "juan.perez", "10.0.0.1"))
	}
	require.Error(t, svc.Check(ctx, "juan.perez", "10.0.0.1"))

	require.NoError(t, svc.Clear(ctx, "juan.perez", "10.0.0.1"))
	require.NoError(t, svc.Check(ctx, "juan.perez", "10.0.0.1"))
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (*Record, error) {
	return nil, errors.New("store unavailable")
}

func (failingStore) Put(context.Context, string, *Record, time.Duration) error {
	return errors.New("store unavailable")
}

func (failingStore) Clear(context.Context, string) error {
	return errors.New("store unavailable")
}

func TestStoreFailureSurfacesAsInternal(t *testing.T) {
	svc := New(failingStore{}, testPolicy(), discardLogger())

	err := svc.Check(context.Background(), "juan.perez", "10.0.0.1")
	require.True(t, dErrors.Is(err, dErrors.CodeInternal))

	err = svc.RecordFailure(context.Background(), "juan.perez", "10.0.0.1")
	require.True(t, dErrors.Is(err, dErrors.CodeInternal))
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	base := time.Now()
	store.now = func() time.Time { return base }

	require.NoError(t, store.Put(context.Background(), "k", &Record{Failures: 2}, time.Minute))

	rec, err := store.Get(context.Background(), "k")
	require.NoError(t, err)
	require.Equal(t, 2, rec.Failures)

	store.now = func() time.Time { return base.Add(2 * time.Minute) }
	rec, err = store.Get(context.Background(), "k")
	require.NoError(t, err)
	require.Nil(t, rec)
}
