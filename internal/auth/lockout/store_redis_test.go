//go:build integration

package lockout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	dErrors "authgw/pkg/domain-errors"
	"authgw/pkg/requestcontext"
	"authgw/pkg/testutil/containers"
)

func TestRedisStoreRoundTrip(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	store := NewRedisStore(rc.Client)
	ctx := context.Background()

	rec, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	require.Nil(t, rec)

	now := time.Now().UTC().Truncate(time.Second)
	want := &Record{Failures: 2, WindowStart: now, LockedUntil: now.Add(time.Minute)}
	require.NoError(t, store.Put(ctx, "juan.perez|10.0.0.1", want, time.Minute))

	got, err := store.Get(ctx, "juan.perez|10.0.0.1")
	require.NoError(t, err)
	require.Equal(t, want.Failures, got.Failures)
	require.True(t, want.LockedUntil.Equal(got.LockedUntil))

	require.NoError(t, store.Clear(ctx, "juan.perez|10.0.0.1"))
	got, err = store.Get(ctx, "juan.perez|10.0.0.1")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestRedisStoreEntriesExpire(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	store := NewRedisStore(rc.Client)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "short-lived", &Record{Failures: 1}, time.Second))

	require.Eventually(t, func() bool {
		rec, err := store.Get(ctx, "short-lived")
		return err == nil && rec == nil
	}, 5*time.Second, 250*time.Millisecond)
}

func TestLockoutServiceOverRedis(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	svc := New(NewRedisStore(rc.Client), testPolicy(), discardLogger())
	ctx := requestcontext.WithTime(context.Background(), time.Now())

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Check(ctx, "sofia.garcia", "10.0.0.9"))
		require.NoError(t, svc.RecordFailure(ctx, "sofia.garcia", "10.0.0.9"))
	}

	err := svc.Check(ctx, "sofia.garcia", "10.0.0.9")
	require.True(t, dErrors.Is(err, dErrors.CodeRateLimited))

	require.NoError(t, svc.Clear(ctx, "sofia.garcia", "10.0.0.9"))
	require.NoError(t, svc.Check(ctx, "sofia.garcia", "10.0.0.9"))
}
