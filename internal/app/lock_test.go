package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redis_a "github.com/ammerola/stockscan/internal/adapters/redis_adapter"
	"github.com/ammerola/stockscan/internal/app"
	"github.com/ammerola/stockscan/test/helpers"
)

func TestScannerLock(t *testing.T) {
	tr := helpers.SetupTestRedis(t)
	cache := redis_a.NewCache(tr.Client, time.Hour, helpers.TestLogger())
	ctx := context.Background()
	device := "/dev/input/by-id/usb-scanner-event-kbd"

	lock, err := app.AcquireScannerLock(ctx, cache, device, helpers.TestLogger())
	require.NoError(t, err)
	assert.True(t, tr.Server.Exists(app.ScannerLockKey(device)))
	assert.Equal(t, "scanner:lock:"+device, app.ScannerLockKey(device))

	_, err = app.AcquireScannerLock(ctx, cache, device, helpers.TestLogger())
	assert.ErrorIs(t, err, app.ErrScannerBusy)
	assert.ErrorContains(t, err, "held by")

	other, err := app.AcquireScannerLock(ctx, cache, "/dev/input/event7", helpers.TestLogger())
	require.NoError(t, err)
	other.Release(ctx)

	lock.Release(ctx)
	assert.False(t, tr.Server.Exists(app.ScannerLockKey(device)))

	again, err := app.AcquireScannerLock(ctx, cache, device, helpers.TestLogger())
	require.NoError(t, err)
	again.Release(ctx)
}

func TestScannerLock_Expires(t *testing.T) {
	tr := helpers.SetupTestRedis(t)
	cache := redis_a.NewCache(tr.Client, time.Hour, helpers.TestLogger())
	ctx := context.Background()

	_, err := app.AcquireScannerLock(ctx, cache, "-", helpers.TestLogger())
	require.NoError(t, err)

	tr.Server.FastForward(6 * time.Minute)

	lock, err := app.AcquireScannerLock(ctx, cache, "-", helpers.TestLogger())
	require.NoError(t, err)
	lock.Release(ctx)
}

func TestScannerLock_ReleaseLeavesNewOwner(t *testing.T) {
	tr := helpers.SetupTestRedis(t)
	cache := redis_a.NewCache(tr.Client, time.Hour, helpers.TestLogger())
	ctx := context.Background()
	key := app.ScannerLockKey("-")

	stale, err := app.AcquireScannerLock(ctx, cache, "-", helpers.TestLogger())
	require.NoError(t, err)

	tr.Server.FastForward(6 * time.Minute)

	current, err := app.AcquireScannerLock(ctx, cache, "-", helpers.TestLogger())
	require.NoError(t, err)
	holder, err := tr.Server.Get(key)
	require.NoError(t, err)

	assert.False(t, stale.Extend(ctx), "stale lock must not extend")
	stale.Release(ctx)
	require.True(t, tr.Server.Exists(key))
	after, err := tr.Server.Get(key)
	require.NoError(t, err)
	assert.Equal(t, holder, after)

	assert.True(t, current.Extend(ctx))
	current.Release(ctx)
	assert.False(t, tr.Server.Exists(key))
}

func TestScannerLock_ExtendResetsTTL(t *testing.T) {
	tr := helpers.SetupTestRedis(t)
	cache := redis_a.NewCache(tr.Client, time.Hour, helpers.TestLogger())
	ctx := context.Background()
	key := app.ScannerLockKey("-")

	lock, err := app.AcquireScannerLock(ctx, cache, "-", helpers.TestLogger())
	require.NoError(t, err)

	tr.Server.FastForward(4 * time.Minute)
	require.True(t, lock.Extend(ctx))
	tr.Server.FastForward(4 * time.Minute)
	assert.True(t, tr.Server.Exists(key))

	lock.Release(ctx)
	assert.False(t, lock.Extend(ctx))
}
