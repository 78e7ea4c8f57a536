// internal/app/lock.go
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	redis_a "github.com/ammerola/stockscan/internal/adapters/redis_adapter"
	"github.com/ammerola/stockscan/internal/core/ports"
)

// ErrScannerBusy is returned when another daemon holds the device
var ErrScannerBusy = errors.New("scanner device is already in use")

const scannerLockTTL = 5 * time.Minute

// ScannerLock marks a scan device as owned by one daemon
type ScannerLock struct {
	cache  ports.CacheRepository
	key    string
	owner  string
	logger *slog.Logger
}

// ScannerLockKey returns the cache key guarding device
func ScannerLockKey(device string) string {
	return redis_a.BuildKey(redis_a.PrefixScanner, "lock", device)
}

// AcquireScannerLock takes the lock for device or fails with ErrScannerBusy
func AcquireScannerLock(ctx context.Context, cache ports.CacheRepository, device string, logger *slog.Logger) (*ScannerLock, error) {
	host, _ := os.Hostname()
	lock := &ScannerLock{
		cache:  cache,
		key:    ScannerLockKey(device),
		owner:  fmt.Sprintf("%s:%d:%s", host, os.Getpid(), uuid.NewString()),
		logger: logger.With(slog.String("component", "scanner_lock")),
	}

	ok, err := cache.SetNX(ctx, lock.key, lock.owner, scannerLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire scanner lock: %w", err)
	}
	if !ok {
		var holder string
		if err := cache.Get(ctx, lock.key, &holder); err == nil {
			return nil, fmt.Errorf("%w: held by %s", ErrScannerBusy, holder)
		}
		return nil, ErrScannerBusy
	}

	lock.logger.InfoContext(ctx, "scanner lock acquired",
		slog.String("key", lock.key),
		slog.String("owner", lock.owner))
	return lock, nil
}

// owned reports whether the stored owner is still this lock. A lock that
// expired and was taken by another daemon is not ours to touch.
func (l *ScannerLock) owned(ctx context.Context) (bool, error) {
	var holder string
	err := l.cache.Get(ctx, l.key, &holder)
	if errors.Is(err, redis_a.ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return holder == l.owner, nil
}

// Keep extends the lock until ctx ends or the lock is lost
func (l *ScannerLock) Keep(ctx context.Context) {
	ticker := time.NewTicker(scannerLockTTL / 3)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !l.Extend(ctx) {
				return
			}
		}
	}
}

// Extend resets the TTL while the lock is still ours. It returns false once
// another daemon holds the key or the key is gone.
func (l *ScannerLock) Extend(ctx context.Context) bool {
	ok, err := l.owned(ctx)
	if err != nil {
		l.logger.WarnContext(ctx, "failed to check scanner lock",
			slog.String("error", err.Error()))
		return true
	}
	if !ok {
		l.logger.ErrorContext(ctx, "scanner lock lost", slog.String("key", l.key))
		return false
	}
	if err := l.cache.Expire(ctx, l.key, scannerLockTTL); err != nil {
		l.logger.WarnContext(ctx, "failed to extend scanner lock",
			slog.String("error", err.Error()))
	}
	return true
}

// Release drops the lock if this daemon still owns it
func (l *ScannerLock) Release(ctx context.Context) {
	ok, err := l.owned(ctx)
	if err != nil {
		l.logger.WarnContext(ctx, "failed to check scanner lock",
			slog.String("error", err.Error()))
		return
	}
	if !ok {
		l.logger.WarnContext(ctx, "scanner lock held by another owner, leaving it",
			slog.String("key", l.key))
		return
	}
	if err := l.cache.Delete(ctx, l.key); err != nil {
		l.logger.WarnContext(ctx, "failed to release scanner lock",
			slog.String("error", err.Error()))
	}
}
