package boxoffice

import (
	"context"
	"sync"
	"time"
)

// keyedLocks serializes paired-ledger mutations per (performance,
// section) pair. The lock is a try-lock with a bounded
// wait: a contender that cannot acquire within the timeout fails with
// ErrLockTimeout instead of queueing unboundedly behind a slow store.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: make(map[string]chan struct{})}
}

func (k *keyedLocks) get(key string) chan struct{} {
	k.mu.Lock()
	defer k.mu.Unlock()

	ch, ok := k.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		k.locks[key] = ch
	}
	return ch
}

// acquire takes the lock for key, waiting at most timeout. The
// returned release function must be called exactly once.
func (k *keyedLocks) acquire(ctx context.Context, key string, timeout time.Duration) (func(), error) {
	ch := k.get(key)

	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	case <-timer.C:
		return nil, ErrLockTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
