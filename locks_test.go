package boxoffice

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestKeyedLockAcquireRelease(t *testing.T) {
	k := newKeyedLocks()
	ctx := context.Background()

	release, err := k.acquire(ctx, "a", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	release()

	// Re-acquirable after release.
	release, err = k.acquire(ctx, "a", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	release()
}

func TestKeyedLockIndependentKeys(t *testing.T) {
	k := newKeyedLocks()
	ctx := context.Background()

	releaseA, err := k.acquire(ctx, "a", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	defer releaseA()

	// A held lock on one key never blocks another key.
	releaseB, err := k.acquire(ctx, "b", 10*time.Millisecond)
	if err != nil {
		t.Fatalf("independent key blocked: %v", err)
	}
	releaseB()
}

func TestKeyedLockTimeout(t *testing.T) {
	k := newKeyedLocks()
	ctx := context.Background()

	release, err := k.acquire(ctx, "a", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	defer release()

	_, err = k.acquire(ctx, "a", 20*time.Millisecond)
	if !errors.Is(err, ErrLockTimeout) {
		t.Errorf("got %v, want ErrLockTimeout", err)
	}
}

func TestKeyedLockContextCancel(t *testing.T) {
	k := newKeyedLocks()

	release, err := k.acquire(context.Background(), "a", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = k.acquire(ctx, "a", time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestKeyedLockSerializes(t *testing.T) {
	k := newKeyedLocks()
	ctx := context.Background()

	var inCritical int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := k.acquire(ctx, "hot", 5*time.Second)
			if err != nil {
				t.Error(err)
				return
			}
			defer release()

			mu.Lock()
			inCritical++
			if inCritical > 1 {
				t.Error("two holders inside the critical section")
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inCritical--
			mu.Unlock()
		}()
	}
	wg.Wait()
}
