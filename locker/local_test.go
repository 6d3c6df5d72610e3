package locker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestLocalMutualExclusion(t *testing.T) {
	ctx := context.Background()
	l := NewLocal()

	var (
		mu      sync.Mutex
		inside  int
		maxSeen int
	)

	const n = 16
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(ctx, "key")
			if err != nil {
				t.Errorf("Acquire: %v", err)
				return
			}
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			release()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Fatalf("%d goroutines inside the critical section at once", maxSeen)
	}
}

func TestLocalIndependentKeys(t *testing.T) {
	ctx := context.Background()
	l := NewLocal()

	releaseA, err := l.Acquire(ctx, "a")
	if err != nil {
		t.Fatalf("Acquire a: %v", err)
	}
	defer releaseA()

	// A held lock on "a" must not block "b".
	done := make(chan struct{})
	go func() {
		releaseB, err := l.Acquire(ctx, "b")
		if err == nil {
			releaseB()
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Acquire on an independent key blocked")
	}
}

func TestLocalAcquireCancel(t *testing.T) {
	l := NewLocal()

	release, err := l.Acquire(context.Background(), "key")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := l.Acquire(ctx, "key"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("waiting Acquire should fail with the context error, got %v", err)
	}

	release()

	// The key is usable again after the failed wait.
	release2, err := l.Acquire(context.Background(), "key")
	if err != nil {
		t.Fatalf("Acquire after cancel: %v", err)
	}
	release2()
}

func TestLocalReleaseIdempotent(t *testing.T) {
	ctx := context.Background()
	l := NewLocal()

	release, err := l.Acquire(ctx, "key")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	release()
	release() // second call must not unlock someone else's acquisition

	release2, err := l.Acquire(ctx, "key")
	if err != nil {
		t.Fatalf("re-Acquire: %v", err)
	}
	defer release2()
}

// Entries must not accumulate for keys nobody holds.
func TestLocalMapDoesNotLeak(t *testing.T) {
	ctx := context.Background()
	l := NewLocal()

	for i := 0; i < 100; i++ {
		release, err := l.Acquire(ctx, "key")
		if err != nil {
			t.Fatalf("Acquire: %v", err)
		}
		release()
	}

	l.mu.Lock()
	n := len(l.locks)
	l.mu.Unlock()
	if n != 0 {
		t.Fatalf("%d lock entries left after all releases", n)
	}
}
