package bigcache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(Config{LifeWindow: time.Minute})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, ok, err := s.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("Get on empty cache: ok=%v err=%v", ok, err)
	}

	if ok, err := s.Put(ctx, "k", []byte("v")); err != nil || !ok {
		t.Fatalf("Put: ok=%v err=%v", ok, err)
	}
	b, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || !bytes.Equal(b, []byte("v")) {
		t.Fatalf("Get: b=%q ok=%v err=%v", b, ok, err)
	}
	if ok, err := s.Exists(ctx, "k"); err != nil || !ok {
		t.Fatalf("Exists: ok=%v err=%v", ok, err)
	}
}

func TestDel(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Del(ctx, "missing"); err != nil {
		t.Fatalf("Del of a missing key should be a no-op: %v", err)
	}

	if _, err := s.Put(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if ok, _ := s.Exists(ctx, "k"); ok {
		t.Fatalf("key still exists after Del")
	}
}
