package ristretto

import (
	"bytes"
	"context"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(Config{NumCounters: 1e4, MaxCost: 1 << 20, BufferItems: 64})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestNewValidation(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("New should reject a zero config")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ok, err := s.Put(ctx, "k", []byte("v"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !ok {
		t.Skip("entry not admitted") // admission is probabilistic
	}
	s.Wait()

	b, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || !bytes.Equal(b, []byte("v")) {
		t.Fatalf("Get: b=%q ok=%v err=%v", b, ok, err)
	}
}

func TestDel(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if ok, _ := s.Put(ctx, "k", []byte("v")); !ok {
		t.Skip("entry not admitted")
	}
	s.Wait()

	if err := s.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if ok, _ := s.Exists(ctx, "k"); ok {
		t.Fatalf("key still exists after Del")
	}
}
