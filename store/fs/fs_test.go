package fs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T, ext string) (*Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "ns")
	s, err := New(Config{Dir: dir, Ext: ext})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, dir
}

func TestNewValidation(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("New should reject an empty dir")
	}
	if _, err := New(Config{Dir: "x", Ext: "html"}); err == nil {
		t.Fatalf("New should reject an extension without a leading dot")
	}
	if _, err := New(Config{Dir: "x", Ext: ""}); err != nil {
		t.Fatalf("empty extension should be allowed: %v", err)
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, dir := newTestStore(t, ".html")

	// Namespace dir does not exist until the first write.
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("namespace dir created too early: %v", err)
	}

	if _, ok, err := s.Get(ctx, "abc"); err != nil || ok {
		t.Fatalf("Get on empty store: ok=%v err=%v", ok, err)
	}
	if ok, err := s.Exists(ctx, "abc"); err != nil || ok {
		t.Fatalf("Exists on empty store: ok=%v err=%v", ok, err)
	}

	ok, err := s.Put(ctx, "abc", []byte("<p>hi</p>"))
	if err != nil || !ok {
		t.Fatalf("Put: ok=%v err=%v", ok, err)
	}

	b, ok, err := s.Get(ctx, "abc")
	if err != nil || !ok {
		t.Fatalf("Get after Put: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(b, []byte("<p>hi</p>")) {
		t.Fatalf("Get returned %q", b)
	}
	if ok, err := s.Exists(ctx, "abc"); err != nil || !ok {
		t.Fatalf("Exists after Put: ok=%v err=%v", ok, err)
	}
}

func TestArtifactNaming(t *testing.T) {
	ctx := context.Background()
	s, dir := newTestStore(t, ".html")

	if _, err := s.Put(ctx, "deadbeef", []byte("x")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	want := filepath.Join(dir, "deadbeef.html")
	if got := s.Path("deadbeef"); got != want {
		t.Fatalf("Path = %q, want %q", got, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("artifact file missing: %v", err)
	}
}

// Put must leave no scratch files behind, success or not.
func TestNoScratchLitter(t *testing.T) {
	ctx := context.Background()
	s, dir := newTestStore(t, ".html")

	for i := 0; i < 3; i++ {
		if _, err := s.Put(ctx, "k", []byte("v")); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Fatalf("scratch file %q left behind", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the artifact, found %d entries", len(entries))
	}
}

func TestDel(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, "")

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

func TestKeyValidation(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, "")

	for _, key := range []string{"", "a/b", `a\b`, ".", ".."} {
		if _, _, err := s.Get(ctx, key); err == nil {
			t.Errorf("Get accepted unsafe key %q", key)
		}
		if _, err := s.Put(ctx, key, []byte("v")); err == nil {
			t.Errorf("Put accepted unsafe key %q", key)
		}
	}
}
