package cache

import (
	"testing"
	"time"
)

func TestCachePutGet(t *testing.T) {
	c := New[string](2, 5*time.Second)
	c.now = func() time.Time { return time.Unix(100, 0) }

	c.Put("a", "escrow-a")
	c.Put("b", "escrow-b")

	got, ok := c.Get("b")
	if !ok {
		t.Fatalf("expected value")
	}
	if got != "escrow-b" {
		t.Fatalf("value = %q", got)
	}
	if n := c.Len(); n != 2 {
		t.Fatalf("len = %d", n)
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	c := New[int](2, 1*time.Second)
	base := time.Unix(100, 0)
	c.now = func() time.Time { return base }

	c.Put("a", 1)

	c.now = func() time.Time { return base.Add(2 * time.Second) }
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected expired value")
	}
	if n := c.Len(); n != 0 {
		t.Fatalf("len = %d", n)
	}
}

func TestCacheLRUEviction(t *testing.T) {
	c := New[int](2, 5*time.Second)
	c.now = func() time.Time { return time.Unix(100, 0) }

	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a")
	c.Put("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatalf("expected b to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected a to remain")
	}
}

func TestCacheDisabled(t *testing.T) {
	c := New[int](2, 0)
	c.Put("a", 1)
	if _, ok := c.Get("a"); ok {
		t.Fatalf("zero ttl must not store")
	}

	var nilCache *Cache[int]
	nilCache.Put("a", 1)
	if _, ok := nilCache.Get("a"); ok {
		t.Fatalf("nil cache must not store")
	}
}

func TestCacheShrink(t *testing.T) {
	c := New[int](3, time.Minute)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	c.SetMaxEntries(1)
	if n := c.Len(); n != 1 {
		t.Fatalf("len = %d", n)
	}
	if _, ok := c.Get("c"); !ok {
		t.Fatalf("expected newest entry to remain")
	}
	c.Delete("c")
	if _, ok := c.Get("c"); ok {
		t.Fatalf("expected c deleted")
	}
}

func TestKeyIsStableAndOpaque(t *testing.T) {
	k1 := Key("getEscrow", "0xabc")
	if k1 != Key("getEscrow", "0xabc") {
		t.Fatalf("key not stable")
	}
	if k1 == Key("getEscrow0xabc") {
		t.Fatalf("parts must be separated")
	}
	if len(k1) != 64 {
		t.Fatalf("len(key) = %d", len(k1))
	}
}
