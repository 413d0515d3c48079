package cmd

import (
	"testing"
	"time"
)

func TestSnapshotCache_PutGet(t *testing.T) {
	c := newSnapshotCache(time.Minute)

	if _, ok := c.get("rects", "https://a"); ok {
		t.Error("empty cache should miss")
	}

	c.put("rects", "https://a", "payload-a")
	got, ok := c.get("rects", "https://a")
	if !ok || got != "payload-a" {
		t.Errorf("got %q, %v", got, ok)
	}

	// Different op or URL is a different key.
	if _, ok := c.get("elements", "https://a"); ok {
		t.Error("different op should miss")
	}
	if _, ok := c.get("rects", "https://b"); ok {
		t.Error("different url should miss")
	}
}

func TestSnapshotCache_Expiry(t *testing.T) {
	c := newSnapshotCache(10 * time.Millisecond)
	c.put("text", "https://a", "payload")

	time.Sleep(20 * time.Millisecond)
	if _, ok := c.get("text", "https://a"); ok {
		t.Error("expired entry should miss")
	}
}

func TestSnapshotCache_ZeroTTLDisables(t *testing.T) {
	c := newSnapshotCache(0)
	c.put("text", "https://a", "payload")
	if _, ok := c.get("text", "https://a"); ok {
		t.Error("ttl 0 should never hit")
	}
}

func TestSnapshotCache_InvalidateAll(t *testing.T) {
	c := newSnapshotCache(time.Minute)
	c.put("rects", "https://a", "payload")
	c.invalidateAll()
	if _, ok := c.get("rects", "https://a"); ok {
		t.Error("invalidated entry should miss")
	}
}
