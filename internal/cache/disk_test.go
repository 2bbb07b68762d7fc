package cache

import (
	"testing"
	"time"
)

func TestDiskCache_RoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), 0)

	if err := c.Set(Key("https://example.com"), []byte("payload"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get(Key("https://example.com"))
	if !found {
		t.Fatal("Expected cache hit")
	}
	if string(val) != "payload" {
		t.Errorf("Unexpected value: %s", val)
	}
}

func TestDiskCache_PermanentEntries(t *testing.T) {
	// ttl 0 (both default and per-call) means the entry never expires
	c := NewDiskCache(t.TempDir(), 0)

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get("k")
	if !found || string(val) != "v" {
		t.Fatalf("Expected permanent entry to survive, found=%v val=%s", found, val)
	}
}

func TestDiskCache_ExpiredEntryIsMiss(t *testing.T) {
	c := NewDiskCache(t.TempDir(), 0)

	if err := c.Set("k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("Expected expired entry to be a miss")
	}
}

func TestDiskCache_Overwrite(t *testing.T) {
	c := NewDiskCache(t.TempDir(), 0)

	_ = c.Set("k", []byte("old"), 0)
	_ = c.Set("k", []byte("new"), 0)

	val, found := c.Get("k")
	if !found || string(val) != "new" {
		t.Errorf("Expected whole-entry replacement, found=%v val=%s", found, val)
	}
}

func TestDiskCache_DeleteAndClear(t *testing.T) {
	c := NewDiskCache(t.TempDir(), 0)

	_ = c.Set("a", []byte("1"), 0)
	_ = c.Set("b", []byte("2"), 0)

	if err := c.Delete("a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get("a"); found {
		t.Error("Expected miss after delete")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, found := c.Get("b"); found {
		t.Error("Expected miss after clear")
	}
}

func TestKey_DistinctForExactStrings(t *testing.T) {
	// Keys are a function of the exact input string; no normalization
	if Key("https://example.com/a") == Key("https://example.com/A") {
		t.Error("Expected different keys for differently-cased URLs")
	}
	if Key("u") != Key("u") {
		t.Error("Expected stable key for identical input")
	}
}
