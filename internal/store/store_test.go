package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/oerlens/oerlens/internal/cache"
	"github.com/oerlens/oerlens/internal/model"
)

func testReport() model.Report {
	return model.Report{
		License: model.LicenseInfo{
			Type:        "creativeCommon",
			LastUpdated: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			Details:     map[string]interface{}{"platform": "YouTube"},
		},
		Quality:      "Quality score: High (YouTube verified content)",
		Adaptability: "Adaptability score: Medium",
		Reusability:  "Reusability score: High",
	}
}

func TestStore_FromCacheSetAtReadTime(t *testing.T) {
	s := New(cache.NewMemoryCache(0, 0))

	in := testReport()
	in.FromCache = true // caller's flag must not leak into the stored entry
	if err := s.Put("https://example.com", in); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	out, found := s.Get("https://example.com")
	if !found {
		t.Fatal("Expected cache hit")
	}
	if !out.FromCache {
		t.Error("Expected FromCache=true on read")
	}
	if out.License.Type != "creativeCommon" {
		t.Errorf("Unexpected license type: %s", out.License.Type)
	}
	if out.Quality != in.Quality || out.Adaptability != in.Adaptability || out.Reusability != in.Reusability {
		t.Error("Expected score labels to round-trip unchanged")
	}
}

func TestStore_MissOnUnknownURL(t *testing.T) {
	s := New(cache.NewMemoryCache(0, 0))

	if _, found := s.Get("https://never-seen.example.com"); found {
		t.Error("Expected miss")
	}
}

func TestStore_CorruptEntryReadsAsMiss(t *testing.T) {
	c := cache.NewMemoryCache(0, 0)
	_ = c.Set(cache.Key("https://example.com"), []byte("{not json"), 0)

	s := New(c)
	if _, found := s.Get("https://example.com"); found {
		t.Error("Expected corrupt entry to read as a miss")
	}
}

func TestStore_ExactURLKeying(t *testing.T) {
	s := New(cache.NewMemoryCache(0, 0))

	if err := s.Put("https://example.com/Book?id=X", testReport()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// Keys are the exact input string: no normalization of case or layout
	if _, found := s.Get("https://example.com/book?id=X"); found {
		t.Error("Expected miss for differently-cased URL")
	}
}

func TestOpen_DiskBackend(t *testing.T) {
	s, err := Open(model.CacheConfig{Backend: "disk", Dir: t.TempDir(), MemoryTTL: time.Minute})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	if err := s.Put("https://example.com", testReport()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if _, found := s.Get("https://example.com"); !found {
		t.Error("Expected hit from disk-backed store")
	}
}

func TestOpen_SQLiteBackend(t *testing.T) {
	s, err := Open(model.CacheConfig{
		Backend:    "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "oerlens.db"),
		MemoryTTL:  time.Minute,
	})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	if err := s.Put("https://example.com", testReport()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if _, found := s.Get("https://example.com"); !found {
		t.Error("Expected hit from sqlite-backed store")
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	if _, err := Open(model.CacheConfig{Backend: "redis"}); err == nil {
		t.Error("Expected error for unknown backend")
	}
}
