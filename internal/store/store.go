// Package store is the persistent evaluation cache: a typed wrapper mapping
// resource URLs to their last computed Report. It is the source of truth
// across sessions; entries never expire and are only replaced whole.
package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/oerlens/oerlens/internal/cache"
	"github.com/oerlens/oerlens/internal/model"
)

// Store persists evaluation reports keyed by the exact input URL string.
type Store struct {
	cache  cache.Cache
	closer func() error
}

// New wraps an existing cache backend.
func New(c cache.Cache) *Store {
	return &Store{cache: c}
}

// Open builds a store from configuration: the configured persistent backend
// ("disk" or "sqlite") behind a memory read-through layer.
func Open(cfg model.CacheConfig) (*Store, error) {
	var persistent cache.Cache
	var closer func() error

	switch strings.ToLower(cfg.Backend) {
	case "", "disk":
		persistent = cache.NewDiskCache(cfg.Dir, 0)
	case "sqlite":
		sq, err := cache.NewSQLiteCache(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		persistent = sq
		closer = sq.Close
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (supported: disk, sqlite)", cfg.Backend)
	}

	return &Store{
		cache:  cache.NewLayeredCache(cfg.MemoryTTL, persistent),
		closer: closer,
	}, nil
}

// Get returns the cached report for a URL. FromCache is set here, at read
// time; the flag is never persisted as true. A corrupt entry reads as a miss.
func (s *Store) Get(url string) (*model.Report, bool) {
	data, found := s.cache.Get(cache.Key(url))
	if !found {
		return nil, false
	}

	var report model.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, false
	}

	report.FromCache = true
	return &report, true
}

// Put stores a report for a URL, replacing any prior entry whole. The stored
// copy always carries FromCache=false regardless of the caller's value.
func (s *Store) Put(url string, report model.Report) error {
	report.FromCache = false

	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	// ttl 0: evaluation entries are permanent until overwritten
	if err := s.cache.Set(cache.Key(url), data, 0); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Delete removes the entry for a URL.
func (s *Store) Delete(url string) error {
	return s.cache.Delete(cache.Key(url))
}

// Clear removes every stored report.
func (s *Store) Clear() error {
	return s.cache.Clear()
}

// Close releases the underlying backend, if it holds resources.
func (s *Store) Close() error {
	if s.closer != nil {
		return s.closer()
	}
	return nil
}
