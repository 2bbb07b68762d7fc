// Package offline produces best-effort evaluation reports without any
// network access, from the persistent cache or the domain heuristics alone.
package offline

import (
	"context"
	"fmt"
	"time"

	"github.com/oerlens/oerlens/internal/classify"
	"github.com/oerlens/oerlens/internal/model"
	"github.com/oerlens/oerlens/internal/score"
	"github.com/oerlens/oerlens/internal/store"
)

// LicenseUnavailable is the license label for heuristic offline reports.
const LicenseUnavailable = "Offline evaluation - License information unavailable"

// Evaluator builds offline reports backed by the persistent cache.
type Evaluator struct {
	store *store.Store
}

// NewEvaluator creates an offline evaluator over the given store.
func NewEvaluator(s *store.Store) *Evaluator {
	return &Evaluator{store: s}
}

// Evaluate returns the cached report when one exists; otherwise it builds a
// heuristic report from the URL's domain alone and primes the store with it
// so later calls, online or offline, find an entry.
func (e *Evaluator) Evaluate(ctx context.Context, rawURL string) (*model.Report, error) {
	if cached, found := e.store.Get(rawURL); found {
		return cached, nil
	}

	kind := classify.Classify(rawURL)
	report := model.Report{
		License: model.LicenseInfo{
			Type:             LicenseUnavailable,
			OfflineAvailable: true,
			LastUpdated:      time.Now().UTC(),
			Details: map[string]interface{}{
				"platform":     kind.Platform(),
				"status":       "Offline evaluation",
				"restrictions": "Unable to determine (offline)",
			},
		},
		Quality:      score.OfflineQuality(kind),
		Adaptability: score.OfflineAdaptability(kind),
		Reusability:  score.OfflineReusability(kind),
		FromCache:    false,
	}

	// A cancelled evaluation must leave the cache untouched.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.store.Put(rawURL, report); err != nil {
		return nil, fmt.Errorf("prime evaluation cache: %w", err)
	}

	return &report, nil
}
