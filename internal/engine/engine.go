// Package engine is the evaluation orchestrator: it decides, per URL, whether
// to serve the persistent cache, compute fresh data online, or fall back to
// the offline heuristics, and it guarantees exactly one report or error per
// call regardless of network state.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oerlens/oerlens/internal/classify"
	"github.com/oerlens/oerlens/internal/connectivity"
	"github.com/oerlens/oerlens/internal/model"
	"github.com/oerlens/oerlens/internal/offline"
	"github.com/oerlens/oerlens/internal/score"
	"github.com/oerlens/oerlens/internal/store"
)

// ErrEvaluationFailed is returned when no meaningful report of any kind can
// be produced. It is the only caller-visible hard failure.
var ErrEvaluationFailed = errors.New("failed to evaluate resource")

// LicenseSource fetches normalized license metadata for a URL of a given
// kind. It must not fail; degraded results are well-formed values.
type LicenseSource interface {
	FetchLicense(ctx context.Context, rawURL string, kind classify.Kind) model.LicenseInfo
}

// Engine coordinates the store, the license providers, the connectivity
// snapshot and the score lookups for single-URL evaluations.
type Engine struct {
	store    *store.Store
	licenses LicenseSource
	checker  connectivity.Checker
	offline  *offline.Evaluator
}

// New creates an engine.
func New(s *store.Store, licenses LicenseSource, checker connectivity.Checker) *Engine {
	return &Engine{
		store:    s,
		licenses: licenses,
		checker:  checker,
		offline:  offline.NewEvaluator(s),
	}
}

// Evaluate runs the evaluation state machine for one URL:
//
//  1. Take the connectivity snapshot and check the persistent cache.
//  2. Offline: a cache hit wins over the heuristic; with neither, the
//     offline evaluator runs, and its failure is the terminal failure.
//  3. Online: the cache hit is ignored and fresh data is always computed;
//     a degraded license is still an overall success and the whole report
//     is cached. An unexpected online-path failure gets one offline retry
//     before the call fails.
func (e *Engine) Evaluate(ctx context.Context, rawURL string) (*model.Report, error) {
	online := e.checker.Online(ctx) // snapshot; never re-checked mid-operation

	if !online {
		if cached, found := e.store.Get(rawURL); found {
			return cached, nil
		}
		report, err := e.offline.Evaluate(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEvaluationFailed, err)
		}
		return report, nil
	}

	// Online: freshness is preferred over cache reuse, deliberately.
	report, err := e.evaluateOnline(ctx, rawURL)
	if err == nil {
		return report, nil
	}
	if ctx.Err() != nil {
		// Caller cancellation is not retried and not converted
		return nil, ctx.Err()
	}

	report, offlineErr := e.offline.Evaluate(ctx, rawURL)
	if offlineErr != nil {
		return nil, fmt.Errorf("%w: online: %v; offline: %v", ErrEvaluationFailed, err, offlineErr)
	}
	return report, nil
}

func (e *Engine) evaluateOnline(ctx context.Context, rawURL string) (*model.Report, error) {
	kind := classify.Classify(rawURL)

	report := model.Report{
		License:      e.fetchLicense(ctx, rawURL, kind),
		Quality:      score.Quality(kind),
		Adaptability: score.Adaptability(kind),
		Reusability:  score.Reusability(kind),
		FromCache:    false,
	}

	// A cancelled evaluation must not leave the cache key in any state
	// worse than before the call; skip the write entirely.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.store.Put(rawURL, report); err != nil {
		return nil, fmt.Errorf("write evaluation cache: %w", err)
	}

	return &report, nil
}

// fetchLicense guards the provider boundary. FetchLicense cannot fail by
// contract, but anything unexpected above that layer (including a panicking
// provider) is converted into a degraded license rather than failing the
// whole evaluation.
func (e *Engine) fetchLicense(ctx context.Context, rawURL string, kind classify.Kind) (info model.LicenseInfo) {
	defer func() {
		if r := recover(); r != nil {
			info = model.LicenseInfo{
				Type:             "License information unavailable",
				OfflineAvailable: true,
				LastUpdated:      time.Now().UTC(),
				Details: map[string]interface{}{
					"platform": kind.Platform(),
					"error":    fmt.Sprint(r),
				},
			}
		}
	}()

	return e.licenses.FetchLicense(ctx, rawURL, kind)
}
