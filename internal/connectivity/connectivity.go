// Package connectivity provides the online/offline snapshot consulted at the
// start of each evaluation. The snapshot is taken once and never re-checked
// mid-operation.
package connectivity

import (
	"context"
	"net/http"
	"time"
)

// Checker reports a point-in-time connectivity state.
type Checker interface {
	Online(ctx context.Context) bool
}

// Static always reports a fixed state. It backs the --online/--offline
// force flags and tests.
type Static bool

// Online returns the fixed state.
func (s Static) Online(context.Context) bool { return bool(s) }

// Prober checks connectivity with a single lightweight request against a
// well-known endpoint. Any HTTP response, regardless of status code,
// counts as online; only transport-level failure counts as offline.
type Prober struct {
	client   *http.Client
	endpoint string
}

// NewProber creates a prober against the given endpoint.
func NewProber(endpoint string, timeout time.Duration) *Prober {
	if endpoint == "" {
		endpoint = "https://clients3.google.com/generate_204"
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Prober{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
	}
}

// Online issues the probe.
func (p *Prober) Online(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.endpoint, nil)
	if err != nil {
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return true
}
