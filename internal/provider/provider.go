// Package provider wraps the remote license metadata providers and
// normalizes their responses into a common LicenseInfo shape. Provider and
// transport failures never escape this package: FetchLicense degrades in
// place to a well-formed fallback value instead of returning an error.
package provider

import (
	"context"
	"time"

	"github.com/oerlens/oerlens/internal/classify"
	"github.com/oerlens/oerlens/internal/model"
	"github.com/oerlens/oerlens/internal/worker"
)

// Provider fetches normalized license metadata for one resource kind.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Kind returns the resource kind this provider handles.
	Kind() classify.Kind

	// FetchLicense returns license metadata for the URL. It never fails:
	// any malformed input, transport failure or missing payload degrades
	// to the provider's well-formed fallback shape.
	FetchLicense(ctx context.Context, rawURL string) model.LicenseInfo
}

// Registry dispatches license lookups by resource kind. URLs of a kind no
// provider handles get a well-formed "Unknown license" result without any
// network call.
type Registry struct {
	providers map[classify.Kind]Provider
}

// NewRegistry builds a registry with the built-in providers wired to the
// given configuration. A single rate limiter and HTTP client are shared
// across providers.
func NewRegistry(cfg *model.Config) *Registry {
	client := newHTTPClient(cfg.HTTP)
	limiter := worker.NewLimiter(cfg.Providers.RequestsPerSecond, cfg.Providers.BurstSize)

	r := &Registry{providers: make(map[classify.Kind]Provider)}
	r.Register(NewYouTube(cfg.Providers.YouTube, client, limiter))
	r.Register(NewBooks(cfg.Providers.Books, client, limiter))
	return r
}

// Register adds a provider, replacing any prior provider for its kind.
func (r *Registry) Register(p Provider) {
	r.providers[p.Kind()] = p
}

// FetchLicense routes the lookup to the provider for kind.
func (r *Registry) FetchLicense(ctx context.Context, rawURL string, kind classify.Kind) model.LicenseInfo {
	if p, ok := r.providers[kind]; ok {
		return p.FetchLicense(ctx, rawURL)
	}
	return unknownLicense()
}

// unknownLicense is the result for resource kinds without a provider.
func unknownLicense() model.LicenseInfo {
	return model.LicenseInfo{
		Type:             "Unknown license",
		OfflineAvailable: true,
		LastUpdated:      time.Now().UTC(),
		Details: map[string]interface{}{
			"platform": "Unknown",
			"error":    "Unsupported resource type",
		},
	}
}

func boolPtr(b bool) *bool {
	return &b
}
