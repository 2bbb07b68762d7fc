package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/oerlens/oerlens/internal/classify"
	"github.com/oerlens/oerlens/internal/model"
	"github.com/oerlens/oerlens/internal/worker"
)

// videoIDPattern captures the video identifier token from the known URL
// shapes: watch?v=, youtu.be/, embed/, v/, u/w/ and &v=.
var videoIDPattern = regexp.MustCompile(`(youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*)`)

// videoIDLength is the fixed identifier length; shorter or longer captures
// are noise, not identifiers.
const videoIDLength = 11

// ExtractVideoID pulls the 11-character video identifier out of a URL.
// It returns "" when the URL carries no such identifier.
func ExtractVideoID(rawURL string) string {
	m := videoIDPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return ""
	}
	if len(m[2]) != videoIDLength {
		return ""
	}
	return m[2]
}

// YouTube fetches license metadata for video resources.
type YouTube struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *worker.Limiter
	// cache is the session-scoped result cache, keyed by the exact input
	// URL string. It lives exactly as long as this adapter instance and is
	// never reconciled with the persistent evaluation cache.
	cache *gocache.Cache
}

// NewYouTube creates the video provider adapter.
func NewYouTube(cfg model.ProviderConfig, client *http.Client, limiter *worker.Limiter) *YouTube {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://www.googleapis.com/youtube/v3"
	}
	return &YouTube{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		client:  client,
		limiter: limiter,
		cache:   gocache.New(gocache.NoExpiration, 0),
	}
}

// Name returns the provider name.
func (p *YouTube) Name() string { return "youtube" }

// Kind returns the resource kind this provider handles.
func (p *YouTube) Kind() classify.Kind { return classify.KindVideo }

// FetchLicense returns license metadata for a video URL, degrading to the
// offline fallback shape on any failure. "Video not found" and "network
// unreachable" are deliberately indistinguishable here.
func (p *YouTube) FetchLicense(ctx context.Context, rawURL string) model.LicenseInfo {
	info, err := p.fetch(ctx, rawURL)
	if err != nil {
		return p.fallback()
	}
	return info
}

// videoListResponse holds the fields consumed from the provider; everything
// else in the payload is ignored.
type videoListResponse struct {
	Items []struct {
		Status struct {
			License       string `json:"license"`
			Embeddable    bool   `json:"embeddable"`
			PrivacyStatus string `json:"privacyStatus"`
		} `json:"status"`
		ContentDetails struct {
			LicensedContent bool `json:"licensedContent"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// fetch is the fallible inner lookup. Keeping it separate from FetchLicense
// leaves failure causes inspectable in tests even though callers of the
// public method only ever see a well-formed result.
func (p *YouTube) fetch(ctx context.Context, rawURL string) (model.LicenseInfo, error) {
	id := ExtractVideoID(rawURL)
	if id == "" {
		return model.LicenseInfo{}, fmt.Errorf("no video identifier in URL")
	}

	if cached, found := p.cache.Get(rawURL); found {
		return cached.(model.LicenseInfo), nil
	}

	if err := p.limiter.Wait(ctx, p.baseURL); err != nil {
		return model.LicenseInfo{}, fmt.Errorf("rate limit: %w", err)
	}

	endpoint := fmt.Sprintf("%s/videos?part=status,contentDetails&id=%s&key=%s",
		p.baseURL, url.QueryEscape(id), url.QueryEscape(p.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.LicenseInfo{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return model.LicenseInfo{}, fmt.Errorf("fetch video metadata: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return model.LicenseInfo{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var payload videoListResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.LicenseInfo{}, fmt.Errorf("decode response: %w", err)
	}
	if len(payload.Items) == 0 {
		return model.LicenseInfo{}, fmt.Errorf("video not found")
	}

	item := payload.Items[0]

	licenseType := item.Status.License
	if licenseType == "" {
		licenseType = "Standard YouTube License"
	}
	privacy := item.Status.PrivacyStatus
	if privacy == "" {
		privacy = "unknown"
	}

	info := model.LicenseInfo{
		Type:              licenseType,
		IsLicensedContent: boolPtr(item.ContentDetails.LicensedContent),
		OfflineAvailable:  true,
		LastUpdated:       time.Now().UTC(),
		Details: map[string]interface{}{
			"platform":      "YouTube",
			"allowEmbed":    item.Status.Embeddable,
			"privacyStatus": privacy,
		},
	}

	p.cache.Set(rawURL, info, gocache.NoExpiration)
	return info, nil
}

// fallback is the degraded-but-well-formed shape for any failed lookup.
func (p *YouTube) fallback() model.LicenseInfo {
	return model.LicenseInfo{
		Type:              "Standard YouTube License (Offline)",
		IsLicensedContent: nil,
		OfflineAvailable:  true,
		LastUpdated:       time.Now().UTC(),
		Details: map[string]interface{}{
			"platform":      "YouTube",
			"allowEmbed":    nil,
			"privacyStatus": "unknown",
		},
	}
}
