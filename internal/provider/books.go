package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/oerlens/oerlens/internal/classify"
	"github.com/oerlens/oerlens/internal/model"
	"github.com/oerlens/oerlens/internal/worker"
)

// bookIDPattern extracts the volume identifier from the id= query parameter.
var bookIDPattern = regexp.MustCompile(`id=([^&]+)`)

// ccMarkers lists the recognized Creative Commons markers, most specific
// first, so "CC BY-SA 4.0" resolves to CC BY-SA rather than CC BY.
var ccMarkers = []string{
	"CC BY-NC-SA",
	"CC BY-NC-ND",
	"CC BY-NC",
	"CC BY-SA",
	"CC BY-ND",
	"CC BY",
}

// ExtractBookID pulls the volume identifier out of a URL's id= query
// parameter. It returns "" when the parameter is absent.
func ExtractBookID(rawURL string) string {
	m := bookIDPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return ""
	}
	return m[1]
}

// Books fetches license metadata for document resources.
type Books struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *worker.Limiter
	cache   *gocache.Cache // session cache keyed by exact input URL
}

// NewBooks creates the document provider adapter.
func NewBooks(cfg model.ProviderConfig, client *http.Client, limiter *worker.Limiter) *Books {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://www.googleapis.com/books/v1"
	}
	return &Books{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		client:  client,
		limiter: limiter,
		cache:   gocache.New(gocache.NoExpiration, 0),
	}
}

// Name returns the provider name.
func (p *Books) Name() string { return "books" }

// Kind returns the resource kind this provider handles.
func (p *Books) Kind() classify.Kind { return classify.KindDocument }

// FetchLicense returns license metadata for a document URL, degrading to the
// offline fallback shape on any failure.
func (p *Books) FetchLicense(ctx context.Context, rawURL string) model.LicenseInfo {
	info, err := p.fetch(ctx, rawURL)
	if err != nil {
		return p.fallback()
	}
	return info
}

// bookVolume holds the fields consumed from the provider. AccessInfo is a
// pointer so a payload missing the whole section reads as a failure rather
// than a sea of zero values.
type bookVolume struct {
	AccessInfo *struct {
		Viewability string `json:"viewability"`
		Epub        struct {
			IsAvailable bool `json:"isAvailable"`
		} `json:"epub"`
		AccessViewStatus    string `json:"accessViewStatus"`
		PublicDomain        bool   `json:"publicDomain"`
		Country             string `json:"country"`
		QuoteSharingAllowed bool   `json:"quoteSharingAllowed"`
	} `json:"accessInfo"`
	VolumeInfo struct {
		License     string `json:"license"`
		Description string `json:"description"`
	} `json:"volumeInfo"`
}

func (p *Books) fetch(ctx context.Context, rawURL string) (model.LicenseInfo, error) {
	id := ExtractBookID(rawURL)
	if id == "" {
		return model.LicenseInfo{}, fmt.Errorf("no volume identifier in URL")
	}

	if cached, found := p.cache.Get(rawURL); found {
		return cached.(model.LicenseInfo), nil
	}

	if err := p.limiter.Wait(ctx, p.baseURL); err != nil {
		return model.LicenseInfo{}, fmt.Errorf("rate limit: %w", err)
	}

	endpoint := fmt.Sprintf("%s/volumes/%s?key=%s", p.baseURL, url.PathEscape(id), url.QueryEscape(p.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.LicenseInfo{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return model.LicenseInfo{}, fmt.Errorf("fetch volume metadata: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return model.LicenseInfo{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var payload bookVolume
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.LicenseInfo{}, fmt.Errorf("decode response: %w", err)
	}
	if payload.AccessInfo == nil {
		return model.LicenseInfo{}, fmt.Errorf("volume has no access information")
	}

	access := payload.AccessInfo

	viewability := access.Viewability
	if viewability == "" {
		viewability = "NO_PAGES"
	}
	accessViewStatus := access.AccessViewStatus
	if accessViewStatus == "" {
		accessViewStatus = "NONE"
	}
	country := access.Country
	if country == "" {
		country = "unknown"
	}

	info := model.LicenseInfo{
		Type: determineLicense(payload),
		AccessInfo: &model.AccessInfo{
			Viewability:       viewability,
			DownloadAvailable: access.Epub.IsAvailable,
			AccessViewStatus:  accessViewStatus,
			PublicDomain:      access.PublicDomain,
		},
		OfflineAvailable: false,
		LastUpdated:      time.Now().UTC(),
		Details: map[string]interface{}{
			"platform":            "Google Books",
			"country":             country,
			"quoteSharingAllowed": access.QuoteSharingAllowed,
		},
	}

	p.cache.Set(rawURL, info, gocache.NoExpiration)
	return info, nil
}

// determineLicense resolves the license label by priority: public-domain
// flag, explicit license field, Creative Commons markers in the description,
// the raw access-view status, then "Unknown License".
func determineLicense(v bookVolume) string {
	if v.AccessInfo.PublicDomain {
		return "Public Domain"
	}
	if v.VolumeInfo.License != "" {
		return v.VolumeInfo.License
	}

	description := strings.ToLower(v.VolumeInfo.Description)
	if strings.Contains(description, "creative commons") {
		for _, marker := range ccMarkers {
			if strings.Contains(description, strings.ToLower(marker)) {
				return marker
			}
		}
		return "Creative Commons (Unspecified)"
	}

	if v.AccessInfo.AccessViewStatus != "" {
		return v.AccessInfo.AccessViewStatus
	}
	return "Unknown License"
}

// fallback is the degraded-but-well-formed shape for any failed lookup.
func (p *Books) fallback() model.LicenseInfo {
	return model.LicenseInfo{
		Type: "Unknown License (Offline)",
		AccessInfo: &model.AccessInfo{
			Viewability:       "NO_PAGES",
			DownloadAvailable: false,
			AccessViewStatus:  "NONE",
			PublicDomain:      false,
		},
		OfflineAvailable: false,
		LastUpdated:      time.Now().UTC(),
		Details: map[string]interface{}{
			"platform":            "Google Books",
			"country":             "unknown",
			"quoteSharingAllowed": false,
		},
	}
}
