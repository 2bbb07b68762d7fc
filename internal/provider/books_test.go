package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/oerlens/oerlens/internal/model"
	"github.com/oerlens/oerlens/internal/worker"
)

func newTestBooks(baseURL string) *Books {
	return NewBooks(
		model.ProviderConfig{APIKey: "test-key", BaseURL: baseURL},
		&http.Client{Timeout: 5 * time.Second},
		worker.NewLimiter(100, 100),
	)
}

func TestExtractBookID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://books.google.com/books?id=zyTCAlFPjgYC", "zyTCAlFPjgYC"},
		{"https://books.google.com/books?id=zyTCAlFPjgYC&printsec=frontcover", "zyTCAlFPjgYC"},
		{"https://books.google.com/books?hl=en&id=abc123", "abc123"},
		{"https://books.google.com/books", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ExtractBookID(tt.url); got != tt.want {
			t.Errorf("ExtractBookID(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestDetermineLicense(t *testing.T) {
	volume := func(publicDomain bool, license, description, accessViewStatus string) bookVolume {
		var v bookVolume
		v.AccessInfo = &struct {
			Viewability string `json:"viewability"`
			Epub        struct {
				IsAvailable bool `json:"isAvailable"`
			} `json:"epub"`
			AccessViewStatus    string `json:"accessViewStatus"`
			PublicDomain        bool   `json:"publicDomain"`
			Country             string `json:"country"`
			QuoteSharingAllowed bool   `json:"quoteSharingAllowed"`
		}{}
		v.AccessInfo.PublicDomain = publicDomain
		v.AccessInfo.AccessViewStatus = accessViewStatus
		v.VolumeInfo.License = license
		v.VolumeInfo.Description = description
		return v
	}

	tests := []struct {
		name string
		v    bookVolume
		want string
	}{
		{"public domain wins", volume(true, "explicit", "creative commons cc by", "FULL"), "Public Domain"},
		{"explicit license field", volume(false, "GFDL", "", ""), "GFDL"},
		{"cc by", volume(false, "", "released under Creative Commons CC BY 4.0", ""), "CC BY"},
		{"cc by-sa beats cc by", volume(false, "", "licensed under Creative Commons CC BY-SA 4.0", ""), "CC BY-SA"},
		{"cc by-nc-sa most specific", volume(false, "", "creative commons cc by-nc-sa license", ""), "CC BY-NC-SA"},
		{"cc by-nd", volume(false, "", "creative commons CC BY-ND terms", ""), "CC BY-ND"},
		{"generic creative commons", volume(false, "", "distributed under a Creative Commons license", ""), "Creative Commons (Unspecified)"},
		{"access view status fallback", volume(false, "", "plain description", "SAMPLE"), "SAMPLE"},
		{"unknown", volume(false, "", "", ""), "Unknown License"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := determineLicense(tt.v); got != tt.want {
				t.Errorf("determineLicense = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBooks_FetchLicense_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/volumes/zyTCAlFPjgYC") {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		fmt.Fprint(w, `{
			"accessInfo":{
				"viewability":"PARTIAL",
				"epub":{"isAvailable":true},
				"accessViewStatus":"SAMPLE",
				"publicDomain":false,
				"country":"US",
				"quoteSharingAllowed":true
			},
			"volumeInfo":{"description":"licensed under Creative Commons CC BY-SA 4.0"}
		}`)
	}))
	defer server.Close()

	p := newTestBooks(server.URL)
	info := p.FetchLicense(context.Background(), "https://books.google.com/books?id=zyTCAlFPjgYC")

	if info.Type != "CC BY-SA" {
		t.Errorf("Expected CC BY-SA, got %s", info.Type)
	}
	if info.AccessInfo == nil {
		t.Fatal("Expected AccessInfo to be present for document resources")
	}
	if info.AccessInfo.Viewability != "PARTIAL" {
		t.Errorf("Unexpected viewability: %s", info.AccessInfo.Viewability)
	}
	if !info.AccessInfo.DownloadAvailable {
		t.Error("Expected DownloadAvailable=true")
	}
	if info.Details["platform"] != "Google Books" {
		t.Errorf("Expected platform Google Books, got %v", info.Details["platform"])
	}
	if info.Details["country"] != "US" {
		t.Errorf("Expected country US, got %v", info.Details["country"])
	}
	if info.OfflineAvailable {
		t.Error("Expected OfflineAvailable=false for documents")
	}
}

func TestBooks_FetchLicense_AccessInfoDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"accessInfo":{},"volumeInfo":{}}`)
	}))
	defer server.Close()

	p := newTestBooks(server.URL)
	info := p.FetchLicense(context.Background(), "https://books.google.com/books?id=abc")

	if info.AccessInfo.Viewability != "NO_PAGES" {
		t.Errorf("Expected viewability default NO_PAGES, got %s", info.AccessInfo.Viewability)
	}
	if info.AccessInfo.AccessViewStatus != "NONE" {
		t.Errorf("Expected accessViewStatus default NONE, got %s", info.AccessInfo.AccessViewStatus)
	}
	if info.Details["country"] != "unknown" {
		t.Errorf("Expected country default unknown, got %v", info.Details["country"])
	}
	if info.Type != "Unknown License" {
		t.Errorf("Expected Unknown License, got %s", info.Type)
	}
}

func TestBooks_FetchLicense_FallbackPaths(t *testing.T) {
	noAccessInfo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"volumeInfo":{"description":"x"}}`)
	}))
	defer noAccessInfo.Close()

	serverErr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer serverErr.Close()

	tests := []struct {
		name string
		base string
		url  string
	}{
		{"missing access info", noAccessInfo.URL, "https://books.google.com/books?id=abc"},
		{"non-success status", serverErr.URL, "https://books.google.com/books?id=abc"},
		{"no identifier", noAccessInfo.URL, "https://books.google.com/books"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestBooks(tt.base)
			info := p.FetchLicense(context.Background(), tt.url)

			if info.Type != "Unknown License (Offline)" {
				t.Errorf("Expected offline fallback type, got %s", info.Type)
			}
			if info.AccessInfo == nil || info.AccessInfo.Viewability != "NO_PAGES" {
				t.Error("Expected fallback AccessInfo with explicit defaults")
			}
			if info.Details["platform"] != "Google Books" {
				t.Errorf("Expected platform Google Books, got %v", info.Details["platform"])
			}
		})
	}
}

func TestBooks_FetchLicense_SessionCacheSuppressesSecondCall(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"accessInfo":{"publicDomain":true},"volumeInfo":{}}`)
	}))
	defer server.Close()

	p := newTestBooks(server.URL)
	url := "https://books.google.com/books?id=abc"

	_ = p.FetchLicense(context.Background(), url)
	info := p.FetchLicense(context.Background(), url)

	if calls.Load() != 1 {
		t.Errorf("Expected exactly 1 remote call, got %d", calls.Load())
	}
	if info.Type != "Public Domain" {
		t.Errorf("Expected Public Domain from cache, got %s", info.Type)
	}
}
