package model

import "time"

// Report is the complete evaluation result for a single resource URL.
// This is the unit of work's result and the value stored in the
// persistent evaluation cache.
type Report struct {
	License      LicenseInfo `json:"license"`       // Normalized license metadata
	Quality      string      `json:"quality"`       // Human-readable quality label
	Adaptability string      `json:"adaptability"`  // Human-readable adaptability label
	Reusability  string      `json:"reusability"`   // Human-readable reusability label
	FromCache    bool        `json:"from_cache"`    // Set when served from the persistent cache
}

// LicenseInfo is normalized license metadata. It is structurally uniform across
// providers: Type, LastUpdated and Details["platform"] are always populated.
// A field that could not be fetched carries an explicit offline/unknown
// sentinel, never an absent value.
type LicenseInfo struct {
	Type              string                 `json:"type"`                           // License label or sentinel
	IsLicensedContent *bool                  `json:"is_licensed_content,omitempty"`  // Video resources only
	AccessInfo        *AccessInfo            `json:"access_info,omitempty"`          // Document resources only
	OfflineAvailable  bool                   `json:"offline_available"`
	LastUpdated       time.Time              `json:"last_updated"`
	Details           map[string]interface{} `json:"details"` // Provider-specific scalars, at minimum "platform"
}

// AccessInfo describes document access metadata from the books provider.
type AccessInfo struct {
	Viewability       string `json:"viewability"`
	DownloadAvailable bool   `json:"download_available"`
	AccessViewStatus  string `json:"access_view_status"`
	PublicDomain      bool   `json:"public_domain"`
}
