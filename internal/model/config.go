package model

import "time"

// Config is the full runtime configuration.
type Config struct {
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Providers    ProvidersConfig    `yaml:"providers" mapstructure:"providers"`
	Connectivity ConnectivityConfig `yaml:"connectivity" mapstructure:"connectivity"`
	LLM          LLMConfig          `yaml:"llm" mapstructure:"llm"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
}

// HTTPConfig configures the outbound HTTP client shared by the provider
// adapters and the connectivity prober.
type HTTPConfig struct {
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent   string        `yaml:"user_agent" mapstructure:"user_agent"`
	InsecureTLS bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy   string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy  string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy     string        `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// CacheConfig configures the persistent evaluation cache.
type CacheConfig struct {
	// Backend selects the persistent store: "disk" (file per entry) or
	// "sqlite" (single database file).
	Backend string `yaml:"backend" mapstructure:"backend"`
	// Dir is the directory for the disk backend.
	Dir string `yaml:"dir" mapstructure:"dir"`
	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
	// MemoryTTL bounds the in-process read-through layer. The persistent
	// entries themselves never expire.
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
}

// ProviderConfig configures a single remote metadata provider.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// ProvidersConfig configures the remote license metadata providers.
type ProvidersConfig struct {
	YouTube ProviderConfig `yaml:"youtube" mapstructure:"youtube"`
	Books   ProviderConfig `yaml:"books" mapstructure:"books"`
	// RequestsPerSecond and BurstSize bound outbound provider calls per domain.
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// ConnectivityConfig configures the online/offline snapshot taken at the
// start of each evaluation.
type ConnectivityConfig struct {
	// Mode is "auto" (probe), "online" or "offline" (forced).
	Mode         string        `yaml:"mode" mapstructure:"mode"`
	ProbeURL     string        `yaml:"probe_url" mapstructure:"probe_url"`
	ProbeTimeout time.Duration `yaml:"probe_timeout" mapstructure:"probe_timeout"`
}

// LLMConfig configures the optional report summarizer.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "" disables summaries
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// OutputConfig configures CLI output behavior.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:   15 * time.Second,
			UserAgent: "oerlens/0.1 (+https://github.com/oerlens/oerlens)",
		},
		Cache: CacheConfig{
			Backend:   "disk",
			MemoryTTL: 5 * time.Minute,
		},
		Providers: ProvidersConfig{
			YouTube: ProviderConfig{
				BaseURL: "https://www.googleapis.com/youtube/v3",
			},
			Books: ProviderConfig{
				BaseURL: "https://www.googleapis.com/books/v1",
			},
			RequestsPerSecond: 5,
			BurstSize:         5,
		},
		Connectivity: ConnectivityConfig{
			Mode:         "auto",
			ProbeURL:     "https://clients3.google.com/generate_204",
			ProbeTimeout: 3 * time.Second,
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 500,
		},
	}
}
