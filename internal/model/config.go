package model

import "time"

// Config holds the complete runtime configuration
type Config struct {
	LLM          LLMConfig          `yaml:"llm"`
	Cache        CacheConfig        `yaml:"cache"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting"`
	Output       OutputConfig       `yaml:"output"`
}

// LLMConfig configures the optional AI-assisted extraction strategy
type LLMConfig struct {
	Provider string `yaml:"provider"` // "openai", "ollama", "" (disabled)
	// Models is the ordered fallback ladder; the first model is tried first,
	// the next one on transient failure. Auth errors abort the ladder.
	Models  []string `yaml:"models"`
	APIKey  string   `yaml:"-"` // never persisted; from env
	BaseURL string   `yaml:"base_url"`
	Timeout int      `yaml:"timeout"` // seconds, per model attempt

	HTTPProxy  string `yaml:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy"`
	NoProxy    string `yaml:"no_proxy"`
}

// CacheConfig configures record caching by document content hash
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"` // disk layer; "" keeps memory-only
	TTL     time.Duration `yaml:"ttl"`
}

// RateLimitingConfig paces batch processing. Records flow onward to a
// geocoding collaborator with a strict rate limit, so batches are
// deliberately sequential and paced.
type RateLimitingConfig struct {
	DocumentsPerSecond float64 `yaml:"documents_per_second"`
	BurstSize          int     `yaml:"burst_size"`
}

// OutputConfig configures report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "", // Disabled by default
			Models:   []string{"gpt-4o-mini", "gpt-4o"},
			Timeout:  30,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		RateLimiting: RateLimitingConfig{
			DocumentsPerSecond: 1.0,
			BurstSize:          1,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
