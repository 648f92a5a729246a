// Package config loads and validates harvester configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all harvester configuration knobs loaded via Viper.
type Config struct {
	// Sources maps a portal tag (human-readable identifier) to its
	// landing-page URL. Read-only input for a run.
	Sources map[string]string `mapstructure:"sources"`
	HTTP    HTTPConfig        `mapstructure:"http"`
	Store   StoreConfig       `mapstructure:"store"`
	Catalog CatalogConfig     `mapstructure:"catalog"`
	Logging LoggingConfig     `mapstructure:"logging"`
}

// HTTPConfig configures HTTP client retry behavior.
type HTTPConfig struct {
	UserAgent        string `mapstructure:"user_agent"`
	TimeoutSeconds   int    `mapstructure:"timeout_seconds"`
	MaxRetries       int    `mapstructure:"max_retries"`
	BackoffInitialMs int    `mapstructure:"backoff_initial_ms"`
}

// StoreConfig sets the directory for downloaded documents.
type StoreConfig struct {
	Dir string `mapstructure:"dir"`
}

// CatalogConfig sets the path of the merged catalog file.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Portals scanned out of the box. Overridable via config file.
var defaultSources = map[string]string{
	"samsung":              "https://sra.samsung.com/collaboration/start/apply/",
	"amazon":               "https://www.amazon.science/research-awards/call-for-proposals",
	"nvidia":               "https://www.nvidia.com/en-in/industries/higher-education-research/academic-grant-program/",
	"cisco":                "https://research.cisco.com/open-rfps",
	"google":               "https://research.google/programs-and-events/research-scholar-program/",
	"opentech":             "https://www.opentech.fund/funds/",
	"aisi":                 "https://www.aisi.gov.uk/grants",
	"shell":                "http://shell.com/what-we-do/technology-and-innovation/innovate-with-shell/shell-gamechanger/call-for-proposals.html",
	"darpa":                "https://www.darpa.mil/work-with-us/opportunities",
	"Johnson&Johnson":      "https://jnjinnovation.com/innovation-challenges",
	"M-ERA NET":            "https://www.m-era.net/joint-calls",
	"Boehringer Ingelheim": "https://www.opnme.com/",
	"Halton Foundation":    "https://foundation.halton.com/halton-foundation-grant-application/",
}

// Institutional portals block obvious bots; a mainstream browser UA keeps the
// rejection rate down.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("HARVESTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("sources", defaultSources)
	v.SetDefault("http.user_agent", defaultUserAgent)
	v.SetDefault("http.timeout_seconds", 30)
	v.SetDefault("http.max_retries", 3)
	v.SetDefault("http.backoff_initial_ms", 500)
	v.SetDefault("store.dir", "data")
	v.SetDefault("catalog.path", "latest_rfps.json")
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("sources must not be empty")
	}
	for tag, url := range c.Sources {
		if strings.TrimSpace(url) == "" {
			return fmt.Errorf("sources[%q] has an empty URL", tag)
		}
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be > 0")
	}
	if c.HTTP.MaxRetries < 0 {
		return fmt.Errorf("http.max_retries must be >= 0")
	}
	if c.Store.Dir == "" {
		return fmt.Errorf("store.dir must be set")
	}
	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog.path must be set")
	}
	return nil
}

// Timeout converts the configured HTTP timeout into a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// Backoff converts the configured initial backoff into a duration.
func (c Config) Backoff() time.Duration {
	return time.Duration(c.HTTP.BackoffInitialMs) * time.Millisecond
}
