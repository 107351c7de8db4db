package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// EnvAPIURL overrides api_url from the config file.
const EnvAPIURL = "SEMSCRAPE_API_URL"

const maxPageSize = 1000

// Orderings lists the sort keys the search endpoint accepts.
var Orderings = []string{"-publication_date", "publication_date", "-title", "title"}

type Config struct {
	APIURL   string `yaml:"api_url"`
	PageSize int    `yaml:"page_size"`
	Ordering string `yaml:"ordering"`
	Timeout  string `yaml:"timeout"`
}

// ResolvedAPIURL returns the API base URL, preferring the environment.
func (c *Config) ResolvedAPIURL() string {
	if v := os.Getenv(EnvAPIURL); v != "" {
		return v
	}
	return c.APIURL
}

// GetPageSize returns the page size, defaulting to 30.
func (c *Config) GetPageSize() int {
	if c.PageSize <= 0 {
		return 30
	}
	return c.PageSize
}

func (c *Config) GetOrdering() string {
	if c.Ordering == "" {
		return "-publication_date"
	}
	return c.Ordering
}

func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "semscrape", "config.yaml")
}

// LogPath is where the TUI writes diagnostics when debugging is on.
func LogPath() string {
	return filepath.Join(xdg.StateHome, "semscrape", "semscrape.log")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path, or the default location when path is
// empty. A missing file is replaced by the embedded defaults, which are
// also written out for the user to edit. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Non-fatal: the embedded defaults are enough to run
			_ = writeDefaults(path)
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

// Validate checks a config after flags and environment have been applied.
func Validate(cfg *Config) error {
	raw := cfg.ResolvedAPIURL()
	if raw == "" {
		return fmt.Errorf("api_url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid api_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url scheme must be http or https, got %q", u.Scheme)
	}
	if cfg.PageSize < 0 || cfg.PageSize > maxPageSize {
		return fmt.Errorf("page_size must be between 1 and %d, got %d", maxPageSize, cfg.PageSize)
	}
	if cfg.Ordering != "" && !validOrdering(cfg.Ordering) {
		return fmt.Errorf("unknown ordering %q (valid: %v)", cfg.Ordering, Orderings)
	}
	if cfg.Timeout != "" {
		if _, err := time.ParseDuration(cfg.Timeout); err != nil {
			return fmt.Errorf("invalid timeout %q: %w", cfg.Timeout, err)
		}
	}
	return nil
}

func validOrdering(o string) bool {
	for _, v := range Orderings {
		if v == o {
			return true
		}
	}
	return false
}
