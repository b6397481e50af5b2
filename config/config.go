package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Store      StoreConfig      `yaml:"store"`
	Links      LinksConfig      `yaml:"links"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
	Kiosk      KioskConfig      `yaml:"kiosk"`
}

// WorkerPoolConfig holds the configuration for the session event worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// Enabled reports whether both VAPID keys are present.
func (p PushConfig) Enabled() bool {
	return p.PublicKey != "" && p.PrivateKey != ""
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	PublicBaseURL   string  `yaml:"public_base_url"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// CacheTTL returns the response cache lifetime.
func (s ServerConfig) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLSeconds) * time.Second
}

// StoreConfig selects and configures the session store backend.
type StoreConfig struct {
	Driver                 string `yaml:"driver"` // memory, sqlite, postgres, bolt
	DSN                    string `yaml:"dsn"`
	Path                   string `yaml:"path"`
	SessionTTLSeconds      int    `yaml:"session_ttl_seconds"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	LogQueries             bool   `yaml:"log_queries"`
}

// SessionTTL returns how long an idle session is kept. Zero keeps sessions forever.
func (s StoreConfig) SessionTTL() time.Duration {
	return time.Duration(s.SessionTTLSeconds) * time.Second
}

// LinksConfig describes where a scanned QR code sends the phone.
type LinksConfig struct {
	AppScheme         string   `yaml:"app_scheme"`
	UniversalLinkBase string   `yaml:"universal_link_base"`
	AppStoreID        string   `yaml:"app_store_id"`
	AppIDs            []string `yaml:"app_ids"`
	AASAPath          string   `yaml:"aasa_path"`
}

// KioskConfig holds the terminal kiosk settings.
type KioskConfig struct {
	ServerURL                  string        `yaml:"server_url"`
	PollIntervalMillis         int           `yaml:"poll_interval_ms"`
	PollInterval               time.Duration `yaml:"-"`
	TaxRate                    float64       `yaml:"tax_rate"`
	TipPercents                []int         `yaml:"tip_percents"`
	IdleTimeoutSeconds         int           `yaml:"idle_timeout_seconds"`
	ScreensaverIntervalSeconds int           `yaml:"screensaver_interval_seconds"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load reads the configuration from the given path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("config file %s not found; using defaults", path)
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.PublicBaseURL == "" {
		cfg.Server.PublicBaseURL = "http://localhost:3000"
	}
	if cfg.Server.RateLimitPerSec > 0 && cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}

	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "memory"
	}
	if cfg.Store.Driver == "bolt" && cfg.Store.Path == "" {
		cfg.Store.Path = "kiosk-sessions.db"
	}
	if cfg.Store.Driver == "sqlite" && cfg.Store.DSN == "" {
		cfg.Store.DSN = "kiosk-sessions.sqlite"
	}

	if cfg.Links.AppScheme == "" {
		cfg.Links.AppScheme = "kioskapp"
	}
	if cfg.Links.UniversalLinkBase == "" {
		cfg.Links.UniversalLinkBase = cfg.Server.PublicBaseURL + "/app/handoff"
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	if cfg.Kiosk.ServerURL == "" {
		cfg.Kiosk.ServerURL = cfg.Server.PublicBaseURL
	}
	if cfg.Kiosk.PollIntervalMillis <= 0 {
		cfg.Kiosk.PollIntervalMillis = 2000
	}
	cfg.Kiosk.PollInterval = time.Duration(cfg.Kiosk.PollIntervalMillis) * time.Millisecond
	if cfg.Kiosk.TaxRate <= 0 {
		cfg.Kiosk.TaxRate = 0.0875
	}
	if len(cfg.Kiosk.TipPercents) == 0 {
		cfg.Kiosk.TipPercents = []int{15, 18, 20}
	}
	if cfg.Kiosk.IdleTimeoutSeconds <= 0 {
		cfg.Kiosk.IdleTimeoutSeconds = 30
	}
	if cfg.Kiosk.ScreensaverIntervalSeconds <= 0 {
		cfg.Kiosk.ScreensaverIntervalSeconds = 8
	}
}
