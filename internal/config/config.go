package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Auth      AuthConfig      `yaml:"auth"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Source    SourceConfig    `yaml:"source"`
	Breaker   BreakerConfig   `yaml:"breaker"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	HTTP      HTTPConfig      `yaml:"http"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// TransportConfig selects how the server is reached: "http" or "stdio".
type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type AuthConfig struct {
	Enabled bool `yaml:"enabled"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// SourceConfig selects where the discovery feed reads projects from.
type SourceConfig struct {
	// Kind is "sqlite" (the local store) or "rest" (a remote backend).
	Kind            string        `yaml:"kind"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	REST            RESTConfig    `yaml:"rest"`
}

type RESTConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Table   string        `yaml:"table"`
	Timeout time.Duration `yaml:"timeout"`
}

// BreakerConfig tunes the circuit breaker around the record source.
type BreakerConfig struct {
	MaxRequests  uint32        `yaml:"max_requests"`
	Interval     time.Duration `yaml:"interval"`
	Timeout      time.Duration `yaml:"timeout"`
	FailureRatio float64       `yaml:"failure_ratio"`
	MinRequests  uint32        `yaml:"min_requests"`
}

type DiscoveryConfig struct {
	PageSize     int `yaml:"page_size"`
	RelatedLimit int `yaml:"related_limit"`
}

type HTTPConfig struct {
	CORSOrigins       []string      `yaml:"cors_origins"`
	RateLimitRequests int           `yaml:"rate_limit_requests"`
	RateLimitWindow   time.Duration `yaml:"rate_limit_window"`
}

// Default returns the configuration used when no file or env overrides are set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Auth: AuthConfig{
			Enabled: true,
		},
		DB: DBConfig{
			Path: "showcase.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Source: SourceConfig{
			Kind:            "sqlite",
			RefreshInterval: 5 * time.Minute,
			REST: RESTConfig{
				Table:   "projects",
				Timeout: 10 * time.Second,
			},
		},
		Breaker: BreakerConfig{
			MaxRequests:  1,
			Interval:     time.Minute,
			Timeout:      30 * time.Second,
			FailureRatio: 0.6,
			MinRequests:  3,
		},
		Discovery: DiscoveryConfig{
			PageSize:     9,
			RelatedLimit: 6,
		},
		HTTP: HTTPConfig{
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 120,
			RateLimitWindow:   time.Minute,
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("SHOWCASE_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case "http", "stdio":
	default:
		return fmt.Errorf("invalid transport mode %q", c.Transport.Mode)
	}
	switch c.Source.Kind {
	case "sqlite":
	case "rest":
		if c.Source.REST.BaseURL == "" {
			return fmt.Errorf("source.rest.base_url is required for the rest source")
		}
	default:
		return fmt.Errorf("invalid source kind %q", c.Source.Kind)
	}
	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("breaker.failure_ratio must be in (0, 1]")
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("SHOWCASE_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if err := envInt("SHOWCASE_SERVER_PORT", &cfg.Server.Port); err != nil {
		return err
	}
	if mode := os.Getenv("SHOWCASE_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if enabled := os.Getenv("SHOWCASE_AUTH_ENABLED"); enabled != "" {
		v, err := strconv.ParseBool(enabled)
		if err != nil {
			return fmt.Errorf("invalid SHOWCASE_AUTH_ENABLED: %w", err)
		}
		cfg.Auth.Enabled = v
	}
	if dbPath := os.Getenv("SHOWCASE_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("SHOWCASE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if kind := os.Getenv("SHOWCASE_SOURCE_KIND"); kind != "" {
		cfg.Source.Kind = kind
	}
	if err := envDuration("SHOWCASE_SOURCE_REFRESH_INTERVAL", &cfg.Source.RefreshInterval); err != nil {
		return err
	}
	if baseURL := os.Getenv("SHOWCASE_SOURCE_REST_BASE_URL"); baseURL != "" {
		cfg.Source.REST.BaseURL = baseURL
	}
	if apiKey := os.Getenv("SHOWCASE_SOURCE_REST_API_KEY"); apiKey != "" {
		cfg.Source.REST.APIKey = apiKey
	}
	if table := os.Getenv("SHOWCASE_SOURCE_REST_TABLE"); table != "" {
		cfg.Source.REST.Table = table
	}
	if err := envDuration("SHOWCASE_SOURCE_REST_TIMEOUT", &cfg.Source.REST.Timeout); err != nil {
		return err
	}
	if err := envInt("SHOWCASE_DISCOVERY_PAGE_SIZE", &cfg.Discovery.PageSize); err != nil {
		return err
	}
	if origins := os.Getenv("SHOWCASE_HTTP_CORS_ORIGINS"); origins != "" {
		cfg.HTTP.CORSOrigins = splitList(origins)
	}
	if err := envInt("SHOWCASE_HTTP_RATE_LIMIT_REQUESTS", &cfg.HTTP.RateLimitRequests); err != nil {
		return err
	}
	return nil
}

func envInt(key string, dst *int) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = v
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = v
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
