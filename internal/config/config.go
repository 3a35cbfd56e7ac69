package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName            string        `mapstructure:"app_name"`
	Env                string        `mapstructure:"app_env"`
	LogLevel           string        `mapstructure:"log_level"`
	AsanaBaseURL       string        `mapstructure:"asana_base_url"`
	AsanaAccessToken   string        `mapstructure:"asana_access_token"`
	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`

	SourcesFile           string        `mapstructure:"sources_file"`
	PublishersFile        string        `mapstructure:"publishers_file"`
	ExportIntervalSeconds int64         `mapstructure:"export_interval"`
	ExportInterval        time.Duration `mapstructure:"-"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("app_name", "asana-go")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("asana_base_url", "https://app.asana.com/api/1.0")
	v.SetDefault("asana_access_token", "")
	v.SetDefault("http_timeout_seconds", 30)
	v.SetDefault("sources_file", "./configs/sources.yaml")
	v.SetDefault("publishers_file", "./configs/publishers.yaml")
	v.SetDefault("export_interval", 900) // seconds
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/export.db")
	v.SetDefault("storage_ttl_seconds", int64((30*24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.AsanaBaseURL = strings.TrimRight(strings.TrimSpace(cfg.AsanaBaseURL), "/")
	if cfg.AsanaBaseURL == "" {
		return nil, fmt.Errorf("invalid asana_base_url (must not be empty)")
	}
	cfg.AsanaAccessToken = strings.TrimSpace(cfg.AsanaAccessToken)

	durations := []struct {
		key     string
		seconds int64
		dst     *time.Duration
	}{
		{"http_timeout_seconds", cfg.HTTPTimeoutSeconds, &cfg.HTTPTimeout},
		{"export_interval", cfg.ExportIntervalSeconds, &cfg.ExportInterval},
		{"storage_ttl_seconds", cfg.StorageTTLSeconds, &cfg.StorageTTL},
		{"storage_cleanup_interval_seconds", cfg.StorageCleanupSeconds, &cfg.StorageCleanupInterval},
	}
	for _, d := range durations {
		if d.seconds <= 0 {
			return nil, fmt.Errorf("invalid %s (must be positive seconds)", d.key)
		}
		*d.dst = time.Duration(d.seconds) * time.Second
	}

	return &cfg, nil
}

// RequireToken reports a configuration error when no access token is set.
func (c *Config) RequireToken() error {
	if c == nil || c.AsanaAccessToken == "" {
		return fmt.Errorf("asana_access_token is required (set ASANA_ACCESS_TOKEN)")
	}
	return nil
}

// Redacted returns a copy safe for logging.
func (c Config) Redacted() Config {
	if c.AsanaAccessToken != "" {
		c.AsanaAccessToken = "***"
	}
	return c
}
