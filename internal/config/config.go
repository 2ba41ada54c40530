// Package config loads and validates crawler configuration via Viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Retry   RetryConfig   `mapstructure:"retry"`
	Storage StorageConfig `mapstructure:"storage"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Notify  NotifyConfig  `mapstructure:"notify"`
}

// APIConfig selects the upstream statsapi endpoint and schema version.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Version string `mapstructure:"version"`
}

// RetryConfig configures the resilient HTTP request layer.
type RetryConfig struct {
	MaxAttempts     int     `mapstructure:"max_attempts"`
	BackoffFactor   float64 `mapstructure:"backoff_factor"`
	MaxJitterPct    int     `mapstructure:"max_jitter_pct"`
	MaxSleepSeconds float64 `mapstructure:"max_sleep_seconds"`
}

// StorageConfig names the destination buckets and the blob provider.
type StorageConfig struct {
	Provider   string `mapstructure:"provider"`
	DataBucket string `mapstructure:"data_bucket"`
	JobsBucket string `mapstructure:"jobs_bucket"`
	// Endpoint overrides the storage service URL, e.g. for an emulator.
	Endpoint string `mapstructure:"endpoint"`
}

// MetricsConfig controls the optional debug listener exposing /metrics.
type MetricsConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

// NotifyConfig holds metadata for the optional job-completion notification.
type NotifyConfig struct {
	ProjectID string `mapstructure:"project_id"`
	TopicName string `mapstructure:"topic_name"`
}

// Load builds a Config from Viper's merged file/env/default state.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// InitViper wires defaults, search paths and environment overrides into the
// given Viper instance. Designed to be called once at startup.
func InitViper(v *viper.Viper) {
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/nhldata/")
	v.AddConfigPath("$HOME/.nhldata")

	setDefaults(v)

	v.SetEnvPrefix("NHLDATA") // e.g. NHLDATA_STORAGE_DATA_BUCKET=output
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A missing config file is fine; defaults and env vars carry the day.
	_ = v.ReadInConfig()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "https://statsapi.web.nhl.com/api/v1")
	v.SetDefault("api.version", "v1")
	v.SetDefault("retry.max_attempts", 5)
	v.SetDefault("retry.backoff_factor", 1.0)
	v.SetDefault("retry.max_jitter_pct", 25)
	v.SetDefault("retry.max_sleep_seconds", 0.0)
	v.SetDefault("storage.provider", "gcs")
	v.SetDefault("storage.data_bucket", "output")
	v.SetDefault("storage.jobs_bucket", "jobs")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("metrics.listen_addr", "")
	v.SetDefault("notify.project_id", "")
	v.SetDefault("notify.topic_name", "")
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must be set")
	}
	if c.Retry.MaxAttempts <= 0 {
		return fmt.Errorf("retry.max_attempts must be > 0")
	}
	if c.Retry.BackoffFactor < 0 {
		return fmt.Errorf("retry.backoff_factor must be >= 0")
	}
	if c.Retry.MaxJitterPct < 0 {
		return fmt.Errorf("retry.max_jitter_pct must be >= 0")
	}
	switch c.Storage.Provider {
	case "gcs", "memory", "noop":
	default:
		return fmt.Errorf("unknown storage provider: %s", c.Storage.Provider)
	}
	if c.Storage.DataBucket == "" || c.Storage.JobsBucket == "" {
		return fmt.Errorf("storage.data_bucket and storage.jobs_bucket must be set")
	}
	return nil
}
