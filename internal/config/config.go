package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Universe []struct {
		Code string `yaml:"code"`
		Name string `yaml:"name"`
	} `yaml:"universe"`
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Fetch struct {
		LookbackDays   int `yaml:"lookback_days"`
		Workers        int `yaml:"workers"`
		TaskTimeoutSec int `yaml:"task_timeout_sec"`
		PublishRetries int `yaml:"publish_retries"`
	} `yaml:"fetch"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Publish struct {
		Endpoint  string `yaml:"endpoint"`
		ClientRef string `yaml:"client_ref"`
		SecretKey string `yaml:"secret_key"`
		NodeID    string `yaml:"node_id"`
	} `yaml:"publish"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is fine; env and defaults carry it.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Publisher credentials may arrive as one multi-line KEY=VALUE blob,
	// which is how the hosting side injects them.
	if raw := os.Getenv("CORE_SYSTEM_CONFIG"); raw != "" {
		blob := ParseBlob(raw)
		if v := blob["API_ENDPOINT_V1"]; v != "" {
			cfg.Publish.Endpoint = v
		}
		if v := blob["CLIENT_ID_REF"]; v != "" {
			cfg.Publish.ClientRef = v
		}
		if v := blob["APP_SECRET_KEY"]; v != "" {
			cfg.Publish.SecretKey = v
		}
		if v := blob["TARGET_NODE_ID"]; v != "" {
			cfg.Publish.NodeID = v
		}
	}

	// Individual environment overrides
	if v := os.Getenv("PUBLISH_ENDPOINT"); v != "" {
		cfg.Publish.Endpoint = v
	}
	if v := os.Getenv("PUBLISH_CLIENT_REF"); v != "" {
		cfg.Publish.ClientRef = v
	}
	if v := os.Getenv("PUBLISH_SECRET_KEY"); v != "" {
		cfg.Publish.SecretKey = v
	}
	if v := os.Getenv("PUBLISH_NODE_ID"); v != "" {
		cfg.Publish.NodeID = v
	}
	if v := os.Getenv("DATA_SOURCE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_SOURCE_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("FETCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Fetch.Workers = n
		}
	}

	// Defaults
	if cfg.Fetch.LookbackDays == 0 {
		cfg.Fetch.LookbackDays = 504 // ~2 years of trading days
	}
	if cfg.Fetch.Workers == 0 {
		cfg.Fetch.Workers = 5
	}
	if cfg.Fetch.TaskTimeoutSec == 0 {
		cfg.Fetch.TaskTimeoutSec = 45
	}
	if cfg.Fetch.PublishRetries == 0 {
		cfg.Fetch.PublishRetries = 3
	}
	if cfg.Schedule.DailyCron == "" {
		// Weekday evenings after the US close, with seconds field.
		cfg.Schedule.DailyCron = "0 30 22 * * 1-5"
	}

	return cfg, nil
}

// TaskTimeout returns the per-instrument fetch timeout as a duration.
func (c *Config) TaskTimeout() time.Duration {
	return time.Duration(c.Fetch.TaskTimeoutSec) * time.Second
}

// ParseBlob parses a multi-line KEY=VALUE blob into a map. Blank lines and
// lines without '=' are skipped.
func ParseBlob(raw string) map[string]string {
	out := map[string]string{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out
}

// Validate checks the fields the pipeline cannot run without. Publisher
// credentials are deliberately not required: without them the run still
// computes and renders, it just skips the upsert.
func (c *Config) Validate() error {
	if c.Fetch.LookbackDays < 75 {
		return fmt.Errorf("fetch.lookback_days must be at least 75 (longest indicator window)")
	}
	if c.Fetch.Workers < 1 {
		return fmt.Errorf("fetch.workers must be at least 1")
	}
	for i, e := range c.Universe {
		if e.Code == "" || e.Name == "" {
			return fmt.Errorf("universe[%d]: code and name are both required", i)
		}
	}
	return nil
}
