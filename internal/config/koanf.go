package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where a config file is searched for, in priority order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/recoengine/config.yaml",
}

// ConfigPathEnvVar overrides the config file search with an explicit path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load loads configuration with Koanf v2 using the layering described in the package doc.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := applyRetrySchedule(k); err != nil {
		return nil, fmt.Errorf("apply retry schedule: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envTransformFunc maps RECO_BROKER_HOST -> broker.host, etc.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, "RECO_"))
	return strings.ReplaceAll(key, "_", ".")
}

// applyRetrySchedule allows RECO_RETRY_SCHEDULE="5s,30s,300s" to override the default schedule,
// since env vars arrive as flat strings rather than duration slices.
func applyRetrySchedule(k *koanf.Koanf) error {
	raw := os.Getenv("RECO_RETRY_SCHEDULE")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	schedule := make([]time.Duration, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		d, err := time.ParseDuration(p)
		if err != nil {
			if secs, err2 := strconv.Atoi(p); err2 == nil {
				d = time.Duration(secs) * time.Second
			} else {
				return fmt.Errorf("parse retry delay %q: %w", p, err)
			}
		}
		schedule = append(schedule, d)
	}
	if len(schedule) == 0 {
		return nil
	}
	return k.Set("retry.schedule", schedule)
}
