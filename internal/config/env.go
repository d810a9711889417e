package config

import (
	"os"
	"strconv"
	"strings"
)

// FromEnv overlays MINTHOOK_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("MINTHOOK_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("MINTHOOK_DEDUP_WINDOW_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DedupWindowSec = n
		}
	}
	if v := os.Getenv("MINTHOOK_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("MINTHOOK_POP_WAIT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PopWaitMs = n
		}
	}
	if v := os.Getenv("MINTHOOK_FILTER"); v != "" {
		cfg.Filter = v
	}
	if v := os.Getenv("MINTHOOK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("MINTHOOK_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("MINTHOOK_ANALYZER_URL"); v != "" {
		cfg.Analyzer.URL = v
	}
	if v := os.Getenv("MINTHOOK_ANALYZER_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analyzer.TimeoutMs = n
		}
	}
	if v := os.Getenv("MINTHOOK_ANALYZER_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analyzer.MaxAttempts = n
		}
	}
	if v := os.Getenv("MINTHOOK_KAFKA_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Kafka.Enabled = b
		}
	}
	if v := os.Getenv("MINTHOOK_KAFKA_BROKERS"); v != "" {
		parts := strings.Split(v, ",")
		cfg.Kafka.Brokers = nil
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cfg.Kafka.Brokers = append(cfg.Kafka.Brokers, p)
			}
		}
	}
	if v := os.Getenv("MINTHOOK_KAFKA_TOPIC"); v != "" {
		cfg.Kafka.Topic = v
	}
}
