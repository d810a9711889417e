package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	// Workers is the number of concurrent queue consumers.
	Workers int `json:"workers" yaml:"workers"`
	// DedupWindowSec is the deduplication window in seconds. Two submissions
	// for the same (token, event type) within this window collapse to one task.
	DedupWindowSec int `json:"dedupWindowSec" yaml:"dedupWindowSec"`
	// MaxRetries is the number of re-enqueues a failing task gets before it
	// is dropped. With MaxRetries=2 a task is attempted at most 3 times.
	MaxRetries int `json:"maxRetries" yaml:"maxRetries"`
	// PopWaitMs bounds how long an idle worker blocks on the queue before
	// re-checking the running flag.
	PopWaitMs int `json:"popWaitMs" yaml:"popWaitMs"`
	// Filter is an optional CEL expression evaluated against every submitted
	// event. Events evaluating false are dropped before deduplication.
	// Variables: event_type (string), json (parsed payload), now_ms (int).
	Filter string `json:"filter" yaml:"filter"`

	Log      LogConfig      `json:"log" yaml:"log"`
	Analyzer AnalyzerConfig `json:"analyzer" yaml:"analyzer"`
	Kafka    KafkaConfig    `json:"kafka" yaml:"kafka"`
}

// LogConfig selects log level and format.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// AnalyzerConfig points at the downstream security analysis service.
type AnalyzerConfig struct {
	// URL is the analyzer endpoint. Empty wires a passthrough analyzer that
	// approves every token (development setups without the analysis service).
	URL string `json:"url" yaml:"url"`
	// TimeoutMs bounds a single analyze call.
	TimeoutMs int `json:"timeoutMs" yaml:"timeoutMs"`
	// MaxAttempts is the per-call retry budget inside the resilient wrapper.
	MaxAttempts int `json:"maxAttempts" yaml:"maxAttempts"`
	// BaseDelayMs is the initial retry backoff.
	BaseDelayMs int `json:"baseDelayMs" yaml:"baseDelayMs"`
}

// KafkaConfig configures the optional analysis-outcome sink.
type KafkaConfig struct {
	Enabled bool     `json:"enabled" yaml:"enabled"`
	Brokers []string `json:"brokers" yaml:"brokers"`
	Topic   string   `json:"topic" yaml:"topic"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		Workers:        2,
		DedupWindowSec: 300,
		MaxRetries:     2,
		PopWaitMs:      1000,
		Log:            LogConfig{Level: "info", Format: "text"},
		Analyzer: AnalyzerConfig{
			TimeoutMs:   30_000,
			MaxAttempts: 2,
			BaseDelayMs: 500,
		},
		Kafka: KafkaConfig{Topic: "minthook.analyses"},
	}
}

// Load reads configuration from a JSON or YAML file (by extension). If path
// is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse yaml %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse json %s: %w", path, err)
		}
	}
	return cfg, nil
}
