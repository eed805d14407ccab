package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"spectre/internal/domain/types"
	"spectre/internal/worker"
)

// Config holds runtime options for building the app.
type Config struct {
	LogLevel         string                 // debug, info, warn or error
	LogFormat        string                 // json or text
	AlgorithmVersion types.AlgorithmVersion // version used when a command names none
	UserName         string                 // default user for the CLI
	DerivationRate   float64                // user-key derivations per second; <= 0 disables throttling
	DerivationBurst  int
	MetricsAddr      string // e.g. 127.0.0.1:9090; empty disables the endpoint
}

// FileConfig is the YAML shape of Config. Unset fields keep their defaults.
type FileConfig struct {
	LogLevel         string   `yaml:"logLevel"`
	LogFormat        string   `yaml:"logFormat"`
	AlgorithmVersion *int     `yaml:"algorithmVersion"`
	UserName         string   `yaml:"userName"`
	DerivationRate   *float64 `yaml:"derivationRate"`
	DerivationBurst  int      `yaml:"derivationBurst"`
	MetricsAddr      string   `yaml:"metricsAddr"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel:         "warn",
		LogFormat:        "text",
		AlgorithmVersion: types.AlgorithmCurrent,
		DerivationRate:   worker.DefaultDerivationRate,
		DerivationBurst:  worker.DefaultDerivationBurst,
	}
}

// LoadConfig layers defaults, the YAML file and SPECTRE_* environment overrides.
//
// An explicit path must exist. Without one, spectre.yaml in the working
// directory and $HOME/.spectre/config.yaml are tried in turn.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	candidates := []string{path}
	if path == "" {
		candidates = []string{"spectre.yaml"}
		if home, err := os.UserHomeDir(); err == nil {
			candidates = append(candidates, filepath.Join(home, ".spectre", "config.yaml"))
		}
	}

	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate)
		if err != nil {
			if path == "" && errors.Is(err, os.ErrNotExist) {
				continue
			}
			return cfg, fmt.Errorf("read config: %w", err)
		}

		var parsed FileConfig
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", candidate, err)
		}
		Merge(&cfg, parsed)
		break
	}

	ApplyEnvOverrides(&cfg)
	return cfg, cfg.Validate()
}

// Merge copies the fields set in src onto dst.
func Merge(dst *Config, src FileConfig) {
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.LogFormat != "" {
		dst.LogFormat = src.LogFormat
	}
	if src.AlgorithmVersion != nil {
		dst.AlgorithmVersion = types.AlgorithmVersion(*src.AlgorithmVersion)
	}
	if src.UserName != "" {
		dst.UserName = src.UserName
	}
	if src.DerivationRate != nil {
		dst.DerivationRate = *src.DerivationRate
	}
	if src.DerivationBurst != 0 {
		dst.DerivationBurst = src.DerivationBurst
	}
	if src.MetricsAddr != "" {
		dst.MetricsAddr = src.MetricsAddr
	}
}

// ApplyEnvOverrides applies the SPECTRE_* environment variables.
func ApplyEnvOverrides(cfg *Config) {
	cfg.LogLevel = EnvString("SPECTRE_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = EnvString("SPECTRE_LOG_FORMAT", cfg.LogFormat)
	cfg.AlgorithmVersion = types.AlgorithmVersion(EnvInt("SPECTRE_ALGORITHM", int(cfg.AlgorithmVersion)))
	cfg.UserName = EnvString("SPECTRE_USERNAME", cfg.UserName)
	cfg.DerivationRate = EnvFloat("SPECTRE_DERIVATION_RATE", cfg.DerivationRate)
	cfg.DerivationBurst = EnvInt("SPECTRE_DERIVATION_BURST", cfg.DerivationBurst)
	cfg.MetricsAddr = EnvString("SPECTRE_METRICS_ADDR", cfg.MetricsAddr)
}

// Validate rejects settings the app cannot run with.
func (c Config) Validate() error {
	if !c.AlgorithmVersion.Valid() {
		return fmt.Errorf("config: unsupported algorithm version %d", c.AlgorithmVersion)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	return nil
}
