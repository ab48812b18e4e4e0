package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config covers process level configuration. Values come from the YAML file
// named by SCENELINE_CONFIG_FILE, if any, and environment variables override
// the file.
type Config struct {
	Environment string `yaml:"env"`
	LogLevel    string `yaml:"log_level"` // empty: derived from Environment

	SnapBeats    float64 `yaml:"snap_beats"`          // grid of timeline moves
	SceneBeats   float64 `yaml:"default_scene_beats"` // length of auto-created scenes
	MaxUndo      int     `yaml:"max_undo"`
	RecoveryFile string  `yaml:"recovery_file"`

	ConfigFile string `yaml:"-"`
}

const envPrefix = "SCENELINE_"

// Load reads the optional config file and environment variables, applies
// defaults, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Environment:  "development",
		SnapBeats:    16,
		SceneBeats:   16,
		MaxUndo:      256,
		RecoveryFile: defaultRecoveryFile(),
		ConfigFile:   getEnv("CONFIG_FILE", ""),
	}

	if cfg.ConfigFile != "" {
		b, err := os.ReadFile(cfg.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", cfg.ConfigFile, err)
		}
	}

	cfg.Environment = getEnv("ENV", cfg.Environment)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.SnapBeats = getEnvFloat("SNAP_BEATS", cfg.SnapBeats)
	cfg.SceneBeats = getEnvFloat("DEFAULT_SCENE_BEATS", cfg.SceneBeats)
	cfg.MaxUndo = getEnvInt("MAX_UNDO", cfg.MaxUndo)
	cfg.RecoveryFile = getEnv("RECOVERY_FILE", cfg.RecoveryFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the ranges of the numeric settings.
func (c *Config) Validate() error {
	if c.SnapBeats <= 0 {
		return fmt.Errorf("%sSNAP_BEATS must be positive, got %v", envPrefix, c.SnapBeats)
	}
	if c.SceneBeats <= 0 {
		return fmt.Errorf("%sDEFAULT_SCENE_BEATS must be positive, got %v", envPrefix, c.SceneBeats)
	}
	if c.MaxUndo < 1 {
		return fmt.Errorf("%sMAX_UNDO must be at least 1, got %d", envPrefix, c.MaxUndo)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "trace", "debug", "info", "warn", "error", "disabled":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

func defaultRecoveryFile() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "Sceneline", "sceneline-recovery.json")
	}
	return ""
}

func getEnv(key, def string) string {
	if val := os.Getenv(envPrefix + key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(envPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if val := os.Getenv(envPrefix + key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return def
}
