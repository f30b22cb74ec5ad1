package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/example/jobtrack/internal/adapters/jobsuche"
)

// HomeEnv overrides the jobtrack home directory.
const HomeEnv = "JOBTRACK_HOME"

const (
	fileName   = "config.yaml"
	dbFileName = "jobtrack.db"
)

// Config represents the jobtrack configuration file.
type Config struct {
	DBPath   string    `yaml:"db_path"`
	LogLevel string    `yaml:"log_level"`
	API      APIConfig `yaml:"api"`
}

// APIConfig configures the job search client.
type APIConfig struct {
	BaseURL           string        `yaml:"base_url"`
	Key               string        `yaml:"key"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
}

// HomeDir returns $JOBTRACK_HOME, or ~/.jobtrack when unset.
func HomeDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".jobtrack"), nil
}

// Path returns the config file location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, fileName)
}

// Default returns the configuration used when no file exists.
func Default(dir string) *Config {
	return &Config{
		DBPath:   filepath.Join(dir, dbFileName),
		LogLevel: "warn",
		API: APIConfig{
			BaseURL:           jobsuche.DefaultBaseURL,
			Key:               jobsuche.DefaultAPIKey,
			Timeout:           jobsuche.DefaultTimeout,
			RequestsPerSecond: jobsuche.DefaultRequestsPerSecond,
		},
	}
}

// LoadConfig reads config.yaml from dir. A missing file yields the defaults;
// fields left out of the file keep their default values.
func LoadConfig(dir string) (*Config, error) {
	cfg := Default(dir)

	data, err := os.ReadFile(Path(dir))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	// relative database paths are anchored at the config directory
	if !filepath.IsAbs(cfg.DBPath) {
		cfg.DBPath = filepath.Join(dir, cfg.DBPath)
	}

	return cfg, nil
}

// SaveConfig writes config.yaml to dir.
func SaveConfig(dir string, cfg *Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks the fields a running jobtrack depends on.
func Validate(cfg *Config) error {
	var errs []string

	if strings.TrimSpace(cfg.DBPath) == "" {
		errs = append(errs, "db_path is required")
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		errs = append(errs, err.Error())
	}
	if cfg.API.BaseURL == "" {
		errs = append(errs, "api.base_url is required")
	}
	if cfg.API.Timeout < 0 {
		errs = append(errs, "api.timeout must be >= 0")
	}
	if cfg.API.RequestsPerSecond < 0 {
		errs = append(errs, "api.requests_per_second must be >= 0")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}

// ParseLogLevel maps a log_level value to a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("log_level %q must be one of debug, info, warn, error", s)
	}
}
