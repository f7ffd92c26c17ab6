package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project configuration file looked up by FindConfig.
const ConfigFileName = "spi.yml"

const defaultCacheSize = 128

// ErrConfigNotFound is returned by FindConfig when no spi.yml exists in the
// directory or any of its parents.
var ErrConfigNotFound = errors.New("spi.yml not found")

// Config models the spi.yml contents.
type Config struct {
	Path             string   `yaml:"-"`
	LegacySeparators bool     `yaml:"legacy_separators"`
	Check            bool     `yaml:"check"`
	Output           string   `yaml:"output"`
	HistoryFile      string   `yaml:"history_file"`
	LogLevel         string   `yaml:"log_level"`
	CacheSize        int      `yaml:"cache_size"`
	Prelude          []string `yaml:"prelude"`
}

// DefaultConfig returns the settings used when no spi.yml is present.
func DefaultConfig() *Config {
	return &Config{
		Output:    FormatText,
		LogLevel:  "info",
		CacheSize: defaultCacheSize,
	}
}

// LoadConfig parses spi.yml from disk. Keys missing from the file keep their
// default values; unknown keys are rejected. Relative prelude paths are
// resolved against the file's directory.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	cfg.Path = abs

	dir := filepath.Dir(abs)
	for i, p := range cfg.Prelude {
		if p != "" && !filepath.IsAbs(p) {
			cfg.Prelude[i] = filepath.Join(dir, p)
		}
	}
	if cfg.HistoryFile != "" && !filepath.IsAbs(cfg.HistoryFile) && !strings.HasPrefix(cfg.HistoryFile, "~") {
		cfg.HistoryFile = filepath.Join(dir, cfg.HistoryFile)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", abs, err)
	}
	cfg.Output, _ = ParseFormat(cfg.Output)
	return cfg, nil
}

// FindConfig walks from dir up to the filesystem root and returns the first
// spi.yml it finds.
func FindConfig(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("config: resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(abs, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrConfigNotFound
		}
		abs = parent
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}
	if _, err := ParseFormat(c.Output); err != nil {
		return err
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level; empty means info.
func (c *Config) Level() (zapcore.Level, error) {
	if c == nil || c.LogLevel == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}
