package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultSourceDir is the directory scanned when none is configured.
	DefaultSourceDir = "docs"
	// DefaultSpaceID is the target space used when none is configured.
	DefaultSpaceID = "bafyreifchnuh4afkfy4l2zlla3n4rz3gjdtukztbbzw5gyzepguy4bxi7a.hu7i6rup4ith"
	// DefaultPattern selects Markdown files.
	DefaultPattern = "*.md"
)

var ErrSourceDirRequired = errors.New("docmigrate config: source directory is required")
var ErrSpaceIDRequired = errors.New("docmigrate config: space id is required when creating objects")
var ErrPatternInvalid = errors.New("docmigrate config: file pattern is invalid")
var ErrLoggingProviderUnknown = errors.New("docmigrate config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("docmigrate config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("docmigrate config: logging format is invalid")

// Config is the runtime configuration of a migration run. The zero value is
// not usable; start from DefaultConfig.
type Config struct {
	SourceDir     string        `yaml:"source_dir"`
	SpaceID       string        `yaml:"space_id"`
	Pattern       string        `yaml:"pattern"`
	Recursive     bool          `yaml:"recursive"`
	CreateObjects bool          `yaml:"create_objects"`
	Logging       LoggingConfig `yaml:"logging"`
}

// LoggingConfig selects the logger provider and its options. Format applies
// to the gologger provider only.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		SourceDir: DefaultSourceDir,
		SpaceID:   DefaultSpaceID,
		Pattern:   DefaultPattern,
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// LoadFile overlays the YAML document at name onto base. Keys missing from
// the file keep their value from base.
func LoadFile(name string, base Config) (Config, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return base, fmt.Errorf("docmigrate config: read %s: %w", name, err)
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("docmigrate config: parse %s: %w", name, err)
	}
	return cfg, nil
}

// Validate performs consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.SourceDir) == "" {
		return ErrSourceDirRequired
	}
	if cfg.CreateObjects && strings.TrimSpace(cfg.SpaceID) == "" {
		return ErrSpaceIDRequired
	}
	if pattern := strings.TrimSpace(cfg.Pattern); pattern != "" {
		if _, err := path.Match(pattern, ""); err != nil {
			return fmt.Errorf("%w: %s", ErrPatternInvalid, pattern)
		}
	}

	provider := NormalizeProvider(cfg.Logging.Provider)
	if provider != "" && !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// NormalizeProvider lower-cases and trims a provider name. Empty means console.
func NormalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
