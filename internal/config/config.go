package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/journalsite/internal/foundation/errors"
	"git.home.luguber.info/inful/journalsite/internal/logfields"
)

// DefaultConfigFile is the configuration file looked up when --config is not given.
const DefaultConfigFile = "journalsite.yaml"

// Config represents the generator configuration.
type Config struct {
	Readme       string `yaml:"readme"`
	DaysDir      string `yaml:"days_dir"`
	Output       string `yaml:"output"`
	StaticDir    string `yaml:"static_dir,omitempty"`
	TemplatesDir string `yaml:"templates_dir,omitempty"`

	Site   SiteConfig   `yaml:"site"`
	Parse  ParseConfig  `yaml:"parse"`
	Scan   ScanConfig   `yaml:"scan"`
	Render RenderConfig `yaml:"render"`

	// UndocumentedDays decides what happens to day directories without a README entry.
	UndocumentedDays UndocumentedPolicy `yaml:"undocumented_days"`
	// FillRange includes every day 1..max_day even without README entry or directory.
	FillRange   bool   `yaml:"fill_range"`
	Prune       *bool  `yaml:"prune,omitempty"`
	VerifyLinks *bool  `yaml:"verify_links,omitempty"`
	GitInfo     bool   `yaml:"git_info"`
	MetricsFile string `yaml:"metrics_file,omitempty"`
}

// SiteConfig holds presentation values shared by every page.
type SiteConfig struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle,omitempty"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Links    []Link `yaml:"links,omitempty"`
}

// Link is an external link rendered in the index header.
type Link struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// ParseConfig controls README parsing.
type ParseConfig struct {
	MaxDay          int `yaml:"max_day"`
	MaxHeadingLevel int `yaml:"max_heading_level"`
}

// ScanConfig controls day directory scanning.
type ScanConfig struct {
	// DirPattern maps a directory name to a day number; the first capture group is the number.
	DirPattern        string            `yaml:"dir_pattern"`
	IncludeExtensions []string          `yaml:"include_extensions,omitempty"`
	Languages         map[string]string `yaml:"languages,omitempty"`
	MaxFileBytes      int64             `yaml:"max_file_bytes"`
}

// RenderConfig controls page rendering.
type RenderConfig struct {
	PreviewLength int         `yaml:"preview_length"`
	Highlighter   Highlighter `yaml:"highlighter"`
	ChromaStyle   string      `yaml:"chroma_style,omitempty"`
}

// PruneEnabled reports whether stale day pages are removed (default true).
func (c *Config) PruneEnabled() bool {
	return c.Prune == nil || *c.Prune
}

// VerifyLinksEnabled reports whether links are verified after a build (default true).
func (c *Config) VerifyLinksEnabled() bool {
	return c.VerifyLinks == nil || *c.VerifyLinks
}

// Load reads configuration from configPath. A missing file is not an error
// unless required is set; defaults and environment overrides always apply.
func Load(configPath string, required bool) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		slog.Debug("No .env file loaded", logfields.Error(err))
	}

	cfg := &Config{}
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse configuration").
				Fatal().
				WithContext("path", configPath).
				Build()
		}
		slog.Debug("Loaded configuration", logfields.Path(configPath))
	case os.IsNotExist(err) && !required:
		slog.Debug("Configuration file not found, using defaults", logfields.Path(configPath))
	case os.IsNotExist(err):
		return nil, ferrors.NotFoundError("configuration file not found").
			WithContext("path", configPath).
			Build()
	default:
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read configuration").
			Fatal().
			WithContext("path", configPath).
			Build()
	}

	applyEnvOverrides(cfg)
	ApplyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return out, nil
}

// NormalizeExtension lowercases ext and ensures a leading dot.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}
