// Package config loads the DocRender site configuration.
//
// The configuration is a YAML file. Environment variables referenced as
// ${VAR} are expanded before parsing, and .env.local / .env files in the
// working directory are loaded first without overriding the process
// environment. Relative paths are resolved against the configuration file's
// directory.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docrender/internal/errors"
	"git.home.luguber.info/inful/docrender/internal/markup"
)

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "docrender.yaml"

// Config is the site configuration.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Model     string          `yaml:"model"`
	Templates TemplatesConfig `yaml:"templates,omitempty"`
	Topics    TopicsConfig    `yaml:"topics,omitempty"`
	Output    OutputConfig    `yaml:"output"`
	// Common is published to every page template next to the site keys.
	Common  map[string]any `yaml:"common,omitempty"`
	Metrics MetricsConfig  `yaml:"metrics,omitempty"`
	Watch   WatchConfig    `yaml:"watch,omitempty"`

	// BaseDir is the directory relative paths resolve against.
	BaseDir string `yaml:"-"`
}

type SiteConfig struct {
	Title   string `yaml:"title"`
	BaseURL string `yaml:"base_url,omitempty"`
	// Format is "html" (default) or "markdown".
	Format string `yaml:"format,omitempty"`
	// InlineMembers renders type pages with all members inline instead of
	// one page per member.
	InlineMembers bool `yaml:"inline_members,omitempty"`
}

type TemplatesConfig struct {
	// Dir holds <template-name>.tmpl files overriding the built-in templates.
	// Other *.tmpl files are loaded as partials.
	Dir string `yaml:"dir,omitempty"`
}

type TopicsConfig struct {
	Dir string `yaml:"dir,omitempty"`
	// Order lists topic paths (or path suffixes) to put first, in order.
	Order []string `yaml:"order,omitempty"`
}

type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean,omitempty"`
	// ContinueOnError keeps building after a page fails.
	ContinueOnError bool `yaml:"continue_on_error,omitempty"`
}

type MetricsConfig struct {
	// Textfile is where Prometheus metrics are written after each build.
	Textfile string `yaml:"textfile,omitempty"`
	// Listen serves /metrics on this address while watching.
	Listen string `yaml:"listen,omitempty"`
}

type WatchConfig struct {
	Debounce string `yaml:"debounce,omitempty"`
}

// Load reads, defaults and validates the configuration at path.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	// #nosec G304 -- the configuration path is chosen by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, derrors.ConfigNotFound(path)
		}
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "read configuration").
			WithContext("path", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, derrors.InternalError("resolve configuration directory", err)
	}
	cfg.BaseDir = abs
	return cfg, nil
}

// Parse decodes configuration YAML, expanding environment variables first,
// then applies defaults and validates. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader([]byte(os.ExpandEnv(string(data)))))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "parse configuration")
	}
	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadEnvFiles loads .env.local then .env. Variables already set win, so
// .env.local overrides .env.
func loadEnvFiles() {
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err == nil {
			slog.Debug("Loaded environment file", "path", name)
		}
	}
}

// Format returns the page output format.
func (c *Config) Format() markup.Format {
	f, err := markup.ParseFormat(c.Site.Format)
	if err != nil {
		return markup.FormatHTML
	}
	return f
}

// DebounceDuration returns the watch debounce interval.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return defaultDebounce
	}
	return d
}

// Resolve makes p absolute against BaseDir. Empty paths stay empty.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}
