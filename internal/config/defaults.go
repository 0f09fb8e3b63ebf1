package config

import "time"

const (
	defaultOutputDir = "site"
	defaultDebounce  = 500 * time.Millisecond
)

func applyDefaults(cfg *Config) {
	if cfg.Site.Format == "" {
		cfg.Site.Format = "html"
	}
	if cfg.Site.Title == "" {
		cfg.Site.Title = "API Documentation"
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = defaultOutputDir
	}
	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = defaultDebounce.String()
	}
	if cfg.Topics.Order == nil {
		cfg.Topics.Order = []string{}
	}
	if cfg.Common == nil {
		cfg.Common = map[string]any{}
	}
}
