package config

import (
	"net/url"
	"strings"
	"time"

	derrors "git.home.luguber.info/inful/docrender/internal/errors"
	"git.home.luguber.info/inful/docrender/internal/markup"
)

// reservedCommonKeys are published by the site builder and cannot be set
// through the common map.
var reservedCommonKeys = []string{"Entity", "Site", "Namespaces", "Topics"}

// Validate checks a defaulted configuration.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Model) == "" {
		return derrors.ConfigRequired("model")
	}
	if _, err := markup.ParseFormat(cfg.Site.Format); err != nil {
		return derrors.ConfigInvalid("site.format", err.Error())
	}
	if cfg.Site.BaseURL != "" {
		if _, err := url.Parse(cfg.Site.BaseURL); err != nil {
			return derrors.ConfigInvalid("site.base_url", err.Error())
		}
	}
	if strings.TrimSpace(cfg.Output.Directory) == "" {
		return derrors.ConfigRequired("output.directory")
	}
	if d, err := time.ParseDuration(cfg.Watch.Debounce); err != nil || d < 0 {
		return derrors.ConfigInvalid("watch.debounce", "must be a non-negative duration such as 500ms")
	}
	for _, key := range reservedCommonKeys {
		if _, ok := cfg.Common[key]; ok {
			return derrors.ConfigInvalid("common."+key, "key is reserved")
		}
	}
	return nil
}
