package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docrender/internal/errors"
)

// Init writes an example configuration to path. An existing file is only
// replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return derrors.ConfigInvalid("path", "configuration file already exists: "+path+" (use --force to overwrite)")
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "check configuration file")
	}

	example := Config{
		Site: SiteConfig{
			Title:   "Acme API",
			BaseURL: "/",
			Format:  "html",
		},
		Model: "api.yaml",
		Templates: TemplatesConfig{
			Dir: "templates",
		},
		Topics: TopicsConfig{
			Dir:   "docs",
			Order: []string{"getting-started.md", "guides/configuration"},
		},
		Output: OutputConfig{
			Directory: "./site",
			Clean:     true,
		},
		Common: map[string]any{
			"Copyright": "${USER}",
		},
		Watch: WatchConfig{Debounce: defaultDebounce.String()},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return derrors.InternalError("marshal example configuration", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return derrors.OutputError("write configuration", err).WithContext("path", path)
	}
	return nil
}
