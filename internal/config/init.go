package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	frontMatter := true
	example := Config{
		Source: "docs",
		Dest:   "public",
		Layout: "templates/layout.tmpl",
		Assets: []string{"static/css"},
		Globals: map[string]any{
			"title":   "My Site",
			"siteUrl": "https://example.com",
		},
		Logging:     LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
		Concurrency: defaultConcurrency,
		Output: OutputConfig{
			Outline:          true,
			FrontMatter:      &frontMatter,
			OnMissingSortKey: MissingSkip,
			Order:            &OrderConfig{OrderBy: "date", Type: OrderTypeDate, Direction: DirectionDesc},
			Lists: []ListConfig{{
				Templates: []string{"templates/index.tmpl"},
				Paging:    "templates/index.tmpl",
				Folder:    "page",
				Size:      defaultPageSize,
			}},
			View:   &ViewConfig{Templates: []string{"templates/post.tmpl"}},
			Static: &StaticConfig{Templates: []string{"templates/about.tmpl"}},
			Feeds:  []FeedConfig{{Template: "templates/rss.tmpl", MaxItems: 20}},
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
