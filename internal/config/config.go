package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the publisher configuration file format.
type Config struct {
	// Prefix is the absolute root all other paths are relative to. Empty means the
	// directory containing the configuration file.
	Prefix      string         `yaml:"prefix,omitempty"`
	Source      string         `yaml:"source"`
	Dest        string         `yaml:"dest"`
	Layout      string         `yaml:"layout,omitempty"`
	Assets      []string       `yaml:"assets,omitempty"`
	Exclude     []string       `yaml:"exclude,omitempty"`
	Globals     map[string]any `yaml:"globals,omitempty"`
	Logging     LoggingConfig  `yaml:"logging,omitempty"`
	Concurrency int            `yaml:"concurrency,omitempty"`
	Store       string         `yaml:"store,omitempty"`
	Notify      NotifyConfig   `yaml:"notify,omitempty"`
	Output      OutputConfig   `yaml:"output"`
}

// LoggingConfig selects slog level and handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// NotifyConfig configures run report publication.
type NotifyConfig struct {
	NATS *NATSConfig `yaml:"nats,omitempty"`
}

// NATSConfig is the NATS subject the run report is published to.
type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// OrderConfig describes how the document index derives and compares sort keys.
type OrderConfig struct {
	OrderBy   string    `yaml:"orderBy,omitempty"`
	Type      OrderType `yaml:"type,omitempty"`
	Direction Direction `yaml:"direction,omitempty"`
}

// OutputConfig enumerates every artifact kind the publisher can emit.
type OutputConfig struct {
	Outline          bool           `yaml:"outline,omitempty"`
	IncludeExtension bool           `yaml:"includeExtension,omitempty"`
	FrontMatter      *bool          `yaml:"frontMatter,omitempty"`
	OnMissingSortKey MissingPolicy  `yaml:"onMissingSortKey,omitempty"`
	Order            *OrderConfig   `yaml:"order,omitempty"`
	List             *ListConfig    `yaml:"list,omitempty"`
	Lists            []ListConfig   `yaml:"lists,omitempty"`
	View             *ViewConfig    `yaml:"view,omitempty"`
	Static           *StaticConfig  `yaml:"static,omitempty"`
	RSS              string         `yaml:"rss,omitempty"`
	Feeds            []FeedConfig   `yaml:"feeds,omitempty"`
	Podcast          *PodcastConfig `yaml:"podcast,omitempty"`
}

// Filter restricts a document selection to those whose front matter value at
// Property contains Key (case-insensitive).
type Filter struct {
	Property string `yaml:"property,omitempty"`
	Key      string `yaml:"key,omitempty"`
}

// ListConfig is a set of templates sharing one (optionally paginated) document collection.
type ListConfig struct {
	Filter    `yaml:",inline"`
	Templates []string     `yaml:"templates"`
	Paging    string       `yaml:"paging,omitempty"`
	Folder    string       `yaml:"folder,omitempty"`
	Size      int          `yaml:"size,omitempty"`
	Skip      int          `yaml:"skip,omitempty"`
	Order     *OrderConfig `yaml:"order,omitempty"`
}

// ViewConfig renders every selected document through each template.
type ViewConfig struct {
	Filter    `yaml:",inline"`
	Templates []string `yaml:"templates"`
}

// StaticConfig renders templates that do not depend on documents.
type StaticConfig struct {
	Templates []string `yaml:"templates"`
}

// FeedConfig renders one feed file. MaxItems caps the feed from the front;
// 0 keeps every item.
type FeedConfig struct {
	Filter   `yaml:",inline"`
	Template string       `yaml:"template"`
	MaxItems int          `yaml:"maxItems,omitempty"`
	Folder   string       `yaml:"folder,omitempty"`
	Order    *OrderConfig `yaml:"order,omitempty"`
}

// PodcastConfig is a filtered feed plus an optional paginated episode list.
// MaxItems behaves as in FeedConfig.
type PodcastConfig struct {
	Filter    `yaml:",inline"`
	Template  string       `yaml:"template"`
	MaxItems  int          `yaml:"maxItems,omitempty"`
	Folder    string       `yaml:"folder,omitempty"`
	Templates []string     `yaml:"templates,omitempty"`
	Paging    string       `yaml:"paging,omitempty"`
	Size      int          `yaml:"size,omitempty"`
	Skip      int          `yaml:"skip,omitempty"`
	Order     *OrderConfig `yaml:"order,omitempty"`
}

// Feed returns the feed half of the podcast.
func (p *PodcastConfig) Feed() FeedConfig {
	return FeedConfig{Filter: p.Filter, Template: p.Template, MaxItems: p.MaxItems, Order: p.Order}
}

// EpisodeList returns the paginated list half of the podcast, or nil when no
// folder or templates are configured.
func (p *PodcastConfig) EpisodeList() *ListConfig {
	if p == nil || p.Folder == "" || len(p.Templates) == 0 {
		return nil
	}
	return &ListConfig{
		Filter:    p.Filter,
		Templates: p.Templates,
		Paging:    p.Paging,
		Folder:    p.Folder,
		Size:      p.Size,
		Skip:      p.Skip,
		Order:     p.Order,
	}
}

// AllLists returns output.list followed by output.lists.
func (o *OutputConfig) AllLists() []ListConfig {
	var out []ListConfig
	if o.List != nil {
		out = append(out, *o.List)
	}
	return append(out, o.Lists...)
}

// AllFeeds returns the legacy output.rss shorthand followed by output.feeds.
func (o *OutputConfig) AllFeeds() []FeedConfig {
	var out []FeedConfig
	if o.RSS != "" {
		out = append(out, FeedConfig{Template: o.RSS})
	}
	return append(out, o.Feeds...)
}

// UsesFrontMatter reports whether the document index is built (default true).
func (o *OutputConfig) UsesFrontMatter() bool {
	return o.FrontMatter == nil || *o.FrontMatter
}

// IndexOrder resolves the order used to build the index: output.order, then
// output.list.order, then the first ordered entry of output.lists. An unset
// direction resolves to descending.
func (o *OutputConfig) IndexOrder() OrderConfig {
	var order OrderConfig
	switch {
	case o.Order != nil:
		order = *o.Order
	case o.List != nil && o.List.Order != nil:
		order = *o.List.Order
	default:
		for _, l := range o.Lists {
			if l.Order != nil {
				order = *l.Order
				break
			}
		}
	}
	if order.Direction == "" {
		order.Direction = DirectionDesc
	}
	return order
}

// RequestedDirection returns the direction configured for an artifact, else the
// one configured on output.order. Empty means none was asked for and the index
// direction applies.
func (o *OutputConfig) RequestedDirection(artifact *OrderConfig) Direction {
	if artifact != nil && artifact.Direction != "" {
		return artifact.Direction
	}
	if o.Order != nil {
		return o.Order.Direction
	}
	return ""
}

// SourceDir returns the absolute source directory.
func (c *Config) SourceDir() string { return filepath.Join(c.Prefix, c.Source) }

// DestDir returns the absolute destination directory.
func (c *Config) DestDir() string { return filepath.Join(c.Prefix, c.Dest) }

// Abs resolves a configured path relative to the prefix.
func (c *Config) Abs(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Prefix, filepath.FromSlash(p))
}

// Load reads, normalizes, defaults and validates a configuration file.
func Load(configPath string) (*Config, *NormalizationResult, error) {
	loadEnvFiles()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("configuration file not found: %s", configPath)
		}
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, nil, err
	}
	if cfg.Prefix == "" {
		abs, aerr := filepath.Abs(filepath.Dir(configPath))
		if aerr != nil {
			return nil, nil, fmt.Errorf("resolve prefix: %w", aerr)
		}
		cfg.Prefix = abs
	}
	return Finalize(cfg)
}

// Parse unmarshals YAML without normalization or validation.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Finalize runs normalization, defaults and validation on a parsed config.
func Finalize(cfg *Config) (*Config, *NormalizationResult, error) {
	res, err := NormalizeConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("normalize: %w", err)
	}
	applyDefaults(cfg)
	if err := ValidateConfig(cfg); err != nil {
		return nil, res, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, res, nil
}

// loadEnvFiles loads .env and .env.local when present. Existing variables win.
func loadEnvFiles() {
	for _, p := range []string{".env", ".env.local"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
		}
	}
}
