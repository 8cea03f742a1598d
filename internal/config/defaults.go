package config

const (
	defaultPageSize    = 10
	defaultConcurrency = 8
)

// applyDefaults fills unset values after normalization.
func applyDefaults(c *Config) {
	if c.Concurrency == 0 {
		c.Concurrency = defaultConcurrency
	}
	if c.Logging.Level == "" {
		c.Logging.Level = LogLevelInfo
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatText
	}
	if c.Output.OnMissingSortKey == "" {
		c.Output.OnMissingSortKey = MissingSkip
	}
	if c.Output.FrontMatter == nil {
		on := true
		c.Output.FrontMatter = &on
	}
	if c.Output.List != nil {
		listDefaults(c.Output.List)
	}
	for i := range c.Output.Lists {
		listDefaults(&c.Output.Lists[i])
	}
	if p := c.Output.Podcast; p != nil && p.Size <= 0 {
		p.Size = defaultPageSize
	}
	if c.Notify.NATS != nil && c.Notify.NATS.Subject == "" {
		c.Notify.NATS.Subject = "publisher.runs"
	}
}

func listDefaults(l *ListConfig) {
	if l.Size <= 0 {
		l.Size = defaultPageSize
	}
	if l.Skip < 0 {
		l.Skip = 0
	}
}
