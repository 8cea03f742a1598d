package config

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidateConfig validates the complete configuration after defaults were applied.
func ValidateConfig(cfg *Config) error {
	return cfg.Validate()
}

// Validate validates the top-level configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Source, validation.Required),
		validation.Field(&c.Dest, validation.Required),
		validation.Field(&c.Concurrency, validation.Required, validation.Min(1)),
		validation.Field(&c.Logging),
		validation.Field(&c.Notify),
		validation.Field(&c.Output),
	)
}

// Validate validates the logging configuration.
func (c LoggingConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Level, validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError)),
		validation.Field(&c.Format, validation.In(LogFormatJSON, LogFormatText)),
	)
}

// Validate validates notification targets.
func (c NotifyConfig) Validate() error {
	return validation.ValidateStruct(&c, validation.Field(&c.NATS))
}

// Validate validates the NATS target.
func (c NATSConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.URL, validation.Required),
		validation.Field(&c.Subject, validation.Required),
	)
}

// Validate validates every configured artifact.
func (c OutputConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.OnMissingSortKey, validation.In(MissingSkip, MissingAbort)),
		validation.Field(&c.Order),
		validation.Field(&c.List),
		validation.Field(&c.Lists),
		validation.Field(&c.View),
		validation.Field(&c.Static),
		validation.Field(&c.Feeds),
		validation.Field(&c.Podcast),
	)
}

// Validate validates an order specification.
func (c OrderConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Type, validation.In(OrderTypeString, OrderTypeNumber, OrderTypeDate)),
		validation.Field(&c.Direction, validation.In(DirectionAsc, DirectionDesc)),
		validation.Field(&c.OrderBy, validation.When(c.Type != OrderTypeFilename, validation.Required)),
	)
}

// Validate requires a key whenever a filter property is named.
func (c Filter) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Key, validation.When(c.Property != "", validation.Required)),
	)
}

// Validate validates a list specification.
func (c ListConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Filter),
		validation.Field(&c.Templates, validation.Required),
		validation.Field(&c.Paging, validation.In(anyOf(c.Templates)...).Error("must be one of the list templates")),
		validation.Field(&c.Size, validation.Min(1)),
		validation.Field(&c.Skip, validation.Min(0)),
		validation.Field(&c.Order),
	)
}

// Validate validates a view specification.
func (c ViewConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Filter),
		validation.Field(&c.Templates, validation.Required),
	)
}

// Validate validates a static specification.
func (c StaticConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Templates, validation.Required),
	)
}

// Validate validates a feed specification.
func (c FeedConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Filter),
		validation.Field(&c.Template, validation.Required),
		validation.Field(&c.MaxItems, validation.Min(0)),
		validation.Field(&c.Order),
	)
}

// Validate validates a podcast specification.
func (c PodcastConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Filter),
		validation.Field(&c.Template, validation.Required),
		validation.Field(&c.MaxItems, validation.Min(0)),
		validation.Field(&c.Paging, validation.In(anyOf(c.Templates)...).Error("must be one of the podcast templates")),
		validation.Field(&c.Size, validation.Min(1)),
		validation.Field(&c.Order),
	)
}

func anyOf(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
