package config

import (
	"fmt"
	"strings"
)

// NormalizationResult captures adjustments and warnings from the normalization pass.
type NormalizationResult struct{ Warnings []string }

// NormalizeConfig canonicalizes enumerations and bounds before defaults are applied.
// Unknown values are replaced by their defaults and reported as warnings.
func NormalizeConfig(c *Config) (*NormalizationResult, error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}
	res := &NormalizationResult{}

	c.Logging.Level = normalizeEnum(res, "logging.level", c.Logging.Level, logLevelNormalizer.Lookup)
	c.Logging.Format = normalizeEnum(res, "logging.format", c.Logging.Format, logFormatNormalizer.Lookup)
	c.Output.OnMissingSortKey = normalizeEnum(res, "output.onMissingSortKey", c.Output.OnMissingSortKey, missingPolicyNormalizer.Lookup)

	normalizeOrder(res, "output.order", c.Output.Order)
	if c.Output.List != nil {
		normalizeOrder(res, "output.list.order", c.Output.List.Order)
	}
	for i := range c.Output.Lists {
		normalizeOrder(res, fmt.Sprintf("output.lists[%d].order", i), c.Output.Lists[i].Order)
	}
	for i := range c.Output.Feeds {
		normalizeOrder(res, fmt.Sprintf("output.feeds[%d].order", i), c.Output.Feeds[i].Order)
	}
	if c.Output.Podcast != nil {
		normalizeOrder(res, "output.podcast.order", c.Output.Podcast.Order)
	}

	if c.Concurrency < 0 {
		res.Warnings = append(res.Warnings, warnChanged("concurrency", c.Concurrency, 0))
		c.Concurrency = 0
	}
	c.Source = strings.Trim(strings.TrimSpace(c.Source), "/")
	c.Dest = strings.Trim(strings.TrimSpace(c.Dest), "/")
	return res, nil
}

func normalizeOrder(res *NormalizationResult, field string, o *OrderConfig) {
	if o == nil {
		return
	}
	o.Type = normalizeEnum(res, field+".type", o.Type, orderTypeNormalizer.Lookup)
	// Direction stays empty when unset so per-artifact overrides can fall through.
	if strings.TrimSpace(string(o.Direction)) != "" {
		o.Direction = normalizeEnum(res, field+".direction", o.Direction, directionNormalizer.Lookup)
	}
}

func normalizeEnum[T ~string](res *NormalizationResult, field string, raw T, lookup func(string) (T, error)) T {
	v, err := lookup(string(raw))
	if err != nil {
		res.Warnings = append(res.Warnings, warnUnknown(field, string(raw), string(v)))
		return v
	}
	if strings.TrimSpace(string(raw)) != "" && v != raw {
		res.Warnings = append(res.Warnings, warnChanged(field, raw, v))
	}
	return v
}

func warnChanged(field string, from, to any) string {
	return fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to)
}

func warnUnknown(field, value, def string) string {
	if def == "" {
		def = "<filename>"
	}
	return fmt.Sprintf("unknown %s '%s', defaulting to %s", field, value, def)
}
