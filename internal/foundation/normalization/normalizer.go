// Package normalization maps loosely written configuration strings onto typed enumerations.
package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// Normalizer maps case-insensitive, whitespace-tolerant strings to enum values.
type Normalizer[T comparable] struct {
	values       map[string]T
	defaultValue T
	validKeys    []string
}

// NewNormalizer creates a normalizer from alias -> value pairs. Several aliases may
// point at the same value.
func NewNormalizer[T comparable](values map[string]T, defaultValue T) *Normalizer[T] {
	normalized := make(map[string]T, len(values))
	keys := make([]string, 0, len(values))
	for k, v := range values {
		nk := clean(k)
		normalized[nk] = v
		keys = append(keys, nk)
	}
	sort.Strings(keys)
	return &Normalizer[T]{values: normalized, defaultValue: defaultValue, validKeys: keys}
}

// Normalize returns the enum value for raw, or the default when raw is unknown or empty.
func (n *Normalizer[T]) Normalize(raw string) T {
	if v, ok := n.values[clean(raw)]; ok {
		return v
	}
	return n.defaultValue
}

// Lookup returns the value for raw. Empty input resolves to the default; unknown
// input returns the default and an error naming the accepted spellings.
func (n *Normalizer[T]) Lookup(raw string) (T, error) {
	c := clean(raw)
	if c == "" {
		return n.defaultValue, nil
	}
	if v, ok := n.values[c]; ok {
		return v, nil
	}
	return n.defaultValue, fmt.Errorf("invalid value %q, valid options: %v", raw, n.validKeys)
}

// ValidKeys returns all accepted spellings, sorted.
func (n *Normalizer[T]) ValidKeys() []string {
	out := make([]string, len(n.validKeys))
	copy(out, n.validKeys)
	return out
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
