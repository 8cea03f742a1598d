package index

import (
	"cmp"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cast"

	"git.home.luguber.info/inful/publisher/internal/config"
	"git.home.luguber.info/inful/publisher/internal/frontmatter"
	ierrors "git.home.luguber.info/inful/publisher/internal/index/errors"
)

// KeyKind selects the comparison semantics of a SortKey.
type KeyKind int

const (
	// KeyText compares lexicographically. Dates are stored as canonical text.
	KeyText KeyKind = iota
	KeyNumber
)

// SortKey is the comparable value documents are ordered by.
type SortKey struct {
	Kind   KeyKind
	Text   string
	Number int64
}

// Compare orders two keys ascending. Numeric keys sort before text keys.
func (k SortKey) Compare(o SortKey) int {
	if k.Kind != o.Kind {
		return cmp.Compare(o.Kind, k.Kind)
	}
	if k.Kind == KeyNumber {
		return cmp.Compare(k.Number, o.Number)
	}
	return strings.Compare(k.Text, o.Text)
}

func (k SortKey) String() string {
	if k.Kind == KeyNumber {
		return strconv.FormatInt(k.Number, 10)
	}
	return k.Text
}

// IsZero reports whether no key was derived.
func (k SortKey) IsZero() bool { return k == (SortKey{}) }

// DeriveSortKey computes the key of a document at sourcePath with the given fields.
func DeriveSortKey(sourcePath string, fields frontmatter.Fields, order config.OrderConfig) (SortKey, error) {
	var raw any
	if order.OrderBy != "" {
		v, ok := fields.Get(order.OrderBy)
		if !ok || v == nil {
			return SortKey{}, fmt.Errorf("%w: property %q absent in %s", ierrors.ErrMissingSortKey, order.OrderBy, sourcePath)
		}
		raw = v
	}

	switch order.Type {
	case config.OrderTypeString:
		s, err := cast.ToStringE(raw)
		if err != nil {
			return SortKey{}, fmt.Errorf("%w: %s: %w", ierrors.ErrInvalidSortKey, sourcePath, err)
		}
		return SortKey{Kind: KeyText, Text: s}, nil
	case config.OrderTypeNumber:
		n, err := parseNumber(raw)
		if err != nil {
			return SortKey{}, fmt.Errorf("%w: %v is not a number in %s: %w", ierrors.ErrInvalidSortKey, raw, sourcePath, err)
		}
		return SortKey{Kind: KeyNumber, Number: n}, nil
	case config.OrderTypeDate:
		t, err := parseDate(raw)
		if err != nil {
			return SortKey{}, fmt.Errorf("%w: %v is not a date in %s: %w", ierrors.ErrInvalidSortKey, raw, sourcePath, err)
		}
		return SortKey{Kind: KeyText, Text: CanonicalDate(t)}, nil
	default:
		base := path.Base(sourcePath)
		return SortKey{Kind: KeyText, Text: strings.TrimSuffix(base, path.Ext(base))}, nil
	}
}

// CanonicalDate formats t so that lexicographic order matches chronological order.
func CanonicalDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case string:
		return dateparse.ParseIn(strings.TrimSpace(d), time.UTC)
	default:
		return cast.ToTimeE(v)
	}
}

// parseNumber reads integers in base 10 so zero-padded values such as "08"
// keep their decimal meaning.
func parseNumber(v any) (int64, error) {
	if s, ok := v.(string); ok {
		return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	}
	return cast.ToInt64E(v)
}
