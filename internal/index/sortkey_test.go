package index

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/publisher/internal/config"
	"git.home.luguber.info/inful/publisher/internal/frontmatter"
	ierrors "git.home.luguber.info/inful/publisher/internal/index/errors"
)

func fieldsOf(kv ...any) frontmatter.Fields {
	var f frontmatter.Fields
	for i := 0; i+1 < len(kv); i += 2 {
		f.Set(kv[i].(string), kv[i+1])
	}
	return f
}

func TestDeriveSortKey_DateKeysFollowChronology(t *testing.T) {
	order := config.OrderConfig{OrderBy: "date", Type: config.OrderTypeDate}
	inputs := []any{
		"2023-12-31",
		"2024-01-01T10:00:00+02:00",
		"2024-01-01T09:30:00Z",
		"Feb 2, 2024",
		time.Date(1999, 5, 1, 0, 0, 0, 0, time.UTC),
		"2024-02-02 00:00:01",
	}

	type pair struct {
		t   time.Time
		key SortKey
	}
	var pairs []pair
	for _, in := range inputs {
		key, err := DeriveSortKey("docs/x.md", fieldsOf("date", in), order)
		require.NoError(t, err)
		tm, err := time.Parse(time.RFC3339, key.Text)
		require.NoError(t, err)
		pairs = append(pairs, pair{t: tm, key: key})
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].key.Compare(pairs[j].key) < 0 })
	for i := 1; i < len(pairs); i++ {
		require.False(t, pairs[i].t.Before(pairs[i-1].t), "key order must match chronological order")
	}
	require.Equal(t, "1999-05-01T00:00:00Z", pairs[0].key.Text)
}

func TestDeriveSortKey_Number(t *testing.T) {
	order := config.OrderConfig{OrderBy: "n", Type: config.OrderTypeNumber}

	k, err := DeriveSortKey("docs/x.md", fieldsOf("n", 42), order)
	require.NoError(t, err)
	require.Equal(t, SortKey{Kind: KeyNumber, Number: 42}, k)

	k2, err := DeriveSortKey("docs/y.md", fieldsOf("n", "9"), order)
	require.NoError(t, err)
	require.Negative(t, k2.Compare(k))

	_, err = DeriveSortKey("docs/z.md", fieldsOf("n", "abc"), order)
	require.ErrorIs(t, err, ierrors.ErrInvalidSortKey)
}

func TestDeriveSortKey_ZeroPaddedNumbersAreDecimal(t *testing.T) {
	order := config.OrderConfig{OrderBy: "episode", Type: config.OrderTypeNumber}
	for in, want := range map[string]int64{"07": 7, "08": 8, "010": 10, " 12 ": 12} {
		k, err := DeriveSortKey("docs/ep.md", fieldsOf("episode", in), order)
		require.NoError(t, err, in)
		require.Equal(t, SortKey{Kind: KeyNumber, Number: want}, k, in)
	}
}

func TestDeriveSortKey_StringUsesRawValue(t *testing.T) {
	k, err := DeriveSortKey("docs/x.md", fieldsOf("title", "Zebra"), config.OrderConfig{OrderBy: "title", Type: config.OrderTypeString})
	require.NoError(t, err)
	require.Equal(t, "Zebra", k.String())
}

func TestDeriveSortKey_DefaultUsesBaseName(t *testing.T) {
	k, err := DeriveSortKey("docs/posts/2024-hello.md", frontmatter.Fields{}, config.OrderConfig{})
	require.NoError(t, err)
	require.Equal(t, "2024-hello", k.Text)
}

func TestDeriveSortKey_MissingProperty(t *testing.T) {
	_, err := DeriveSortKey("docs/x.md", fieldsOf("title", "t"), config.OrderConfig{OrderBy: "date", Type: config.OrderTypeDate})
	require.ErrorIs(t, err, ierrors.ErrMissingSortKey)
}
