package normalization

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type direction string

const (
	asc  direction = "asc"
	desc direction = "desc"
)

func newDirections() *Normalizer[direction] {
	return NewNormalizer(map[string]direction{
		"asc":        asc,
		"ascending":  asc,
		"desc":       desc,
		"descending": desc,
	}, desc)
}

func TestNormalize_CaseAndWhitespaceInsensitive(t *testing.T) {
	n := newDirections()
	require.Equal(t, asc, n.Normalize("  ASC "))
	require.Equal(t, asc, n.Normalize("Ascending"))
	require.Equal(t, desc, n.Normalize("sideways"))
}

func TestLookup_EmptyIsDefaultUnknownIsError(t *testing.T) {
	n := newDirections()

	v, err := n.Lookup("")
	require.NoError(t, err)
	require.Equal(t, desc, v)

	v, err = n.Lookup("up")
	require.Error(t, err)
	require.Equal(t, desc, v)
	require.Contains(t, err.Error(), "ascending")
}

func TestValidKeys_SortedCopy(t *testing.T) {
	n := newDirections()
	keys := n.ValidKeys()
	require.Equal(t, []string{"asc", "ascending", "desc", "descending"}, keys)
	keys[0] = "mutated"
	require.Equal(t, "asc", n.ValidKeys()[0])
}
