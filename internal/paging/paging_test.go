package paging

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPaginate_CountsAndLinks(t *testing.T) {
	pages := Paginate(seq(5), 2, 0)
	require.Len(t, pages, 3)

	require.Equal(t, []int{0, 1}, pages[0].Items)
	require.Equal(t, 0, pages[0].Prev)
	require.Equal(t, 2, pages[0].Next)
	require.True(t, pages[0].First())

	require.Equal(t, 1, pages[1].Prev)
	require.Equal(t, 3, pages[1].Next)

	require.Equal(t, []int{4}, pages[2].Items)
	require.Equal(t, 2, pages[2].Prev)
	require.Equal(t, 0, pages[2].Next)
	for _, p := range pages {
		require.Equal(t, 3, p.Total)
	}
}

func TestPaginate_EmptyYieldsOnePage(t *testing.T) {
	pages := Paginate([]string{}, 10, 0)
	require.Len(t, pages, 1)
	require.Empty(t, pages[0].Items)
	require.Equal(t, 1, pages[0].Total)
	require.Zero(t, pages[0].Prev)
	require.Zero(t, pages[0].Next)

	skipped := Paginate(seq(3), 2, 10)
	require.Len(t, skipped, 1)
	require.Empty(t, skipped[0].Items)
}

func TestPaginate_TotalAndSumProperty(t *testing.T) {
	for n := 0; n <= 12; n++ {
		for size := 1; size <= 5; size++ {
			for skip := 0; skip <= 14; skip++ {
				pages := Paginate(seq(n), size, skip)
				require.GreaterOrEqual(t, len(pages), 1)

				sum := 0
				for i, p := range pages {
					require.Equal(t, i+1, p.Number)
					require.LessOrEqual(t, len(p.Items), size)
					sum += len(p.Items)
				}
				require.Equal(t, max(0, n-skip), sum, "n=%d size=%d skip=%d", n, size, skip)
			}
		}
	}
}

func TestPaginate_SkipOffsetsFirstPage(t *testing.T) {
	pages := Paginate(seq(6), 2, 3)
	require.Len(t, pages, 2)
	require.Equal(t, []int{3, 4}, pages[0].Items)
	require.Equal(t, []int{5}, pages[1].Items)
}

func TestPlan_NonPagingTemplateIsSinglePage(t *testing.T) {
	pages := Plan(seq(5), 2, 0, false)
	require.Len(t, pages, 1)
	require.Equal(t, 1, pages[0].Total)
	require.Zero(t, pages[0].Next)
	require.Equal(t, []int{0, 1}, pages[0].Items)

	require.Len(t, Plan(seq(5), 2, 0, true), 3)
}
