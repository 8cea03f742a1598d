// Package paging partitions ordered collections into numbered pages.
package paging

// Page is one pagination unit. Number is 1-based; Prev and Next are zero when
// there is no neighbouring page.
type Page[T any] struct {
	Items  []T
	Number int
	Total  int
	Prev   int
	Next   int
}

// First reports whether p is the canonical (un-suffixed) page.
func (p Page[T]) First() bool { return p.Number == 1 }

// Paginate drops the first skip items and splits the rest into pages of size.
// It always returns at least one page, so an empty collection yields a single
// empty page. A size below 1 puts everything on one page.
func Paginate[T any](items []T, size, skip int) []Page[T] {
	effective := tail(items, skip)
	if size < 1 {
		size = max(len(effective), 1)
	}

	total := (len(effective) + size - 1) / size
	total = max(total, 1)

	pages := make([]Page[T], 0, total)
	for n := 1; n <= total; n++ {
		start := (n - 1) * size
		end := min(start+size, len(effective))
		p := Page[T]{Items: effective[start:end], Number: n, Total: total}
		if n > 1 {
			p.Prev = n - 1
		}
		if n < total {
			p.Next = n + 1
		}
		pages = append(pages, p)
	}
	return pages
}

// Plan returns the pages a template renders. The paging template gets every
// page; its siblings render the first page only, with Total forced to 1.
func Plan[T any](items []T, size, skip int, paging bool) []Page[T] {
	pages := Paginate(items, size, skip)
	if paging {
		return pages
	}
	first := pages[0]
	first.Total = 1
	first.Next = 0
	return []Page[T]{first}
}

func tail[T any](items []T, skip int) []T {
	if skip <= 0 {
		return items
	}
	if skip >= len(items) {
		return items[:0]
	}
	return items[skip:]
}
