// Package listing holds the searchable, paginated collection shared by every
// list view.
package listing

import (
	"strings"

	"golang.org/x/text/cases"
)

// Matcher reports whether item matches the already-folded search term.
// Implementations should compare against Fold(field).
type Matcher[T any] func(item T, term string) bool

// Filter is an extra attribute predicate applied after the search term.
type Filter[T any] func(item T) bool

// PageResult is one page of a filtered view.
type PageResult[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

// Collection is an in-memory list with a search term, an optional attribute
// filter and a fixed page size. The filtered view is always a subsequence of
// the full collection, in the same order. Collection is not safe for
// concurrent use; callers that share one guard it themselves.
type Collection[T any] struct {
	items    []T
	filtered []T
	term     string
	match    Matcher[T]
	filter   Filter[T]
	page     int
	pageSize int
}

// New creates an empty collection. pageSize below 1 is treated as 1.
func New[T any](pageSize int, match Matcher[T]) *Collection[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Collection[T]{match: match, page: 1, pageSize: pageSize}
}

// Fold normalizes s for case-insensitive comparison.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// ContainsFold reports whether term (already folded) occurs in Fold(field).
func ContainsFold(field, term string) bool {
	return strings.Contains(Fold(field), term)
}

// Replace swaps the full collection and recomputes the filtered view with the
// current search term and filter. The current page is kept when it still
// exists in the new view, otherwise it goes back to 1.
func (c *Collection[T]) Replace(items []T) {
	page := c.page
	c.items = items
	c.refilter()
	c.SetPage(page)
}

// SetSearchTerm changes the search text and resets to page 1.
func (c *Collection[T]) SetSearchTerm(term string) {
	c.term = Fold(term)
	c.refilter()
}

// SearchTerm returns the folded search term.
func (c *Collection[T]) SearchTerm() string {
	return c.term
}

// SetFilter installs an attribute filter (nil clears it) and resets to page 1.
func (c *Collection[T]) SetFilter(f Filter[T]) {
	c.filter = f
	c.refilter()
}

func (c *Collection[T]) refilter() {
	out := make([]T, 0, len(c.items))
	for _, it := range c.items {
		if c.term != "" && c.match != nil && !c.match(it, c.term) {
			continue
		}
		if c.filter != nil && !c.filter(it) {
			continue
		}
		out = append(out, it)
	}
	c.filtered = out
	c.page = 1
}

// All returns the full collection.
func (c *Collection[T]) All() []T {
	return c.items
}

// Filtered returns the filtered view.
func (c *Collection[T]) Filtered() []T {
	return c.filtered
}

// Len is the size of the full collection.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// PageSize returns the fixed page size.
func (c *Collection[T]) PageSize() int {
	return c.pageSize
}

// TotalPages is ceil(len(filtered) / pageSize); zero for an empty view.
func (c *Collection[T]) TotalPages() int {
	return (len(c.filtered) + c.pageSize - 1) / c.pageSize
}

// CurrentPage returns the 1-based page index.
func (c *Collection[T]) CurrentPage() int {
	return c.page
}

// SetPage moves to page n when 1 <= n <= TotalPages. Anything else leaves the
// current page untouched; the return value reports whether it moved.
func (c *Collection[T]) SetPage(n int) bool {
	if n < 1 || n > c.TotalPages() {
		return false
	}
	c.page = n
	return true
}

// PageItems returns the items on the current page.
func (c *Collection[T]) PageItems() []T {
	start := (c.page - 1) * c.pageSize
	if start >= len(c.filtered) {
		return []T{}
	}
	end := start + c.pageSize
	if end > len(c.filtered) {
		end = len(c.filtered)
	}
	return c.filtered[start:end]
}

// Page bundles the current page with its counters.
func (c *Collection[T]) Page() PageResult[T] {
	return PageResult[T]{
		Items:      c.PageItems(),
		Page:       c.page,
		PageSize:   c.pageSize,
		TotalItems: len(c.filtered),
		TotalPages: c.TotalPages(),
	}
}

// PageNumbers returns 1..TotalPages for pagination controls.
func (c *Collection[T]) PageNumbers() []int {
	n := c.TotalPages()
	nums := make([]int, n)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}

// Clone returns an independent copy sharing the underlying item storage.
// Items are never mutated in place, so sharing the backing arrays is safe.
func (c *Collection[T]) Clone() *Collection[T] {
	cp := *c
	return &cp
}

// Map converts a page of T into a page of U with the same counters.
func Map[T, U any](p PageResult[T], fn func(T) U) PageResult[U] {
	items := make([]U, len(p.Items))
	for i, it := range p.Items {
		items[i] = fn(it)
	}
	return PageResult[U]{
		Items:      items,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}
}
