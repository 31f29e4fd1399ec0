// Package pagination splits a list into fixed-size pages and tracks which
// page a rendered message is showing.
package pagination

import "fmt"

const DefaultPageSize = 10

// Paginate splits items into pages of at most size items, preserving order.
func Paginate[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		pages = append(pages, items[start:end])
	}
	return pages
}

// Cursor is a page index over a fixed snapshot of items. Callers must not
// build a cursor over an empty list; show an empty-state message instead.
type Cursor[T any] struct {
	Items   []T `json:"items"`
	Size    int `json:"size"`
	Current int `json:"index"`
}

func New[T any](items []T, size int) *Cursor[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Cursor[T]{Items: items, Size: size}
}

func (c *Cursor[T]) PageCount() int {
	return (len(c.Items) + c.Size - 1) / c.Size
}

func (c *Cursor[T]) Index() int {
	return c.Current
}

// Paged reports whether navigation controls are needed at all.
func (c *Cursor[T]) Paged() bool {
	return c.PageCount() > 1
}

// Advance moves delta pages. Moving past either end is a no-op; the return
// value says whether the index changed.
func (c *Cursor[T]) Advance(delta int) bool {
	next := c.Current + delta
	if delta == 0 || next < 0 || next >= c.PageCount() {
		return false
	}
	c.Current = next
	return true
}

// Page returns the items on the current page.
func (c *Cursor[T]) Page() []T {
	return c.PageAt(c.Current)
}

// PageAt returns the items on page i, or nil when i is out of range.
func (c *Cursor[T]) PageAt(i int) []T {
	if i < 0 || i >= c.PageCount() {
		return nil
	}
	start := i * c.Size
	return c.Items[start:min(start+c.Size, len(c.Items))]
}

// Number is the 1-based position of the i-th item on the current page within
// the whole list.
func (c *Cursor[T]) Number(i int) int {
	return i + 1 + c.Current*c.Size
}

// Label is the footer text, e.g. "Page 2/3".
func (c *Cursor[T]) Label() string {
	return fmt.Sprintf("Page %d/%d", c.Current+1, c.PageCount())
}
