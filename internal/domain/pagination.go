package domain

// DefaultPageSize is used when a list request does not specify a size.
const DefaultPageSize = 10

// Page holds offset-based pagination parameters for list queries.
// From is an offset in result units, not a page number. Size 0 means no limit.
type Page struct {
	From int
	Size int
}

// Unbounded reports whether the page selects every row.
func (p Page) Unbounded() bool {
	return p.Size <= 0
}

// Paginate slices items according to the page.
func Paginate[T any](items []T, p Page) []T {
	if p.From >= len(items) {
		return items[:0]
	}
	items = items[max(p.From, 0):]
	if !p.Unbounded() && len(items) > p.Size {
		items = items[:p.Size]
	}
	return items
}
