package query

// Direction represents ORDER BY direction.
type Direction int

const (
	// Asc represents ascending order.
	Asc Direction = iota
	// Desc represents descending order.
	Desc
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// Apply orients a three-way comparison result for this direction.
func (d Direction) Apply(cmp int) int {
	if d == Desc {
		return -cmp
	}
	return cmp
}

// PageCount returns ceil(total/size). Zero items means zero pages.
func PageCount(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// ClampPage constrains a 1-indexed page number to [1, max(1, PageCount)].
func ClampPage(page, total, size int) int {
	last := PageCount(total, size)
	if last < 1 {
		last = 1
	}
	switch {
	case page < 1:
		return 1
	case page > last:
		return last
	default:
		return page
	}
}

// Bounds returns the half-open index range [start, end) of a 1-indexed page.
// Pages outside the data yield an empty range.
func Bounds(page, size, total int) (start, end int) {
	if page < 1 || size <= 0 {
		return 0, 0
	}
	start = (page - 1) * size
	if start >= total {
		return 0, 0
	}
	end = start + size
	if end > total {
		end = total
	}
	return start, end
}

// Page returns a copy of the items on the given 1-indexed page.
func Page[T any](items []T, page, size int) []T {
	start, end := Bounds(page, size, len(items))
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
