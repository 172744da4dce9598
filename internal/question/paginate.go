package question

import "strconv"

// ParsePage reads a 1-indexed page number. Absent, non-numeric and
// non-positive values fall back to the first page.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Paginate returns the items on the given page: the half-open range
// [(page-1)*size, page*size) clipped to len(items). Pages past the end are
// empty, never nil.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		return []T{}
	}
	if page < 1 {
		page = 1
	}
	pages := (len(items) + size - 1) / size
	if page > pages {
		return []T{}
	}
	start := (page - 1) * size
	end := min(start+size, len(items))
	return items[start:end]
}
