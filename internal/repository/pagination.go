package repository

// DefaultPerPage is the page size used when a caller does not specify
// one.
const DefaultPerPage = 10

// offsetFor converts a one-based page number into a row offset. Pages
// below one are clamped to the first page.
func offsetFor(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * perPage
}
