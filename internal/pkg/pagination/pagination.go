package pagination

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Page is the listing envelope every paginated endpoint returns.
type Page struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
}

// Clamp normalizes 1-indexed page parameters. Zero or negative values fall
// back to defaults, per_page is capped at MaxPerPage.
func Clamp(page, perPage int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 || perPage > MaxPerPage {
		perPage = DefaultPerPage
	}
	return page, perPage
}

// Offset converts a 1-indexed page to a row offset.
func Offset(page, perPage int) int {
	return (page - 1) * perPage
}

// NewPage computes total_pages = ceil(total / per_page).
func NewPage(total, page, perPage int) Page {
	totalPages := 0
	if total > 0 {
		totalPages = (total + perPage - 1) / perPage
	}
	return Page{
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}
}
