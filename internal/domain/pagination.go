package domain

// PaginationParams holds offset-based pagination parameters for list responses.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the 0-based index of the first item on the current page.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Window returns the [start, end) slice bounds of the current page within total items.
// A page past the end yields an empty window.
func (p PaginationParams) Window(total int) (start, end int) {
	start = min(p.Offset(), total)
	end = min(start+p.PageSize, total)
	if p.PageSize <= 0 {
		end = total
	}
	return start, end
}
