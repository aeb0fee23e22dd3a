package domain

// PaginationParams selects one page of an ordered list. A zero PageSize disables paging.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Window returns the [start, end) bounds of the page within a list of n items.
// Pages past the end yield an empty window.
func (p PaginationParams) Window(n int) (start, end int) {
	if p.PageSize <= 0 {
		return 0, n
	}
	page := max(p.Page, 1)
	start = min((page-1)*p.PageSize, n)
	end = min(start+p.PageSize, n)
	return start, end
}
