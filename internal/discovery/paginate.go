package discovery

import "github.com/rpggio/showcase/internal/domain/project"

// pageWindow is the maximum number of page links shown at once.
const pageWindow = 5

// Paginate returns records[(page-1)*size : page*size] clipped to bounds.
// Pages past the end yield an empty slice; page below 1 is treated as 1.
func Paginate(records []project.Project, page, size int) []project.Project {
	if size < 1 {
		size = DefaultPageSize
	}
	page = max(page, 1)
	if page > TotalPages(len(records), size) {
		return []project.Project{}
	}

	start := (page - 1) * size
	end := min(start+size, len(records))

	out := make([]project.Project, end-start)
	copy(out, records[start:end])
	return out
}

// TotalPages is ceil(total/size); zero items means zero pages.
func TotalPages(total, size int) int {
	if total <= 0 || size < 1 {
		return 0
	}
	return (total-1)/size + 1
}

// PageInfo is the navigation metadata for one page of results.
type PageInfo struct {
	Current    int   `json:"current"`
	Size       int   `json:"size"`
	TotalItems int   `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
	Start      int   `json:"start"`
	End        int   `json:"end"`
	Window     []int `json:"window"`
	// ShowControls is false when everything fits on one page.
	ShowControls bool `json:"show_controls"`
}

// NewPageInfo describes page current of total items split into pages of size.
// Start and End are the 1-based "showing start - end of total" bounds and are
// zero when the page is empty.
func NewPageInfo(current, size, total int) PageInfo {
	if size < 1 {
		size = DefaultPageSize
	}
	current = max(current, 1)
	pages := TotalPages(total, size)

	info := PageInfo{
		Current:      current,
		Size:         size,
		TotalItems:   max(total, 0),
		TotalPages:   pages,
		HasPrev:      current > 1 && pages > 0,
		HasNext:      current < pages,
		Window:       PageWindow(current, pages),
		ShowControls: pages > 1,
	}
	if current <= pages {
		info.Start = (current-1)*size + 1
		info.End = min(current*size, total)
	}
	return info
}

// PageWindow returns up to five consecutive page numbers starting two before
// current, shifted left when current is near the last page.
func PageWindow(current, pages int) []int {
	if pages <= 0 {
		return []int{}
	}
	current = min(current, pages)
	start := max(1, current-2)
	end := min(pages, start+pageWindow-1)
	if end-start < pageWindow-1 {
		start = max(1, end-pageWindow+1)
	}

	window := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		window = append(window, p)
	}
	return window
}
