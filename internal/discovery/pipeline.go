package discovery

import "github.com/rpggio/showcase/internal/domain/project"

// Result is one page of discovery output.
type Result struct {
	Items []project.Project `json:"items"`
	Page  PageInfo          `json:"page"`
	// Total is the number of records left after filtering.
	Total         int      `json:"total"`
	ActiveFilters int      `json:"active_filters"`
	Sort          SortMode `json:"sort"`
	// SourceUnavailable distinguishes "unable to load" from "nothing matched".
	SourceUnavailable bool `json:"source_unavailable"`
}

// Run applies filter, sort and paginate to the snapshot, in that order.
func Run(snap Snapshot, q Query) Result {
	size := q.pageSize
	if size < 1 {
		size = DefaultPageSize
	}
	page := max(q.page, 1)

	filtered := Filter(snap.Projects, q.criteria)
	ranked := Sort(filtered, q.sort)

	return Result{
		Items:             Paginate(ranked, page, size),
		Page:              NewPageInfo(page, size, len(ranked)),
		Total:             len(ranked),
		ActiveFilters:     q.criteria.ActiveCount(),
		Sort:              q.sort,
		SourceUnavailable: snap.Unavailable(),
	}
}
