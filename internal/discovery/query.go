// Package discovery turns a snapshot of project records plus a query
// descriptor into a filtered, ranked and paginated result set. Every stage
// is a pure function over an immutable snapshot; only Feed touches the
// record source.
package discovery

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	// All is the sentinel category/university value meaning "no filter".
	All = "All"
	// DefaultPageSize is the number of cards per discovery page.
	DefaultPageSize = 9
	// MaxPageSize caps caller-supplied page sizes.
	MaxPageSize = 60
)

// ErrUnknownSort is returned by QueryFrom for an unsupported sort mode.
var ErrUnknownSort = errors.New("unknown sort mode")

// SortMode selects the ranking strategy.
type SortMode string

const (
	SortRecent   SortMode = "recent"
	SortPopular  SortMode = "popular"
	SortTrending SortMode = "trending"
	SortViewed   SortMode = "viewed"
)

// SortModes lists the supported ranking strategies in display order.
var SortModes = []SortMode{SortRecent, SortPopular, SortTrending, SortViewed}

// Valid reports whether m is a known ranking strategy.
func (m SortMode) Valid() bool {
	return slices.Contains(SortModes, m)
}

// Criteria holds the user-selected predicates.
type Criteria struct {
	Search     string   `json:"search,omitempty"`
	Category   string   `json:"category,omitempty"`
	University string   `json:"university,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// ActiveCount is the number of active category, university and tag filters.
// Free-text search is not counted.
func (c Criteria) ActiveCount() int {
	n := len(c.Tags)
	if !isAll(c.Category) {
		n++
	}
	if !isAll(c.University) {
		n++
	}
	return n
}

// IsZero reports whether the criteria select every record.
func (c Criteria) IsZero() bool {
	return c.Search == "" && c.ActiveCount() == 0
}

func (c Criteria) clone() Criteria {
	c.Tags = slices.Clone(c.Tags)
	return c
}

func isAll(v string) bool {
	return v == "" || v == All
}

// Query is an immutable discovery request: criteria, ranking and page.
// The With* methods return modified copies; changing criteria or sort
// always resets the page to 1.
type Query struct {
	criteria Criteria
	sort     SortMode
	page     int
	pageSize int
}

// NewQuery returns the default query: no filters, most recent first, page 1.
func NewQuery() Query {
	return Query{
		criteria: Criteria{Category: All, University: All},
		sort:     SortRecent,
		page:     1,
		pageSize: DefaultPageSize,
	}
}

func (q Query) Criteria() Criteria { return q.criteria.clone() }
func (q Query) Sort() SortMode     { return q.sort }
func (q Query) Page() int          { return q.page }
func (q Query) PageSize() int      { return q.pageSize }

// WithCriteria replaces every predicate at once.
func (q Query) WithCriteria(c Criteria) Query {
	q.criteria = c.clone()
	q.page = 1
	return q
}

// WithSearch sets the free-text search.
func (q Query) WithSearch(text string) Query {
	q.criteria = q.criteria.clone()
	q.criteria.Search = text
	q.page = 1
	return q
}

// WithCategory sets the category filter; All clears it.
func (q Query) WithCategory(category string) Query {
	q.criteria = q.criteria.clone()
	q.criteria.Category = category
	q.page = 1
	return q
}

// WithUniversity sets the university filter; All clears it.
func (q Query) WithUniversity(university string) Query {
	q.criteria = q.criteria.clone()
	q.criteria.University = university
	q.page = 1
	return q
}

// WithTags replaces the selected tags.
func (q Query) WithTags(tags ...string) Query {
	q.criteria = q.criteria.clone()
	q.criteria.Tags = slices.Clone(tags)
	q.page = 1
	return q
}

// ToggleTag selects tag, or deselects it when already selected.
func (q Query) ToggleTag(tag string) Query {
	q.criteria = q.criteria.clone()
	if i := slices.Index(q.criteria.Tags, tag); i >= 0 {
		q.criteria.Tags = slices.Delete(q.criteria.Tags, i, i+1)
	} else {
		q.criteria.Tags = append(q.criteria.Tags, tag)
	}
	q.page = 1
	return q
}

// ClearFilters resets category, university and tags, keeping the search text.
func (q Query) ClearFilters() Query {
	q.criteria = Criteria{Search: q.criteria.Search, Category: All, University: All}
	q.page = 1
	return q
}

// WithSort sets the ranking strategy.
func (q Query) WithSort(mode SortMode) Query {
	q.sort = mode
	q.page = 1
	return q
}

// WithPageSize sets the page size. Values below 1 fall back to DefaultPageSize.
func (q Query) WithPageSize(size int) Query {
	if size < 1 {
		size = DefaultPageSize
	}
	q.pageSize = size
	q.page = 1
	return q
}

// WithPage moves to page; values below 1 are clipped to 1.
func (q Query) WithPage(page int) Query {
	q.page = max(page, 1)
	return q
}

// QueryFrom builds a query from caller-supplied parameters. An empty mode
// means SortRecent and size is capped at MaxPageSize. The page is applied
// last since every other change resets it.
func QueryFrom(c Criteria, mode SortMode, page, size int) (Query, error) {
	if mode == "" {
		mode = SortRecent
	}
	if !mode.Valid() {
		return Query{}, fmt.Errorf("%w %q", ErrUnknownSort, mode)
	}
	if isAll(c.Category) {
		c.Category = All
	}
	if isAll(c.University) {
		c.University = All
	}

	return NewQuery().
		WithPageSize(min(size, MaxPageSize)).
		WithCriteria(c).
		WithSort(mode).
		WithPage(page), nil
}

// ParseTags splits a comma separated tag list, dropping blanks.
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
