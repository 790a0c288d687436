package project

import (
	"cmp"
	"slices"
	"strings"
)

// PortfolioSort orders the projects on a creator's profile page.
type PortfolioSort string

const (
	PortfolioRecent       PortfolioSort = "recent"
	PortfolioPopular      PortfolioSort = "popular"
	PortfolioViews        PortfolioSort = "views"
	PortfolioAlphabetical PortfolioSort = "alphabetical"
)

// SortPortfolio returns a sorted copy of projects. Unknown modes keep the input order.
func SortPortfolio(projects []Project, mode PortfolioSort) []Project {
	out := slices.Clone(projects)
	switch mode {
	case PortfolioRecent:
		slices.SortStableFunc(out, func(a, b Project) int { return b.CreatedAt.Compare(a.CreatedAt) })
	case PortfolioPopular:
		slices.SortStableFunc(out, func(a, b Project) int { return cmp.Compare(b.Stats.Likes, a.Stats.Likes) })
	case PortfolioViews:
		slices.SortStableFunc(out, func(a, b Project) int { return cmp.Compare(b.Stats.Views, a.Stats.Views) })
	case PortfolioAlphabetical:
		slices.SortStableFunc(out, func(a, b Project) int {
			return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		})
	}
	return out
}
