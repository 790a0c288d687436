package discovery

import (
	"cmp"
	"slices"

	"github.com/rpggio/showcase/internal/domain/project"
)

// TrendingScore is the linear popularity heuristic 2*likes + views.
// It is deliberately not time-decayed.
func TrendingScore(p project.Project) int64 {
	return 2*nonNegative(p.Stats.Likes) + nonNegative(p.Stats.Views)
}

// Sort returns a new slice ordered by mode, descending, with ties kept in
// input order. Unknown modes return an unchanged copy.
func Sort(records []project.Project, mode SortMode) []project.Project {
	out := slices.Clone(records)
	if out == nil {
		out = []project.Project{}
	}

	var key func(project.Project) int64
	switch mode {
	case SortRecent:
		slices.SortStableFunc(out, func(a, b project.Project) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
		return out
	case SortPopular:
		key = func(p project.Project) int64 { return nonNegative(p.Stats.Likes) }
	case SortTrending:
		key = TrendingScore
	case SortViewed:
		key = func(p project.Project) int64 { return nonNegative(p.Stats.Views) }
	default:
		return out
	}

	slices.SortStableFunc(out, func(a, b project.Project) int {
		return cmp.Compare(key(b), key(a))
	})
	return out
}

func nonNegative(v int64) int64 {
	return max(v, 0)
}
