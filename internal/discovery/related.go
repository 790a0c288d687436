package discovery

import (
	"cmp"
	"slices"

	"github.com/rpggio/showcase/internal/domain/project"
)

// DefaultRelatedLimit is the number of related projects shown on a detail page.
const DefaultRelatedLimit = 6

const (
	categoryWeight   = 3
	universityWeight = 2
	tagWeight        = 1
)

// ScoredProject is a candidate with its relatedness score.
type ScoredProject struct {
	project.Project
	Score int `json:"score"`
}

// RelatednessScore scores candidate against focal: +3 for the same category,
// +2 for the same university and +1 for every focal tag the candidate carries.
func RelatednessScore(focal, candidate project.Project) int {
	score := 0
	if candidate.Category == focal.Category {
		score += categoryWeight
	}
	if candidate.Creator.University == focal.Creator.University {
		score += universityWeight
	}
	for _, tag := range focal.Tags {
		if slices.Contains(candidate.Tags, tag) {
			score += tagWeight
		}
	}
	return score
}

// Related ranks candidates by relatedness to focal and returns the best
// limit entries. The focal record itself is excluded by ID. There is no
// score threshold: low scores still fill the remaining slots. limit below 1
// uses DefaultRelatedLimit. An empty result means the related section
// should not be shown.
func Related(focal project.Project, candidates []project.Project, limit int) []ScoredProject {
	if limit < 1 {
		limit = DefaultRelatedLimit
	}

	scored := make([]ScoredProject, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == focal.ID {
			continue
		}
		scored = append(scored, ScoredProject{Project: c, Score: RelatednessScore(focal, c)})
	}

	slices.SortStableFunc(scored, func(a, b ScoredProject) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return scored[:min(limit, len(scored))]
}

// Basis explains why projects were suggested: the focal category and up to
// two of its tags.
type Basis struct {
	Category project.Category `json:"category,omitempty"`
	Tags     []string         `json:"tags,omitempty"`
}

// RelatedBasis returns the explanation shown under the related section.
func RelatedBasis(focal project.Project) Basis {
	return Basis{
		Category: focal.Category,
		Tags:     slices.Clone(focal.Tags[:min(2, len(focal.Tags))]),
	}
}
