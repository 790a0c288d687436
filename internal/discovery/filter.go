package discovery

import (
	"slices"
	"strings"

	"github.com/rpggio/showcase/internal/domain/project"
)

// Filter returns the records matching every predicate in c, in input order.
// Search is a case-insensitive substring match over title, description,
// creator name and tags; tags match when any selected tag is present.
func Filter(records []project.Project, c Criteria) []project.Project {
	out := make([]project.Project, 0, len(records))
	needle := strings.ToLower(c.Search)
	for _, rec := range records {
		if matches(rec, needle, c) {
			out = append(out, rec)
		}
	}
	return out
}

// Matches reports whether rec satisfies every predicate in c.
func Matches(rec project.Project, c Criteria) bool {
	return matches(rec, strings.ToLower(c.Search), c)
}

func matches(rec project.Project, needle string, c Criteria) bool {
	return matchesSearch(rec, needle) &&
		(isAll(c.Category) || string(rec.Category) == c.Category) &&
		(isAll(c.University) || rec.Creator.University == c.University) &&
		matchesTags(rec.Tags, c.Tags)
}

func matchesSearch(rec project.Project, needle string) bool {
	if needle == "" {
		return true
	}
	if containsFold(rec.Title, needle) ||
		containsFold(rec.Description, needle) ||
		containsFold(rec.Creator.Name, needle) {
		return true
	}
	for _, tag := range rec.Tags {
		if containsFold(tag, needle) {
			return true
		}
	}
	return false
}

func matchesTags(recTags, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, tag := range selected {
		if slices.Contains(recTags, tag) {
			return true
		}
	}
	return false
}

// containsFold expects needle already lower-cased.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
