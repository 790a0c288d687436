package discovery

import (
	"fmt"
	"time"

	"github.com/rpggio/showcase/internal/domain/project"
)

var baseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func rec(id string, opts ...func(*project.Project)) project.Project {
	p := project.Project{
		ID:          id,
		Title:       "Project " + id,
		Description: "Description of project " + id,
		Category:    project.CategoryOther,
		Creator:     project.Creator{Name: "Creator " + id, University: "Makerere University"},
		Tags:        []string{},
		CreatedAt:   baseTime,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func withCategory(c project.Category) func(*project.Project) {
	return func(p *project.Project) { p.Category = c }
}

func withUniversity(u string) func(*project.Project) {
	return func(p *project.Project) { p.Creator.University = u }
}

func withTags(tags ...string) func(*project.Project) {
	return func(p *project.Project) { p.Tags = tags }
}

func withStats(likes, views int64) func(*project.Project) {
	return func(p *project.Project) { p.Stats.Likes, p.Stats.Views = likes, views }
}

func withAge(d time.Duration) func(*project.Project) {
	return func(p *project.Project) { p.CreatedAt = baseTime.Add(-d) }
}

func withTitle(title string) func(*project.Project) {
	return func(p *project.Project) { p.Title = title }
}

func ids(records []project.Project) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func numbered(n int) []project.Project {
	out := make([]project.Project, n)
	for i := range out {
		out[i] = rec(fmt.Sprintf("p%02d", i+1))
	}
	return out
}
