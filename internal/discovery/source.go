package discovery

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rpggio/showcase/internal/domain/project"
)

var (
	// ErrSourceUnavailable indicates the record source could not be read.
	ErrSourceUnavailable = errors.New("record source unavailable")
	// ErrNotLoaded indicates no fetch has completed yet.
	ErrNotLoaded = errors.New("record source not loaded yet")
)

// Source supplies the complete project set, newest first.
type Source interface {
	FetchProjects(ctx context.Context) ([]project.Project, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]project.Project, error)

func (f SourceFunc) FetchProjects(ctx context.Context) ([]project.Project, error) {
	return f(ctx)
}

// Snapshot is one immutable fetch of the record source. When the fetch
// failed, Projects is empty and Err is set.
type Snapshot struct {
	Projects  []project.Project
	FetchedAt time.Time
	Err       error
}

// Unavailable reports whether the snapshot carries a fetch failure, as
// opposed to a legitimately empty record set.
func (s Snapshot) Unavailable() bool {
	return s.Err != nil
}

// Find returns the record with the given ID.
func (s Snapshot) Find(id string) (project.Project, bool) {
	i := slices.IndexFunc(s.Projects, func(p project.Project) bool { return p.ID == id })
	if i < 0 {
		return project.Project{}, false
	}
	return s.Projects[i], true
}

// Load fetches src once. Failures never propagate: they become an empty
// snapshot whose Err wraps ErrSourceUnavailable.
func Load(ctx context.Context, src Source) Snapshot {
	now := time.Now().UTC()
	records, err := src.FetchProjects(ctx)
	if err != nil {
		return Snapshot{
			Projects:  []project.Project{},
			FetchedAt: now,
			Err:       fmt.Errorf("%w: %w", ErrSourceUnavailable, err),
		}
	}

	out := make([]project.Project, len(records))
	for i, rec := range records {
		out[i] = Normalize(rec)
	}
	return Snapshot{Projects: out, FetchedAt: now}
}

// Normalize replaces missing or invalid fields of a fetched record with safe
// defaults so a single malformed record cannot break the pipeline.
func Normalize(p project.Project) project.Project {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	p.Stats.Likes = nonNegative(p.Stats.Likes)
	p.Stats.Views = nonNegative(p.Stats.Views)
	if p.Stats.Shares != nil && *p.Stats.Shares < 0 {
		zero := int64(0)
		p.Stats.Shares = &zero
	}
	return p
}
