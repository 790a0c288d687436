package comment

import (
	"context"

	"github.com/rpggio/showcase/internal/domain/activity"
	"github.com/rpggio/showcase/internal/domain/project"
)

// Repository provides persistence for comments.
type Repository interface {
	Create(ctx context.Context, c *Comment) error
	Get(ctx context.Context, id string) (*Comment, error)
	ListByProject(ctx context.Context, projectID string) ([]Comment, error)
	ToggleLike(ctx context.Context, id, userID string) (bool, int64, error)
}

// ProjectRepository resolves the project a comment belongs to.
type ProjectRepository interface {
	Get(ctx context.Context, id string) (*project.Project, error)
}

// ActivityRepository logs comment engagement.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
}
