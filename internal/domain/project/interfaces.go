package project

import (
	"context"

	"github.com/rpggio/showcase/internal/domain/activity"
)

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, proj *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context) ([]Project, error)
	ListByCreator(ctx context.Context, creatorID string) ([]Project, error)
	IncrementViews(ctx context.Context, id string) (int64, error)
	IncrementShares(ctx context.Context, id string) (int64, error)
	ToggleLike(ctx context.Context, id, userID string) (bool, int64, error)
}

// ActivityRepository logs engagement on projects.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
}
