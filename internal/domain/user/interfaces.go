package user

import (
	"context"

	"github.com/rpggio/showcase/internal/domain/project"
)

// Repository provides persistence for users.
type Repository interface {
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id string) (*User, error)
}

// ProjectLister lists a creator's projects.
type ProjectLister interface {
	ListByCreator(ctx context.Context, creatorID string) ([]project.Project, error)
}
