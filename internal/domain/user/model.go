package user

import (
	"time"

	"github.com/rpggio/showcase/internal/domain/comment"
	"github.com/rpggio/showcase/internal/domain/project"
)

// User is a registered student creator.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	University string    `json:"university"`
	Bio        string    `json:"bio,omitempty"`
	Location   string    `json:"location,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ProfileStats aggregates engagement across a creator's projects.
type ProfileStats struct {
	Projects   int   `json:"projects"`
	TotalLikes int64 `json:"total_likes"`
	TotalViews int64 `json:"total_views"`
}

// Profile is a user's public page: identity, projects and totals.
type Profile struct {
	User     User              `json:"user"`
	Projects []project.Project `json:"projects"`
	Stats    ProfileStats      `json:"stats"`
}

// Creator returns the denormalised creator copy stored on new projects.
func (u User) Creator() project.Creator {
	return project.Creator{
		ID:         u.ID,
		Name:       u.Name,
		AvatarURL:  u.AvatarURL,
		University: u.University,
	}
}

// Author returns the denormalised author copy stored on new comments.
func (u User) Author() comment.Author {
	return comment.Author{
		ID:        u.ID,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
	}
}
