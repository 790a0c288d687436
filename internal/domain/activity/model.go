package activity

import "time"

// ActivityType represents the kind of engagement event
type ActivityType string

const (
	TypeProjectCreated ActivityType = "project_created"
	TypeProjectViewed  ActivityType = "project_viewed"
	TypeProjectLiked   ActivityType = "project_liked"
	TypeProjectUnliked ActivityType = "project_unliked"
	TypeProjectShared  ActivityType = "project_shared"
	TypeCommentAdded   ActivityType = "comment_added"
	TypeCommentLiked   ActivityType = "comment_liked"
)

// ActivityEntry represents an event in the engagement log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	ProjectID    string       `json:"project_id"`
	UserID       *string      `json:"user_id,omitempty"`
	CommentID    *string      `json:"comment_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	ProjectID    string
	UserID       *string
	ActivityType *ActivityType
	Limit        int
	Offset       int
}
