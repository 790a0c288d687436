package comment

import "time"

// SortMode orders top-level comments in a thread.
type SortMode string

const (
	SortRecent  SortMode = "recent"
	SortOldest  SortMode = "oldest"
	SortPopular SortMode = "popular"
)

// Author is the denormalised commenter identity.
type Author struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Comment is a remark on a project, or a reply to one when ParentID is set
type Comment struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	ParentID  *string   `json:"parent_id,omitempty"`
	Author    Author    `json:"author"`
	Text      string    `json:"text"`
	Likes     int64     `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	Replies   []Comment `json:"replies,omitempty"`
}

// LikeResult reports the state of a comment like toggle.
type LikeResult struct {
	CommentID string `json:"comment_id"`
	Liked     bool   `json:"liked"`
	Likes     int64  `json:"likes"`
}
