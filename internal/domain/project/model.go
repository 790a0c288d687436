package project

import "time"

// Category is one of the fixed showcase categories.
type Category string

const (
	CategoryEngineering Category = "Engineering"
	CategoryDesign      Category = "Design"
	CategoryArt         Category = "Art"
	CategoryBusiness    Category = "Business"
	CategoryFinTech     Category = "FinTech"
	CategoryAgriculture Category = "Agriculture"
	CategoryHealth      Category = "Health"
	CategoryEducation   Category = "Education"
	CategoryMusic       Category = "Music"
	CategoryOther       Category = "Other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryEngineering,
	CategoryDesign,
	CategoryArt,
	CategoryBusiness,
	CategoryFinTech,
	CategoryAgriculture,
	CategoryHealth,
	CategoryEducation,
	CategoryMusic,
	CategoryOther,
}

// Valid reports whether c belongs to the fixed category set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Creator is the denormalised copy of the uploading user stored on a project.
type Creator struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	AvatarURL  string `json:"avatar_url,omitempty"`
	University string `json:"university"`
}

// Stats holds engagement counters.
type Stats struct {
	Likes  int64  `json:"likes"`
	Views  int64  `json:"views"`
	Shares *int64 `json:"shares,omitempty"`
}

// Project is a showcased student project listing
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Image       string    `json:"image"`
	Gallery     []string  `json:"gallery,omitempty"`
	DemoLink    string    `json:"demo_link,omitempty"`
	VideoLink   string    `json:"video_link,omitempty"`
	Creator     Creator   `json:"creator"`
	Tags        []string  `json:"tags"`
	Stats       Stats     `json:"stats"`
	CreatedAt   time.Time `json:"created_at"`
}

// LikeResult reports the state of a like toggle.
type LikeResult struct {
	ProjectID string `json:"project_id"`
	Liked     bool   `json:"liked"`
	Likes     int64  `json:"likes"`
}
