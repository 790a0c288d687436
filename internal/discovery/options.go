package discovery

import "github.com/rpggio/showcase/internal/domain/project"

// Universities offered by the university filter.
var Universities = []string{
	"Makerere University",
	"Kyambogo University",
	"Mbarara University",
	"Gulu University",
	"Busitema University",
	"Muni University",
	"Uganda Christian University",
	"Kampala International University",
	"Islamic University in Uganda",
	"Nkumba University",
}

// FilterTags are the popular tags offered by the tag filter.
var FilterTags = []string{
	"AI/ML",
	"IoT",
	"Mobile App",
	"Web Development",
	"Sustainability",
	"Innovation",
	"Blockchain",
	"Data Science",
	"Robotics",
	"VR/AR",
}

// SuggestedTags are offered while tagging a new submission.
var SuggestedTags = append(append([]string{}, FilterTags...),
	"Cloud Computing",
	"Cybersecurity",
	"Big Data",
	"DevOps",
	"UI/UX",
	"Game Development",
	"E-commerce",
	"Social Impact",
	"Open Source",
	"API Development",
)

// SortOption describes a ranking strategy for display.
type SortOption struct {
	ID          SortMode `json:"id"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
}

// Catalog lists every selectable filter and sort value.
type Catalog struct {
	Categories    []string     `json:"categories"`
	Universities  []string     `json:"universities"`
	Tags          []string     `json:"tags"`
	SuggestedTags []string     `json:"suggested_tags"`
	Sorts         []SortOption `json:"sorts"`
}

// Options returns the filter catalog. Categories and universities lead with All.
func Options() Catalog {
	categories := make([]string, 0, len(project.Categories)+1)
	categories = append(categories, All)
	for _, c := range project.Categories {
		categories = append(categories, string(c))
	}

	return Catalog{
		Categories:    categories,
		Universities:  append([]string{All}, Universities...),
		Tags:          append([]string{}, FilterTags...),
		SuggestedTags: append([]string{}, SuggestedTags...),
		Sorts: []SortOption{
			{ID: SortRecent, Label: "Most Recent", Description: "Newest first"},
			{ID: SortPopular, Label: "Most Popular", Description: "Most liked"},
			{ID: SortTrending, Label: "Trending", Description: "Hot right now"},
			{ID: SortViewed, Label: "Most Viewed", Description: "Highest views"},
		},
	}
}
