package mcp

import (
	"context"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/showcase/internal/config"
	"github.com/rpggio/showcase/internal/discovery"
	"github.com/rpggio/showcase/internal/domain/comment"
	"github.com/rpggio/showcase/internal/domain/project"
)

// DiscoverInput is the input schema for the discover_projects tool.
type DiscoverInput struct {
	Query      string   `json:"query,omitempty" jsonschema:"case-insensitive text matched against title, description, tags and creator name"`
	Category   string   `json:"category,omitempty" jsonschema:"category filter; All or empty for every category"`
	University string   `json:"university,omitempty" jsonschema:"university filter; All or empty for every university"`
	Tags       []string `json:"tags,omitempty" jsonschema:"projects carrying any of these tags match"`
	Sort       string   `json:"sort,omitempty" jsonschema:"recent, popular, trending or viewed (default recent)"`
	Page       int      `json:"page,omitempty" jsonschema:"1-based page number (default 1)"`
	PageSize   int      `json:"page_size,omitempty" jsonschema:"results per page (default 9, max 60)"`
}

// DiscoverOutput is one page of discovery results.
type DiscoverOutput struct {
	Projects          []ProjectCard `json:"projects"`
	Page              int           `json:"page"`
	TotalPages        int           `json:"total_pages"`
	Total             int           `json:"total"`
	ActiveFilters     int           `json:"active_filters"`
	Sort              string        `json:"sort"`
	SourceUnavailable bool          `json:"source_unavailable"`
}

// ProjectCard summarises a project as shown in listings.
type ProjectCard struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	CreatorID   string   `json:"creator_id,omitempty"`
	CreatorName string   `json:"creator_name"`
	University  string   `json:"university"`
	Tags        []string `json:"tags"`
	Likes       int64    `json:"likes"`
	Views       int64    `json:"views"`
	Shares      int64    `json:"shares"`
	CreatedAt   string   `json:"created_at"`
	Score       int      `json:"score,omitempty"`
}

// ProjectIDInput identifies a project.
type ProjectIDInput struct {
	ID string `json:"id" jsonschema:"project ID"`
}

// ProjectDetail is a full project record.
type ProjectDetail struct {
	Project   ProjectCard `json:"project"`
	Gallery   []string    `json:"gallery,omitempty"`
	DemoLink  string      `json:"demo_link,omitempty"`
	VideoLink string      `json:"video_link,omitempty"`
}

// RelatedInput is the input schema for the related_projects tool.
type RelatedInput struct {
	ID    string `json:"id" jsonschema:"focal project ID"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum suggestions (default 6)"`
}

// RelatedOutput lists suggestions for a focal project.
type RelatedOutput struct {
	Projects      []ProjectCard `json:"projects"`
	BasisCategory string        `json:"basis_category,omitempty"`
	BasisTags     []string      `json:"basis_tags,omitempty"`
}

// CommentsInput is the input schema for the list_comments tool.
type CommentsInput struct {
	ProjectID string `json:"project_id" jsonschema:"project ID"`
	Sort      string `json:"sort,omitempty" jsonschema:"recent, oldest or popular (default recent)"`
}

// CommentsOutput is a project's comment thread.
type CommentsOutput struct {
	Comments []CommentView `json:"comments"`
}

// CommentView is a top-level comment with its replies.
type CommentView struct {
	ID        string      `json:"id"`
	Author    string      `json:"author"`
	Text      string      `json:"text"`
	Likes     int64       `json:"likes"`
	CreatedAt string      `json:"created_at"`
	Replies   []ReplyView `json:"replies,omitempty"`
}

// ReplyView is a reply to a top-level comment.
type ReplyView struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	Likes     int64  `json:"likes"`
	CreatedAt string `json:"created_at"`
}

// AddCommentInput is the input schema for the add_comment tool.
type AddCommentInput struct {
	ProjectID string `json:"project_id" jsonschema:"project ID"`
	Text      string `json:"text" jsonschema:"comment text"`
}

// LikeOutput reports a like toggle.
type LikeOutput struct {
	ProjectID string `json:"project_id"`
	Liked     bool   `json:"liked"`
	Likes     int64  `json:"likes"`
}

// ProfileInput is the input schema for the get_profile tool.
type ProfileInput struct {
	UserID string `json:"user_id" jsonschema:"user ID"`
	Sort   string `json:"sort,omitempty" jsonschema:"recent, popular, views or alphabetical (default recent)"`
}

// ProfileOutput is a creator's public profile.
type ProfileOutput struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	University string        `json:"university"`
	Bio        string        `json:"bio,omitempty"`
	Location   string        `json:"location,omitempty"`
	Projects   []ProjectCard `json:"projects"`
	TotalLikes int64         `json:"total_likes"`
	TotalViews int64         `json:"total_views"`
}

// FilterOptionsInput takes no arguments.
type FilterOptionsInput struct{}

// FilterOptionsOutput lists selectable filter and sort values.
type FilterOptionsOutput struct {
	Categories   []string `json:"categories"`
	Universities []string `json:"universities"`
	Tags         []string `json:"tags"`
	Sorts        []string `json:"sorts"`
}

type tools struct {
	services  Services
	discovery config.DiscoveryConfig
}

// register adds every tool handler to server.
func (t *tools) register(server *sdkmcp.Server) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "discover_projects",
		Description: "Search, filter, sort and page through showcased projects",
	}, t.discover)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get the full record for one project",
	}, t.getProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "related_projects",
		Description: "Suggest projects related to a focal project by category, university and tags",
	}, t.related)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_comments",
		Description: "List a project's comment thread",
	}, t.listComments)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_comment",
		Description: "Comment on a project as the signed-in user",
	}, t.addComment)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "like_project",
		Description: "Like a project, or remove an existing like, as the signed-in user",
	}, t.likeProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_profile",
		Description: "Get a creator's profile with their projects and totals",
	}, t.profile)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "filter_options",
		Description: "List the categories, universities, tags and sort modes accepted by discover_projects",
	}, t.filterOptions)
}

func (t *tools) discover(_ context.Context, _ *sdkmcp.CallToolRequest, in DiscoverInput) (*sdkmcp.CallToolResult, DiscoverOutput, error) {
	size := in.PageSize
	if size < 1 {
		size = t.discovery.PageSize
	}
	criteria := discovery.Criteria{
		Search:     in.Query,
		Category:   in.Category,
		University: in.University,
		Tags:       in.Tags,
	}
	q, err := discovery.QueryFrom(criteria, discovery.SortMode(in.Sort), in.Page, size)
	if err != nil {
		return nil, DiscoverOutput{}, &APIError{Code: "INVALID_SORT", Message: err.Error(), RecoveryHint: "Call filter_options"}
	}

	res := discovery.Run(t.services.Feed.Snapshot(), q)
	out := DiscoverOutput{
		Projects:          make([]ProjectCard, 0, len(res.Items)),
		Page:              res.Page.Current,
		TotalPages:        res.Page.TotalPages,
		Total:             res.Total,
		ActiveFilters:     res.ActiveFilters,
		Sort:              string(res.Sort),
		SourceUnavailable: res.SourceUnavailable,
	}
	for _, p := range res.Items {
		out.Projects = append(out.Projects, toCard(p))
	}
	return nil, out, nil
}

func (t *tools) getProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in ProjectIDInput) (*sdkmcp.CallToolResult, ProjectDetail, error) {
	p, err := t.findProject(ctx, in.ID)
	if err != nil {
		return nil, ProjectDetail{}, toolError(err)
	}
	return nil, ProjectDetail{
		Project:   toCard(p),
		Gallery:   p.Gallery,
		DemoLink:  p.DemoLink,
		VideoLink: p.VideoLink,
	}, nil
}

func (t *tools) related(ctx context.Context, _ *sdkmcp.CallToolRequest, in RelatedInput) (*sdkmcp.CallToolResult, RelatedOutput, error) {
	focal, err := t.findProject(ctx, in.ID)
	if err != nil {
		return nil, RelatedOutput{}, toolError(err)
	}

	limit := in.Limit
	if limit < 1 {
		limit = t.discovery.RelatedLimit
	}
	scored := discovery.Related(focal, t.services.Feed.Snapshot().Projects, limit)
	basis := discovery.RelatedBasis(focal)

	out := RelatedOutput{
		Projects:      make([]ProjectCard, 0, len(scored)),
		BasisCategory: string(basis.Category),
		BasisTags:     basis.Tags,
	}
	for _, s := range scored {
		card := toCard(s.Project)
		card.Score = s.Score
		out.Projects = append(out.Projects, card)
	}
	return nil, out, nil
}

func (t *tools) listComments(ctx context.Context, _ *sdkmcp.CallToolRequest, in CommentsInput) (*sdkmcp.CallToolResult, CommentsOutput, error) {
	mode := comment.SortMode(in.Sort)
	if mode == "" {
		mode = comment.SortRecent
	}
	thread, err := t.services.Comments.List(ctx, in.ProjectID, mode)
	if err != nil {
		return nil, CommentsOutput{}, toolError(err)
	}
	return nil, CommentsOutput{Comments: toCommentViews(thread)}, nil
}

func (t *tools) addComment(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddCommentInput) (*sdkmcp.CallToolResult, CommentView, error) {
	userID := getUserID(ctx)
	if userID == "" {
		return nil, CommentView{}, toolError(comment.ErrUnauthenticated)
	}
	u, err := t.services.Users.Get(ctx, userID)
	if err != nil {
		return nil, CommentView{}, toolError(err)
	}
	c, err := t.services.Comments.Add(ctx, in.ProjectID, u.Author(), in.Text)
	if err != nil {
		return nil, CommentView{}, toolError(err)
	}
	return nil, toCommentView(*c), nil
}

func (t *tools) likeProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in ProjectIDInput) (*sdkmcp.CallToolResult, LikeOutput, error) {
	res, err := t.services.Projects.ToggleLike(ctx, in.ID, getUserID(ctx))
	if err != nil {
		return nil, LikeOutput{}, toolError(err)
	}
	return nil, LikeOutput{ProjectID: res.ProjectID, Liked: res.Liked, Likes: res.Likes}, nil
}

func (t *tools) profile(ctx context.Context, _ *sdkmcp.CallToolRequest, in ProfileInput) (*sdkmcp.CallToolResult, ProfileOutput, error) {
	prof, err := t.services.Users.Profile(ctx, in.UserID, project.PortfolioSort(in.Sort))
	if err != nil {
		return nil, ProfileOutput{}, toolError(err)
	}
	out := ProfileOutput{
		ID:         prof.User.ID,
		Name:       prof.User.Name,
		University: prof.User.University,
		Bio:        prof.User.Bio,
		Location:   prof.User.Location,
		Projects:   make([]ProjectCard, 0, len(prof.Projects)),
		TotalLikes: prof.Stats.TotalLikes,
		TotalViews: prof.Stats.TotalViews,
	}
	for _, p := range prof.Projects {
		out.Projects = append(out.Projects, toCard(p))
	}
	return nil, out, nil
}

func (t *tools) filterOptions(_ context.Context, _ *sdkmcp.CallToolRequest, _ FilterOptionsInput) (*sdkmcp.CallToolResult, FilterOptionsOutput, error) {
	catalog := discovery.Options()
	out := FilterOptionsOutput{
		Categories:   catalog.Categories,
		Universities: catalog.Universities,
		Tags:         catalog.Tags,
		Sorts:        make([]string, 0, len(catalog.Sorts)),
	}
	for _, s := range catalog.Sorts {
		out.Sorts = append(out.Sorts, string(s.ID))
	}
	return nil, out, nil
}

// findProject looks in the discovery snapshot first, then the local store.
func (t *tools) findProject(ctx context.Context, id string) (project.Project, error) {
	if p, ok := t.services.Feed.Snapshot().Find(id); ok {
		return p, nil
	}
	p, err := t.services.Projects.Get(ctx, id)
	if err != nil {
		return project.Project{}, err
	}
	return *p, nil
}

func toCard(p project.Project) ProjectCard {
	card := ProjectCard{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    string(p.Category),
		Image:       p.Image,
		CreatorID:   p.Creator.ID,
		CreatorName: p.Creator.Name,
		University:  p.Creator.University,
		Tags:        p.Tags,
		Likes:       p.Stats.Likes,
		Views:       p.Stats.Views,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
	if p.Stats.Shares != nil {
		card.Shares = *p.Stats.Shares
	}
	if card.Tags == nil {
		card.Tags = []string{}
	}
	return card
}

func toCommentViews(comments []comment.Comment) []CommentView {
	out := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentView(c))
	}
	return out
}

func toCommentView(c comment.Comment) CommentView {
	view := CommentView{
		ID:        c.ID,
		Author:    c.Author.Name,
		Text:      c.Text,
		Likes:     c.Likes,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
	for _, r := range c.Replies {
		view.Replies = append(view.Replies, ReplyView{
			ID:        r.ID,
			Author:    r.Author.Name,
			Text:      r.Text,
			Likes:     r.Likes,
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		})
	}
	return view
}
