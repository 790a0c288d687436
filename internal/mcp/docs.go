package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `showcase serves a catalogue of student projects from universities.

Browsing:
- discover_projects filters, sorts and pages the catalogue. All filters combine with AND; tags match when a project carries any selected tag.
- Changing any filter or the sort returns to page 1. Pages past the end are empty, not errors.
- source_unavailable=true means listings could not be loaded; an empty page without it means nothing matched.
- filter_options lists accepted categories, universities, tags and sort modes.

Detail:
- get_project returns one project; related_projects suggests others scored by shared category (+3), university (+2) and tags (+1 each).
- list_comments returns top-level comments with their replies.

Writing (requires a bearer token over HTTP):
- like_project toggles the caller's like.
- add_comment posts a top-level comment.

Docs:
- showcase://docs/discovery (filter, sort and paging rules)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "showcase://docs/discovery",
		Name:        "docs_discovery",
		Title:       "Discovery rules",
		Description: "How discover_projects filters, ranks and pages the catalogue.",
		Content: `# Discovery rules

## Filters

| Filter | Match |
|---|---|
| query | case-insensitive substring of title, description or any tag |
| category | exact; "All" or empty disables |
| university | exact creator university; "All" or empty disables |
| tags | any selected tag present (case-sensitive) |

Filters combine with AND.

## Sort modes

- recent: newest first
- popular: most likes first
- trending: likes*2 + views, highest first
- viewed: most views first

Ties keep the catalogue order (newest first).

## Paging

Pages are 1-based. A page past the last one returns no projects. total and
total_pages describe the filtered set.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
