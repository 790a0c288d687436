// Package recordsource provides discovery.Source implementations backed by
// remote stores, and a circuit breaker that can wrap any source.
package recordsource

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rpggio/showcase/internal/config"
	"github.com/rpggio/showcase/internal/domain/project"
)

const maxResponseBytes = 32 << 20

// REST reads the project table of a PostgREST-style backend-as-a-service.
type REST struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   *slog.Logger
}

// NewREST creates a REST source. client may be nil.
func NewREST(cfg config.RESTConfig, client *http.Client, logger *slog.Logger) (*REST, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid rest base url %q", cfg.BaseURL)
	}
	table := cfg.Table
	if table == "" {
		table = "projects"
	}
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "created_at.desc")
	endpoint := base.JoinPath("rest", "v1", table)
	endpoint.RawQuery = query.Encode()

	return &REST{
		endpoint: endpoint.String(),
		apiKey:   cfg.APIKey,
		client:   client,
		logger:   logger,
	}, nil
}

// FetchProjects returns every project row, newest first. Rows that cannot be
// decoded are skipped and logged.
func (r *REST) FetchProjects(ctx context.Context) ([]project.Project, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.apiKey != "" {
		req.Header.Set("apikey", r.apiKey)
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch projects: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read projects response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch projects: unexpected status %d: %s", resp.StatusCode, snippet(body))
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode projects response: %w", err)
	}

	projects := make([]project.Project, 0, len(raw))
	for i, msg := range raw {
		var row projectRow
		if err := json.Unmarshal(msg, &row); err != nil {
			if r.logger != nil {
				r.logger.Warn("skipping malformed project row", "index", i, "error", err)
			}
			continue
		}
		projects = append(projects, row.toProject())
	}
	return projects, nil
}

// projectRow is one row of the remote projects table.
type projectRow struct {
	ID                flexID    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	Image             *string   `json:"image"`
	Gallery           []string  `json:"gallery"`
	DemoLink          *string   `json:"demo_link"`
	VideoLink         *string   `json:"video_link"`
	Tags              []string  `json:"tags"`
	CreatorID         *string   `json:"creator_id"`
	CreatorName       *string   `json:"creator_name"`
	CreatorAvatar     *string   `json:"creator_avatar"`
	CreatorUniversity *string   `json:"creator_university"`
	Likes             *int64    `json:"likes"`
	Views             *int64    `json:"views"`
	Shares            *int64    `json:"shares"`
	CreatedAt         time.Time `json:"created_at"`
}

func (r projectRow) toProject() project.Project {
	return project.Project{
		ID:          string(r.ID),
		Title:       r.Title,
		Description: r.Description,
		Category:    project.Category(r.Category),
		Image:       deref(r.Image),
		Gallery:     r.Gallery,
		DemoLink:    deref(r.DemoLink),
		VideoLink:   deref(r.VideoLink),
		Creator: project.Creator{
			ID:         deref(r.CreatorID),
			Name:       deref(r.CreatorName),
			AvatarURL:  deref(r.CreatorAvatar),
			University: deref(r.CreatorUniversity),
		},
		Tags: r.Tags,
		Stats: project.Stats{
			Likes:  deref(r.Likes),
			Views:  deref(r.Views),
			Shares: r.Shares,
		},
		CreatedAt: r.CreatedAt,
	}
}

// flexID accepts both string and numeric primary keys.
type flexID string

func (id *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("project id is null")
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexID(s)
		return nil
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("project id %s: %w", data, err)
	}
	*id = flexID(strconv.FormatInt(n, 10))
	return nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func snippet(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
