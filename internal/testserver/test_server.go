// Package testserver runs the full HTTP stack against an in-memory database.
package testserver

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/showcase/internal/config"
	"github.com/rpggio/showcase/internal/discovery"
	"github.com/rpggio/showcase/internal/domain/activity"
	"github.com/rpggio/showcase/internal/domain/comment"
	"github.com/rpggio/showcase/internal/domain/project"
	"github.com/rpggio/showcase/internal/domain/user"
	"github.com/rpggio/showcase/internal/mcp"
	"github.com/rpggio/showcase/internal/sqlite"
	"github.com/rpggio/showcase/internal/transport"
)

// TestServer is a running API backed by a fresh database.
type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Feed     *discovery.Feed
	Projects *sqlite.ProjectRepository
	Keys     *sqlite.APIKeyRepository
	Users    *user.Service
	// UserID owns Token.
	UserID string
	Token  string
}

// New starts a server with one registered user.
func New(t *testing.T) *TestServer {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	projectRepo := sqlite.NewProjectRepository(db)
	commentRepo := sqlite.NewCommentRepository(db)
	userRepo := sqlite.NewUserRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	keyRepo := sqlite.NewAPIKeyRepository(db)

	projectSvc := project.NewService(projectRepo, activityRepo, nil)
	commentSvc := comment.NewService(commentRepo, projectRepo, activityRepo, nil)
	userSvc := user.NewService(userRepo, projectSvc, nil)
	activitySvc := activity.NewService(activityRepo, nil)

	feed := discovery.NewFeed(projectSvc)
	discoveryCfg := config.DiscoveryConfig{PageSize: discovery.DefaultPageSize, RelatedLimit: discovery.DefaultRelatedLimit}

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Projects: projectSvc,
			Comments: commentSvc,
			Users:    userSvc,
			Feed:     feed,
		},
		Resolver:      keyRepo,
		AuthEnabled:   true,
		TransportMode: "http",
		Discovery:     discoveryCfg,
	})

	router := transport.NewServer(transport.Config{
		Projects:  projectSvc,
		Comments:  commentSvc,
		Users:     userSvc,
		Activity:  activitySvc,
		Feed:      feed,
		Auth:      transport.AuthMiddleware(keyRepo),
		MCP:       mcp.NewHTTPHandler(mcpServer),
		Discovery: discoveryCfg,
	})
	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       db,
		Feed:     feed,
		Projects: projectRepo,
		Keys:     keyRepo,
		Users:    userSvc,
	}

	t.Cleanup(func() {
		server.Close()
		feed.Close()
		_ = db.Close()
	})

	ts.UserID, ts.Token = ts.AddUser(t, "Amina Nakato", "Makerere University")
	ts.Refresh(t)

	return ts
}

// AddUser registers a user and returns its ID and a fresh API token.
func (ts *TestServer) AddUser(t *testing.T, name, university string) (string, string) {
	t.Helper()
	ctx := context.Background()

	u, err := ts.Users.Create(ctx, user.CreateRequest{Name: name, University: university})
	require.NoError(t, err)

	token := "tok-" + uuid.NewString()
	require.NoError(t, ts.Keys.Create(ctx, token, u.ID, "test"))
	return u.ID, token
}

// SeedProject stores p directly, bypassing submission validation, and
// returns its ID. Missing IDs and timestamps are filled in.
func (ts *TestServer) SeedProject(t *testing.T, creatorID string, p project.Project) string {
	t.Helper()
	ctx := context.Background()

	u, err := ts.Users.Get(ctx, creatorID)
	require.NoError(t, err)

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.Category == "" {
		p.Category = project.CategoryOther
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	p.Creator = u.Creator()
	require.NoError(t, ts.Projects.Create(ctx, &p))
	return p.ID
}

// Refresh reloads the discovery snapshot.
func (ts *TestServer) Refresh(t *testing.T) discovery.Snapshot {
	t.Helper()
	snap, applied := ts.Feed.Refresh(context.Background())
	require.True(t, applied)
	return snap
}

// Do sends a request with an optional bearer token and JSON body.
func (ts *TestServer) Do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// Envelope is the decoded API response body.
type Envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

// Decode reads the response envelope and unmarshals its data into dst when
// dst is non-nil.
func Decode(t *testing.T, resp *http.Response, dst any) Envelope {
	t.Helper()

	var env Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	if dst != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, dst))
	}
	return env
}
