package transport_test

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/showcase/internal/discovery"
	"github.com/rpggio/showcase/internal/domain/activity"
	"github.com/rpggio/showcase/internal/domain/comment"
	"github.com/rpggio/showcase/internal/domain/project"
	"github.com/rpggio/showcase/internal/domain/user"
	"github.com/rpggio/showcase/internal/testserver"
)

var seedTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// seedCatalogue stores three projects: solar (Engineering, newest), loom
// (Design, most liked) and drone (Engineering, oldest, most viewed).
func seedCatalogue(t *testing.T, ts *testserver.TestServer) {
	t.Helper()
	ts.SeedProject(t, ts.UserID, project.Project{
		ID: "solar", Title: "Solar Dryer", Description: "Solar powered crop dryer",
		Category: project.CategoryEngineering, Tags: []string{"IoT", "Sustainability"},
		Stats: project.Stats{Likes: 10, Views: 50}, CreatedAt: seedTime,
	})
	ts.SeedProject(t, ts.UserID, project.Project{
		ID: "loom", Title: "Smart Loom", Description: "Pattern design assistant",
		Category: project.CategoryDesign, Tags: []string{"AI/ML"},
		Stats: project.Stats{Likes: 40, Views: 20}, CreatedAt: seedTime.Add(-time.Hour),
	})
	ts.SeedProject(t, ts.UserID, project.Project{
		ID: "drone", Title: "Farm Drone", Description: "Crop monitoring drone",
		Category: project.CategoryEngineering, Tags: []string{"IoT", "Robotics"},
		Stats: project.Stats{Likes: 5, Views: 90}, CreatedAt: seedTime.Add(-2 * time.Hour),
	})
	ts.Refresh(t)
}

func itemIDs(items []project.Project) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

func validSubmission() project.CreateRequest {
	return project.CreateRequest{
		Title:       "Water Quality Sensor",
		Description: strings.Repeat("Low cost sensor network for rural boreholes. ", 2),
		Category:    project.CategoryEngineering,
		Image:       "https://img.example.com/sensor.png",
		Tags:        []string{"IoT", "Social Impact"},
	}
}

func TestHealthAndMetrics(t *testing.T) {
	ts := testserver.New(t)

	resp := ts.Do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ts.Do(t, http.MethodGet, "/api/projects", "", nil)
	resp = ts.Do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "showcase_api_requests_total")
}

func TestDiscover(t *testing.T) {
	ts := testserver.New(t)
	seedCatalogue(t, ts)

	t.Run("default is most recent first", func(t *testing.T) {
		var res discovery.Result
		resp := ts.Do(t, http.MethodGet, "/api/projects", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		testserver.Decode(t, resp, &res)
		require.Equal(t, []string{"solar", "loom", "drone"}, itemIDs(res.Items))
		require.Equal(t, 3, res.Total)
		require.False(t, res.SourceUnavailable)
	})

	t.Run("filters combine", func(t *testing.T) {
		var res discovery.Result
		resp := ts.Do(t, http.MethodGet, "/api/projects?category=Engineering&q=crop&tags=Robotics,AI%2FML", "", nil)
		testserver.Decode(t, resp, &res)
		require.Equal(t, []string{"drone"}, itemIDs(res.Items))
		require.Equal(t, 3, res.ActiveFilters)
	})

	t.Run("sort modes", func(t *testing.T) {
		var res discovery.Result
		testserver.Decode(t, ts.Do(t, http.MethodGet, "/api/projects?sort=popular", "", nil), &res)
		require.Equal(t, []string{"loom", "solar", "drone"}, itemIDs(res.Items))

		testserver.Decode(t, ts.Do(t, http.MethodGet, "/api/projects?sort=viewed", "", nil), &res)
		require.Equal(t, []string{"drone", "solar", "loom"}, itemIDs(res.Items))
	})

	t.Run("paging", func(t *testing.T) {
		var res discovery.Result
		testserver.Decode(t, ts.Do(t, http.MethodGet, "/api/projects?page_size=2&page=2", "", nil), &res)
		require.Equal(t, []string{"drone"}, itemIDs(res.Items))
		require.Equal(t, 2, res.Page.TotalPages)

		testserver.Decode(t, ts.Do(t, http.MethodGet, "/api/projects?page_size=2&page=9", "", nil), &res)
		require.Empty(t, res.Items)
		require.Equal(t, 3, res.Total)

		for _, page := range []string{"1024819115206086202", "9223372036854775807"} {
			resp := ts.Do(t, http.MethodGet, "/api/projects?page="+page, "", nil)
			require.Equal(t, http.StatusOK, resp.StatusCode, page)
			res = discovery.Result{}
			testserver.Decode(t, resp, &res)
			require.NotNil(t, res.Items, page)
			require.Empty(t, res.Items, page)
			require.Equal(t, 3, res.Total, page)
		}
	})

	t.Run("no match is not unavailable", func(t *testing.T) {
		var res discovery.Result
		testserver.Decode(t, ts.Do(t, http.MethodGet, "/api/projects?category=Music", "", nil), &res)
		require.Empty(t, res.Items)
		require.False(t, res.SourceUnavailable)
	})

	t.Run("bad parameters", func(t *testing.T) {
		for path, code := range map[string]string{
			"/api/projects?page=two":     "invalid_page",
			"/api/projects?sort=random":  "invalid_sort",
			"/api/projects?page_size=0":  "invalid_page_size",
			"/api/projects?page_size=-3": "invalid_page_size",
		} {
			resp := ts.Do(t, http.MethodGet, path, "", nil)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
			env := testserver.Decode(t, resp, nil)
			require.Equal(t, code, env.Error.Code, path)
		}
	})
}

func TestGetProject_CountsViews(t *testing.T) {
	ts := testserver.New(t)
	seedCatalogue(t, ts)

	var p project.Project
	resp := ts.Do(t, http.MethodGet, "/api/projects/solar", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testserver.Decode(t, resp, &p)
	require.Equal(t, int64(51), p.Stats.Views)

	testserver.Decode(t, ts.Do(t, http.MethodGet, "/api/projects/solar", ts.Token, nil), &p)
	require.Equal(t, int64(52), p.Stats.Views)

	resp = ts.Do(t, http.MethodGet, "/api/projects/missing", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRelated(t *testing.T) {
	ts := testserver.New(t)
	seedCatalogue(t, ts)

	var out struct {
		Items []discovery.ScoredProject `json:"items"`
		Basis discovery.Basis           `json:"basis"`
	}
	resp := ts.Do(t, http.MethodGet, "/api/projects/solar/related", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testserver.Decode(t, resp, &out)
	require.Len(t, out.Items, 2)
	require.Equal(t, "drone", out.Items[0].ID)
	require.Equal(t, 6, out.Items[0].Score)
	require.Equal(t, "loom", out.Items[1].ID)
	require.Equal(t, project.CategoryEngineering, out.Basis.Category)
	require.Equal(t, []string{"IoT", "Sustainability"}, out.Basis.Tags)

	testserver.Decode(t, ts.Do(t, http.MethodGet, "/api/projects/solar/related?limit=1", "", nil), &out)
	require.Len(t, out.Items, 1)

	resp = ts.Do(t, http.MethodGet, "/api/projects/missing/related", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateProject(t *testing.T) {
	ts := testserver.New(t)

	resp := ts.Do(t, http.MethodPost, "/api/projects", "", validSubmission())
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = ts.Do(t, http.MethodPost, "/api/projects", "not-a-token", validSubmission())
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	bad := validSubmission()
	bad.Title = "short"
	bad.Category = "Cooking"
	resp = ts.Do(t, http.MethodPost, "/api/projects", ts.Token, bad)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env := testserver.Decode(t, resp, nil)
	require.Equal(t, "validation_failed", env.Error.Code)
	require.Contains(t, env.Error.Details, "title")
	require.Contains(t, env.Error.Details, "category")

	var created project.Project
	resp = ts.Do(t, http.MethodPost, "/api/projects", ts.Token, validSubmission())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	testserver.Decode(t, resp, &created)
	require.Equal(t, ts.UserID, created.Creator.ID)
	require.Equal(t, "Makerere University", created.Creator.University)

	var res discovery.Result
	testserver.Decode(t, ts.Do(t, http.MethodGet, "/api/projects", "", nil), &res)
	require.Equal(t, []string{created.ID}, itemIDs(res.Items))
}

func TestCreateProject_RejectsUnknownFields(t *testing.T) {
	ts := testserver.New(t)

	resp := ts.Do(t, http.MethodPost, "/api/projects", ts.Token, map[string]any{"title": "x", "likes": 100})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env := testserver.Decode(t, resp, nil)
	require.Equal(t, "bad_request", env.Error.Code)
}

func TestLikeAndShare(t *testing.T) {
	ts := testserver.New(t)
	seedCatalogue(t, ts)

	resp := ts.Do(t, http.MethodPost, "/api/projects/solar/like", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var like project.LikeResult
	testserver.Decode(t, ts.Do(t, http.MethodPost, "/api/projects/solar/like", ts.Token, nil), &like)
	require.True(t, like.Liked)
	require.Equal(t, int64(11), like.Likes)

	testserver.Decode(t, ts.Do(t, http.MethodPost, "/api/projects/solar/like", ts.Token, nil), &like)
	require.False(t, like.Liked)
	require.Equal(t, int64(10), like.Likes)

	var share struct {
		Shares int64 `json:"shares"`
	}
	resp = ts.Do(t, http.MethodPost, "/api/projects/solar/share", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testserver.Decode(t, resp, &share)
	require.Equal(t, int64(1), share.Shares)

	resp = ts.Do(t, http.MethodPost, "/api/projects/missing/share", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestComments(t *testing.T) {
	ts := testserver.New(t)
	seedCatalogue(t, ts)
	_, otherToken := ts.AddUser(t, "Brian Okello", "Gulu University")

	resp := ts.Do(t, http.MethodPost, "/api/projects/solar/comments", "", map[string]string{"text": "hi"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var top comment.Comment
	resp = ts.Do(t, http.MethodPost, "/api/projects/solar/comments", ts.Token, map[string]string{"text": "How much does it cost?"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	testserver.Decode(t, resp, &top)
	require.Equal(t, "Amina Nakato", top.Author.Name)

	var reply comment.Comment
	resp = ts.Do(t, http.MethodPost, "/api/comments/"+top.ID+"/replies", otherToken, map[string]string{"text": "About 40 dollars"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	testserver.Decode(t, resp, &reply)

	resp = ts.Do(t, http.MethodPost, "/api/comments/"+reply.ID+"/replies", ts.Token, map[string]string{"text": "Thanks"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = ts.Do(t, http.MethodPost, "/api/projects/solar/comments", ts.Token, map[string]string{"text": "   "})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var like comment.LikeResult
	testserver.Decode(t, ts.Do(t, http.MethodPost, "/api/comments/"+top.ID+"/like", otherToken, nil), &like)
	require.True(t, like.Liked)
	require.Equal(t, int64(1), like.Likes)

	var thread []comment.Comment
	resp = ts.Do(t, http.MethodGet, "/api/projects/solar/comments?sort=popular", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testserver.Decode(t, resp, &thread)
	require.Len(t, thread, 1)
	require.Equal(t, int64(1), thread[0].Likes)
	require.Len(t, thread[0].Replies, 1)
	require.Equal(t, reply.ID, thread[0].Replies[0].ID)

	resp = ts.Do(t, http.MethodGet, "/api/projects/solar/comments?sort=loudest", "", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.Do(t, http.MethodGet, "/api/projects/missing/comments", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProjectActivity(t *testing.T) {
	ts := testserver.New(t)
	seedCatalogue(t, ts)

	ts.Do(t, http.MethodGet, "/api/projects/loom", "", nil)
	ts.Do(t, http.MethodPost, "/api/projects/loom/like", ts.Token, nil)

	var entries []activity.ActivityEntry
	resp := ts.Do(t, http.MethodGet, "/api/projects/loom/activity", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testserver.Decode(t, resp, &entries)
	require.Len(t, entries, 2)
	require.Equal(t, activity.TypeProjectLiked, entries[0].ActivityType)

	testserver.Decode(t, ts.Do(t, http.MethodGet, "/api/projects/loom/activity?type=project_viewed", "", nil), &entries)
	require.Len(t, entries, 1)

	resp = ts.Do(t, http.MethodGet, "/api/projects/loom/activity?limit=x", "", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.Do(t, http.MethodGet, "/api/projects/missing/activity", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProfile(t *testing.T) {
	ts := testserver.New(t)
	seedCatalogue(t, ts)

	var profile user.Profile
	resp := ts.Do(t, http.MethodGet, "/api/users/"+ts.UserID+"?sort=alphabetical", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testserver.Decode(t, resp, &profile)
	require.Equal(t, "Amina Nakato", profile.User.Name)
	require.Equal(t, []string{"drone", "loom", "solar"}, itemIDs(profile.Projects))
	require.Equal(t, 3, profile.Stats.Projects)
	require.Equal(t, int64(55), profile.Stats.TotalLikes)
	require.Equal(t, int64(160), profile.Stats.TotalViews)

	resp = ts.Do(t, http.MethodGet, "/api/users/nobody", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = ts.Do(t, http.MethodGet, "/api/users/"+ts.UserID+"?sort=random", "", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFilters(t *testing.T) {
	ts := testserver.New(t)

	var catalog discovery.Catalog
	resp := ts.Do(t, http.MethodGet, "/api/filters", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testserver.Decode(t, resp, &catalog)
	require.Equal(t, discovery.All, catalog.Categories[0])
	require.Len(t, catalog.Categories, len(project.Categories)+1)
	require.Len(t, catalog.Sorts, 4)
}

func TestFeedRefresh(t *testing.T) {
	ts := testserver.New(t)

	resp := ts.Do(t, http.MethodPost, "/api/feed/refresh", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	ts.SeedProject(t, ts.UserID, project.Project{ID: "late", Title: "Late Entry"})

	var res discovery.Result
	testserver.Decode(t, ts.Do(t, http.MethodGet, "/api/projects", "", nil), &res)
	require.Empty(t, res.Items)

	var out struct {
		Projects int  `json:"projects"`
		Applied  bool `json:"applied"`
	}
	resp = ts.Do(t, http.MethodPost, "/api/feed/refresh", ts.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testserver.Decode(t, resp, &out)
	require.Equal(t, 1, out.Projects)
	require.True(t, out.Applied)

	testserver.Decode(t, ts.Do(t, http.MethodGet, "/api/projects", "", nil), &res)
	require.Equal(t, []string{"late"}, itemIDs(res.Items))
}

func TestCORSPreflight(t *testing.T) {
	ts := testserver.New(t)

	req, err := http.NewRequest(http.MethodOptions, ts.Server.URL+"/api/projects", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://showcase.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
