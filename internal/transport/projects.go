package transport

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rpggio/showcase/internal/discovery"
	"github.com/rpggio/showcase/internal/domain/activity"
	"github.com/rpggio/showcase/internal/domain/project"
	"github.com/rpggio/showcase/internal/metrics"
)


// relatedResponse carries related suggestions and why they were chosen.
type relatedResponse struct {
	Items []discovery.ScoredProject `json:"items"`
	Basis discovery.Basis           `json:"basis"`
}

type shareResponse struct {
	ProjectID string `json:"project_id"`
	Shares    int64  `json:"shares"`
}

type refreshResponse struct {
	Projects    int    `json:"projects"`
	Applied     bool   `json:"applied"`
	Unavailable bool   `json:"source_unavailable"`
	Error       string `json:"error,omitempty"`
}

func (s *Server) handleFilters(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, discovery.Options())
}

func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	q, code, msg := s.parseQuery(r)
	if code != "" {
		writeError(w, http.StatusBadRequest, code, msg, nil)
		return
	}

	result := discovery.Run(s.feed.Snapshot(), q)
	metrics.RecordPipelineRun(string(result.Sort), result.Total, result.SourceUnavailable)
	writeData(w, http.StatusOK, result)
}

// parseQuery builds a discovery query from URL parameters.
func (s *Server) parseQuery(r *http.Request) (discovery.Query, string, string) {
	params := r.URL.Query()

	size := s.discovery.PageSize
	if raw := params.Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return discovery.Query{}, "invalid_page_size", "page_size must be a positive integer"
		}
		size = n
	}
	page := 1
	if raw := params.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return discovery.Query{}, "invalid_page", "page must be an integer"
		}
		page = n
	}

	criteria := discovery.Criteria{
		Search:     params.Get("q"),
		Category:   params.Get("category"),
		University: params.Get("university"),
		Tags:       discovery.ParseTags(params.Get("tags")),
	}
	q, err := discovery.QueryFrom(criteria, discovery.SortMode(params.Get("sort")), page, size)
	if err != nil {
		return discovery.Query{}, "invalid_sort", err.Error()
	}
	return q, "", ""
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")
	viewer, _ := UserFromContext(r.Context())

	proj, err := s.projects.View(r.Context(), id, viewer)
	if err != nil {
		// Records served by a remote source may not exist in the local store.
		if errors.Is(err, project.ErrProjectNotFound) {
			if rec, ok := s.feed.Snapshot().Find(id); ok {
				writeData(w, http.StatusOK, rec)
				return
			}
		}
		writeDomainError(w, r, s.logger, err)
		return
	}
	writeData(w, http.StatusOK, proj)
}

func (s *Server) handleRelated(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")

	limit := s.discovery.RelatedLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer", nil)
			return
		}
		limit = min(n, discovery.MaxPageSize)
	}

	snap := s.feed.Snapshot()
	focal, ok := snap.Find(id)
	if !ok {
		proj, err := s.projects.Get(r.Context(), id)
		if err != nil {
			writeDomainError(w, r, s.logger, err)
			return
		}
		focal = *proj
	}

	writeData(w, http.StatusOK, relatedResponse{
		Items: discovery.Related(focal, snap.Projects, limit),
		Basis: discovery.RelatedBasis(focal),
	})
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())
	u, err := s.users.Get(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, s.logger, err)
		return
	}

	var req project.CreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, s.logger, err)
		return
	}

	proj, err := s.projects.Create(r.Context(), u.Creator(), req)
	if err != nil {
		writeDomainError(w, r, s.logger, err)
		return
	}

	// New submissions appear in discovery without waiting for the next tick.
	if _, applied := s.feed.Refresh(r.Context()); !applied {
		s.logger.Debug("feed refresh after create was superseded", "project_id", proj.ID)
	}

	writeData(w, http.StatusCreated, proj)
}

func (s *Server) handleLikeProject(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())
	res, err := s.projects.ToggleLike(r.Context(), chi.URLParam(r, "projectID"), userID)
	if err != nil {
		writeDomainError(w, r, s.logger, err)
		return
	}
	writeData(w, http.StatusOK, res)
}

func (s *Server) handleShareProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")
	shares, err := s.projects.Share(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, s.logger, err)
		return
	}
	writeData(w, http.StatusOK, shareResponse{ProjectID: id, Shares: shares})
}

func (s *Server) handleProjectActivity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")
	if _, err := s.projects.Get(r.Context(), id); err != nil {
		writeDomainError(w, r, s.logger, err)
		return
	}

	opts := activity.ListActivityOptions{ProjectID: id}
	params := r.URL.Query()
	for name, dst := range map[string]*int{"limit": &opts.Limit, "offset": &opts.Offset} {
		raw := params.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid_"+name, name+" must be a non-negative integer", nil)
			return
		}
		*dst = n
	}
	if v := strings.TrimSpace(params.Get("type")); v != "" {
		typ := activity.ActivityType(v)
		opts.ActivityType = &typ
	}

	entries, err := s.activity.GetRecentActivity(r.Context(), opts)
	if err != nil {
		writeDomainError(w, r, s.logger, err)
		return
	}
	writeData(w, http.StatusOK, entries)
}

func (s *Server) handleRefreshFeed(w http.ResponseWriter, r *http.Request) {
	snap, applied := s.feed.Refresh(r.Context())
	resp := refreshResponse{
		Projects:    len(snap.Projects),
		Applied:     applied,
		Unavailable: snap.Unavailable(),
	}
	if snap.Err != nil {
		resp.Error = snap.Err.Error()
	}
	writeData(w, http.StatusOK, resp)
}
