package transport

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rpggio/showcase/internal/domain/comment"
)

type commentRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	mode := comment.SortMode(r.URL.Query().Get("sort"))
	switch mode {
	case "":
		mode = comment.SortRecent
	case comment.SortRecent, comment.SortOldest, comment.SortPopular:
	default:
		writeError(w, http.StatusBadRequest, "invalid_sort", "unknown sort mode "+strconv.Quote(string(mode)), nil)
		return
	}

	comments, err := s.comments.List(r.Context(), chi.URLParam(r, "projectID"), mode)
	if err != nil {
		writeDomainError(w, r, s.logger, err)
		return
	}
	writeData(w, http.StatusOK, comments)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	s.postComment(w, r, func(author comment.Author, text string) (*comment.Comment, error) {
		return s.comments.Add(r.Context(), chi.URLParam(r, "projectID"), author, text)
	})
}

func (s *Server) handleReply(w http.ResponseWriter, r *http.Request) {
	s.postComment(w, r, func(author comment.Author, text string) (*comment.Comment, error) {
		return s.comments.Reply(r.Context(), chi.URLParam(r, "commentID"), author, text)
	})
}

func (s *Server) postComment(w http.ResponseWriter, r *http.Request, create func(comment.Author, string) (*comment.Comment, error)) {
	userID, _ := UserFromContext(r.Context())
	u, err := s.users.Get(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, s.logger, err)
		return
	}

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, s.logger, err)
		return
	}

	c, err := create(u.Author(), req.Text)
	if err != nil {
		writeDomainError(w, r, s.logger, err)
		return
	}
	writeData(w, http.StatusCreated, c)
}

func (s *Server) handleLikeComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())
	res, err := s.comments.ToggleLike(r.Context(), chi.URLParam(r, "commentID"), userID)
	if err != nil {
		writeDomainError(w, r, s.logger, err)
		return
	}
	writeData(w, http.StatusOK, res)
}
