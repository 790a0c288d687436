package transport

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rpggio/showcase/internal/domain/comment"
	"github.com/rpggio/showcase/internal/domain/project"
	"github.com/rpggio/showcase/internal/domain/user"
)

var errBadRequest = errors.New("bad request")

// writeDomainError maps service errors to HTTP responses. Unrecognised
// errors are logged and reported as 500 without leaking their text.
func writeDomainError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var verr *project.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, "validation_failed", "submission rejected", verr.Details())
	case errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, comment.ErrCommentNotFound),
		errors.Is(err, user.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, project.ErrUnauthenticated),
		errors.Is(err, comment.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	case errors.Is(err, comment.ErrNestedReply):
		writeError(w, http.StatusUnprocessableEntity, "nested_reply", err.Error(), nil)
	case errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, comment.ErrInvalidInput),
		errors.Is(err, user.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error(), nil)
	case errors.Is(err, errBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
	default:
		if logger != nil {
			logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		}
		writeError(w, http.StatusInternalServerError, "internal", "internal server error", nil)
	}
}
