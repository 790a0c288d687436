package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/showcase/internal/discovery"
	"github.com/rpggio/showcase/internal/domain/comment"
	"github.com/rpggio/showcase/internal/domain/project"
	"github.com/rpggio/showcase/internal/domain/user"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. It returns nil for errors
// it does not recognise.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var verr *project.ValidationError
	switch {
	case errors.As(err, &verr):
		return &APIError{Code: "VALIDATION_FAILED", Message: "submission rejected", Details: verr.Details()}
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Use discover_projects to find IDs"}
	case errors.Is(err, comment.ErrCommentNotFound):
		return &APIError{Code: "COMMENT_NOT_FOUND", Message: "comment not found", RecoveryHint: "Use list_comments to find IDs"}
	case errors.Is(err, user.ErrUserNotFound):
		return &APIError{Code: "USER_NOT_FOUND", Message: "user not found"}
	case errors.Is(err, project.ErrUnauthenticated), errors.Is(err, comment.ErrUnauthenticated):
		return &APIError{Code: "UNAUTHENTICATED", Message: "sign in required", RecoveryHint: "Send a bearer token"}
	case errors.Is(err, comment.ErrNestedReply):
		return &APIError{Code: "NESTED_REPLY", Message: err.Error(), RecoveryHint: "Reply to the top-level comment"}
	case errors.Is(err, project.ErrInvalidInput), errors.Is(err, comment.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, discovery.ErrSourceUnavailable):
		return &APIError{Code: "SOURCE_UNAVAILABLE", Message: "project listings could not be loaded", RecoveryHint: "Retry later"}
	default:
		return nil
	}
}

// toolError converts err into the error returned from a tool handler.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
