package comment

import "errors"

var (
	// ErrCommentNotFound indicates the comment doesn't exist.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrInvalidInput indicates empty or malformed comment input.
	ErrInvalidInput = errors.New("invalid comment input")
	// ErrNestedReply indicates a reply targeted another reply.
	ErrNestedReply = errors.New("replies can only target top-level comments")
	// ErrUnauthenticated indicates the operation needs a signed-in author.
	ErrUnauthenticated = errors.New("sign in required")
)
