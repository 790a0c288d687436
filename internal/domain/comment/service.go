package comment

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/showcase/internal/domain/activity"
	"github.com/rpggio/showcase/internal/domain/project"
	"github.com/rpggio/showcase/internal/repository"
)

// MaxTextLength bounds the length of a single comment.
const MaxTextLength = 2000

// Service handles comment threads on projects.
type Service struct {
	comments   Repository
	projects   ProjectRepository
	activities ActivityRepository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new comment service. activities may be nil.
func NewService(comments Repository, projects ProjectRepository, activities ActivityRepository, logger *slog.Logger) *Service {
	return &Service{
		comments:   comments,
		projects:   projects,
		activities: activities,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Add posts a top-level comment on a project.
func (s *Service) Add(ctx context.Context, projectID string, author Author, text string) (*Comment, error) {
	if err := s.checkProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.create(ctx, projectID, nil, author, text)
}

// Reply answers a top-level comment. Replies to replies are rejected.
func (s *Service) Reply(ctx context.Context, parentID string, author Author, text string) (*Comment, error) {
	parent, err := s.comments.Get(ctx, parentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("loading parent comment: %w", err)
	}
	if parent.ParentID != nil {
		return nil, ErrNestedReply
	}
	return s.create(ctx, parent.ProjectID, &parent.ID, author, text)
}

// ToggleLike likes a comment for userID, or removes an existing like.
func (s *Service) ToggleLike(ctx context.Context, id, userID string) (LikeResult, error) {
	if userID == "" {
		return LikeResult{}, ErrUnauthenticated
	}
	liked, likes, err := s.comments.ToggleLike(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return LikeResult{}, ErrCommentNotFound
		}
		return LikeResult{}, fmt.Errorf("toggling comment like: %w", err)
	}

	if liked {
		if c, err := s.comments.Get(ctx, id); err == nil {
			s.logActivity(ctx, &activity.ActivityEntry{
				ProjectID:    c.ProjectID,
				UserID:       &userID,
				CommentID:    &c.ID,
				ActivityType: activity.TypeCommentLiked,
				Summary:      "comment liked",
			})
		}
	}

	return LikeResult{CommentID: id, Liked: liked, Likes: likes}, nil
}

// List returns the project's thread: top-level comments ordered by mode,
// each carrying its replies oldest first.
func (s *Service) List(ctx context.Context, projectID string, mode SortMode) ([]Comment, error) {
	if err := s.checkProject(ctx, projectID); err != nil {
		return nil, err
	}

	flat, err := s.comments.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return Thread(flat, mode), nil
}

// Thread groups a flat comment list into top-level comments with replies.
// Replies whose parent is missing are dropped.
func Thread(flat []Comment, mode SortMode) []Comment {
	replies := make(map[string][]Comment)
	roots := make([]Comment, 0, len(flat))
	for _, c := range flat {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		replies[*c.ParentID] = append(replies[*c.ParentID], c)
	}

	for i := range roots {
		children := replies[roots[i].ID]
		slices.SortStableFunc(children, func(a, b Comment) int { return a.CreatedAt.Compare(b.CreatedAt) })
		roots[i].Replies = children
	}

	switch mode {
	case SortOldest:
		slices.SortStableFunc(roots, func(a, b Comment) int { return a.CreatedAt.Compare(b.CreatedAt) })
	case SortPopular:
		slices.SortStableFunc(roots, func(a, b Comment) int { return cmp.Compare(b.Likes, a.Likes) })
	default:
		slices.SortStableFunc(roots, func(a, b Comment) int { return b.CreatedAt.Compare(a.CreatedAt) })
	}
	return roots
}

func (s *Service) create(ctx context.Context, projectID string, parentID *string, author Author, text string) (*Comment, error) {
	if author.ID == "" {
		return nil, ErrUnauthenticated
	}
	text = strings.TrimSpace(text)
	if text == "" || len([]rune(text)) > MaxTextLength {
		return nil, ErrInvalidInput
	}

	c := &Comment{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		ParentID:  parentID,
		Author:    author,
		Text:      text,
		CreatedAt: s.now(),
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	s.logActivity(ctx, &activity.ActivityEntry{
		ProjectID:    projectID,
		UserID:       &author.ID,
		CommentID:    &c.ID,
		ActivityType: activity.TypeCommentAdded,
		Summary:      fmt.Sprintf("%s commented", author.Name),
	})

	return c, nil
}

func (s *Service) checkProject(ctx context.Context, projectID string) error {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return project.ErrProjectNotFound
		}
		return fmt.Errorf("loading project: %w", err)
	}
	return nil
}

func (s *Service) logActivity(ctx context.Context, entry *activity.ActivityEntry) {
	if s.activities == nil {
		return
	}
	if err := s.activities.Log(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("failed to log activity", "project_id", entry.ProjectID, "type", entry.ActivityType, "error", err)
	}
}
