package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/showcase/internal/domain/activity"
	"github.com/rpggio/showcase/internal/repository"
)

// Service handles project operations.
type Service struct {
	repo       Repository
	activities ActivityRepository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new project service. activities may be nil.
func NewService(repo Repository, activities ActivityRepository, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		activities: activities,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// CreateRequest defines project submission inputs.
type CreateRequest struct {
	Title       string   `json:"title" validate:"required,min=10,max=100"`
	Description string   `json:"description" validate:"required,min=50,max=500"`
	Category    Category `json:"category" validate:"required,category"`
	Image       string   `json:"image" validate:"required"`
	Gallery     []string `json:"gallery,omitempty" validate:"omitempty,dive,url"`
	DemoLink    string   `json:"demo_link,omitempty" validate:"omitempty,url"`
	VideoLink   string   `json:"video_link,omitempty" validate:"omitempty,url"`
	Tags        []string `json:"tags,omitempty" validate:"max=10,unique,dive,required,max=20"`
}

// Create validates a submission and publishes it under creator.
func (s *Service) Create(ctx context.Context, creator Creator, req CreateRequest) (*Project, error) {
	if creator.ID == "" {
		return nil, ErrUnauthenticated
	}

	req = req.Normalize()
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	proj := &Project{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
		Gallery:     req.Gallery,
		DemoLink:    req.DemoLink,
		VideoLink:   req.VideoLink,
		Creator:     creator,
		Tags:        tags,
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.logActivity(ctx, &activity.ActivityEntry{
		ProjectID:    proj.ID,
		UserID:       &creator.ID,
		ActivityType: activity.TypeProjectCreated,
		Summary:      fmt.Sprintf("%s published %q", creator.Name, proj.Title),
	})

	return proj, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// List returns every project, newest first.
func (s *Service) List(ctx context.Context) ([]Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// FetchProjects returns the full project set for the discovery feed.
func (s *Service) FetchProjects(ctx context.Context) ([]Project, error) {
	return s.List(ctx)
}

// ListByCreator returns a creator's projects, newest first.
func (s *Service) ListByCreator(ctx context.Context, creatorID string) ([]Project, error) {
	projects, err := s.repo.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("listing creator projects: %w", err)
	}
	return projects, nil
}

// View counts a detail-page visit and returns the project with the new count.
// viewerID may be empty for anonymous visitors.
func (s *Service) View(ctx context.Context, id, viewerID string) (*Project, error) {
	views, err := s.repo.IncrementViews(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("incrementing views: %w", err)
	}

	proj, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	proj.Stats.Views = views

	entry := &activity.ActivityEntry{
		ProjectID:    id,
		ActivityType: activity.TypeProjectViewed,
		Summary:      "project viewed",
	}
	if viewerID != "" {
		entry.UserID = &viewerID
	}
	s.logActivity(ctx, entry)

	return proj, nil
}

// ToggleLike likes the project for userID, or removes an existing like.
func (s *Service) ToggleLike(ctx context.Context, id, userID string) (LikeResult, error) {
	if userID == "" {
		return LikeResult{}, ErrUnauthenticated
	}

	liked, likes, err := s.repo.ToggleLike(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return LikeResult{}, ErrProjectNotFound
		}
		return LikeResult{}, fmt.Errorf("toggling like: %w", err)
	}

	typ := activity.TypeProjectLiked
	summary := "project liked"
	if !liked {
		typ = activity.TypeProjectUnliked
		summary = "project like removed"
	}
	s.logActivity(ctx, &activity.ActivityEntry{
		ProjectID:    id,
		UserID:       &userID,
		ActivityType: typ,
		Summary:      summary,
	})

	return LikeResult{ProjectID: id, Liked: liked, Likes: likes}, nil
}

// Share counts a share of the project and returns the new share count.
func (s *Service) Share(ctx context.Context, id string) (int64, error) {
	shares, err := s.repo.IncrementShares(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrProjectNotFound
		}
		return 0, fmt.Errorf("incrementing shares: %w", err)
	}

	s.logActivity(ctx, &activity.ActivityEntry{
		ProjectID:    id,
		ActivityType: activity.TypeProjectShared,
		Summary:      "project shared",
	})

	return shares, nil
}

func (s *Service) logActivity(ctx context.Context, entry *activity.ActivityEntry) {
	if s.activities == nil {
		return
	}
	if err := s.activities.Log(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("failed to log activity", "project_id", entry.ProjectID, "type", entry.ActivityType, "error", err)
	}
}
