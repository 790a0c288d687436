package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/showcase/internal/domain/project"
	"github.com/rpggio/showcase/internal/repository"
)

// Service handles user profiles.
type Service struct {
	repo     Repository
	projects ProjectLister
	logger   *slog.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, projects ProjectLister, logger *slog.Logger) *Service {
	return &Service{repo: repo, projects: projects, logger: logger}
}

// CreateRequest defines user registration inputs.
type CreateRequest struct {
	ID         string
	Name       string
	AvatarURL  string
	University string
	Bio        string
	Location   string
}

// Create registers a user.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	u := &User{
		ID:         id,
		Name:       name,
		AvatarURL:  req.AvatarURL,
		University: strings.TrimSpace(req.University),
		Bio:        req.Bio,
		Location:   req.Location,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return u, nil
}

// Get fetches a user by ID.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// Profile returns the user with their projects sorted by mode and engagement totals.
func (s *Service) Profile(ctx context.Context, id string, mode project.PortfolioSort) (*Profile, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	projects, err := s.projects.ListByCreator(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing profile projects: %w", err)
	}
	if mode == "" {
		mode = project.PortfolioRecent
	}

	stats := ProfileStats{Projects: len(projects)}
	for _, p := range projects {
		stats.TotalLikes += p.Stats.Likes
		stats.TotalViews += p.Stats.Views
	}

	return &Profile{
		User:     *u,
		Projects: project.SortPortfolio(projects, mode),
		Stats:    stats,
	}, nil
}
