package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/showcase/internal/domain/project"
	"github.com/rpggio/showcase/internal/domain/user"
	"github.com/rpggio/showcase/internal/repository"
	"github.com/rpggio/showcase/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	repo.On("Create", ctx, mock.MatchedBy(func(u *user.User) bool {
		return u.ID != "" && u.Name == "Amina N."
	})).Return(nil)

	svc := user.NewService(repo, &mocks.ProjectRepository{}, nil)
	u, err := svc.Create(ctx, user.CreateRequest{Name: " Amina N. ", University: "Makerere University"})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)

	_, err = svc.Create(ctx, user.CreateRequest{Name: "  "})
	require.ErrorIs(t, err, user.ErrInvalidInput)
}

func TestUserService_Profile(t *testing.T) {
	ctx := context.Background()
	users := &mocks.UserRepository{}
	projects := &mocks.ProjectRepository{}
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	users.On("Get", ctx, "u1").Return(&user.User{ID: "u1", Name: "Amina"}, nil)
	users.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)
	projects.On("ListByCreator", ctx, "u1").Return([]project.Project{
		{ID: "a", Stats: project.Stats{Likes: 2, Views: 40}, CreatedAt: base},
		{ID: "b", Stats: project.Stats{Likes: 9, Views: 10}, CreatedAt: base.Add(time.Hour)},
	}, nil)

	svc := user.NewService(users, projects, nil)

	profile, err := svc.Profile(ctx, "u1", "")
	require.NoError(t, err)
	require.Equal(t, user.ProfileStats{Projects: 2, TotalLikes: 11, TotalViews: 50}, profile.Stats)
	require.Equal(t, "b", profile.Projects[0].ID)

	profile, err = svc.Profile(ctx, "u1", project.PortfolioViews)
	require.NoError(t, err)
	require.Equal(t, "a", profile.Projects[0].ID)

	_, err = svc.Profile(ctx, "missing", "")
	require.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUser_DenormalisedCopies(t *testing.T) {
	u := user.User{ID: "u1", Name: "Amina", AvatarURL: "https://example.com/a.png", University: "Gulu University"}
	require.Equal(t, project.Creator{ID: "u1", Name: "Amina", AvatarURL: "https://example.com/a.png", University: "Gulu University"}, u.Creator())
	require.Equal(t, "Amina", u.Author().Name)
}
