package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/showcase/internal/domain/project"
	"github.com/rpggio/showcase/internal/repository"
	"github.com/stretchr/testify/require"
)

func newProject(id string, createdAt time.Time) *project.Project {
	return &project.Project{
		ID:          id,
		Title:       "Smart irrigation " + id,
		Description: "Soil moisture sensors drive a solar pump for smallholder farms.",
		Category:    project.CategoryAgriculture,
		Image:       "https://example.com/" + id + ".png",
		Gallery:     []string{"https://example.com/g1.png"},
		DemoLink:    "https://demo.example.com",
		Creator: project.Creator{
			ID:         "u1",
			Name:       "Amina N.",
			University: "Makerere University",
		},
		Tags:      []string{"IoT", "Sustainability"},
		CreatedAt: createdAt,
	}
}

func TestProjectRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := newProject("p1", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, proj))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, proj.Title, got.Title)
	require.Equal(t, proj.Category, got.Category)
	require.Equal(t, proj.Creator, got.Creator)
	require.Equal(t, []string{"IoT", "Sustainability"}, got.Tags)
	require.Equal(t, proj.Gallery, got.Gallery)
	require.Nil(t, got.Stats.Shares)
	require.True(t, proj.CreatedAt.Equal(got.CreatedAt))

	_, err = repo.Get(ctx, "nonexistent")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, repo.Create(ctx, proj), repository.ErrConflict)
}

func TestProjectRepository_CreateNilTags(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := newProject("p1", time.Now())
	proj.Tags = nil
	require.NoError(t, repo.Create(ctx, proj))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got.Tags)
	require.Empty(t, got.Tags)
}

func TestProjectRepository_ListNewestFirst(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newProject("old", base)))
	require.NoError(t, repo.Create(ctx, newProject("new", base.Add(2*time.Hour))))
	require.NoError(t, repo.Create(ctx, newProject("mid", base.Add(time.Hour))))

	other := newProject("other", base)
	other.Creator.ID = "u2"
	require.NoError(t, repo.Create(ctx, other))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"new", "mid", "other", "old"}, projectIDs(list))

	mine, err := repo.ListByCreator(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, []string{"new", "mid", "old"}, projectIDs(mine))

	none, err := repo.ListByCreator(ctx, "nobody")
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)
}

func TestProjectRepository_Counters(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newProject("p1", time.Now())))

	views, err := repo.IncrementViews(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, int64(1), views)
	views, err = repo.IncrementViews(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, int64(2), views)

	shares, err := repo.IncrementShares(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, int64(1), shares)

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got.Stats.Shares)
	require.Equal(t, int64(1), *got.Stats.Shares)

	_, err = repo.IncrementViews(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.IncrementShares(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectRepository_ToggleLike(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newProject("p1", time.Now())))

	liked, likes, err := repo.ToggleLike(ctx, "p1", "u1")
	require.NoError(t, err)
	require.True(t, liked)
	require.Equal(t, int64(1), likes)

	liked, likes, err = repo.ToggleLike(ctx, "p1", "u2")
	require.NoError(t, err)
	require.True(t, liked)
	require.Equal(t, int64(2), likes)

	liked, likes, err = repo.ToggleLike(ctx, "p1", "u1")
	require.NoError(t, err)
	require.False(t, liked)
	require.Equal(t, int64(1), likes)

	_, _, err = repo.ToggleLike(ctx, "missing", "u1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func projectIDs(projects []project.Project) []string {
	ids := make([]string, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	return ids
}
