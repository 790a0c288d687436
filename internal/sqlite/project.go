package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/rpggio/showcase/internal/domain/project"
	"github.com/rpggio/showcase/internal/repository"
)

const projectColumns = `
	id, title, description, category, image, gallery, demo_link, video_link,
	creator_id, creator_name, creator_avatar_url, creator_university,
	tags, likes, views, shares, created_at`

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	tags, err := encodeStrings(proj.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}
	gallery, err := encodeStrings(proj.Gallery)
	if err != nil {
		return fmt.Errorf("failed to encode gallery: %w", err)
	}

	createdAt := proj.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		proj.ID,
		proj.Title,
		proj.Description,
		proj.Category,
		proj.Image,
		gallery,
		proj.DemoLink,
		proj.VideoLink,
		proj.Creator.ID,
		proj.Creator.Name,
		proj.Creator.AvatarURL,
		proj.Creator.University,
		tags,
		proj.Stats.Likes,
		proj.Stats.Views,
		proj.Stats.Shares,
		createdAt.UTC(),
	)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	proj.CreatedAt = createdAt.UTC()
	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`

	proj, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return proj, nil
}

// List returns every project, newest first
func (r *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC, rowid DESC`
	return r.query(ctx, query)
}

// ListByCreator returns one creator's projects, newest first
func (r *ProjectRepository) ListByCreator(ctx context.Context, creatorID string) ([]project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE creator_id = ? ORDER BY created_at DESC, rowid DESC`
	return r.query(ctx, query, creatorID)
}

// IncrementViews atomically increments the view counter and returns the new value
func (r *ProjectRepository) IncrementViews(ctx context.Context, id string) (int64, error) {
	return r.increment(ctx, id, `UPDATE projects SET views = views + 1 WHERE id = ? RETURNING views`)
}

// IncrementShares atomically increments the share counter and returns the new value
func (r *ProjectRepository) IncrementShares(ctx context.Context, id string) (int64, error) {
	return r.increment(ctx, id, `UPDATE projects SET shares = COALESCE(shares, 0) + 1 WHERE id = ? RETURNING shares`)
}

// ToggleLike likes the project for userID, or removes an existing like. It
// returns whether the project is now liked and the new like count.
func (r *ProjectRepository) ToggleLike(ctx context.Context, id, userID string) (bool, int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	liked, err := toggleMembership(ctx, tx,
		`DELETE FROM project_likes WHERE project_id = ? AND user_id = ?`,
		`INSERT INTO project_likes (project_id, user_id) VALUES (?, ?)`,
		id, userID)
	if isForeignKeyViolation(err) {
		return false, 0, repository.ErrNotFound
	}
	if err != nil {
		return false, 0, fmt.Errorf("failed to toggle like: %w", err)
	}

	delta := -1
	if liked {
		delta = 1
	}
	var likes int64
	err = tx.QueryRowContext(ctx,
		`UPDATE projects SET likes = MAX(likes + ?, 0) WHERE id = ? RETURNING likes`,
		delta, id).Scan(&likes)
	if errors.Is(err, sql.ErrNoRows) {
		return false, 0, repository.ErrNotFound
	}
	if err != nil {
		return false, 0, fmt.Errorf("failed to update like count: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return liked, likes, nil
}

func (r *ProjectRepository) increment(ctx context.Context, id, query string) (int64, error) {
	var value int64
	err := r.db.QueryRowContext(ctx, query, id).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, repository.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter: %w", err)
	}
	return value, nil
}

func (r *ProjectRepository) query(ctx context.Context, query string, args ...any) ([]project.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []project.Project{}
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *proj)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*project.Project, error) {
	var proj project.Project
	var tags, gallery string
	var shares sql.NullInt64
	err := row.Scan(
		&proj.ID,
		&proj.Title,
		&proj.Description,
		&proj.Category,
		&proj.Image,
		&gallery,
		&proj.DemoLink,
		&proj.VideoLink,
		&proj.Creator.ID,
		&proj.Creator.Name,
		&proj.Creator.AvatarURL,
		&proj.Creator.University,
		&tags,
		&proj.Stats.Likes,
		&proj.Stats.Views,
		&shares,
		&proj.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if proj.Tags, err = decodeStrings(tags); err != nil {
		return nil, fmt.Errorf("project %s tags: %w", proj.ID, err)
	}
	if proj.Gallery, err = decodeStrings(gallery); err != nil {
		return nil, fmt.Errorf("project %s gallery: %w", proj.ID, err)
	}
	if shares.Valid {
		proj.Stats.Shares = &shares.Int64
	}
	return &proj, nil
}

// toggleMembership deletes the (a, b) row if present, otherwise inserts it,
// and reports whether the row exists afterwards.
func toggleMembership(ctx context.Context, tx *sql.Tx, deleteQuery, insertQuery string, a, b string) (bool, error) {
	res, err := tx.ExecContext(ctx, deleteQuery, a, b)
	if err != nil {
		return false, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if removed > 0 {
		return false, nil
	}
	if _, err := tx.ExecContext(ctx, insertQuery, a, b); err != nil {
		return false, err
	}
	return true, nil
}

func encodeStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeStrings(raw string) ([]string, error) {
	values := []string{}
	if raw == "" {
		return values, nil
	}
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, err
	}
	return values, nil
}
