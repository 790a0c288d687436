package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/showcase/internal/domain/comment"
	"github.com/rpggio/showcase/internal/repository"
)

const commentColumns = `
	id, project_id, parent_id, author_id, author_name, author_avatar_url,
	text, likes, created_at`

// CommentRepository implements comment.Repository for SQLite
type CommentRepository struct {
	db *DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a comment or reply
func (r *CommentRepository) Create(ctx context.Context, c *comment.Comment) error {
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO comments (` + commentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.ProjectID,
		c.ParentID,
		c.Author.ID,
		c.Author.Name,
		c.Author.AvatarURL,
		c.Text,
		c.Likes,
		createdAt.UTC(),
	)
	if isForeignKeyViolation(err) {
		return repository.ErrForeignKeyViolation
	}
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	c.CreatedAt = createdAt.UTC()
	return nil
}

// Get retrieves a comment by ID
func (r *CommentRepository) Get(ctx context.Context, id string) (*comment.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = ?`

	c, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return c, nil
}

// ListByProject returns every comment and reply on a project as a flat list,
// oldest first
func (r *CommentRepository) ListByProject(ctx context.Context, projectID string) ([]comment.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE project_id = ?
		ORDER BY created_at ASC, rowid ASC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []comment.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, *c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return comments, nil
}

// ToggleLike likes the comment for userID, or removes an existing like
func (r *CommentRepository) ToggleLike(ctx context.Context, id, userID string) (bool, int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	liked, err := toggleMembership(ctx, tx,
		`DELETE FROM comment_likes WHERE comment_id = ? AND user_id = ?`,
		`INSERT INTO comment_likes (comment_id, user_id) VALUES (?, ?)`,
		id, userID)
	if isForeignKeyViolation(err) {
		return false, 0, repository.ErrNotFound
	}
	if err != nil {
		return false, 0, fmt.Errorf("failed to toggle comment like: %w", err)
	}

	delta := -1
	if liked {
		delta = 1
	}
	var likes int64
	err = tx.QueryRowContext(ctx,
		`UPDATE comments SET likes = MAX(likes + ?, 0) WHERE id = ? RETURNING likes`,
		delta, id).Scan(&likes)
	if errors.Is(err, sql.ErrNoRows) {
		return false, 0, repository.ErrNotFound
	}
	if err != nil {
		return false, 0, fmt.Errorf("failed to update comment like count: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return liked, likes, nil
}

func scanComment(row rowScanner) (*comment.Comment, error) {
	var c comment.Comment
	var parentID sql.NullString
	err := row.Scan(
		&c.ID,
		&c.ProjectID,
		&parentID,
		&c.Author.ID,
		&c.Author.Name,
		&c.Author.AvatarURL,
		&c.Text,
		&c.Likes,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if parentID.Valid {
		c.ParentID = &parentID.String
	}
	return &c, nil
}
