package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"droneVideoOps/models"
)

const commentColumns = `id, order_id, author_role, author_id, author_name, stage, text, created_at`

// CommentRepository is append-only: there is no update or delete.
type CommentRepository struct {
	db DBTX
}

func NewCommentRepository(db DBTX) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	if c == nil {
		return nil, errors.New("comment is nil")
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Stage == "" {
		c.Stage = models.StageGeneral
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `INSERT INTO comments (`+commentColumns+`) VALUES (?,?,?,?,?,?,?,?)`,
		c.ID, c.OrderID, string(c.AuthorRole), c.AuthorID, c.AuthorName, string(c.Stage), c.Text, formatTime(c.CreatedAt))
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListByOrder returns an order's timeline, most recent first.
func (r *CommentRepository) ListByOrder(ctx context.Context, orderID string) ([]models.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT `+commentColumns+` FROM comments WHERE order_id = ? ORDER BY created_at DESC, rowid DESC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCommentRows(rows)
}

func scanCommentRows(rows *sql.Rows) ([]models.Comment, error) {
	var out []models.Comment
	for rows.Next() {
		var c models.Comment
		var role, stage, createdAt string
		if err := rows.Scan(&c.ID, &c.OrderID, &role, &c.AuthorID, &c.AuthorName, &stage, &c.Text, &createdAt); err != nil {
			return nil, err
		}
		c.AuthorRole = models.Role(role)
		c.Stage = models.CommentStage(stage)
		var err error
		if c.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
