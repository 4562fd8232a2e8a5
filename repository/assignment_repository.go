package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"droneVideoOps/models"
)

const assignmentColumns = `id, order_id, pilot_id, pilot_name, editor_id, editor_name, status, assigned_by, created_at`

// AssignmentRepository stores pilot/editor bindings. Re-assignment appends a new row.
type AssignmentRepository struct {
	db DBTX
}

func NewAssignmentRepository(db DBTX) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Create(ctx context.Context, a *models.Assignment) (*models.Assignment, error) {
	if a == nil {
		return nil, errors.New("assignment is nil")
	}
	if a.PilotID == nil && a.EditorID == nil {
		return nil, errors.New("assignment needs a pilot or an editor")
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = models.AssignmentStatusAssigned
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `INSERT INTO assignments (`+assignmentColumns+`) VALUES (?,?,?,?,?,?,?,?,?)`,
		a.ID, a.OrderID, nullableString(a.PilotID), a.PilotName, nullableString(a.EditorID), a.EditorName,
		a.Status, a.AssignedBy, formatTime(a.CreatedAt))
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Current returns the latest assignment of an order, or nil when it was never assigned.
func (r *AssignmentRepository) Current(ctx context.Context, orderID string) (*models.Assignment, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanAssignment(r.db.QueryRowContext(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE order_id = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`, orderID))
}

// ListByOrder returns the assignment history of an order, newest first.
func (r *AssignmentRepository) ListByOrder(ctx context.Context, orderID string) ([]models.Assignment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE order_id = ? ORDER BY created_at DESC, rowid DESC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignmentRows(rows)
}

// ListCurrentForStaff returns the current assignment of every order whose latest
// assignment names the given staff member as pilot or editor.
func (r *AssignmentRepository) ListCurrentForStaff(ctx context.Context, staffID string) ([]models.Assignment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `
SELECT a.id, a.order_id, a.pilot_id, a.pilot_name, a.editor_id, a.editor_name, a.status, a.assigned_by, a.created_at
FROM assignments a
WHERE (a.pilot_id = ? OR a.editor_id = ?)
  AND a.rowid = (
        SELECT b.rowid FROM assignments b
        WHERE b.order_id = a.order_id
        ORDER BY b.created_at DESC, b.rowid DESC
        LIMIT 1
      )
ORDER BY a.created_at DESC, a.rowid DESC`, staffID, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignmentRows(rows)
}

// Update rewrites the staff binding of an existing assignment record.
func (r *AssignmentRepository) Update(ctx context.Context, a *models.Assignment) error {
	if a == nil {
		return errors.New("assignment is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx,
		`UPDATE assignments SET pilot_id = ?, pilot_name = ?, editor_id = ?, editor_name = ?, status = ? WHERE id = ?`,
		nullableString(a.PilotID), a.PilotName, nullableString(a.EditorID), a.EditorName, a.Status, a.ID)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func scanAssignment(row rowScanner) (*models.Assignment, error) {
	var a models.Assignment
	var pilotID, editorID sql.NullString
	var createdAt string
	if err := row.Scan(&a.ID, &a.OrderID, &pilotID, &a.PilotName, &editorID, &a.EditorName, &a.Status, &a.AssignedBy, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	a.PilotID = stringPtr(pilotID)
	a.EditorID = stringPtr(editorID)
	var err error
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func scanAssignmentRows(rows *sql.Rows) ([]models.Assignment, error) {
	var out []models.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
