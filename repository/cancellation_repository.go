package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"droneVideoOps/models"
)

const cancellationColumns = `id, order_id, order_code, client_name, city, pilot_name, editor_name, reason, status, refund_amount, admin_notes, cancelled_at, updated_at`

// CancellationRepository stores cancellation records, at most one per order.
type CancellationRepository struct {
	db DBTX
}

func NewCancellationRepository(db DBTX) *CancellationRepository {
	return &CancellationRepository{db: db}
}

func (r *CancellationRepository) Create(ctx context.Context, c *models.Cancellation) (*models.Cancellation, error) {
	if c == nil {
		return nil, errors.New("cancellation is nil")
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = models.CancellationCancelled
	}
	if c.CancelledAt.IsZero() {
		c.CancelledAt = time.Now().UTC()
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CancelledAt
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `INSERT INTO cancellations (`+cancellationColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		c.ID, c.OrderID, c.OrderCode, c.ClientName, c.City, c.PilotName, c.EditorName, string(c.Reason),
		string(c.Status), nullableFloat(c.RefundAmount), c.AdminNotes, formatTime(c.CancelledAt), formatTime(c.UpdatedAt))
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CancellationRepository) GetByID(ctx context.Context, id string) (*models.Cancellation, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanCancellation(r.db.QueryRowContext(ctx, `SELECT `+cancellationColumns+` FROM cancellations WHERE id = ?`, id))
}

func (r *CancellationRepository) GetByOrderID(ctx context.Context, orderID string) (*models.Cancellation, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanCancellation(r.db.QueryRowContext(ctx, `SELECT `+cancellationColumns+` FROM cancellations WHERE order_id = ?`, orderID))
}

// List returns every cancellation, most recent first.
func (r *CancellationRepository) List(ctx context.Context) ([]models.Cancellation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT `+cancellationColumns+` FROM cancellations ORDER BY cancelled_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Cancellation
	for rows.Next() {
		c, err := scanCancellation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AdvanceStatus moves a cancellation from one follow-up status to the next, with the same
// compare-and-set semantics as OrderRepository.TransitionStatus. Refund amount and notes
// are only overwritten when non-nil / non-empty.
func (r *CancellationRepository) AdvanceStatus(ctx context.Context, id string, from, to models.CancellationStatus, refund *float64, notes string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `
UPDATE cancellations
SET status = ?,
    refund_amount = COALESCE(?, refund_amount),
    admin_notes = CASE WHEN ? = '' THEN admin_notes ELSE ? END,
    updated_at = ?
WHERE id = ? AND status = ?`,
		string(to), nullableFloat(refund), notes, notes, formatTime(at), id, string(from))
	if err != nil {
		return err
	}
	if err := checkAffected(res); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrStatusConflict
		}
		return err
	}
	return nil
}

func scanCancellation(row rowScanner) (*models.Cancellation, error) {
	var c models.Cancellation
	var reason, status, cancelledAt, updatedAt string
	var refund sql.NullFloat64
	err := row.Scan(&c.ID, &c.OrderID, &c.OrderCode, &c.ClientName, &c.City, &c.PilotName, &c.EditorName,
		&reason, &status, &refund, &c.AdminNotes, &cancelledAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	c.Reason = models.CancellationReason(reason)
	c.Status = models.CancellationStatus(status)
	c.RefundAmount = floatPtr(refund)
	if c.CancelledAt, err = parseTime(cancelledAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
