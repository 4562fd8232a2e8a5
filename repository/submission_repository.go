package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"droneVideoOps/models"
)

const submissionColumns = `id, order_id, role, submitter_id, submitter_name, drive_link, hours_worked, comments, status, review_comments, reviewed_by, previous_id, created_at, reviewed_at`

// SubmissionRepository stores pilot and editor deliverables.
type SubmissionRepository struct {
	db DBTX
}

func NewSubmissionRepository(db DBTX) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, s *models.Submission) (*models.Submission, error) {
	if s == nil {
		return nil, errors.New("submission is nil")
	}
	if s.DriveLink == "" {
		return nil, errors.New("drive link is required")
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = models.SubmissionSubmitted
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `INSERT INTO submissions (`+submissionColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,NULL)`,
		s.ID, s.OrderID, string(s.Role), s.SubmitterID, s.SubmitterName, s.DriveLink, nullableFloat(s.HoursWorked),
		s.Comments, string(s.Status), s.ReviewComments, s.ReviewedBy, nullableString(s.PreviousID), formatTime(s.CreatedAt))
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanSubmission(r.db.QueryRowContext(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE id = ?`, id))
}

// ListByOrder returns the submissions of an order, newest first.
func (r *SubmissionRepository) ListByOrder(ctx context.Context, orderID string) ([]models.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE order_id = ? ORDER BY created_at DESC, rowid DESC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubmissionRows(rows)
}

// Review records a review decision. Only submissions still in 'submitted' are updated;
// a second review of the same submission returns ErrStatusConflict.
func (r *SubmissionRepository) Review(ctx context.Context, id string, status models.SubmissionStatus, comments, reviewer string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx,
		`UPDATE submissions SET status = ?, review_comments = ?, reviewed_by = ?, reviewed_at = ? WHERE id = ? AND status = ?`,
		string(status), comments, reviewer, formatTime(at), id, string(models.SubmissionSubmitted))
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

func scanSubmission(row rowScanner) (*models.Submission, error) {
	var s models.Submission
	var role, status, createdAt string
	var hours sql.NullFloat64
	var previous, reviewedAt sql.NullString
	err := row.Scan(&s.ID, &s.OrderID, &role, &s.SubmitterID, &s.SubmitterName, &s.DriveLink, &hours, &s.Comments,
		&status, &s.ReviewComments, &s.ReviewedBy, &previous, &createdAt, &reviewedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	s.Role = models.StaffRole(role)
	s.Status = models.SubmissionStatus(status)
	s.HoursWorked = floatPtr(hours)
	s.PreviousID = stringPtr(previous)
	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if s.ReviewedAt, err = nullableTime(reviewedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func scanSubmissionRows(rows *sql.Rows) ([]models.Submission, error) {
	var out []models.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
