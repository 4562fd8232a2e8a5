package models

import "time"

// SubmissionStatus is the review state of a deliverable.
type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionApproved  SubmissionStatus = "approved"
	SubmissionRejected  SubmissionStatus = "rejected"
)

// Submission is a deliverable handed in by a pilot (raw footage) or an editor (edited cut).
type Submission struct {
	ID             string           `db:"id" json:"id"`
	OrderID        string           `db:"order_id" json:"order_id"`
	Role           StaffRole        `db:"role" json:"role"`
	SubmitterID    string           `db:"submitter_id" json:"submitter_id"`
	SubmitterName  string           `db:"submitter_name" json:"submitter_name"`
	DriveLink      string           `db:"drive_link" json:"drive_link"`
	HoursWorked    *float64         `db:"hours_worked" json:"hours_worked,omitempty"`
	Comments       string           `db:"comments" json:"comments,omitempty"`
	Status         SubmissionStatus `db:"status" json:"status"`
	ReviewComments string           `db:"review_comments" json:"review_comments,omitempty"`
	ReviewedBy     string           `db:"reviewed_by" json:"reviewed_by,omitempty"`
	PreviousID     *string          `db:"previous_id" json:"previous_id,omitempty"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`
	ReviewedAt     *time.Time       `db:"reviewed_at" json:"reviewed_at,omitempty"`
}
