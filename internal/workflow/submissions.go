package workflow

import (
	"context"
	"fmt"
	"strings"

	"droneVideoOps/internal/lifecycle"
	"droneVideoOps/models"
	"droneVideoOps/repository"
)

// SubmissionInput is a deliverable handed in by the acting pilot or editor.
type SubmissionInput struct {
	OrderID     string   `json:"order_id"`
	DriveLink   string   `json:"drive_link" validate:"required,url"`
	HoursWorked *float64 `json:"hours_worked" validate:"omitempty,gte=0"`
	Comments    string   `json:"comments"`
}

// Submit records a deliverable for an order the actor is currently assigned to and
// advances the order to pilot_submitted or editor_submitted.
func (s *Service) Submit(ctx context.Context, actor Actor, in SubmissionInput) (*models.Submission, error) {
	var out *models.Submission
	err := s.command(ctx, "submit", in.OrderID, orderKeys, func(ctx context.Context, tx *repository.Store) error {
		var err error
		out, err = s.submit(ctx, tx, actor, in, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Resubmit records a new submission after a rejected one. Drive link and comments default
// to the rejected submission's values when left empty.
func (s *Service) Resubmit(ctx context.Context, actor Actor, previousID string, in SubmissionInput) (*models.Submission, error) {
	var out *models.Submission
	err := s.command(ctx, "resubmit", in.OrderID, orderKeys, func(ctx context.Context, tx *repository.Store) error {
		prev, err := tx.Submissions.GetByID(ctx, previousID)
		if err != nil {
			return fmt.Errorf("get submission: %w", err)
		}
		if prev == nil {
			return fmt.Errorf("submission %s: %w", previousID, ErrNotFound)
		}
		if prev.Status != models.SubmissionRejected {
			return fmt.Errorf("submission %s is %s, only rejected submissions can be resubmitted: %w",
				prev.ID, prev.Status, lifecycle.ErrInvalidTransition)
		}
		if in.OrderID == "" {
			in.OrderID = prev.OrderID
		}
		if strings.TrimSpace(in.DriveLink) == "" {
			in.DriveLink = prev.DriveLink
		}
		if strings.TrimSpace(in.Comments) == "" {
			in.Comments = prev.Comments
		}
		if in.HoursWorked == nil {
			in.HoursWorked = prev.HoursWorked
		}
		out, err = s.submit(ctx, tx, actor, in, prev)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) submit(ctx context.Context, tx *repository.Store, actor Actor, in SubmissionInput, prev *models.Submission) (*models.Submission, error) {
	role, stage, err := staffRole(actor)
	if err != nil {
		return nil, err
	}
	in.DriveLink = strings.TrimSpace(in.DriveLink)
	in.Comments = strings.TrimSpace(in.Comments)
	if err := check(in); err != nil {
		return nil, err
	}
	o, err := loadOrder(ctx, tx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if prev != nil && (prev.OrderID != o.ID || prev.Role != role) {
		return nil, fmt.Errorf("submission %s belongs to another order or role: %w", prev.ID, ErrForbidden)
	}
	cur, err := tx.Assignments.Current(ctx, o.ID)
	if err != nil {
		return nil, fmt.Errorf("current assignment: %w", err)
	}
	if !assignedTo(cur, role, actor.ID) {
		return nil, fmt.Errorf("%s %s is not assigned to order %s: %w", role, actor.label(), o.OrderID, ErrForbidden)
	}

	now := s.clock()
	if err := s.advance(ctx, tx, o, lifecycle.SubmitEvent(role), now); err != nil {
		return nil, err
	}
	sub := &models.Submission{
		OrderID:       o.ID,
		Role:          role,
		SubmitterID:   actor.ID,
		SubmitterName: actor.label(),
		DriveLink:     in.DriveLink,
		HoursWorked:   in.HoursWorked,
		Comments:      in.Comments,
		CreatedAt:     now,
	}
	if prev != nil {
		sub.PreviousID = &prev.ID
	}
	created, err := tx.Submissions.Create(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}
	if in.Comments != "" {
		if err := s.comment(ctx, tx, actor, o.ID, stage, in.Comments, now); err != nil {
			return nil, err
		}
	}
	return created, nil
}

func staffRole(actor Actor) (models.StaffRole, models.CommentStage, error) {
	switch actor.Role {
	case models.RolePilot:
		return models.StaffPilot, models.StagePilotSubmission, nil
	case models.RoleEditor:
		return models.StaffEditor, models.StageEditorSubmission, nil
	default:
		return "", "", fmt.Errorf("only pilots and editors submit deliverables: %w", ErrForbidden)
	}
}

func assignedTo(a *models.Assignment, role models.StaffRole, staffID string) bool {
	if a == nil || staffID == "" {
		return false
	}
	if role == models.StaffEditor {
		return a.EditorID != nil && *a.EditorID == staffID
	}
	return a.PilotID != nil && *a.PilotID == staffID
}

func submissionStage(role models.StaffRole) models.CommentStage {
	if role == models.StaffEditor {
		return models.StageEditorSubmission
	}
	return models.StagePilotSubmission
}

// ReviewSubmission approves or rejects a pending submission. Approval advances the order to
// pilot_reviewed or editor_reviewed; an approved edit also becomes the order's drive link.
// Rejection needs a comment and leaves the order where it is so the submitter can resubmit.
func (s *Service) ReviewSubmission(ctx context.Context, actor Actor, submissionID string, approve bool, comment string) (*models.Submission, error) {
	comment = strings.TrimSpace(comment)
	if !approve && comment == "" {
		return nil, ErrCommentRequired
	}
	var out *models.Submission
	err := s.command(ctx, "review_submission", "", orderKeys, func(ctx context.Context, tx *repository.Store) error {
		sub, err := tx.Submissions.GetByID(ctx, submissionID)
		if err != nil {
			return fmt.Errorf("get submission: %w", err)
		}
		if sub == nil {
			return fmt.Errorf("submission %s: %w", submissionID, ErrNotFound)
		}
		if sub.Status != models.SubmissionSubmitted {
			return fmt.Errorf("submission %s already %s: %w", sub.ID, sub.Status, repository.ErrStatusConflict)
		}
		o, err := loadOrder(ctx, tx, sub.OrderID)
		if err != nil {
			return err
		}
		if lifecycle.IsTerminal(o.Status) {
			return fmt.Errorf("%w: order %s is %s, its submissions are closed", ErrInvalidTransition, o.OrderID, o.Status)
		}
		now := s.clock()
		status := models.SubmissionRejected
		text := comment
		if approve {
			status = models.SubmissionApproved
			if text == "" {
				text = "Approved"
			}
			if err := s.advance(ctx, tx, o, lifecycle.ApproveEvent(sub.Role), now); err != nil {
				return err
			}
			if sub.Role == models.StaffEditor {
				o.DriveLink = sub.DriveLink
				o.UpdatedAt = now
				if err := tx.Orders.Update(ctx, o); err != nil {
					return fmt.Errorf("update order: %w", err)
				}
			}
		} else {
			text = "Rejected: " + comment
		}
		if err := tx.Submissions.Review(ctx, sub.ID, status, comment, actor.label(), now); err != nil {
			return fmt.Errorf("review submission %s: %w", sub.ID, err)
		}
		if err := s.comment(ctx, tx, actor, o.ID, submissionStage(sub.Role), text, now); err != nil {
			return err
		}
		if out, err = tx.Submissions.GetByID(ctx, sub.ID); err != nil {
			return fmt.Errorf("get submission: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListSubmissions returns an order's submissions, newest first.
func (s *Service) ListSubmissions(ctx context.Context, ref string) ([]models.Submission, error) {
	ctx, span := s.query(ctx, "list_submissions")
	defer span.End()
	o, err := loadOrder(ctx, s.store, ref)
	if err != nil {
		return nil, err
	}
	return s.store.Submissions.ListByOrder(ctx, o.ID)
}
